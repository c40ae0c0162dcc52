package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_Modes(t *testing.T) {
	for _, mode := range []string{"dev", "prod", "quiet", ""} {
		t.Run(mode, func(t *testing.T) {
			log, err := New(mode)
			if err != nil {
				t.Fatalf("New(%q) failed: %v", mode, err)
			}
			if log.SugaredLogger == nil {
				t.Fatal("Expected a sugared logger")
			}
		})
	}
}

func TestLogger_WithAddsFields(t *testing.T) {
	core, recorded := observer.New(zap.DebugLevel)
	log := &Logger{SugaredLogger: zap.New(core).Sugar()}

	log.With("component", "ledger").Info("reservation committed", "orders", 2)

	entries := recorded.All()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["component"] != "ledger" {
		t.Errorf("Expected component field, got %v", fields)
	}
	if fields["orders"] != int64(2) {
		t.Errorf("Expected orders=2, got %v (%T)", fields["orders"], fields["orders"])
	}
}

func TestNop_DiscardsSafely(t *testing.T) {
	log := Nop()
	log.Debug("ignored", "key", "value")
	log.Error("ignored")
	log.Sync()
}
