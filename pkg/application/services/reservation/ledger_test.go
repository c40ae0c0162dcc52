package reservation

import (
	"errors"
	"testing"
)

func TestLedger_ApplyIsAtomic(t *testing.T) {
	ledger := NewLedger()

	err := ledger.Apply(func(state *LedgerState) error {
		state.Reserve("Glass", 10)
		state.MarkCommitted("1001")
		return nil
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	failure := errors.New("boom")
	err = ledger.Apply(func(state *LedgerState) error {
		state.Reserve("Glass", 5)
		state.Reserve("Profile", 3)
		state.Unmark("1001")
		return failure
	})
	if !errors.Is(err, failure) {
		t.Fatalf("Expected the callback error, got %v", err)
	}

	if got := ledger.Get("Glass"); got != 10 {
		t.Errorf("Expected failed change to leave Glass at 10, got %.2f", got)
	}
	if got := ledger.Get("Profile"); got != 0 {
		t.Errorf("Expected failed change to leave Profile absent, got %.2f", got)
	}
	if !ledger.IsCommitted("1001") {
		t.Error("Expected failed change to keep 1001 committed")
	}
}

func TestLedgerState_ReleaseFloorsAtZero(t *testing.T) {
	ledger := NewLedger()

	var released float64
	_ = ledger.Apply(func(state *LedgerState) error {
		state.Reserve("Glass", 4)
		released = state.Release("Glass", 10)
		state.Release("Profile", 2)
		return nil
	})

	if released != 4 {
		t.Errorf("Expected to release only the 4 reserved, got %.2f", released)
	}
	if got := ledger.Get("Glass"); got != 0 {
		t.Errorf("Expected Glass floored at 0, got %.2f", got)
	}
	if _, ok := ledger.Reserved()["Glass"]; ok {
		t.Error("Expected fully released material to be removed from the ledger")
	}
	if got := ledger.Get("Profile"); got != 0 {
		t.Errorf("Expected never-reserved Profile to stay 0, got %.2f", got)
	}
}

func TestLedger_SnapshotIsIndependent(t *testing.T) {
	ledger := NewLedger()
	_ = ledger.Apply(func(state *LedgerState) error {
		state.Reserve("Glass", 2)
		state.MarkCommitted("1002")
		state.MarkCommitted("1001")
		return nil
	})

	snapshot := ledger.Snapshot()
	snapshot.Reserved.Add("Glass", 100)

	if ledger.Get("Glass") != 2 {
		t.Error("Expected snapshot mutation not to reach the ledger")
	}
	if len(snapshot.Committed) != 2 || snapshot.Committed[0] != "1001" {
		t.Errorf("Expected sorted committed ids, got %v", snapshot.Committed)
	}
}

func TestLedger_ApplyHooks(t *testing.T) {
	ledger := NewLedger()
	seen := -1.0

	err := ledger.Apply(func(state *LedgerState) error {
		state.Reserve("Glass", 4)
		return nil
	}, func() {
		seen = ledger.state.reserved.Get("Glass")
	})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if seen != 4 {
		t.Errorf("Expected hook to see the kept update, got %.2f", seen)
	}

	called := false
	_ = ledger.Apply(func(state *LedgerState) error {
		return errors.New("rejected")
	}, func() {
		called = true
	})
	if called {
		t.Error("Expected hook to be skipped when the update is rejected")
	}
}
