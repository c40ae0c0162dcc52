package yamlfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

const sampleCatalog = `
orders:
  - id: "1001"
    customer: Acme Glazing
    product_type: Window
    area: 2
    value: 120000
    status: new
    priority: 1
  - id: "1002"
    customer: Birch Homes
    product_type: Door
    area: 1.5
requirements:
  - material: Glass
    stock: 15
    columns:
      "1001": 10
      "1002 1003": 4
  - material: Profile
    columns:
      "1001": 6
`

func TestLoader_LoadReader(t *testing.T) {
	data, err := NewLoader(10).LoadReader(strings.NewReader(sampleCatalog))
	if err != nil {
		t.Fatalf("LoadReader failed: %v", err)
	}

	if len(data.Orders) != 2 {
		t.Fatalf("Expected 2 orders, got %d", len(data.Orders))
	}
	if !data.Orders[0].Value.Equal(decimal.NewFromInt(120000)) || data.Orders[0].Priority != 1 {
		t.Errorf("Unexpected first order: %+v", data.Orders[0])
	}
	if data.Orders[1].Priority != 10 || !data.Orders[1].Value.IsZero() {
		t.Errorf("Expected defaults for second order, got %+v", data.Orders[1])
	}

	if len(data.Rows) != 2 || data.Rows[0].Columns["1002 1003"] != 4 {
		t.Errorf("Unexpected rows: %+v", data.Rows)
	}
	if data.Stock.Get("Glass") != 15 || data.Stock.Get("Profile") != 0 {
		t.Errorf("Unexpected stock: %v", data.Stock)
	}
}

func TestLoader_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(sampleCatalog), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	data, err := NewLoader(10).Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(data.Orders) != 2 {
		t.Errorf("Expected 2 orders, got %d", len(data.Orders))
	}

	if _, err := NewLoader(10).Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoader_Errors(t *testing.T) {
	tests := []struct {
		name        string
		doc         string
		expectError string
	}{
		{"unknown field", "orders:\n  - id: \"1\"\n    area: 1\n    colour: red\n", "failed to parse catalog YAML"},
		{"invalid area", "orders:\n  - id: \"1\"\n    area: 0\n", "orders[0]: area must be positive, got 0.00"},
		{"invalid value", "orders:\n  - id: \"1\"\n    area: 1\n    value: lots\n", `orders[0]: invalid value "lots"`},
		{"negative requirement", "requirements:\n  - material: Glass\n    columns:\n      \"1\": -1\n", "requirements[0]: material Glass: quantity for column 1 cannot be negative, got -1.00"},
		{"negative stock", "requirements:\n  - material: Glass\n    stock: -2\n", "requirements[0]: stock for Glass cannot be negative, got -2.00"},
		{"nan stock", "requirements:\n  - material: Glass\n    stock: .nan\n", "requirements[0]: stock for Glass must be finite, got NaN"},
		{"infinite requirement", "requirements:\n  - material: Glass\n    columns:\n      \"1\": .inf\n", "requirements[0]: material Glass: quantity for column 1 must be finite, got +Inf"},
		{"nan area", "orders:\n  - id: \"1\"\n    area: .nan\n", "orders[0]: area must be finite, got NaN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader(10).LoadReader(strings.NewReader(tt.doc))
			if err == nil {
				t.Fatalf("Expected error for %s, but got none", tt.name)
			}
			if !strings.Contains(err.Error(), tt.expectError) {
				t.Errorf("Expected error containing '%s', got '%s'", tt.expectError, err.Error())
			}
		})
	}
}
