package entities

import "testing"

func TestNewStockLine(t *testing.T) {
	tests := []struct {
		name          string
		stock         float64
		reserved      float64
		wantAvailable float64
		wantStatus    StockStatus
	}{
		{"free stock", 15, 0, 15, InStock},
		{"partially reserved", 15, 5, 10, Reserved},
		{"over reserved", 5, 8, 0, Reserved},
		{"empty", 0, 0, 0, OutOfStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := NewStockLine("Glass", tt.stock, tt.reserved)
			if line.Available != tt.wantAvailable {
				t.Errorf("Expected available %.2f, got %.2f", tt.wantAvailable, line.Available)
			}
			if line.Status != tt.wantStatus {
				t.Errorf("Expected status %s, got %s", tt.wantStatus, line.Status)
			}
		})
	}
}

func TestStockStatus_String(t *testing.T) {
	if InStock.String() != "in stock" || OutOfStock.String() != "out of stock" || Reserved.String() != "reserved" {
		t.Error("Unexpected stock status names")
	}
	if StockStatus(42).String() != "unknown" {
		t.Errorf("Expected unknown for out-of-range status, got %s", StockStatus(42))
	}
}
