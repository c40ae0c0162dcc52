package entities

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestOrder_Validation(t *testing.T) {
	validOrder, err := NewOrder(" 1001 ", "Acme", "Window", 2.5, decimal.NewFromInt(125000), "new", 1)
	if err != nil {
		t.Fatalf("Expected valid order creation to succeed: %v", err)
	}
	if validOrder.ID != "1001" {
		t.Errorf("Expected trimmed id 1001, got %q", validOrder.ID)
	}
	if validOrder.Area != 2.5 {
		t.Errorf("Expected area 2.5, got %.2f", validOrder.Area)
	}

	// Test validation failures
	testCases := []struct {
		name        string
		id          OrderID
		area        float64
		value       decimal.Decimal
		priority    int
		expectError string
	}{
		{"empty id", "", 1, decimal.Zero, 0, "order id cannot be empty"},
		{"blank id", "   ", 1, decimal.Zero, 0, "order id cannot be empty"},
		{"zero area", "1001", 0, decimal.Zero, 0, "area must be positive, got 0.00"},
		{"negative area", "1001", -1, decimal.Zero, 0, "area must be positive, got -1.00"},
		{"nan area", "1001", math.NaN(), decimal.Zero, 0, "area must be finite, got NaN"},
		{"infinite area", "1001", math.Inf(1), decimal.Zero, 0, "area must be finite, got +Inf"},
		{"negative value", "1001", 1, decimal.NewFromInt(-5), 0, "value cannot be negative, got -5.00"},
		{"negative priority", "1001", 1, decimal.Zero, -1, "priority cannot be negative, got -1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewOrder(tc.id, "Acme", "Window", tc.area, tc.value, "new", tc.priority)
			if err == nil {
				t.Fatalf("Expected error for %s, but got none", tc.name)
			}
			if err.Error() != tc.expectError {
				t.Errorf("Expected error '%s', got '%s'", tc.expectError, err.Error())
			}
		})
	}
}

func TestOrder_Matches(t *testing.T) {
	order := &Order{ID: "1001", Customer: "Acme Glazing", ProductType: "Facade", Status: "In production"}

	tests := []struct {
		search string
		want   bool
	}{
		{"", true},
		{"1001", true},
		{"acme", true},
		{"FACADE", true},
		{"production", true},
		{"door", false},
	}

	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			if got := order.Matches(tt.search); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.search, got, tt.want)
			}
		})
	}
}
