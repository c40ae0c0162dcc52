package balance

import (
	"testing"

	"github.com/vsinha/prodplan/pkg/domain/entities"
)

func TestCalculate_CoveredRequirement(t *testing.T) {
	report := Calculate(
		[]entities.OrderID{"1001"},
		entities.Quantities{"Glass": 10},
		entities.Quantities{"Glass": 15},
		entities.Quantities{},
	)

	b, ok := report.Balance("Glass")
	if !ok {
		t.Fatal("Expected Glass in the balance")
	}
	if b.Stock != 15 || b.Reserved != 0 || b.Available != 15 || b.Required != 10 || b.Remainder != 5 {
		t.Errorf("Unexpected balance: %+v", b)
	}
	if report.PurchaseNeeded() {
		t.Errorf("Expected no purchase requirement, got %v", report.PurchaseRequirements)
	}
	if len(report.UrgentPurchase) != 0 {
		t.Errorf("Expected no urgent purchase, got %v", report.UrgentPurchase)
	}
}

func TestCalculate_UrgentShortfall(t *testing.T) {
	report := Calculate(
		[]entities.OrderID{"1001"},
		entities.Quantities{"Glass": 10},
		entities.Quantities{"Glass": 5},
		entities.Quantities{},
	)

	b, _ := report.Balance("Glass")
	if b.Remainder != -5 {
		t.Errorf("Expected remainder -5, got %.2f", b.Remainder)
	}
	if report.PurchaseRequirements.Get("Glass") != 5 {
		t.Errorf("Expected purchase of 5 Glass, got %v", report.PurchaseRequirements)
	}
	if report.UrgentPurchase.Get("Glass") != 5 {
		t.Errorf("Expected Glass to be urgent, got %v", report.UrgentPurchase)
	}
}

func TestCalculate_PurchaseListProperties(t *testing.T) {
	required := entities.Quantities{"Glass": 12, "Profile": 30, "Argon": 2, "Tape": 5}
	stock := entities.Quantities{"Glass": 10, "Profile": 20, "Argon": 8, "Sealant": 40}
	reserved := entities.Quantities{"Argon": 3, "Tape": 1}

	report := Calculate([]entities.OrderID{"1001"}, required, stock, reserved)

	if len(report.MaterialBalance) != 4 {
		t.Fatalf("Expected one balance per required material, got %d", len(report.MaterialBalance))
	}
	if _, ok := report.Balance("Sealant"); ok {
		t.Error("Expected stocked but unrequired material to be omitted")
	}

	for _, b := range report.MaterialBalance {
		if b.Remainder != b.Available-b.Required {
			t.Errorf("%s: remainder %.2f != available - required", b.Material, b.Remainder)
		}
		if b.Stock >= b.Reserved && b.Available+b.Reserved != b.Stock {
			t.Errorf("%s: available + reserved != stock", b.Material)
		}

		_, inPurchase := report.PurchaseRequirements[b.Material]
		if inPurchase != (b.Remainder < 0) {
			t.Errorf("%s: purchase membership %v for remainder %.2f", b.Material, inPurchase, b.Remainder)
		}

		_, inUrgent := report.UrgentPurchase[b.Material]
		wantUrgent := b.Remainder < 0 && -b.Remainder > 0.5*b.Stock
		if inUrgent != wantUrgent {
			t.Errorf("%s: urgent membership %v, want %v", b.Material, inUrgent, wantUrgent)
		}
	}

	// Glass short 2 of stock 10 is not urgent; Profile short 10 of 20 is exactly half, not urgent
	if report.UrgentPurchase.Get("Glass") != 0 || report.UrgentPurchase.Get("Profile") != 0 {
		t.Errorf("Expected Glass and Profile not urgent, got %v", report.UrgentPurchase)
	}
	// Tape has no stock at all
	if report.UrgentPurchase.Get("Tape") != 5 {
		t.Errorf("Expected Tape to be urgent with 5, got %v", report.UrgentPurchase)
	}
}

func TestCalculate_OrderedByMaterial(t *testing.T) {
	report := Calculate(nil, entities.Quantities{"Profile": 1, "Argon": 1, "Glass": 1}, nil, nil)

	want := []entities.Material{"Argon", "Glass", "Profile"}
	for i, b := range report.MaterialBalance {
		if b.Material != want[i] {
			t.Errorf("Position %d: expected %s, got %s", i, want[i], b.Material)
		}
	}
}
