package purchasing

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/prodplan/pkg/application/services/balance"
	"github.com/vsinha/prodplan/pkg/application/services/requirements"
	"github.com/vsinha/prodplan/pkg/application/services/reservation"
	testhelpers "github.com/vsinha/prodplan/pkg/application/services/testing"
	"github.com/vsinha/prodplan/pkg/domain/entities"
	"github.com/vsinha/prodplan/pkg/domain/services"
)

var generatedAt = time.Date(2025, time.March, 3, 14, 5, 0, 0, time.UTC)

func newTestService(catalog *testhelpers.Catalog) *Service {
	balanceService := balance.NewService(
		requirements.NewAggregator(catalog.Requirements),
		catalog.Stock,
		reservation.NewLedger(),
	)
	return NewService(balanceService, services.NewDefaultPricer())
}

func TestService_Generate_ScenarioShortfall(t *testing.T) {
	service := newTestService(testhelpers.BuildScenarioCatalog(entities.Quantities{"Glass": 5}))

	po, err := service.Generate([]entities.OrderID{"1001"}, generatedAt)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !po.Required() {
		t.Fatal("Expected a purchase to be required")
	}
	if len(po.Lines) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(po.Lines))
	}

	line := po.Lines[0]
	if line.Material != "Glass" || line.Quantity != 5 || !line.Urgent {
		t.Errorf("Unexpected line: %+v", line)
	}
	if !line.Cost.Equal(decimal.NewFromInt(7500)) {
		t.Errorf("Expected cost 7500, got %s", line.Cost)
	}
	if !po.Total.Equal(decimal.NewFromInt(7500)) || po.UrgentCount != 1 {
		t.Errorf("Expected total 7500 with 1 urgent item, got %s / %d", po.Total, po.UrgentCount)
	}
	if po.ID == "" {
		t.Error("Expected a document id")
	}
}

func TestService_Generate_NothingToBuy(t *testing.T) {
	service := newTestService(testhelpers.BuildScenarioCatalog(entities.Quantities{"Glass": 15}))

	po, err := service.Generate([]entities.OrderID{"1001"}, generatedAt)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if po.Required() {
		t.Errorf("Expected no purchase, got %v", po.Lines)
	}
	if !po.Total.IsZero() {
		t.Errorf("Expected zero total, got %s", po.Total)
	}
}

func TestService_Generate_EmptySelection(t *testing.T) {
	service := newTestService(testhelpers.BuildWorkshopCatalog())

	if _, err := service.Generate(nil, generatedAt); !errors.Is(err, entities.ErrEmptySelection) {
		t.Errorf("Expected ErrEmptySelection, got %v", err)
	}
}

func TestText(t *testing.T) {
	service := newTestService(testhelpers.BuildWorkshopCatalog())

	po, err := service.Generate([]entities.OrderID{"1003", "1001"}, generatedAt)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	text := Text(po)

	// Glass 4mm: 26 required, 10 in stock; Argon: 4 required, 2 in stock;
	// Butyl tape: 5 required, none in stock
	wantLines := []string{
		"MATERIAL PURCHASE REQUEST",
		"Date: 03.03.2025 14:05",
		"Orders: 1001, 1003",
		"• Argon: 2.00 × 200.00 = 400.00",
		"• Butyl tape: 5.00 × 300.00 = 1,500.00",
		"• Glass 4mm: 16.00 × 1,500.00 = 24,000.00",
		"TOTAL COST: 25,900.00",
		"Urgent items: 3",
	}
	for _, want := range wantLines {
		if !strings.Contains(text, want) {
			t.Errorf("Expected purchase order to contain %q, got:\n%s", want, text)
		}
	}
	if strings.Contains(text, "PVC profile") || strings.Contains(text, "Sealant") {
		t.Errorf("Expected covered materials to be omitted, got:\n%s", text)
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"0", "0.00"},
		{"400", "400.00"},
		{"1500", "1,500.00"},
		{"999999.995", "1,000,000.00"},
		{"-1234.5", "-1,234.50"},
		{"12345678901234567.89", "12,345,678,901,234,567.89"},
	}
	for _, tt := range tests {
		if got := formatMoney(decimal.RequireFromString(tt.amount)); got != tt.want {
			t.Errorf("formatMoney(%s) = %s, want %s", tt.amount, got, tt.want)
		}
	}
}

func TestFileName(t *testing.T) {
	if got := FileName(generatedAt); got != "purchase_order_20250303_1405.txt" {
		t.Errorf("Unexpected file name %s", got)
	}
}
