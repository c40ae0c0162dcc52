package balance

import (
	"errors"
	"testing"

	"github.com/vsinha/prodplan/pkg/application/services/requirements"
	"github.com/vsinha/prodplan/pkg/domain/entities"
	"github.com/vsinha/prodplan/pkg/infrastructure/repositories/memory"
)

type staticReservations entities.Quantities

func (r staticReservations) Reserved() entities.Quantities {
	return entities.Quantities(r).Clone()
}

func newTestService(t *testing.T, stock entities.Quantities, reserved entities.Quantities) *Service {
	t.Helper()

	reqRepo := memory.NewRequirementRepository(1)
	if err := reqRepo.LoadRows([]*entities.MaterialRequirementRow{
		{Material: "Glass", Columns: map[string]float64{"1001": 10}},
	}); err != nil {
		t.Fatalf("Failed to load rows: %v", err)
	}

	stockRepo := memory.NewStockRepository()
	if err := stockRepo.LoadStockLevels(stock); err != nil {
		t.Fatalf("Failed to load stock: %v", err)
	}

	return NewService(requirements.NewAggregator(reqRepo), stockRepo, staticReservations(reserved))
}

func TestService_Balance(t *testing.T) {
	service := newTestService(t, entities.Quantities{"Glass": 15}, entities.Quantities{"Glass": 8})

	report, err := service.Balance([]entities.OrderID{"1001"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	b, _ := report.Balance("Glass")
	if b.Available != 7 || b.Remainder != -3 {
		t.Errorf("Expected available 7 and remainder -3, got %+v", b)
	}
	if len(report.Orders) != 1 || report.Orders[0] != "1001" {
		t.Errorf("Expected report to echo the selection, got %v", report.Orders)
	}
}

func TestService_Balance_EmptySelection(t *testing.T) {
	service := newTestService(t, entities.Quantities{"Glass": 15}, nil)

	if _, err := service.Balance(nil); !errors.Is(err, entities.ErrEmptySelection) {
		t.Errorf("Expected ErrEmptySelection, got %v", err)
	}
}
