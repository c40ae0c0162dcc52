package balance

import (
	"fmt"

	"github.com/vsinha/prodplan/pkg/application/dto"
	"github.com/vsinha/prodplan/pkg/application/services/requirements"
	"github.com/vsinha/prodplan/pkg/domain/entities"
	"github.com/vsinha/prodplan/pkg/domain/repositories"
)

// ReservationReader exposes the current reserved quantity per material
type ReservationReader interface {
	Reserved() entities.Quantities
}

// Service computes balance reports against live stock and reservations
type Service struct {
	aggregator   *requirements.Aggregator
	stockRepo    repositories.StockRepository
	reservations ReservationReader
}

// NewService creates a new balance service
func NewService(
	aggregator *requirements.Aggregator,
	stockRepo repositories.StockRepository,
	reservations ReservationReader,
) *Service {
	return &Service{
		aggregator:   aggregator,
		stockRepo:    stockRepo,
		reservations: reservations,
	}
}

// Balance aggregates the selection's requirements and nets them against stock
// and the reservation ledger as it stands now
func (s *Service) Balance(ids []entities.OrderID) (*dto.BalanceReport, error) {
	selection, err := requirements.NormalizeSelection(ids)
	if err != nil {
		return nil, err
	}

	required, err := s.aggregator.AggregateSelection(selection)
	if err != nil {
		return nil, err
	}

	stock, err := s.stockRepo.GetStockLevels()
	if err != nil {
		return nil, fmt.Errorf("failed to load stock levels: %w", err)
	}

	return Calculate(selection, required, stock, s.reservations.Reserved()), nil
}
