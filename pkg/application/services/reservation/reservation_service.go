package reservation

import (
	"fmt"
	"time"

	"github.com/vsinha/prodplan/pkg/application/dto"
	"github.com/vsinha/prodplan/pkg/application/services/requirements"
	"github.com/vsinha/prodplan/pkg/domain/entities"
	"github.com/vsinha/prodplan/pkg/domain/repositories"
	"github.com/vsinha/prodplan/pkg/infrastructure/events"
	"github.com/vsinha/prodplan/pkg/infrastructure/logger"
)

const (
	OperationCommit  = "commit"
	OperationRelease = "release"
)

// Recorder receives reservation metrics
type Recorder interface {
	RecordReservation(operation string, reserved entities.Quantities, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) RecordReservation(string, entities.Quantities, time.Duration) {}

// Service commits and releases material reservations for order selections
type Service struct {
	aggregator     *requirements.Aggregator
	stockRepo      repositories.StockRepository
	ledger         *Ledger
	eventStore     events.EventStore
	recorder       Recorder
	log            *logger.Logger
	rejectRecommit bool
}

// Option configures a Service
type Option func(*Service)

// WithEventStore appends an audit event for every successful ledger update
func WithEventStore(store events.EventStore) Option {
	return func(s *Service) { s.eventStore = store }
}

// WithRecorder publishes reservation metrics
func WithRecorder(recorder Recorder) Option {
	return func(s *Service) { s.recorder = recorder }
}

// WithLogger sets the service logger
func WithLogger(log *logger.Logger) Option {
	return func(s *Service) { s.log = log }
}

// WithRejectRecommit makes Commit fail with ErrOrderAlreadyCommitted when any
// selected order is already committed, instead of skipping it
func WithRejectRecommit(reject bool) Option {
	return func(s *Service) { s.rejectRecommit = reject }
}

// NewService creates a new reservation service over the given ledger
func NewService(
	aggregator *requirements.Aggregator,
	stockRepo repositories.StockRepository,
	ledger *Ledger,
	opts ...Option,
) *Service {
	s := &Service{
		aggregator: aggregator,
		stockRepo:  stockRepo,
		ledger:     ledger,
		recorder:   nopRecorder{},
		log:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ledger returns the ledger the service mutates
func (s *Service) Ledger() *Ledger {
	return s.ledger
}

// Commit reserves the aggregated requirements of the selected orders and marks
// them committed. Orders already committed are skipped, so committing the same
// selection twice reserves once.
func (s *Service) Commit(ids []entities.OrderID) (*dto.ReservationResult, error) {
	start := time.Now()

	selection, err := requirements.NormalizeSelection(ids)
	if err != nil {
		return nil, err
	}

	result := &dto.ReservationResult{Operation: OperationCommit}
	err = s.ledger.Apply(func(state *LedgerState) error {
		pending := make([]entities.OrderID, 0, len(selection))
		skipped := make([]entities.OrderID, 0)
		for _, id := range selection {
			if state.IsCommitted(id) {
				skipped = append(skipped, id)
			} else {
				pending = append(pending, id)
			}
		}
		if len(skipped) > 0 && s.rejectRecommit {
			return fmt.Errorf("%w: %v", entities.ErrOrderAlreadyCommitted, skipped)
		}

		deltas, err := s.aggregator.AggregateSelection(pending)
		if err != nil {
			return err
		}
		for _, material := range deltas.Materials() {
			state.Reserve(material, deltas.Get(material))
		}
		for _, id := range pending {
			state.MarkCommitted(id)
		}

		result.Orders = pending
		result.Skipped = skipped
		result.Deltas = deltas
		result.Reserved = state.reserved.Clone()
		return nil
	}, func() {
		s.publish(events.ReservationCommittedEvent, result, time.Since(start))
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Release subtracts the aggregated requirements of the selected orders from
// the ledger, never below zero, and removes them from the committed set.
// Orders that were never committed are released all the same.
func (s *Service) Release(ids []entities.OrderID) (*dto.ReservationResult, error) {
	start := time.Now()

	selection, err := requirements.NormalizeSelection(ids)
	if err != nil {
		return nil, err
	}

	result := &dto.ReservationResult{Operation: OperationRelease}
	err = s.ledger.Apply(func(state *LedgerState) error {
		required, err := s.aggregator.AggregateSelection(selection)
		if err != nil {
			return err
		}

		released := entities.Quantities{}
		for _, material := range required.Materials() {
			if qty := state.Release(material, required.Get(material)); qty > 0 {
				released[material] = qty
			}
		}
		for _, id := range selection {
			state.Unmark(id)
		}

		result.Orders = selection
		result.Deltas = released
		result.Reserved = state.reserved.Clone()
		return nil
	}, func() {
		s.publish(events.ReservationReleasedEvent, result, time.Since(start))
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// StockOverview lists every stocked or reserved material with its current
// availability and status, sorted by material
func (s *Service) StockOverview() ([]entities.StockLine, error) {
	stock, err := s.stockRepo.GetStockLevels()
	if err != nil {
		return nil, fmt.Errorf("failed to load stock levels: %w", err)
	}
	reserved := s.ledger.Reserved()

	materials := stock.Clone()
	for material := range reserved {
		materials.Add(material, 0)
	}

	lines := make([]entities.StockLine, 0, len(materials))
	for _, material := range materials.Materials() {
		lines = append(lines, entities.NewStockLine(material, stock.Get(material), reserved.Get(material)))
	}
	return lines, nil
}

// publish logs, records and audits a successful ledger update. It runs under
// the ledger write lock and must not call back into the ledger.
func (s *Service) publish(eventType string, result *dto.ReservationResult, elapsed time.Duration) {
	s.log.Info("reservation "+result.Operation,
		"orders", result.Orders,
		"skipped", result.Skipped,
		"materials", len(result.Deltas),
	)
	s.recorder.RecordReservation(result.Operation, result.Reserved, elapsed)

	if s.eventStore == nil {
		return
	}
	event := events.NewEvent(eventType, events.LedgerStream, events.ReservationChanged{
		Orders:  result.Orders,
		Skipped: result.Skipped,
		Deltas:  result.Deltas.Clone(),
	})
	if err := s.eventStore.AppendEvent(events.LedgerStream, event); err != nil {
		s.log.Warn("failed to append reservation event", "event_type", eventType, "error", err)
	}
}
