package orchestration

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vsinha/prodplan/pkg/application/dto"
	"github.com/vsinha/prodplan/pkg/application/services/balance"
	"github.com/vsinha/prodplan/pkg/application/services/catalog"
	"github.com/vsinha/prodplan/pkg/application/services/purchasing"
	"github.com/vsinha/prodplan/pkg/application/services/requirements"
	"github.com/vsinha/prodplan/pkg/application/services/reservation"
	"github.com/vsinha/prodplan/pkg/application/services/scheduling"
	"github.com/vsinha/prodplan/pkg/domain/entities"
	"github.com/vsinha/prodplan/pkg/domain/repositories"
	"github.com/vsinha/prodplan/pkg/domain/services"
)

// OperationObserver receives the duration of read operations
type OperationObserver interface {
	ObserveOperation(operation string, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveOperation(string, time.Duration) {}

// Options configures a planning session
type Options struct {
	Scheduling         scheduling.Config
	Pricer             services.PriceEstimator
	ReservationOptions []reservation.Option
	Observer           OperationObserver
}

// DefaultOptions returns the built-in shop configuration and price list
func DefaultOptions() Options {
	return Options{
		Scheduling: scheduling.DefaultConfig(),
		Pricer:     services.NewDefaultPricer(),
	}
}

// PlanningOrchestrator owns one planning session: the loaded catalog, its
// reservation ledger and the services computing over them
type PlanningOrchestrator struct {
	catalogService     *catalog.Service
	balanceService     *balance.Service
	reservationService *reservation.Service
	scheduler          *scheduling.Scheduler
	analyzer           *scheduling.Analyzer
	purchasingService  *purchasing.Service
	observer           OperationObserver
}

// NewPlanningOrchestrator wires a session over the given repositories with an
// empty reservation ledger
func NewPlanningOrchestrator(
	orderRepo repositories.OrderRepository,
	requirementRepo repositories.RequirementRepository,
	stockRepo repositories.StockRepository,
	opts Options,
) (*PlanningOrchestrator, error) {
	if opts.Pricer == nil {
		opts.Pricer = services.NewDefaultPricer()
	}
	if opts.Observer == nil {
		opts.Observer = nopObserver{}
	}

	scheduler, err := scheduling.NewScheduler(orderRepo, opts.Scheduling)
	if err != nil {
		return nil, err
	}

	aggregator := requirements.NewAggregator(requirementRepo)
	ledger := reservation.NewLedger()
	balanceService := balance.NewService(aggregator, stockRepo, ledger)

	return &PlanningOrchestrator{
		catalogService:     catalog.NewService(orderRepo, requirementRepo),
		balanceService:     balanceService,
		reservationService: reservation.NewService(aggregator, stockRepo, ledger, opts.ReservationOptions...),
		scheduler:          scheduler,
		analyzer:           scheduling.NewAnalyzer(opts.Scheduling),
		purchasingService:  purchasing.NewService(balanceService, opts.Pricer),
		observer:           opts.Observer,
	}, nil
}

// Catalog returns the order browsing service
func (po *PlanningOrchestrator) Catalog() *catalog.Service {
	return po.catalogService
}

// Reservations returns the reservation service
func (po *PlanningOrchestrator) Reservations() *reservation.Service {
	return po.reservationService
}

// Balance computes the material balance of a selection
func (po *PlanningOrchestrator) Balance(ids []entities.OrderID) (*dto.BalanceReport, error) {
	defer po.observe("balance", time.Now())
	return po.balanceService.Balance(ids)
}

// Schedule lays the selection out from start
func (po *PlanningOrchestrator) Schedule(ids []entities.OrderID, start time.Time) (*dto.ScheduleReport, error) {
	defer po.observe("schedule", time.Now())
	return po.scheduler.Schedule(ids, start)
}

// Utilization schedules the selection and estimates machine load over it
func (po *PlanningOrchestrator) Utilization(ids []entities.OrderID, start time.Time) (*dto.UtilizationReport, error) {
	defer po.observe("utilization", time.Now())
	report, err := po.scheduler.Schedule(ids, start)
	if err != nil {
		return nil, err
	}
	return po.analyzer.Utilization(report.Entries), nil
}

// PurchaseOrder prices the selection's shortfalls
func (po *PlanningOrchestrator) PurchaseOrder(ids []entities.OrderID, now time.Time) (*entities.PurchaseOrder, error) {
	defer po.observe("purchase_order", time.Now())
	return po.purchasingService.Generate(ids, now)
}

// Plan computes balance, schedule and utilization of one selection. The balance
// and the schedule are independent reads and run concurrently.
func (po *PlanningOrchestrator) Plan(ctx context.Context, ids []entities.OrderID, start time.Time) (*dto.PlanResult, error) {
	defer po.observe("plan", time.Now())

	selection, err := requirements.NormalizeSelection(ids)
	if err != nil {
		return nil, err
	}

	result := &dto.PlanResult{
		Orders:      selection,
		GeneratedAt: time.Now().UTC(),
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		report, err := po.balanceService.Balance(selection)
		if err != nil {
			return fmt.Errorf("failed to compute balance: %w", err)
		}
		result.Balance = report
		return nil
	})

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		report, err := po.scheduler.Schedule(selection, start)
		if err != nil {
			return fmt.Errorf("failed to schedule orders: %w", err)
		}
		result.Schedule = report
		result.Utilization = po.analyzer.Utilization(report.Entries)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

func (po *PlanningOrchestrator) observe(operation string, start time.Time) {
	po.observer.ObserveOperation(operation, time.Since(start))
}

