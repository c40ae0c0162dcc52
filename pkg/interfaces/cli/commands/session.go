package commands

import (
	"fmt"
	"strings"

	"github.com/vsinha/prodplan/pkg/application/services/orchestration"
	"github.com/vsinha/prodplan/pkg/application/services/reservation"
	"github.com/vsinha/prodplan/pkg/application/services/scheduling"
	"github.com/vsinha/prodplan/pkg/infrastructure/config"
	"github.com/vsinha/prodplan/pkg/infrastructure/events"
	"github.com/vsinha/prodplan/pkg/infrastructure/logger"
	"github.com/vsinha/prodplan/pkg/infrastructure/metrics"
	"github.com/vsinha/prodplan/pkg/infrastructure/repositories/catalogfile"
	"github.com/vsinha/prodplan/pkg/infrastructure/repositories/xlsx"
)

// Session is one loaded catalog with its planning services, audit trail and
// metrics. The reservation ledger lives as long as the session.
type Session struct {
	Planner *orchestration.PlanningOrchestrator
	Events  *events.InMemoryEventStore
	Metrics *metrics.Metrics
}

// SchedulingConfig converts the planning settings, falling back to the
// built-in machines and operation tables when none are configured
func SchedulingConfig(cfg config.Config) (scheduling.Config, error) {
	sc := scheduling.DefaultConfig()
	sc.HoursPerDay = cfg.Planning.HoursPerDay
	sc.DefaultHoursPerSqm = cfg.Planning.DefaultHoursPerSqm

	machines, err := cfg.MachineCapacities()
	if err != nil {
		return sc, err
	}
	if machines != nil {
		sc.Machines = machines
	}

	table, err := cfg.OperationTable()
	if err != nil {
		return sc, err
	}
	if table != nil {
		sc.Operations = table
	}
	return sc, nil
}

// CatalogOptions converts the catalog settings for the file loaders
func CatalogOptions(cfg config.Config) catalogfile.Options {
	wb := xlsx.DefaultOptions()
	if cfg.Catalog.OrdersSheet != "" {
		wb.OrdersSheet = cfg.Catalog.OrdersSheet
	}
	if cfg.Catalog.RequirementsSheet != "" {
		wb.RequirementsSheet = cfg.Catalog.RequirementsSheet
	}
	wb.DefaultPriority = cfg.Catalog.DefaultPriority
	return catalogfile.Options{Workbook: wb, DefaultPriority: cfg.Catalog.DefaultPriority}
}

// OpenSession loads the configured catalog, validates it and wires the
// planning services over it
func OpenSession(cfg config.Config, log *logger.Logger) (*Session, error) {
	catalog, err := catalogfile.Open(cfg.Catalog.Path, CatalogOptions(cfg), log)
	if err != nil {
		return nil, err
	}

	orders, err := catalog.Orders.GetAllOrders()
	if err != nil {
		return nil, err
	}
	log.Debug("catalog loaded", "path", cfg.Catalog.Path, "orders", len(orders))

	sc, err := SchedulingConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid planning config: %w", err)
	}

	session := &Session{
		Events:  events.NewInMemoryEventStore(log, events.WithRetention(cfg.Reservation.AuditRetention)),
		Metrics: metrics.New(),
	}

	opts := orchestration.Options{
		Scheduling: sc,
		Pricer:     cfg.Pricer(),
		Observer:   session.Metrics,
		ReservationOptions: []reservation.Option{
			reservation.WithEventStore(session.Events),
			reservation.WithRecorder(session.Metrics),
			reservation.WithLogger(log),
			reservation.WithRejectRecommit(cfg.Reservation.RejectRecommit),
		},
	}
	session.Planner, err = orchestration.NewPlanningOrchestrator(catalog.Orders, catalog.Requirements, catalog.Stock, opts)
	if err != nil {
		return nil, err
	}

	validation, err := session.Planner.Catalog().Validate()
	if err != nil {
		return nil, err
	}
	if !validation.Valid() {
		return nil, fmt.Errorf("catalog validation failed: %s", strings.Join(validation.Errors, "; "))
	}
	for _, warning := range validation.Warnings {
		log.Warn("catalog warning", "path", cfg.Catalog.Path, "warning", warning)
	}

	return session, nil
}
