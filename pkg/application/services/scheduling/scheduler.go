package scheduling

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/vsinha/prodplan/pkg/application/dto"
	"github.com/vsinha/prodplan/pkg/application/services/requirements"
	"github.com/vsinha/prodplan/pkg/domain/entities"
	"github.com/vsinha/prodplan/pkg/domain/repositories"
)

// SetupDays is the changeover gap left between consecutive orders
const SetupDays = 1

// Scheduler lays selected orders out on a day-level production calendar.
// Orders run one after another in ascending priority; there is no search.
type Scheduler struct {
	orderRepo repositories.OrderRepository
	config    Config
}

// NewScheduler creates a new scheduler
func NewScheduler(orderRepo repositories.OrderRepository, config Config) (*Scheduler, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scheduling config: %w", err)
	}
	return &Scheduler{orderRepo: orderRepo, config: config}, nil
}

// Config returns the scheduler configuration
func (s *Scheduler) Config() Config {
	return s.config
}

// Schedule resolves the selected orders and lays them out from start. Ids that
// match no order are ignored; if none match, ErrNoMatchingOrders is returned.
func (s *Scheduler) Schedule(ids []entities.OrderID, start time.Time) (*dto.ScheduleReport, error) {
	orders, err := s.resolveOrders(ids)
	if err != nil {
		return nil, err
	}

	// Stable so that equal priorities keep catalog order
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].Priority < orders[j].Priority
	})

	startDate := NormalizeDate(start)
	report := &dto.ScheduleReport{
		StartDate: startDate,
		Entries:   make([]entities.ScheduleEntry, 0, len(orders)),
	}

	current := startDate
	for _, order := range orders {
		hours := s.ProductionHours(order)
		days := s.DurationDays(hours)
		end := current.AddDate(0, 0, days)

		report.Entries = append(report.Entries, entities.ScheduleEntry{
			OrderID:      order.ID,
			Customer:     order.Customer,
			ProductType:  order.ProductType,
			Area:         order.Area,
			Priority:     order.Priority,
			StartDate:    current,
			EndDate:      end,
			DurationDays: days,
			TotalHours:   hours,
		})
		report.TotalHours += hours

		current = end.AddDate(0, 0, SetupDays)
	}

	report.TotalOrders = len(report.Entries)
	report.TotalDays = DaysBetween(startDate, report.EndDate())
	return report, nil
}

// ProductionHours is the sum over the product type's operations of hours per
// square metre times area, or the flat fallback rate for unknown product types
func (s *Scheduler) ProductionHours(order *entities.Order) float64 {
	ops, ok := s.config.Operations[order.ProductType]
	if !ok {
		return s.config.DefaultHoursPerSqm * order.Area
	}

	machines := make([]entities.Machine, 0, len(ops))
	for machine := range ops {
		machines = append(machines, machine)
	}
	sort.Slice(machines, func(i, j int) bool {
		return machines[i] < machines[j]
	})

	total := 0.0
	for _, machine := range machines {
		total += ops[machine] * order.Area
	}
	return total
}

// DurationDays converts production hours into whole working days, rounding up
func (s *Scheduler) DurationDays(hours float64) int {
	if hours <= 0 {
		return 0
	}
	// tolerance keeps exact multiples of a working day from rounding up
	return int(math.Ceil(hours/s.config.HoursPerDay - 1e-9))
}

// resolveOrders returns the selected orders in catalog order
func (s *Scheduler) resolveOrders(ids []entities.OrderID) ([]*entities.Order, error) {
	selection, err := requirements.NormalizeSelection(ids)
	if err != nil {
		return nil, err
	}
	selected := make(map[entities.OrderID]bool, len(selection))
	for _, id := range selection {
		selected[id] = true
	}

	all, err := s.orderRepo.GetAllOrders()
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}

	orders := make([]*entities.Order, 0, len(selection))
	for _, order := range all {
		if selected[order.ID] {
			orders = append(orders, order)
		}
	}
	if len(orders) == 0 {
		return nil, entities.ErrNoMatchingOrders
	}
	return orders, nil
}

// NormalizeDate truncates a time to midnight UTC of its calendar date
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts whole calendar days from a to b
func DaysBetween(a, b time.Time) int {
	return int(math.Round(NormalizeDate(b).Sub(NormalizeDate(a)).Hours() / 24))
}
