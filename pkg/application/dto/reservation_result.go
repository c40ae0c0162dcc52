package dto

import (
	"fmt"
	"time"

	"github.com/vsinha/prodplan/pkg/domain/entities"
)

// ReservationResult describes the effect of one commit or release
type ReservationResult struct {
	Operation string              `json:"operation" yaml:"operation"`
	Orders    []entities.OrderID  `json:"orders" yaml:"orders"`
	Skipped   []entities.OrderID  `json:"skipped,omitempty" yaml:"skipped,omitempty"` // already committed
	Deltas    entities.Quantities `json:"deltas" yaml:"deltas"`
	Reserved  entities.Quantities `json:"reserved" yaml:"reserved"`
}

// LedgerSnapshot is a point-in-time copy of the reservation ledger
type LedgerSnapshot struct {
	Reserved  entities.Quantities `json:"reserved" yaml:"reserved"`
	Committed []entities.OrderID  `json:"committed_orders" yaml:"committed_orders"`
}

// PlanResult combines the balance, schedule and utilization of one selection
type PlanResult struct {
	Orders      []entities.OrderID `json:"orders" yaml:"orders"`
	GeneratedAt time.Time          `json:"generated_at" yaml:"generated_at"`
	Balance     *BalanceReport     `json:"balance" yaml:"balance"`
	Schedule    *ScheduleReport    `json:"schedule" yaml:"schedule"`
	Utilization *UtilizationReport `json:"utilization" yaml:"utilization"`
}

// GetSummary returns a short multi-line summary of the plan
func (r *PlanResult) GetSummary() string {
	summary := fmt.Sprintf("Planning Summary (%d orders):\n", len(r.Orders))
	if r.Balance != nil {
		summary += fmt.Sprintf("  Materials: %d required, %d to purchase, %d urgent\n",
			len(r.Balance.MaterialBalance),
			len(r.Balance.PurchaseRequirements),
			len(r.Balance.UrgentPurchase))
	}
	if r.Schedule != nil {
		summary += fmt.Sprintf("  Schedule: %d orders over %d days, %.1f production hours",
			r.Schedule.TotalOrders,
			r.Schedule.TotalDays,
			r.Schedule.TotalHours)
	}
	return summary
}
