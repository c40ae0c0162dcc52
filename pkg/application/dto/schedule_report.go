package dto

import (
	"time"

	"github.com/vsinha/prodplan/pkg/domain/entities"
)

// ScheduleReport contains the production calendar for an order selection
type ScheduleReport struct {
	StartDate   time.Time                `json:"start_date" yaml:"start_date"`
	Entries     []entities.ScheduleEntry `json:"entries" yaml:"entries"`
	TotalOrders int                      `json:"total_orders" yaml:"total_orders"`
	TotalDays   int                      `json:"total_days" yaml:"total_days"`
	TotalHours  float64                  `json:"total_hours" yaml:"total_hours"`
}

// EndDate is the exclusive end of the last scheduled order
func (r *ScheduleReport) EndDate() time.Time {
	if len(r.Entries) == 0 {
		return r.StartDate
	}
	return r.Entries[len(r.Entries)-1].EndDate
}

// UtilizationReport lists machine load in configured machine order
type UtilizationReport struct {
	Machines []entities.MachineUtilization `json:"machines" yaml:"machines"`
}

// Machine returns the utilization of one machine
func (r *UtilizationReport) Machine(machine entities.Machine) (entities.MachineUtilization, bool) {
	for _, m := range r.Machines {
		if m.Machine == machine {
			return m, true
		}
	}
	return entities.MachineUtilization{}, false
}

// ByMachine returns the report keyed by machine name
func (r *UtilizationReport) ByMachine() map[entities.Machine]entities.MachineUtilization {
	out := make(map[entities.Machine]entities.MachineUtilization, len(r.Machines))
	for _, m := range r.Machines {
		out[m.Machine] = m
	}
	return out
}
