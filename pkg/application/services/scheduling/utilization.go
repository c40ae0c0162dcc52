package scheduling

import (
	"math"

	"github.com/vsinha/prodplan/pkg/application/dto"
	"github.com/vsinha/prodplan/pkg/domain/entities"
)

// Analyzer estimates machine load over a computed schedule
type Analyzer struct {
	config Config
}

// NewAnalyzer creates a new utilization analyzer
func NewAnalyzer(config Config) *Analyzer {
	return &Analyzer{config: config}
}

// Utilization accumulates each configured machine's workload across the
// schedule. Capacity is the machine's daily hours times the number of
// scheduled orders, a proxy for the horizon rather than calendar days.
func (a *Analyzer) Utilization(entries []entities.ScheduleEntry) *dto.UtilizationReport {
	report := &dto.UtilizationReport{
		Machines: make([]entities.MachineUtilization, 0, len(a.config.Machines)),
	}

	for _, machine := range a.config.Machines {
		workload := 0.0
		for _, entry := range entries {
			if hours, ok := a.config.Operations.Lookup(entry.ProductType, machine.Machine); ok {
				workload += hours * entry.Area
			}
		}

		capacity := machine.DailyHours * float64(len(entries))
		percent := 0.0
		if capacity > 0 {
			percent = math.Min(100, workload/capacity*100)
		}

		report.Machines = append(report.Machines, entities.MachineUtilization{
			Machine:       machine.Machine,
			WorkloadHours: workload,
			CapacityHours: capacity,
			Percent:       percent,
			Band:          entities.ClassifyUtilization(percent),
		})
	}

	return report
}
