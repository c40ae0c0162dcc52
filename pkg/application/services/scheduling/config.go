package scheduling

import (
	"fmt"

	"github.com/vsinha/prodplan/pkg/domain/entities"
)

const (
	DefaultHoursPerDay         = 8.0
	DefaultFallbackHoursPerSqm = 2.0
)

// Config holds the shop calendar, machine park and operation-time tables
type Config struct {
	HoursPerDay        float64
	DefaultHoursPerSqm float64 // for product types without an operation table
	Machines           []entities.MachineCapacity
	Operations         entities.OperationTable
}

// DefaultConfig returns the built-in shop: five machines and operation times
// for windows, doors and facades
func DefaultConfig() Config {
	return Config{
		HoursPerDay:        DefaultHoursPerDay,
		DefaultHoursPerSqm: DefaultFallbackHoursPerSqm,
		Machines:           DefaultMachines(),
		Operations:         DefaultOperations(),
	}
}

// DefaultMachines returns the daily capacity of the built-in machine park
func DefaultMachines() []entities.MachineCapacity {
	return []entities.MachineCapacity{
		{Machine: "Cutting", DailyHours: 8},
		{Machine: "Welding", DailyHours: 10},
		{Machine: "Assembly", DailyHours: 12},
		{Machine: "Painting", DailyHours: 8},
		{Machine: "Packing", DailyHours: 10},
	}
}

// DefaultOperations returns hours per square metre by product type and machine
func DefaultOperations() entities.OperationTable {
	table := entities.OperationTable{}
	defaults := []struct {
		product entities.ProductType
		hours   [5]float64 // Cutting, Welding, Assembly, Painting, Packing
	}{
		{"Window", [5]float64{0.5, 0.8, 1.2, 0.6, 0.3}},
		{"Door", [5]float64{0.7, 1.0, 1.5, 0.8, 0.4}},
		{"Facade", [5]float64{1.0, 1.5, 2.0, 1.0, 0.5}},
	}
	machines := DefaultMachines()
	for _, d := range defaults {
		for i, hours := range d.hours {
			table.Set(d.product, machines[i].Machine, hours)
		}
	}
	return table
}

// Validate checks the configuration for values the scheduler cannot work with
func (c Config) Validate() error {
	if c.HoursPerDay <= 0 {
		return fmt.Errorf("hours per day must be positive, got %.2f", c.HoursPerDay)
	}
	if c.DefaultHoursPerSqm < 0 {
		return fmt.Errorf("default hours per square metre cannot be negative, got %.2f", c.DefaultHoursPerSqm)
	}

	seen := make(map[entities.Machine]bool, len(c.Machines))
	for _, m := range c.Machines {
		if m.Machine == "" {
			return fmt.Errorf("machine name cannot be empty")
		}
		if seen[m.Machine] {
			return fmt.Errorf("duplicate machine: %s", m.Machine)
		}
		if m.DailyHours < 0 {
			return fmt.Errorf("machine %s: daily capacity cannot be negative, got %.2f", m.Machine, m.DailyHours)
		}
		seen[m.Machine] = true
	}

	for product, ops := range c.Operations {
		for machine, hours := range ops {
			if hours < 0 {
				return fmt.Errorf("operation %s/%s: hours per square metre cannot be negative, got %.2f", product, machine, hours)
			}
		}
	}
	return nil
}
