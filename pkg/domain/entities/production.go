package entities

import (
	"fmt"
	"strings"
	"time"
)

// Machine names a production work centre (Cutting, Welding, ...)
type Machine string

// MachineCapacity is the number of productive hours a machine offers per day
type MachineCapacity struct {
	Machine    Machine `json:"machine" yaml:"machine"`
	DailyHours float64 `json:"daily_hours" yaml:"daily_hours"`
}

// NewMachineCapacity creates a validated MachineCapacity
func NewMachineCapacity(machine string, dailyHours float64) (*MachineCapacity, error) {
	name := strings.TrimSpace(machine)
	if name == "" {
		return nil, fmt.Errorf("machine name cannot be empty")
	}
	if dailyHours < 0 {
		return nil, fmt.Errorf("daily capacity cannot be negative, got %.2f", dailyHours)
	}
	return &MachineCapacity{Machine: Machine(name), DailyHours: dailyHours}, nil
}

// OperationTable holds, per product type, the hours per square metre each
// machine spends on that product
type OperationTable map[ProductType]map[Machine]float64

// Set records the hours per square metre for a product type on a machine
func (t OperationTable) Set(productType ProductType, machine Machine, hoursPerSqm float64) {
	if t[productType] == nil {
		t[productType] = make(map[Machine]float64)
	}
	t[productType][machine] = hoursPerSqm
}

// Lookup returns the hours per square metre and whether the pair is configured
func (t OperationTable) Lookup(productType ProductType, machine Machine) (float64, bool) {
	ops, ok := t[productType]
	if !ok {
		return 0, false
	}
	hours, ok := ops[machine]
	return hours, ok
}

// ScheduleEntry is one order laid out on the production calendar. EndDate is
// exclusive: the order occupies [StartDate, EndDate).
type ScheduleEntry struct {
	OrderID      OrderID     `json:"order_id" yaml:"order_id"`
	Customer     string      `json:"customer" yaml:"customer"`
	ProductType  ProductType `json:"product_type" yaml:"product_type"`
	Area         float64     `json:"area" yaml:"area"`
	Priority     int         `json:"priority" yaml:"priority"`
	StartDate    time.Time   `json:"start_date" yaml:"start_date"`
	EndDate      time.Time   `json:"end_date" yaml:"end_date"`
	DurationDays int         `json:"duration_days" yaml:"duration_days"`
	TotalHours   float64     `json:"total_hours" yaml:"total_hours"`
}

// UtilizationBand is an advisory classification of machine load
type UtilizationBand int

const (
	Underloaded UtilizationBand = iota
	Optimal
	Overloaded
)

// String method for UtilizationBand enum
func (b UtilizationBand) String() string {
	switch b {
	case Underloaded:
		return "underloaded"
	case Optimal:
		return "optimal"
	case Overloaded:
		return "overloaded"
	default:
		return "unknown"
	}
}

// MarshalText renders the band by name in JSON and YAML output
func (b UtilizationBand) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// ClassifyUtilization maps a percentage onto its band: 70-90 optimal, above 90
// overloaded, below 70 underloaded
func ClassifyUtilization(percent float64) UtilizationBand {
	switch {
	case percent > 90:
		return Overloaded
	case percent >= 70:
		return Optimal
	default:
		return Underloaded
	}
}

// MachineUtilization is the estimated load of one machine over a schedule
type MachineUtilization struct {
	Machine       Machine         `json:"machine" yaml:"machine"`
	WorkloadHours float64         `json:"workload_hours" yaml:"workload_hours"`
	CapacityHours float64         `json:"capacity_hours" yaml:"capacity_hours"`
	Percent       float64         `json:"utilization_percent" yaml:"utilization_percent"`
	Band          UtilizationBand `json:"band" yaml:"band"`
}
