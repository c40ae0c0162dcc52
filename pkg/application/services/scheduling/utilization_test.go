package scheduling

import (
	"math"
	"testing"

	testhelpers "github.com/vsinha/prodplan/pkg/application/services/testing"
	"github.com/vsinha/prodplan/pkg/domain/entities"
)

func TestAnalyzer_Utilization(t *testing.T) {
	scheduler := newTestScheduler(t, testhelpers.BuildWindowOrders())
	report, err := scheduler.Schedule([]entities.OrderID{"A", "B"}, d0)
	if err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}

	utilization := NewAnalyzer(DefaultConfig()).Utilization(report.Entries)
	if len(utilization.Machines) != 5 {
		t.Fatalf("Expected 5 machines, got %d", len(utilization.Machines))
	}
	if utilization.Machines[0].Machine != "Cutting" || utilization.Machines[4].Machine != "Packing" {
		t.Errorf("Expected configured machine order, got %v", utilization.Machines)
	}

	tests := []struct {
		machine  entities.Machine
		workload float64
		capacity float64
		percent  float64
	}{
		{"Cutting", 2.5, 16, 15.625},
		{"Welding", 4, 20, 20},
		{"Assembly", 6, 24, 25},
		{"Painting", 3, 16, 18.75},
		{"Packing", 1.5, 20, 7.5},
	}
	for _, tt := range tests {
		m, ok := utilization.Machine(tt.machine)
		if !ok {
			t.Fatalf("Missing machine %s", tt.machine)
		}
		if math.Abs(m.WorkloadHours-tt.workload) > 1e-9 || m.CapacityHours != tt.capacity || math.Abs(m.Percent-tt.percent) > 1e-9 {
			t.Errorf("%s: got workload %.4f capacity %.2f percent %.4f", tt.machine, m.WorkloadHours, m.CapacityHours, m.Percent)
		}
		if m.Band != entities.Underloaded {
			t.Errorf("%s: expected underloaded, got %s", tt.machine, m.Band)
		}
	}
}

func TestAnalyzer_CapsAtHundredPercent(t *testing.T) {
	entries := []entities.ScheduleEntry{{OrderID: "BIG", ProductType: "Facade", Area: 50}}

	utilization := NewAnalyzer(DefaultConfig()).Utilization(entries)
	m, _ := utilization.Machine("Assembly")
	if m.WorkloadHours != 100 {
		t.Errorf("Expected 100 h assembly workload, got %.2f", m.WorkloadHours)
	}
	if m.Percent != 100 || m.Band != entities.Overloaded {
		t.Errorf("Expected capped 100%% overloaded, got %.2f %s", m.Percent, m.Band)
	}
}

func TestAnalyzer_EmptyScheduleAndUnknownProducts(t *testing.T) {
	analyzer := NewAnalyzer(DefaultConfig())

	for _, m := range analyzer.Utilization(nil).Machines {
		if m.CapacityHours != 0 || m.Percent != 0 {
			t.Errorf("%s: expected zero capacity and percent for empty schedule, got %+v", m.Machine, m)
		}
	}

	unknown := []entities.ScheduleEntry{{OrderID: "S", ProductType: "Skylight", Area: 3}}
	for _, m := range analyzer.Utilization(unknown).Machines {
		if m.WorkloadHours != 0 {
			t.Errorf("%s: expected no workload from an unconfigured product, got %.2f", m.Machine, m.WorkloadHours)
		}
		if m.CapacityHours == 0 {
			t.Errorf("%s: expected capacity to count the scheduled order", m.Machine)
		}
	}
}
