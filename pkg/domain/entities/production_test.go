package entities

import "testing"

func TestClassifyUtilization(t *testing.T) {
	tests := []struct {
		percent float64
		want    UtilizationBand
	}{
		{0, Underloaded},
		{69.9, Underloaded},
		{70, Optimal},
		{90, Optimal},
		{90.1, Overloaded},
		{100, Overloaded},
	}

	for _, tt := range tests {
		if got := ClassifyUtilization(tt.percent); got != tt.want {
			t.Errorf("ClassifyUtilization(%.1f) = %s, want %s", tt.percent, got, tt.want)
		}
	}
}

func TestOperationTable_Lookup(t *testing.T) {
	table := OperationTable{}
	table.Set("Window", "Cutting", 0.5)

	if hours, ok := table.Lookup("Window", "Cutting"); !ok || hours != 0.5 {
		t.Errorf("Expected Window/Cutting 0.5, got %.2f (ok=%v)", hours, ok)
	}
	if _, ok := table.Lookup("Window", "Painting"); ok {
		t.Error("Expected Window/Painting to be unconfigured")
	}
	if _, ok := table.Lookup("Door", "Cutting"); ok {
		t.Error("Expected Door to be unconfigured")
	}
}

func TestMachineCapacity_Validation(t *testing.T) {
	capacity, err := NewMachineCapacity(" Cutting ", 8)
	if err != nil {
		t.Fatalf("Expected valid machine creation to succeed: %v", err)
	}
	if capacity.Machine != "Cutting" {
		t.Errorf("Expected trimmed machine name, got %q", capacity.Machine)
	}

	if _, err := NewMachineCapacity("", 8); err == nil || err.Error() != "machine name cannot be empty" {
		t.Errorf("Expected empty name error, got %v", err)
	}
	if _, err := NewMachineCapacity("Cutting", -1); err == nil || err.Error() != "daily capacity cannot be negative, got -1.00" {
		t.Errorf("Expected negative capacity error, got %v", err)
	}
}
