package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
)

func TestLoad_Defaults(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if c.Catalog.OrdersSheet != "Orders" || c.Catalog.RequirementsSheet != "Material Requirements" {
		t.Errorf("Unexpected sheet defaults: %+v", c.Catalog)
	}
	if c.Catalog.DefaultPriority != 10 {
		t.Errorf("Expected default priority 10, got %d", c.Catalog.DefaultPriority)
	}
	if c.Planning.HoursPerDay != 8 || c.Planning.DefaultHoursPerSqm != 2 {
		t.Errorf("Unexpected planning defaults: %+v", c.Planning)
	}
	if c.HTTP.Addr != ":8080" || !c.Metrics.Enabled || c.Reservation.RejectRecommit || c.Reservation.AuditRetention != 0 {
		t.Errorf("Unexpected service defaults: http=%s metrics=%v reject=%v", c.HTTP.Addr, c.Metrics.Enabled, c.Reservation.RejectRecommit)
	}

	machines, err := c.MachineCapacities()
	if err != nil || machines != nil {
		t.Errorf("Expected no configured machines, got %v (%v)", machines, err)
	}
	if !c.Pricer().UnitPrice("Glass").Equal(decimal.NewFromInt(1500)) {
		t.Error("Expected built-in price list without configured rules")
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planner.yaml")
	doc := `
catalog:
  path: data/catalog.xlsx
planning:
  hours_per_day: 7.5
  machines:
    - name: CNC Router
      daily_capacity_hours: 16
  operation_times:
    - product_type: Window
      machine: CNC Router
      hours_per_sqm: 0.25
reservation:
  reject_recommit: true
  audit_retention: 500
pricing:
  default_price: 50
  rules:
    - keywords: [Hinge]
      price: 12.5
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if c.Catalog.Path != "data/catalog.xlsx" || c.Planning.HoursPerDay != 7.5 || !c.Reservation.RejectRecommit || c.Reservation.AuditRetention != 500 {
		t.Errorf("Unexpected config: %+v", c)
	}

	machines, err := c.MachineCapacities()
	if err != nil {
		t.Fatalf("MachineCapacities failed: %v", err)
	}
	if len(machines) != 1 || machines[0].Machine != "CNC Router" || machines[0].DailyHours != 16 {
		t.Errorf("Expected case-preserved machine, got %+v", machines)
	}

	table, err := c.OperationTable()
	if err != nil {
		t.Fatalf("OperationTable failed: %v", err)
	}
	if hours, ok := table.Lookup("Window", "CNC Router"); !ok || hours != 0.25 {
		t.Errorf("Expected Window/CNC Router 0.25, got %.2f (ok=%v)", hours, ok)
	}

	pricer := c.Pricer()
	if !pricer.UnitPrice("Door hinge").Equal(decimal.RequireFromString("12.5")) {
		t.Errorf("Expected configured hinge price, got %s", pricer.UnitPrice("Door hinge"))
	}
	if !pricer.UnitPrice("Glass").Equal(decimal.NewFromInt(50)) {
		t.Errorf("Expected configured fallback, got %s", pricer.UnitPrice("Glass"))
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("PLANNER_CATALOG_PATH", "/tmp/override.yaml")
	t.Setenv("PLANNER_HTTP_ADDR", ":9999")

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.Catalog.Path != "/tmp/override.yaml" || c.HTTP.Addr != ":9999" {
		t.Errorf("Expected env overrides, got path=%s addr=%s", c.Catalog.Path, c.HTTP.Addr)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected error for missing config file")
	}
}

func TestConfig_InvalidEntries(t *testing.T) {
	var c Config
	c.Planning.Machines = []MachineConfig{{Name: "", DailyCapacityHours: 8}}
	if _, err := c.MachineCapacities(); err == nil || err.Error() != "planning.machines[0]: machine name cannot be empty" {
		t.Errorf("Unexpected error: %v", err)
	}

	c.Planning.OperationTimes = []OperationTimeConfig{{ProductType: "Window"}}
	if _, err := c.OperationTable(); err == nil || err.Error() != "planning.operation_times[0]: product type and machine are required" {
		t.Errorf("Unexpected error: %v", err)
	}
}
