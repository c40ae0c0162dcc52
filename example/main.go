package main

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/prodplan/pkg/application/services/orchestration"
	"github.com/vsinha/prodplan/pkg/application/services/purchasing"
	"github.com/vsinha/prodplan/pkg/domain/entities"
	"github.com/vsinha/prodplan/pkg/domain/repositories"
	"github.com/vsinha/prodplan/pkg/infrastructure/repositories/memory"
)

func main() {
	ctx := context.Background()

	// Build a small window workshop in memory
	catalog, err := memory.NewCatalog(workshopData())
	if err != nil {
		fmt.Printf("❌ Catalog failed: %v\n", err)
		return
	}

	planner, err := orchestration.NewPlanningOrchestrator(
		catalog.Orders,
		catalog.Requirements,
		catalog.Stock,
		orchestration.DefaultOptions(),
	)
	if err != nil {
		fmt.Printf("❌ Planner failed: %v\n", err)
		return
	}

	selection := []entities.OrderID{"W-17", "D-04"}
	start := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

	fmt.Printf("🏭 Planning orders %v from %s...\n\n", selection, start.Format("2006-01-02"))

	result, err := planner.Plan(ctx, selection, start)
	if err != nil {
		fmt.Printf("❌ Planning failed: %v\n", err)
		return
	}
	fmt.Println(result.GetSummary())
	fmt.Println()

	fmt.Println("📦 Material balance:")
	for _, b := range result.Balance.MaterialBalance {
		fmt.Printf("  %-14s required %6.2f of %6.2f available (remainder %6.2f)\n",
			b.Material, b.Required, b.Available, b.Remainder)
	}
	fmt.Println()

	fmt.Println("📅 Schedule:")
	for _, e := range result.Schedule.Entries {
		fmt.Printf("  %s %-8s %s -> %s  (%d days, %.1f h)\n",
			e.OrderID, e.ProductType,
			e.StartDate.Format("2006-01-02"), e.EndDate.Format("2006-01-02"),
			e.DurationDays, e.TotalHours)
	}
	fmt.Println()

	// Reserve the first order, then look at what is left for the second
	if _, err := planner.Reservations().Commit([]entities.OrderID{"W-17"}); err != nil {
		fmt.Printf("❌ Reservation failed: %v\n", err)
		return
	}
	remaining, err := planner.Balance([]entities.OrderID{"D-04"})
	if err != nil {
		fmt.Printf("❌ Balance failed: %v\n", err)
		return
	}
	fmt.Printf("🔒 W-17 reserved; D-04 still needs to purchase %d materials\n\n", len(remaining.PurchaseRequirements))

	po, err := planner.PurchaseOrder(selection, start)
	if err != nil {
		fmt.Printf("❌ Purchase order failed: %v\n", err)
		return
	}
	if po.Required() {
		fmt.Print(purchasing.Text(po))
	} else {
		fmt.Println("✅ No purchase needed")
	}
}

func workshopData() *repositories.CatalogData {
	window, _ := entities.NewOrder("W-17", "Lakeside Hotel", "Window", 3.2, decimal.NewFromInt(184000), "new", 2)
	door, _ := entities.NewOrder("D-04", "Lakeside Hotel", "Door", 2.1, decimal.NewFromInt(96000), "new", 1)

	glass, _ := entities.NewMaterialRequirementRow("Glass 6mm", map[string]float64{"W-17": 7, "D-04": 2})
	profile, _ := entities.NewMaterialRequirementRow("Aluminium profile", map[string]float64{"W-17 D-04": 14})
	sealant, _ := entities.NewMaterialRequirementRow("Sealant", map[string]float64{"W-17": 3, "D-04": 2})

	return &repositories.CatalogData{
		Orders: []*entities.Order{window, door},
		Rows:   []*entities.MaterialRequirementRow{glass, profile, sealant},
		Stock: entities.Quantities{
			"Glass 6mm":         8,
			"Aluminium profile": 40,
			"Sealant":           4,
		},
	}
}
