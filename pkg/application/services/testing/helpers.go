package testing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vsinha/prodplan/pkg/domain/entities"
	"github.com/vsinha/prodplan/pkg/domain/repositories"
	"github.com/vsinha/prodplan/pkg/infrastructure/repositories/memory"
)

// Catalog bundles the in-memory repositories of one test planning session
type Catalog = memory.Catalog

// mustCreateOrder is a helper for tests - panics on validation error
func mustCreateOrder(
	id, customer, productType string,
	area float64,
	value int64,
	status string,
	priority int,
) *entities.Order {
	order, err := entities.NewOrder(
		entities.OrderID(id),
		customer,
		entities.ProductType(productType),
		area,
		decimal.NewFromInt(value),
		status,
		priority,
	)
	if err != nil {
		panic(err)
	}
	return order
}

// mustCreateRow is a helper for tests - panics on validation error
func mustCreateRow(material string, columns map[string]float64) *entities.MaterialRequirementRow {
	row, err := entities.NewMaterialRequirementRow(material, columns)
	if err != nil {
		panic(err)
	}
	return row
}

func buildCatalog(
	orders []*entities.Order,
	rows []*entities.MaterialRequirementRow,
	stock entities.Quantities,
) *Catalog {
	catalog, err := memory.NewCatalog(&repositories.CatalogData{
		Orders: orders,
		Rows:   rows,
		Stock:  stock,
	})
	if err != nil {
		panic(err)
	}
	return catalog
}

// BuildScenarioCatalog builds the single-order glass catalog: order 1001 needs
// 10 Glass, against the given stock levels
func BuildScenarioCatalog(stock entities.Quantities) *Catalog {
	orders := []*entities.Order{
		mustCreateOrder("1001", "Acme Glazing", "Window", 2, 120000, "new", 1),
	}
	rows := []*entities.MaterialRequirementRow{
		mustCreateRow("Glass", map[string]float64{"1001": 10}),
	}
	return buildCatalog(orders, rows, stock)
}

// BuildWindowOrders builds two Window orders: A (2 m², priority 2) and
// B (3 m², priority 1), listed in that catalog order
func BuildWindowOrders() *Catalog {
	orders := []*entities.Order{
		mustCreateOrder("A", "Acme Glazing", "Window", 2, 80000, "new", 2),
		mustCreateOrder("B", "Birch Homes", "Window", 3, 95000, "new", 1),
	}
	rows := []*entities.MaterialRequirementRow{
		mustCreateRow("Glass", map[string]float64{"A": 4, "B": 6}),
		mustCreateRow("Profile", map[string]float64{"A B": 12}),
	}
	stock := entities.Quantities{"Glass": 20, "Profile": 30}
	return buildCatalog(orders, rows, stock)
}

// BuildWorkshopCatalog builds a mixed catalog of windows, doors and a facade
// with a grouped requirement column and several customers
func BuildWorkshopCatalog() *Catalog {
	orders := []*entities.Order{
		mustCreateOrder("1001", "Acme Glazing", "Window", 2, 120000, "new", 2),
		mustCreateOrder("1002", "Birch Homes", "Door", 1.5, 90000, "in production", 1),
		mustCreateOrder("1003", "Acme Glazing", "Facade", 4, 450000, "new", 3),
		mustCreateOrder("1004", "Cedar Offices", "Skylight", 1, 60000, "on hold", 1),
	}
	rows := []*entities.MaterialRequirementRow{
		mustCreateRow("Glass 4mm", map[string]float64{"1001": 6, "1003": 20, "1004": 2}),
		mustCreateRow("PVC profile", map[string]float64{"1001": 12, "1002 1003": 8}),
		mustCreateRow("Argon", map[string]float64{"1001": 1, "1003": 3}),
		mustCreateRow("Sealant", map[string]float64{"1002": 2, "1003": 4}),
		mustCreateRow("Butyl tape", map[string]float64{"1001": 5}),
		mustCreateRow("Hinge", map[string]float64{"1002": 3}),
	}
	stock := entities.Quantities{
		"Glass 4mm":   10,
		"PVC profile": 40,
		"Argon":       2,
		"Sealant":     10,
		"Butyl tape":  0,
		"Hinge":       1,
		"Handle":      25,
	}
	return buildCatalog(orders, rows, stock)
}

// BuildLargeCatalog generates orderCount orders over materialCount materials.
// Every material row carries one column per order plus a grouped column for
// each consecutive pair, and stock covers roughly half of the demand.
func BuildLargeCatalog(orderCount, materialCount int) (*Catalog, []entities.OrderID) {
	productTypes := []string{"Window", "Door", "Facade"}

	orders := make([]*entities.Order, 0, orderCount)
	ids := make([]entities.OrderID, 0, orderCount)
	for i := 0; i < orderCount; i++ {
		id := fmt.Sprintf("%d", 10000+i)
		orders = append(orders, mustCreateOrder(
			id,
			fmt.Sprintf("Customer %d", i%25),
			productTypes[i%len(productTypes)],
			float64(1+i%5),
			int64(50000+1000*i),
			"new",
			i%7,
		))
		ids = append(ids, entities.OrderID(id))
	}

	rows := make([]*entities.MaterialRequirementRow, 0, materialCount)
	stock := make(entities.Quantities, materialCount)
	for m := 0; m < materialCount; m++ {
		columns := make(map[string]float64, orderCount+orderCount/2)
		demand := 0.0
		for i := 0; i < orderCount; i++ {
			qty := float64(1 + (i+m)%4)
			columns[string(ids[i])] = qty
			demand += qty
			if i%2 == 1 {
				columns[string(ids[i-1])+" "+string(ids[i])] = 1
				demand += 2
			}
		}
		material := fmt.Sprintf("Material %03d", m)
		rows = append(rows, mustCreateRow(material, columns))
		stock[entities.Material(material)] = demand / 2
	}

	return buildCatalog(orders, rows, stock), ids
}
