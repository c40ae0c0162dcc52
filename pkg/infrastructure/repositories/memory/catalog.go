package memory

import (
	"github.com/vsinha/prodplan/pkg/domain/repositories"
)

// Catalog bundles the in-memory repositories of one planning session
type Catalog struct {
	Orders       *OrderRepository
	Requirements *RequirementRepository
	Stock        *StockRepository
}

// NewCatalog loads catalog data into fresh in-memory repositories
func NewCatalog(data *repositories.CatalogData) (*Catalog, error) {
	catalog := &Catalog{
		Orders:       NewOrderRepository(len(data.Orders)),
		Requirements: NewRequirementRepository(len(data.Rows)),
		Stock:        NewStockRepository(),
	}

	if err := catalog.Orders.LoadOrders(data.Orders); err != nil {
		return nil, err
	}
	if err := catalog.Requirements.LoadRows(data.Rows); err != nil {
		return nil, err
	}
	if err := catalog.Stock.LoadStockLevels(data.Stock); err != nil {
		return nil, err
	}
	return catalog, nil
}
