package repositories

import "github.com/vsinha/prodplan/pkg/domain/entities"

// CatalogData is everything a Catalog Provider supplies for one session
type CatalogData struct {
	Orders []*entities.Order
	Rows   []*entities.MaterialRequirementRow
	Stock  entities.Quantities
}

// CatalogLoader reads catalog data from a file
type CatalogLoader interface {
	Load(path string) (*CatalogData, error)
}
