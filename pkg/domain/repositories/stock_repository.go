package repositories

import "github.com/vsinha/prodplan/pkg/domain/entities"

// StockRepository provides read access to on-hand warehouse quantities
type StockRepository interface {
	GetStockLevels() (entities.Quantities, error)
	LoadStockLevels(levels entities.Quantities) error
}
