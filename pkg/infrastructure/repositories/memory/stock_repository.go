package memory

import (
	"fmt"

	"github.com/vsinha/prodplan/pkg/domain/entities"
	"github.com/vsinha/prodplan/pkg/domain/repositories"
)

// StockRepository provides in-memory on-hand quantities. Levels are loaded once
// per session and handed out as copies.
type StockRepository struct {
	levels entities.Quantities
}

// NewStockRepository creates a new in-memory stock repository
func NewStockRepository() *StockRepository {
	return &StockRepository{
		levels: entities.Quantities{},
	}
}

// Verify interface compliance
var _ repositories.StockRepository = (*StockRepository)(nil)

// LoadStockLevels merges stock levels into the repository
func (r *StockRepository) LoadStockLevels(levels entities.Quantities) error {
	for material, qty := range levels {
		if !entities.IsFinite(qty) {
			return fmt.Errorf("stock for %s must be finite, got %v", material, qty)
		}
		if qty < 0 {
			return fmt.Errorf("stock for %s cannot be negative, got %.2f", material, qty)
		}
		r.levels[material] = qty
	}
	return nil
}

// GetStockLevels returns a copy of all stock levels
func (r *StockRepository) GetStockLevels() (entities.Quantities, error) {
	return r.levels.Clone(), nil
}
