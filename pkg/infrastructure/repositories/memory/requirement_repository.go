package memory

import (
	"fmt"

	"github.com/vsinha/prodplan/pkg/domain/entities"
	"github.com/vsinha/prodplan/pkg/domain/repositories"
)

// RequirementRepository provides in-memory storage of the material requirement table
type RequirementRepository struct {
	rows      []entities.MaterialRequirementRow
	materials map[entities.Material]int
}

// NewRequirementRepository creates a new in-memory requirement repository
func NewRequirementRepository(expectedRows int) *RequirementRepository {
	return &RequirementRepository{
		rows:      make([]entities.MaterialRequirementRow, 0, expectedRows),
		materials: make(map[entities.Material]int, expectedRows),
	}
}

// Verify interface compliance
var _ repositories.RequirementRepository = (*RequirementRepository)(nil)

// LoadRows loads requirement rows into the repository
func (r *RequirementRepository) LoadRows(rows []*entities.MaterialRequirementRow) error {
	for _, row := range rows {
		if err := r.AddRow(*row); err != nil {
			return err
		}
	}
	return nil
}

// AddRow adds one material row to the table
func (r *RequirementRepository) AddRow(row entities.MaterialRequirementRow) error {
	if _, exists := r.materials[row.Material]; exists {
		return fmt.Errorf("duplicate material row: %s", row.Material)
	}
	r.materials[row.Material] = len(r.rows)
	r.rows = append(r.rows, row)
	return nil
}

// RequirementsFor returns the per-material quantities of every column serving the order
func (r *RequirementRepository) RequirementsFor(id entities.OrderID) (entities.Quantities, error) {
	requirements := entities.Quantities{}
	for i := range r.rows {
		if qty := r.rows[i].RequirementFor(id); qty > 0 {
			requirements.Add(r.rows[i].Material, qty)
		}
	}
	return requirements, nil
}

// GetAllRows returns all rows in table order
func (r *RequirementRepository) GetAllRows() ([]*entities.MaterialRequirementRow, error) {
	rows := make([]*entities.MaterialRequirementRow, 0, len(r.rows))
	for i := range r.rows {
		rows = append(rows, &r.rows[i])
	}
	return rows, nil
}
