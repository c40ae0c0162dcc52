package repositories

import "github.com/vsinha/prodplan/pkg/domain/entities"

// RequirementRepository provides access to the material requirement table
type RequirementRepository interface {
	// RequirementsFor resolves the order against the table's column headers and
	// returns its per-material quantities. An order served by no column yields
	// an empty result, not an error.
	RequirementsFor(id entities.OrderID) (entities.Quantities, error)
	GetAllRows() ([]*entities.MaterialRequirementRow, error)
	LoadRows(rows []*entities.MaterialRequirementRow) error
}
