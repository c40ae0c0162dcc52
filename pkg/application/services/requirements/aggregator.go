package requirements

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vsinha/prodplan/pkg/domain/entities"
	"github.com/vsinha/prodplan/pkg/domain/repositories"
)

// Aggregator sums material requirements across a selection of orders
type Aggregator struct {
	requirementRepo repositories.RequirementRepository
}

// NewAggregator creates a new requirement aggregator
func NewAggregator(requirementRepo repositories.RequirementRepository) *Aggregator {
	return &Aggregator{requirementRepo: requirementRepo}
}

// NormalizeSelection trims, de-duplicates and sorts order ids. Blank ids are
// dropped; a selection left empty fails with ErrEmptySelection.
func NormalizeSelection(ids []entities.OrderID) ([]entities.OrderID, error) {
	seen := make(map[entities.OrderID]bool, len(ids))
	selection := make([]entities.OrderID, 0, len(ids))
	for _, id := range ids {
		id = entities.OrderID(strings.TrimSpace(string(id)))
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		selection = append(selection, id)
	}
	if len(selection) == 0 {
		return nil, entities.ErrEmptySelection
	}

	sort.Slice(selection, func(i, j int) bool {
		return selection[i] < selection[j]
	})
	return selection, nil
}

// Aggregate returns the total quantity of every material the selected orders
// require. Only materials with a strictly positive total are included; orders
// matched by no requirement column contribute nothing.
func (a *Aggregator) Aggregate(ids []entities.OrderID) (entities.Quantities, error) {
	selection, err := NormalizeSelection(ids)
	if err != nil {
		return nil, err
	}
	return a.aggregate(selection)
}

// aggregate sums over an already normalized selection
func (a *Aggregator) aggregate(selection []entities.OrderID) (entities.Quantities, error) {
	totals := entities.Quantities{}
	for _, id := range selection {
		perOrder, err := a.requirementRepo.RequirementsFor(id)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve requirements for order %s: %w", id, err)
		}
		for _, material := range perOrder.Materials() {
			totals.Add(material, perOrder.Get(material))
		}
	}

	for material, qty := range totals {
		if qty <= 0 {
			delete(totals, material)
		}
	}
	return totals, nil
}

// AggregateSelection is Aggregate for callers that already hold a
// normalized selection, such as the reservation ledger.
func (a *Aggregator) AggregateSelection(selection []entities.OrderID) (entities.Quantities, error) {
	if len(selection) == 0 {
		return entities.Quantities{}, nil
	}
	return a.aggregate(selection)
}
