package entities

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Material identifies a material by its trimmed, case-preserved name
type Material string

// Quantities maps materials to non-negative amounts. A material without an
// entry has quantity zero; use Get rather than indexing when reading.
type Quantities map[Material]float64

// Get returns the quantity for a material, or zero when absent
func (q Quantities) Get(material Material) float64 {
	if q == nil {
		return 0
	}
	return q[material]
}

// Add accumulates qty onto the material's entry, creating it if absent
func (q Quantities) Add(material Material, qty float64) {
	q[material] = q.Get(material) + qty
}

// Materials returns the materials present, sorted by name
func (q Quantities) Materials() []Material {
	materials := make([]Material, 0, len(q))
	for material := range q {
		materials = append(materials, material)
	}
	sort.Slice(materials, func(i, j int) bool {
		return materials[i] < materials[j]
	})
	return materials
}

// Clone returns an independent copy
func (q Quantities) Clone() Quantities {
	out := make(Quantities, len(q))
	for material, qty := range q {
		out[material] = qty
	}
	return out
}

// MaterialRequirementRow is one row of the requirement table: the quantity of a
// material required by each order column. A column header is either a single
// order id or a whitespace-separated group of ids sharing the column.
type MaterialRequirementRow struct {
	Material Material           `json:"material" yaml:"material"`
	Columns  map[string]float64 `json:"columns" yaml:"columns"`
}

// IsFinite reports whether v is neither NaN nor an infinity
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// NewMaterialRequirementRow creates a validated MaterialRequirementRow
func NewMaterialRequirementRow(material string, columns map[string]float64) (*MaterialRequirementRow, error) {
	name := strings.TrimSpace(material)
	if name == "" {
		return nil, fmt.Errorf("material name cannot be empty")
	}

	cleaned := make(map[string]float64, len(columns))
	for header, qty := range columns {
		header = strings.TrimSpace(header)
		if header == "" {
			return nil, fmt.Errorf("material %s: column header cannot be empty", name)
		}
		if !IsFinite(qty) {
			return nil, fmt.Errorf("material %s: quantity for column %s must be finite, got %v", name, header, qty)
		}
		if qty < 0 {
			return nil, fmt.Errorf("material %s: quantity for column %s cannot be negative, got %.2f", name, header, qty)
		}
		cleaned[header] += qty
	}

	return &MaterialRequirementRow{
		Material: Material(name),
		Columns:  cleaned,
	}, nil
}

// ColumnMatchesOrder reports whether a requirement-table column header serves
// the given order: either the header equals the id or the id is one of the
// header's whitespace-delimited tokens.
func ColumnMatchesOrder(header string, id OrderID) bool {
	target := strings.TrimSpace(string(id))
	if target == "" {
		return false
	}
	header = strings.TrimSpace(header)
	if header == target {
		return true
	}
	for _, token := range strings.Fields(header) {
		if token == target {
			return true
		}
	}
	return false
}

// RequirementFor sums this row's quantities across every column serving the order
func (r *MaterialRequirementRow) RequirementFor(id OrderID) float64 {
	total := 0.0
	for header, qty := range r.Columns {
		if ColumnMatchesOrder(header, id) {
			total += qty
		}
	}
	return total
}
