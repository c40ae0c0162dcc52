package services

import (
	"fmt"
	"sort"

	"github.com/vsinha/prodplan/pkg/domain/entities"
)

// CatalogValidator checks a loaded catalog for structural problems before a
// planning session starts
type CatalogValidator struct{}

// NewCatalogValidator creates a new catalog validator
func NewCatalogValidator() *CatalogValidator {
	return &CatalogValidator{}
}

// ValidationResult contains the results of catalog validation. Errors make the
// catalog unusable; warnings describe data the engine tolerates.
type ValidationResult struct {
	DuplicateOrders    []entities.OrderID
	DuplicateMaterials []entities.Material
	UncoveredOrders    []entities.OrderID // orders no requirement column serves
	OrphanedColumns    []string           // columns serving no known order
	Errors             []string
	Warnings           []string
}

// Valid reports whether the catalog has no blocking errors
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// ValidateCatalog performs the full set of checks over orders and requirement rows
func (v *CatalogValidator) ValidateCatalog(
	orders []*entities.Order,
	rows []*entities.MaterialRequirementRow,
) *ValidationResult {
	result := &ValidationResult{
		DuplicateOrders:    v.detectDuplicateOrders(orders),
		DuplicateMaterials: v.detectDuplicateMaterials(rows),
		Errors:             make([]string, 0),
		Warnings:           make([]string, 0),
	}

	if len(result.DuplicateOrders) > 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("duplicate order ids: %v", result.DuplicateOrders))
	}
	if len(result.DuplicateMaterials) > 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("duplicate material rows: %v", result.DuplicateMaterials))
	}

	headers := v.collectHeaders(rows)
	result.UncoveredOrders = v.detectUncoveredOrders(orders, headers)
	result.OrphanedColumns = v.detectOrphanedColumns(orders, headers)

	if len(result.UncoveredOrders) > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%d orders have no requirement column and will require no materials: %v",
				len(result.UncoveredOrders), result.UncoveredOrders))
	}
	if len(result.OrphanedColumns) > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%d requirement columns match no order: %v",
				len(result.OrphanedColumns), result.OrphanedColumns))
	}

	return result
}

// detectDuplicateOrders finds order ids that appear more than once
func (v *CatalogValidator) detectDuplicateOrders(orders []*entities.Order) []entities.OrderID {
	seen := make(map[entities.OrderID]bool)
	duplicates := make([]entities.OrderID, 0)

	for _, order := range orders {
		if seen[order.ID] {
			duplicates = append(duplicates, order.ID)
		} else {
			seen[order.ID] = true
		}
	}

	return duplicates
}

// detectDuplicateMaterials finds material names with more than one row
func (v *CatalogValidator) detectDuplicateMaterials(rows []*entities.MaterialRequirementRow) []entities.Material {
	seen := make(map[entities.Material]bool)
	duplicates := make([]entities.Material, 0)

	for _, row := range rows {
		if seen[row.Material] {
			duplicates = append(duplicates, row.Material)
		} else {
			seen[row.Material] = true
		}
	}

	return duplicates
}

// collectHeaders returns the distinct column headers across all rows, sorted
func (v *CatalogValidator) collectHeaders(rows []*entities.MaterialRequirementRow) []string {
	unique := make(map[string]bool)
	for _, row := range rows {
		for header := range row.Columns {
			unique[header] = true
		}
	}

	headers := make([]string, 0, len(unique))
	for header := range unique {
		headers = append(headers, header)
	}
	sort.Strings(headers)
	return headers
}

func (v *CatalogValidator) detectUncoveredOrders(orders []*entities.Order, headers []string) []entities.OrderID {
	uncovered := make([]entities.OrderID, 0)
	for _, order := range orders {
		covered := false
		for _, header := range headers {
			if entities.ColumnMatchesOrder(header, order.ID) {
				covered = true
				break
			}
		}
		if !covered {
			uncovered = append(uncovered, order.ID)
		}
	}
	return uncovered
}

func (v *CatalogValidator) detectOrphanedColumns(orders []*entities.Order, headers []string) []string {
	orphaned := make([]string, 0)
	for _, header := range headers {
		used := false
		for _, order := range orders {
			if entities.ColumnMatchesOrder(header, order.ID) {
				used = true
				break
			}
		}
		if !used {
			orphaned = append(orphaned, header)
		}
	}
	return orphaned
}
