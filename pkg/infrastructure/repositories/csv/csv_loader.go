package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vsinha/prodplan/pkg/domain/entities"
	"github.com/vsinha/prodplan/pkg/domain/repositories"
)

// File names expected inside a catalog directory
const (
	OrdersFile       = "orders.csv"
	RequirementsFile = "material_requirements.csv"
)

var ordersHeader = []string{"order_number", "customer", "product_type", "area", "value", "status", "priority"}

// Loader handles loading a planning catalog from a directory of CSV files
type Loader struct {
	defaultPriority int
}

// Verify interface compliance
var _ repositories.CatalogLoader = (*Loader)(nil)

// NewLoader creates a new CSV loader
func NewLoader(defaultPriority int) *Loader {
	return &Loader{defaultPriority: defaultPriority}
}

// Load reads orders.csv and material_requirements.csv from dir
func (l *Loader) Load(dir string) (*repositories.CatalogData, error) {
	orders, err := l.LoadOrders(filepath.Join(dir, OrdersFile))
	if err != nil {
		return nil, err
	}
	rows, stock, err := l.LoadRequirements(filepath.Join(dir, RequirementsFile))
	if err != nil {
		return nil, err
	}
	return &repositories.CatalogData{Orders: orders, Rows: rows, Stock: stock}, nil
}

func readAll(filename, what string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", what, filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", what, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%s CSV must have header and at least one data row", what)
	}
	return records, nil
}

// LoadOrders loads orders from a CSV file
func (l *Loader) LoadOrders(filename string) ([]*entities.Order, error) {
	records, err := readAll(filename, "orders")
	if err != nil {
		return nil, err
	}

	header := records[0]
	if !validateHeader(header, ordersHeader) {
		return nil, fmt.Errorf("orders CSV header mismatch. Expected: %v, Got: %v", ordersHeader, header)
	}

	var orders []*entities.Order
	for i, record := range records[1:] {
		if len(record) != len(ordersHeader) {
			return nil, fmt.Errorf("orders CSV row %d: expected %d columns, got %d", i+2, len(ordersHeader), len(record))
		}

		order, err := l.parseOrder(record)
		if err != nil {
			return nil, fmt.Errorf("orders CSV row %d: %w", i+2, err)
		}
		orders = append(orders, order)
	}

	return orders, nil
}

// LoadRequirements loads requirement rows and stock levels from a CSV file.
// The first two columns are material and stock; every further column is an
// order or order group.
func (l *Loader) LoadRequirements(filename string) ([]*entities.MaterialRequirementRow, entities.Quantities, error) {
	records, err := readAll(filename, "requirements")
	if err != nil {
		return nil, nil, err
	}

	header := records[0]
	if len(header) < 2 || !validateHeader(header[:2], []string{"material", "stock"}) {
		return nil, nil, fmt.Errorf("requirements CSV must start with material and stock columns, got %v", header)
	}

	var rows []*entities.MaterialRequirementRow
	stock := entities.Quantities{}
	for i, record := range records[1:] {
		if len(record) != len(header) {
			return nil, nil, fmt.Errorf("requirements CSV row %d: expected %d columns, got %d", i+2, len(header), len(record))
		}

		onHand, err := parseQuantity(record[1])
		if err != nil {
			return nil, nil, fmt.Errorf("requirements CSV row %d: invalid stock: %w", i+2, err)
		}

		columns := make(map[string]float64)
		for col := 2; col < len(header); col++ {
			qty, err := parseQuantity(record[col])
			if err != nil {
				return nil, nil, fmt.Errorf("requirements CSV row %d column %s: %w", i+2, header[col], err)
			}
			if qty != 0 {
				columns[header[col]] = qty
			}
		}

		row, err := entities.NewMaterialRequirementRow(record[0], columns)
		if err != nil {
			return nil, nil, fmt.Errorf("requirements CSV row %d: %w", i+2, err)
		}
		if onHand < 0 {
			return nil, nil, fmt.Errorf("requirements CSV row %d: stock for %s cannot be negative, got %.2f", i+2, row.Material, onHand)
		}
		rows = append(rows, row)
		stock[row.Material] = onHand
	}

	return rows, stock, nil
}

func (l *Loader) parseOrder(record []string) (*entities.Order, error) {
	area, err := strconv.ParseFloat(strings.TrimSpace(record[3]), 64)
	if err != nil || !entities.IsFinite(area) {
		return nil, fmt.Errorf("invalid area %q", record[3])
	}

	value := decimal.Zero
	if raw := strings.TrimSpace(record[4]); raw != "" {
		value, err = decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q", record[4])
		}
	}

	priority := l.defaultPriority
	if raw := strings.TrimSpace(record[6]); raw != "" {
		priority, err = strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid priority %q", record[6])
		}
	}

	return entities.NewOrder(
		entities.OrderID(record[0]),
		record[1],
		entities.ProductType(record[2]),
		area,
		value,
		record[5],
		priority,
	)
}

// parseQuantity reads a cell quantity; blank cells are zero
func parseQuantity(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	qty, err := strconv.ParseFloat(raw, 64)
	if err != nil || !entities.IsFinite(qty) {
		return 0, fmt.Errorf("invalid quantity %q", raw)
	}
	return qty, nil
}

// validateHeader compares column names case-insensitively
func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}

	return true
}
