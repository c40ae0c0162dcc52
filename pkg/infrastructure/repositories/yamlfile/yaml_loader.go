package yamlfile

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/vsinha/prodplan/pkg/domain/entities"
	"github.com/vsinha/prodplan/pkg/domain/repositories"
)

// catalogFile is the on-disk layout of a YAML catalog
type catalogFile struct {
	Orders       []orderRecord       `yaml:"orders"`
	Requirements []requirementRecord `yaml:"requirements"`
}

type orderRecord struct {
	ID          string  `yaml:"id"`
	Customer    string  `yaml:"customer"`
	ProductType string  `yaml:"product_type"`
	Area        float64 `yaml:"area"`
	Value       string  `yaml:"value"`
	Status      string  `yaml:"status"`
	Priority    *int    `yaml:"priority"`
}

type requirementRecord struct {
	Material string             `yaml:"material"`
	Stock    float64            `yaml:"stock"`
	Columns  map[string]float64 `yaml:"columns"`
}

// Loader reads a planning catalog from a YAML document
type Loader struct {
	defaultPriority int
}

// Verify interface compliance
var _ repositories.CatalogLoader = (*Loader)(nil)

// NewLoader creates a new YAML catalog loader
func NewLoader(defaultPriority int) *Loader {
	return &Loader{defaultPriority: defaultPriority}
}

// Load reads the catalog file at path
func (l *Loader) Load(path string) (*repositories.CatalogData, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file %s: %w", path, err)
	}
	defer file.Close()

	return l.LoadReader(file)
}

// LoadReader reads a catalog document from r
func (l *Loader) LoadReader(r io.Reader) (*repositories.CatalogData, error) {
	var doc catalogFile
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}

	data := &repositories.CatalogData{
		Orders: make([]*entities.Order, 0, len(doc.Orders)),
		Rows:   make([]*entities.MaterialRequirementRow, 0, len(doc.Requirements)),
		Stock:  entities.Quantities{},
	}

	for i, record := range doc.Orders {
		value := decimal.Zero
		if raw := strings.TrimSpace(record.Value); raw != "" {
			parsed, err := decimal.NewFromString(raw)
			if err != nil {
				return nil, fmt.Errorf("orders[%d]: invalid value %q", i, raw)
			}
			value = parsed
		}

		priority := l.defaultPriority
		if record.Priority != nil {
			priority = *record.Priority
		}

		order, err := entities.NewOrder(
			entities.OrderID(record.ID),
			record.Customer,
			entities.ProductType(record.ProductType),
			record.Area,
			value,
			record.Status,
			priority,
		)
		if err != nil {
			return nil, fmt.Errorf("orders[%d]: %w", i, err)
		}
		data.Orders = append(data.Orders, order)
	}

	for i, record := range doc.Requirements {
		row, err := entities.NewMaterialRequirementRow(record.Material, record.Columns)
		if err != nil {
			return nil, fmt.Errorf("requirements[%d]: %w", i, err)
		}
		if !entities.IsFinite(record.Stock) {
			return nil, fmt.Errorf("requirements[%d]: stock for %s must be finite, got %v", i, row.Material, record.Stock)
		}
		if record.Stock < 0 {
			return nil, fmt.Errorf("requirements[%d]: stock for %s cannot be negative, got %.2f", i, row.Material, record.Stock)
		}
		data.Rows = append(data.Rows, row)
		data.Stock[row.Material] = record.Stock
	}

	return data, nil
}
