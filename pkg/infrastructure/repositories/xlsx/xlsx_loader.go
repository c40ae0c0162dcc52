package xlsx

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/vsinha/prodplan/pkg/domain/entities"
	"github.com/vsinha/prodplan/pkg/domain/repositories"
	"github.com/vsinha/prodplan/pkg/infrastructure/logger"
)

const (
	DefaultOrdersSheet       = "Orders"
	DefaultRequirementsSheet = "Material Requirements"
	DefaultPriority          = 10
)

// Sheet and header names of workbooks exported by the Russian-language shop
// planner are accepted alongside the English ones
var (
	ordersSheetAliases       = []string{"Заказы"}
	requirementsSheetAliases = []string{"Потребность материалов"}

	orderIDHeaders     = []string{"order number", "order", "id", "номер заказа", "номер"}
	customerHeaders    = []string{"customer", "client", "клиент"}
	productTypeHeaders = []string{"product type", "тип продукции"}
	areaHeaders        = []string{"area", "площадь заказа", "площадь"}
	valueHeaders       = []string{"value", "order value", "стоимость заказа", "стоимость"}
	statusHeaders      = []string{"status", "состояние заказа", "состояние"}
	priorityHeaders    = []string{"priority", "приоритет"}

	materialHeaders = []string{"material", "материал"}
	stockHeaders    = []string{"in stock", "stock", "на складе"}
)

// Options names the workbook sheets and the priority of orders without one
type Options struct {
	OrdersSheet       string
	RequirementsSheet string
	DefaultPriority   int
}

// DefaultOptions returns the standard sheet layout
func DefaultOptions() Options {
	return Options{
		OrdersSheet:       DefaultOrdersSheet,
		RequirementsSheet: DefaultRequirementsSheet,
		DefaultPriority:   DefaultPriority,
	}
}

// Loader reads a planning catalog from an .xlsx workbook
type Loader struct {
	opts Options
	log  *logger.Logger
}

// Verify interface compliance
var _ repositories.CatalogLoader = (*Loader)(nil)

// NewLoader creates a new workbook loader
func NewLoader(opts Options, log *logger.Logger) *Loader {
	if opts.OrdersSheet == "" {
		opts.OrdersSheet = DefaultOrdersSheet
	}
	if opts.RequirementsSheet == "" {
		opts.RequirementsSheet = DefaultRequirementsSheet
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Loader{opts: opts, log: log}
}

// Load opens the workbook at path and reads orders, requirements and stock
func (l *Loader) Load(path string) (*repositories.CatalogData, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return l.read(f)
}

// LoadReader reads a workbook from r
func (l *Loader) LoadReader(r io.Reader) (*repositories.CatalogData, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	return l.read(f)
}

func (l *Loader) read(f *excelize.File) (*repositories.CatalogData, error) {
	ordersSheet, err := findSheet(f, l.opts.OrdersSheet, ordersSheetAliases)
	if err != nil {
		return nil, err
	}
	requirementsSheet, err := findSheet(f, l.opts.RequirementsSheet, requirementsSheetAliases)
	if err != nil {
		return nil, err
	}

	orderRows, err := f.GetRows(ordersSheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", ordersSheet, err)
	}
	orders, err := l.parseOrders(ordersSheet, orderRows)
	if err != nil {
		return nil, err
	}

	requirementRows, err := f.GetRows(requirementsSheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", requirementsSheet, err)
	}
	rows, stock, err := l.parseRequirements(requirementsSheet, requirementRows)
	if err != nil {
		return nil, err
	}

	l.log.Debug("catalog workbook loaded",
		"orders", len(orders),
		"materials", len(rows),
	)
	return &repositories.CatalogData{Orders: orders, Rows: rows, Stock: stock}, nil
}

func (l *Loader) parseOrders(sheet string, records [][]string) ([]*entities.Order, error) {
	if len(records) < 1 {
		return nil, fmt.Errorf("sheet %s must have a header row", sheet)
	}

	header := indexHeader(records[0])
	idCol := header.find(orderIDHeaders)
	if idCol < 0 {
		return nil, fmt.Errorf("sheet %s: missing order number column", sheet)
	}
	customerCol := header.find(customerHeaders)
	productCol := header.find(productTypeHeaders)
	areaCol := header.find(areaHeaders)
	valueCol := header.find(valueHeaders)
	statusCol := header.find(statusHeaders)
	priorityCol := header.find(priorityHeaders)

	orders := make([]*entities.Order, 0, len(records)-1)
	for i, record := range records[1:] {
		rowNum := i + 2
		id := cell(record, idCol)
		if id == "" {
			continue
		}

		area, ok := parseNumber(cell(record, areaCol))
		if !ok {
			return nil, fmt.Errorf("sheet %s row %d: invalid area %q", sheet, rowNum, cell(record, areaCol))
		}

		value := decimal.Zero
		if raw := cell(record, valueCol); raw != "" {
			if parsed, err := decimal.NewFromString(normalizeNumber(raw)); err == nil {
				value = parsed
			} else {
				l.log.Debug("unparseable order value treated as zero", "sheet", sheet, "row", rowNum, "raw", raw)
			}
		}

		priority := l.opts.DefaultPriority
		if raw := cell(record, priorityCol); raw != "" {
			if parsed, ok := parseNumber(raw); ok && parsed >= math.MinInt32 && parsed <= math.MaxInt32 {
				priority = int(parsed)
			} else {
				l.log.Debug("unparseable priority replaced by default", "sheet", sheet, "row", rowNum, "raw", raw)
			}
		}

		order, err := entities.NewOrder(
			entities.OrderID(id),
			cell(record, customerCol),
			entities.ProductType(cell(record, productCol)),
			area,
			value,
			cell(record, statusCol),
			priority,
		)
		if err != nil {
			return nil, fmt.Errorf("sheet %s row %d: %w", sheet, rowNum, err)
		}
		orders = append(orders, order)
	}

	return orders, nil
}

func (l *Loader) parseRequirements(sheet string, records [][]string) ([]*entities.MaterialRequirementRow, entities.Quantities, error) {
	if len(records) < 1 {
		return nil, nil, fmt.Errorf("sheet %s must have a header row", sheet)
	}

	header := indexHeader(records[0])
	materialCol := header.find(materialHeaders)
	if materialCol < 0 {
		return nil, nil, fmt.Errorf("sheet %s: missing material column", sheet)
	}
	stockCol := header.find(stockHeaders)

	// every other titled column carries an order or an order group
	orderCols := make(map[int]string)
	for col, title := range records[0] {
		title = strings.TrimSpace(title)
		if col == materialCol || col == stockCol || title == "" {
			continue
		}
		orderCols[col] = title
	}

	rows := make([]*entities.MaterialRequirementRow, 0, len(records)-1)
	stock := entities.Quantities{}
	for i, record := range records[1:] {
		rowNum := i + 2
		material := cell(record, materialCol)
		if material == "" {
			continue
		}

		if stockCol >= 0 {
			raw := cell(record, stockCol)
			qty, ok := parseNumber(raw)
			if !ok {
				l.log.Debug("unparseable stock treated as zero", "sheet", sheet, "row", rowNum, "raw", raw)
			}
			stock[entities.Material(material)] = qty
		}

		columns := make(map[string]float64)
		for col, title := range orderCols {
			raw := cell(record, col)
			if raw == "" {
				continue
			}
			qty, ok := parseNumber(raw)
			if !ok || qty < 0 {
				l.log.Debug("requirement cell treated as zero",
					"sheet", sheet, "row", rowNum, "column", title, "raw", raw)
				continue
			}
			if qty > 0 {
				columns[title] += qty
			}
		}

		row, err := entities.NewMaterialRequirementRow(material, columns)
		if err != nil {
			return nil, nil, fmt.Errorf("sheet %s row %d: %w", sheet, rowNum, err)
		}
		rows = append(rows, row)
	}

	return rows, stock, nil
}

func findSheet(f *excelize.File, name string, aliases []string) (string, error) {
	candidates := append([]string{name}, aliases...)
	for _, sheet := range f.GetSheetList() {
		for _, candidate := range candidates {
			if strings.EqualFold(strings.TrimSpace(sheet), candidate) {
				return sheet, nil
			}
		}
	}
	return "", fmt.Errorf("workbook has no sheet named %s", name)
}

type headerIndex map[string]int

func indexHeader(titles []string) headerIndex {
	index := make(headerIndex, len(titles))
	for col, title := range titles {
		key := strings.ToLower(strings.TrimSpace(title))
		if _, exists := index[key]; !exists && key != "" {
			index[key] = col
		}
	}
	return index
}

// find returns the column of the first matching alias, or -1
func (h headerIndex) find(aliases []string) int {
	for _, alias := range aliases {
		if col, ok := h[alias]; ok {
			return col
		}
	}
	return -1
}

func cell(record []string, col int) string {
	if col < 0 || col >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[col])
}

// normalizeNumber strips grouping and accepts a decimal comma
func normalizeNumber(raw string) string {
	s := strings.NewReplacer(" ", "", "\u00a0", "").Replace(strings.TrimSpace(raw))
	if strings.Contains(s, ",") && strings.Contains(s, ".") {
		return strings.ReplaceAll(s, ",", "")
	}
	return strings.ReplaceAll(s, ",", ".")
}

// parseNumber returns zero and false for blank, non-numeric or non-finite text
func parseNumber(raw string) (float64, bool) {
	s := normalizeNumber(raw)
	if s == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(s, 64)
	if err != nil || !entities.IsFinite(value) {
		return 0, false
	}
	return value, true
}
