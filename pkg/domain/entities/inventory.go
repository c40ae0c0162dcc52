package entities

import "math"

// StockStatus summarises a material's warehouse position
type StockStatus int

const (
	InStock StockStatus = iota
	OutOfStock
	Reserved
)

// String method for StockStatus enum
func (s StockStatus) String() string {
	switch s {
	case InStock:
		return "in stock"
	case OutOfStock:
		return "out of stock"
	case Reserved:
		return "reserved"
	default:
		return "unknown"
	}
}

// MarshalText renders the status by name in JSON and YAML output
func (s StockStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// StockLine is one row of the stock overview
type StockLine struct {
	Material  Material    `json:"material" yaml:"material"`
	Stock     float64     `json:"stock" yaml:"stock"`
	Reserved  float64     `json:"reserved" yaml:"reserved"`
	Available float64     `json:"available" yaml:"available"`
	Status    StockStatus `json:"status" yaml:"status"`
}

// NewStockLine derives availability and status from stock and reserved quantities
func NewStockLine(material Material, stock, reserved float64) StockLine {
	available := Available(stock, reserved)

	status := OutOfStock
	switch {
	case reserved > 0:
		status = Reserved
	case available > 0:
		status = InStock
	}

	return StockLine{
		Material:  material,
		Stock:     stock,
		Reserved:  reserved,
		Available: available,
		Status:    status,
	}
}

// Available is stock net of reservations, never below zero
func Available(stock, reserved float64) float64 {
	return math.Max(0, stock-reserved)
}
