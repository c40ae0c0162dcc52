package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrderLine is one material to buy, priced by the pricing oracle
type PurchaseOrderLine struct {
	Material  Material        `json:"material" yaml:"material"`
	Quantity  float64         `json:"quantity" yaml:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price" yaml:"unit_price"`
	Cost      decimal.Decimal `json:"cost" yaml:"cost"`
	Urgent    bool            `json:"urgent" yaml:"urgent"`
}

// PurchaseOrder is the purchase requisition raised for an order selection
type PurchaseOrder struct {
	ID          string              `json:"id" yaml:"id"`
	GeneratedAt time.Time           `json:"generated_at" yaml:"generated_at"`
	Orders      []OrderID           `json:"orders" yaml:"orders"`
	Lines       []PurchaseOrderLine `json:"lines" yaml:"lines"`
	Total       decimal.Decimal     `json:"total" yaml:"total"`
	UrgentCount int                 `json:"urgent_count" yaml:"urgent_count"`
}

// Required reports whether anything has to be bought
func (po *PurchaseOrder) Required() bool {
	return len(po.Lines) > 0
}
