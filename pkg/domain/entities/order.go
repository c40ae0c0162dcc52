package entities

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// OrderID identifies a customer order within a planning session
type OrderID string

// ProductType names the kind of product an order produces (Window, Door, Facade, ...)
type ProductType string

// Order represents a customer order loaded from the catalog
type Order struct {
	ID          OrderID         `json:"id" yaml:"id"`
	Customer    string          `json:"customer" yaml:"customer"`
	ProductType ProductType     `json:"product_type" yaml:"product_type"`
	Area        float64         `json:"area" yaml:"area"`
	Value       decimal.Decimal `json:"value" yaml:"value"`
	Status      string          `json:"status" yaml:"status"`
	Priority    int             `json:"priority" yaml:"priority"`
}

// NewOrder creates a validated Order
func NewOrder(
	id OrderID,
	customer string,
	productType ProductType,
	area float64,
	value decimal.Decimal,
	status string,
	priority int,
) (*Order, error) {
	id = OrderID(strings.TrimSpace(string(id)))
	if id == "" {
		return nil, fmt.Errorf("order id cannot be empty")
	}
	if !IsFinite(area) {
		return nil, fmt.Errorf("area must be finite, got %v", area)
	}
	if area <= 0 {
		return nil, fmt.Errorf("area must be positive, got %.2f", area)
	}
	if value.IsNegative() {
		return nil, fmt.Errorf("value cannot be negative, got %s", value.StringFixed(2))
	}
	if priority < 0 {
		return nil, fmt.Errorf("priority cannot be negative, got %d", priority)
	}

	return &Order{
		ID:          id,
		Customer:    strings.TrimSpace(customer),
		ProductType: ProductType(strings.TrimSpace(string(productType))),
		Area:        area,
		Value:       value,
		Status:      strings.TrimSpace(status),
		Priority:    priority,
	}, nil
}

// Matches reports whether the order contains the search text in any of its
// descriptive fields. Matching is case-insensitive; an empty search matches all.
func (o *Order) Matches(search string) bool {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return true
	}
	for _, field := range []string{string(o.ID), o.Customer, string(o.ProductType), o.Status} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}
