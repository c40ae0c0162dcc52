package entities

import "math"

// UrgentShortfallRatio is the fraction of current stock a shortfall must exceed
// before its purchase is flagged urgent
const UrgentShortfallRatio = 0.5

// MaterialBalance is the computed position of one material for a candidate
// order selection
type MaterialBalance struct {
	Material  Material `json:"material" yaml:"material"`
	Stock     float64  `json:"stock" yaml:"stock"`
	Reserved  float64  `json:"reserved" yaml:"reserved"`
	Available float64  `json:"available" yaml:"available"`
	Required  float64  `json:"required" yaml:"required"`
	Remainder float64  `json:"remainder" yaml:"remainder"`
}

// NewMaterialBalance nets stock against reservations and the required quantity
func NewMaterialBalance(material Material, stock, reserved, required float64) MaterialBalance {
	available := Available(stock, reserved)
	return MaterialBalance{
		Material:  material,
		Stock:     stock,
		Reserved:  reserved,
		Available: available,
		Required:  required,
		Remainder: available - required,
	}
}

// Shortfall returns the quantity that must be purchased, zero when covered
func (b MaterialBalance) Shortfall() float64 {
	if b.Remainder >= 0 {
		return 0
	}
	return math.Abs(b.Remainder)
}

// IsUrgent reports whether the shortfall exceeds half of current stock
func (b MaterialBalance) IsUrgent() bool {
	shortfall := b.Shortfall()
	return shortfall > 0 && shortfall > UrgentShortfallRatio*b.Stock
}
