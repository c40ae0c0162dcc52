package dto

import "github.com/vsinha/prodplan/pkg/domain/entities"

// BalanceReport contains the material position of a candidate order selection
type BalanceReport struct {
	Orders               []entities.OrderID         `json:"orders" yaml:"orders"`
	MaterialRequirements entities.Quantities        `json:"material_requirements" yaml:"material_requirements"`
	MaterialBalance      []entities.MaterialBalance `json:"material_balance" yaml:"material_balance"`
	PurchaseRequirements entities.Quantities        `json:"purchase_requirements" yaml:"purchase_requirements"`
	UrgentPurchase       entities.Quantities        `json:"urgent_purchase" yaml:"urgent_purchase"`
}

// Balance returns the breakdown for one material and whether it is required
func (r *BalanceReport) Balance(material entities.Material) (entities.MaterialBalance, bool) {
	for _, b := range r.MaterialBalance {
		if b.Material == material {
			return b, true
		}
	}
	return entities.MaterialBalance{}, false
}

// PurchaseNeeded reports whether any material is short
func (r *BalanceReport) PurchaseNeeded() bool {
	return len(r.PurchaseRequirements) > 0
}
