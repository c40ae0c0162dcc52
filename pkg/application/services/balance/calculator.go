package balance

import (
	"github.com/vsinha/prodplan/pkg/application/dto"
	"github.com/vsinha/prodplan/pkg/domain/entities"
)

// Calculate nets stock and reservations against the required quantities. Only
// materials with a positive requirement appear in the report; a material with
// stock but no requirement is omitted. Calculate has no side effects.
func Calculate(
	orders []entities.OrderID,
	required entities.Quantities,
	stock entities.Quantities,
	reserved entities.Quantities,
) *dto.BalanceReport {
	report := &dto.BalanceReport{
		Orders:               append([]entities.OrderID(nil), orders...),
		MaterialRequirements: entities.Quantities{},
		MaterialBalance:      make([]entities.MaterialBalance, 0, len(required)),
		PurchaseRequirements: entities.Quantities{},
		UrgentPurchase:       entities.Quantities{},
	}

	for _, material := range required.Materials() {
		qty := required.Get(material)
		if qty <= 0 {
			continue
		}

		b := entities.NewMaterialBalance(material, stock.Get(material), reserved.Get(material), qty)
		report.MaterialRequirements[material] = qty
		report.MaterialBalance = append(report.MaterialBalance, b)

		if shortfall := b.Shortfall(); shortfall > 0 {
			report.PurchaseRequirements[material] = shortfall
			if b.IsUrgent() {
				report.UrgentPurchase[material] = shortfall
			}
		}
	}

	return report
}
