package purchasing

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vsinha/prodplan/pkg/application/dto"
	"github.com/vsinha/prodplan/pkg/application/services/balance"
	"github.com/vsinha/prodplan/pkg/domain/entities"
	"github.com/vsinha/prodplan/pkg/domain/services"
)

// Service raises purchase orders for the shortfalls of an order selection
type Service struct {
	balanceService *balance.Service
	pricer         services.PriceEstimator
}

// NewService creates a new purchasing service
func NewService(balanceService *balance.Service, pricer services.PriceEstimator) *Service {
	return &Service{
		balanceService: balanceService,
		pricer:         pricer,
	}
}

// Generate computes the selection's balance and prices every shortfall.
// The returned order has no lines when everything is covered.
func (s *Service) Generate(ids []entities.OrderID, now time.Time) (*entities.PurchaseOrder, error) {
	report, err := s.balanceService.Balance(ids)
	if err != nil {
		return nil, err
	}
	return BuildPurchaseOrder(report, s.pricer, now), nil
}

// BuildPurchaseOrder prices the purchase requirements of a balance report.
// Lines are sorted by material; costs are rounded to cents.
func BuildPurchaseOrder(report *dto.BalanceReport, pricer services.PriceEstimator, now time.Time) *entities.PurchaseOrder {
	po := &entities.PurchaseOrder{
		ID:          uuid.NewString(),
		GeneratedAt: now,
		Orders:      append([]entities.OrderID(nil), report.Orders...),
		Lines:       make([]entities.PurchaseOrderLine, 0, len(report.PurchaseRequirements)),
		Total:       decimal.Zero,
	}

	for _, material := range report.PurchaseRequirements.Materials() {
		qty := report.PurchaseRequirements.Get(material)
		price := pricer.UnitPrice(material)
		cost := price.Mul(decimal.NewFromFloat(qty)).Round(2)
		_, urgent := report.UrgentPurchase[material]

		po.Lines = append(po.Lines, entities.PurchaseOrderLine{
			Material:  material,
			Quantity:  qty,
			UnitPrice: price,
			Cost:      cost,
			Urgent:    urgent,
		})
		po.Total = po.Total.Add(cost)
		if urgent {
			po.UrgentCount++
		}
	}

	return po
}

// Text renders the purchase order as a plain-text document for export
func Text(po *entities.PurchaseOrder) string {
	p := message.NewPrinter(language.English)
	var b strings.Builder

	b.WriteString("MATERIAL PURCHASE REQUEST\n")
	fmt.Fprintf(&b, "Date: %s\n", po.GeneratedAt.Format("02.01.2006 15:04"))
	fmt.Fprintf(&b, "Orders: %s\n\n", joinOrders(po.Orders))

	for _, line := range po.Lines {
		fmt.Fprintf(&b, "• %s: %s × %s = %s\n",
			line.Material,
			p.Sprintf("%.2f", line.Quantity),
			formatMoney(line.UnitPrice),
			formatMoney(line.Cost),
		)
	}

	fmt.Fprintf(&b, "\nTOTAL COST: %s\n", formatMoney(po.Total))
	fmt.Fprintf(&b, "Urgent items: %d\n", po.UrgentCount)
	return b.String()
}

// formatMoney prints an amount with two decimals and comma-grouped thousands,
// straight from the decimal digits
func formatMoney(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	whole, frac := fixed, ""
	if dot := strings.IndexByte(fixed, '.'); dot >= 0 {
		whole, frac = fixed[:dot], fixed[dot:]
	}

	var b strings.Builder
	b.WriteString(sign)
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	b.WriteString(frac)
	return b.String()
}

// FileName is the export name of a purchase order generated at t
func FileName(t time.Time) string {
	return fmt.Sprintf("purchase_order_%s.txt", t.Format("20060102_1504"))
}

func joinOrders(ids []entities.OrderID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, ", ")
}
