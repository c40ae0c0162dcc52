package services

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vsinha/prodplan/pkg/domain/entities"
)

// PriceEstimator returns the estimated unit price of a material
type PriceEstimator interface {
	UnitPrice(material entities.Material) decimal.Decimal
}

// PriceRule prices every material whose name contains one of the keywords
type PriceRule struct {
	Keywords []string
	Price    decimal.Decimal
}

// KeywordPricer estimates prices by matching material names against keyword
// rules. Rules are tried in order; the first match wins.
type KeywordPricer struct {
	rules    []PriceRule
	fallback decimal.Decimal
}

// Verify interface compliance
var _ PriceEstimator = (*KeywordPricer)(nil)

// NewKeywordPricer creates a pricer from rules and a price for unmatched materials
func NewKeywordPricer(rules []PriceRule, fallback decimal.Decimal) *KeywordPricer {
	normalized := make([]PriceRule, 0, len(rules))
	for _, rule := range rules {
		keywords := make([]string, 0, len(rule.Keywords))
		for _, kw := range rule.Keywords {
			if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
				keywords = append(keywords, kw)
			}
		}
		normalized = append(normalized, PriceRule{Keywords: keywords, Price: rule.Price})
	}
	return &KeywordPricer{rules: normalized, fallback: fallback}
}

// NewDefaultPricer creates a pricer with the built-in price list
func NewDefaultPricer() *KeywordPricer {
	return NewKeywordPricer(DefaultPriceRules(), DefaultUnitPrice)
}

// DefaultUnitPrice applies to materials matching no rule
var DefaultUnitPrice = decimal.NewFromInt(1000)

// DefaultPriceRules is the built-in price list for glazing materials
func DefaultPriceRules() []PriceRule {
	return []PriceRule{
		{Keywords: []string{"стекло", "glass"}, Price: decimal.NewFromInt(1500)},
		{Keywords: []string{"профиль", "profile"}, Price: decimal.NewFromInt(800)},
		{Keywords: []string{"аргон", "argon", "gas"}, Price: decimal.NewFromInt(200)},
		{Keywords: []string{"герметик", "sealant"}, Price: decimal.NewFromInt(1500)},
		{Keywords: []string{"лента", "tape"}, Price: decimal.NewFromInt(300)},
	}
}

// UnitPrice returns the price of the first rule whose keyword occurs in the name
func (p *KeywordPricer) UnitPrice(material entities.Material) decimal.Decimal {
	name := strings.ToLower(string(material))
	for _, rule := range p.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(name, kw) {
				return rule.Price
			}
		}
	}
	return p.fallback
}
