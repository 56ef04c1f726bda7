package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RateConfig is the process-wide rate table. It is loaded once and never mutated.
type RateConfig struct {
	BuyerCommissionRate  decimal.Decimal `yaml:"buyer_commission_rate" json:"buyer_commission_rate"`   // Default: 0.02
	SellerCommissionRate decimal.Decimal `yaml:"seller_commission_rate" json:"seller_commission_rate"` // Default: 0.04

	// Integrated housing-and-land tax rates by holding period
	TaxRateUnder2Years   decimal.Decimal `yaml:"tax_rate_under_2_years" json:"tax_rate_under_2_years"`       // Default: 0.45
	TaxRate2To5Years     decimal.Decimal `yaml:"tax_rate_2_to_5_years" json:"tax_rate_2_to_5_years"`         // Default: 0.35
	TaxRate5To10Years    decimal.Decimal `yaml:"tax_rate_5_to_10_years" json:"tax_rate_5_to_10_years"`       // Default: 0.20
	TaxRate10YearsOrMore decimal.Decimal `yaml:"tax_rate_10_years_or_more" json:"tax_rate_10_years_or_more"` // Default: 0.15
}

// DownPaymentPolicy holds the down-payment presets offered to buyers.
// The preset currently selected by a caller is passed per calculation, not stored here.
type DownPaymentPolicy struct {
	Presets     []decimal.Decimal `yaml:"presets" json:"presets"`
	DefaultRate decimal.Decimal   `yaml:"default_rate" json:"default_rate"`
}

// IsPreset reports whether rate is one of the configured presets
func (p DownPaymentPolicy) IsPreset(rate decimal.Decimal) bool {
	for _, preset := range p.Presets {
		if preset.Equal(rate) {
			return true
		}
	}
	return false
}

// DeductibleCost names a seller cost that may be subtracted from flat-tax taxable income.
// The acquisition price is always deducted and is not listed here.
type DeductibleCost string

const (
	DeductDecoration         DeductibleCost = "decoration"
	DeductCommission         DeductibleCost = "commission"
	DeductLandValueIncrement DeductibleCost = "land_value_increment"
	DeductContractTax        DeductibleCost = "contract_tax"
	DeductNotaryFee          DeductibleCost = "notary_fee"
)

// AllDeductibleCosts lists every known deductible term in taxable-income order
var AllDeductibleCosts = []DeductibleCost{
	DeductDecoration,
	DeductCommission,
	DeductLandValueIncrement,
	DeductContractTax,
	DeductNotaryFee,
}

// Valid reports whether the term is a known deductible cost
func (d DeductibleCost) Valid() bool {
	for _, known := range AllDeductibleCosts {
		if d == known {
			return true
		}
	}
	return false
}

// Configuration is the complete policy configuration loaded from YAML
type Configuration struct {
	Rates           RateConfig        `yaml:"rates" json:"rates"`
	DownPayment     DownPaymentPolicy `yaml:"down_payment" json:"down_payment"`
	DeductibleCosts []DeductibleCost  `yaml:"deductible_costs" json:"deductible_costs"`
}

// DefaultRateConfig returns the statutory rates used when no configuration is supplied
func DefaultRateConfig() RateConfig {
	return RateConfig{
		BuyerCommissionRate:  decimal.NewFromFloat(0.02),
		SellerCommissionRate: decimal.NewFromFloat(0.04),
		TaxRateUnder2Years:   decimal.NewFromFloat(0.45),
		TaxRate2To5Years:     decimal.NewFromFloat(0.35),
		TaxRate5To10Years:    decimal.NewFromFloat(0.20),
		TaxRate10YearsOrMore: decimal.NewFromFloat(0.15),
	}
}

// DefaultConfiguration returns the rate table, 20/25/30% presets with 30% selected,
// and every deductible cost enabled.
func DefaultConfiguration() Configuration {
	return Configuration{
		Rates: DefaultRateConfig(),
		DownPayment: DownPaymentPolicy{
			Presets: []decimal.Decimal{
				decimal.NewFromFloat(0.20),
				decimal.NewFromFloat(0.25),
				decimal.NewFromFloat(0.30),
			},
			DefaultRate: decimal.NewFromFloat(0.30),
		},
		DeductibleCosts: append([]DeductibleCost(nil), AllDeductibleCosts...),
	}
}

// Summary lists the configured rates in human-readable form
func (c Configuration) Summary() []string {
	pct := func(d decimal.Decimal) string { return d.Mul(decimal.NewFromInt(100)).String() + "%" }
	presets := make([]string, 0, len(c.DownPayment.Presets))
	for _, p := range c.DownPayment.Presets {
		presets = append(presets, pct(p))
	}
	return []string{
		fmt.Sprintf("Buyer agent commission: %s of price", pct(c.Rates.BuyerCommissionRate)),
		fmt.Sprintf("Seller agent commission: %s of price", pct(c.Rates.SellerCommissionRate)),
		fmt.Sprintf("Flat tax: %s / %s / %s / %s (<2y, 2-5y, 5-10y, 10y+)",
			pct(c.Rates.TaxRateUnder2Years), pct(c.Rates.TaxRate2To5Years),
			pct(c.Rates.TaxRate5To10Years), pct(c.Rates.TaxRate10YearsOrMore)),
		fmt.Sprintf("Down payment presets: %v (default %s)", presets, pct(c.DownPayment.DefaultRate)),
		fmt.Sprintf("Deductible costs: %v", c.DeductibleCosts),
	}
}
