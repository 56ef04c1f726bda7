package calculation

import (
	"fmt"

	"github.com/rpgo/realestate-estimator/internal/domain"
	"github.com/shopspring/decimal"
)

// Holding-period band edges in years. Each edge belongs to the longer-tenure band.
const (
	tierEdgeShort  = 2.0
	tierEdgeMedium = 5.0
	tierEdgeLong   = 10.0
)

// TierTable is the ordered list of flat-tax holding-period bands
type TierTable []domain.TaxTier

// NewTierTable builds the four bands from the configured rates
func NewTierTable(rates domain.RateConfig) TierTable {
	return TierTable{
		{MinYears: 0, MaxYears: tierEdgeShort, Rate: rates.TaxRateUnder2Years,
			Description: fmt.Sprintf("Held less than 2 years (%s%% rate)", percent(rates.TaxRateUnder2Years))},
		{MinYears: tierEdgeShort, MaxYears: tierEdgeMedium, Rate: rates.TaxRate2To5Years,
			Description: fmt.Sprintf("Held 2 years to less than 5 years (%s%% rate)", percent(rates.TaxRate2To5Years))},
		{MinYears: tierEdgeMedium, MaxYears: tierEdgeLong, Rate: rates.TaxRate5To10Years,
			Description: fmt.Sprintf("Held 5 years to less than 10 years (%s%% rate)", percent(rates.TaxRate5To10Years))},
		{MinYears: tierEdgeLong, Rate: rates.TaxRate10YearsOrMore,
			Description: fmt.Sprintf("Held 10 years or more (%s%% rate)", percent(rates.TaxRate10YearsOrMore))},
	}
}

// Resolve picks the band for a holding period. Negative periods fall into the first band.
func (tt TierTable) Resolve(holdingYears float64) domain.TaxTier {
	for i := len(tt) - 1; i > 0; i-- {
		if holdingYears >= tt[i].MinYears {
			return tt[i]
		}
	}
	return tt[0]
}

var defaultTiers = NewTierTable(domain.DefaultRateConfig())

// ResolveTier resolves against the default statutory rates
func ResolveTier(holdingYears float64) domain.TaxTier {
	return defaultTiers.Resolve(holdingYears)
}

var decimalHundred = decimal.NewFromInt(100)

// percent renders a fractional rate as a percentage number, e.g. 0.35 -> "35"
func percent(rate decimal.Decimal) string {
	return rate.Mul(decimalHundred).String()
}
