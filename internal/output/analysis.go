package output

import (
	"github.com/rpgo/realestate-estimator/internal/domain"
	"github.com/shopspring/decimal"
)

// Analysis holds the ratios a reader usually asks for after seeing the breakdown.
type Analysis struct {
	// TransactionCosts excludes the down payment and the flat tax
	TransactionCosts decimal.Decimal
	CostRatio        decimal.Decimal

	// Seller only
	CapitalGain      *decimal.Decimal
	NetProceeds      *decimal.Decimal
	EffectiveTaxRate *decimal.Decimal
}

// AnalyzeEstimate derives cost ratios from an estimate.
// Extracted from the formatters for testability.
func AnalyzeEstimate(est *domain.Estimate) Analysis {
	var a Analysis
	if !est.Calculated {
		return a
	}

	costs := decimal.Zero
	for _, item := range est.Items {
		if item.Kind == domain.FeeDownPayment || item.Kind == domain.FeeFlatTax {
			continue
		}
		costs = costs.Add(item.Amount)
	}
	a.TransactionCosts = costs
	if est.EstimatedPrice.IsPositive() {
		a.CostRatio = costs.Div(est.EstimatedPrice)
	}

	if est.Role != domain.RoleSeller {
		return a
	}

	gain := est.EstimatedPrice.Sub(est.AcquirePrice)
	net := est.EstimatedPrice.Sub(est.TotalFee)
	a.CapitalGain = &gain
	a.NetProceeds = &net
	if est.FlatTax != nil && gain.IsPositive() && est.AcquirePrice.IsPositive() {
		rate := est.FlatTax.Amount.Div(gain)
		a.EffectiveTaxRate = &rate
	}
	return a
}
