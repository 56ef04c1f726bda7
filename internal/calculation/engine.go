package calculation

import (
	"github.com/rpgo/realestate-estimator/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculationEngine orchestrates buyer and seller estimates
type CalculationEngine struct {
	Config      domain.Configuration
	BuyerCalc   *BuyerFeeCalculator
	SellerCalc  *SellerFeeCalculator
	FlatTaxCalc *FlatTaxCalculator
	Logger      Logger
}

// NewCalculationEngine creates an engine with the default rates and policy
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineWithConfig(domain.DefaultConfiguration())
}

// NewCalculationEngineWithConfig creates an engine from a loaded configuration
func NewCalculationEngineWithConfig(config domain.Configuration) *CalculationEngine {
	flatTax := NewFlatTaxCalculatorWithConfig(config)
	return &CalculationEngine{
		Config:      config,
		BuyerCalc:   NewBuyerFeeCalculator(config),
		SellerCalc:  NewSellerFeeCalculator(config, flatTax),
		FlatTaxCalc: flatTax,
		Logger:      NopLogger{},
	}
}

// SetLogger sets the logger for the engine and its calculators. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	ce.Logger = l
	ce.FlatTaxCalc.Logger = l
}

// Calculate dispatches on the transaction role
func (ce *CalculationEngine) Calculate(tx domain.Transaction) *domain.Estimate {
	if tx.Role == domain.RoleSeller {
		return ce.CalculateSell(tx.Sell)
	}
	return ce.CalculateBuy(tx.Buy)
}

// CalculateBuy returns the buyer estimate. Profit does not apply to buyers.
func (ce *CalculationEngine) CalculateBuy(in domain.BuyInput) *domain.Estimate {
	if !in.EstimatedPrice.IsPositive() {
		ce.Logger.Debugf("buy: estimated price %s is not positive, nothing to calculate", in.EstimatedPrice.String())
		return emptyEstimate(domain.RoleBuyer)
	}

	items := ce.BuyerCalc.AssembleFees(in)
	total := domain.SumItems(items)
	ce.Logger.Debugf("buy: %d items, total fee %s", len(items), total.StringFixed(0))

	return &domain.Estimate{
		Role:           domain.RoleBuyer,
		Calculated:     true,
		EstimatedPrice: in.EstimatedPrice,
		AcquirePrice:   decimal.Zero,
		Items:          items,
		TotalFee:       total,
	}
}

// CalculateSell returns the seller estimate with net profit after all items
func (ce *CalculationEngine) CalculateSell(in domain.SellInput) *domain.Estimate {
	if !in.EstimatedPrice.IsPositive() {
		ce.Logger.Debugf("sell: estimated price %s is not positive, nothing to calculate", in.EstimatedPrice.String())
		return emptyEstimate(domain.RoleSeller)
	}

	items, flatTax := ce.SellerCalc.Assemble(in)
	total := domain.SumItems(items)
	profit := in.EstimatedPrice.Sub(in.AcquirePrice).Sub(total)
	ce.Logger.Debugf("sell: %d items, total fee %s, profit %s", len(items), total.StringFixed(0), profit.StringFixed(0))

	return &domain.Estimate{
		Role:           domain.RoleSeller,
		Calculated:     true,
		EstimatedPrice: in.EstimatedPrice,
		AcquirePrice:   in.AcquirePrice,
		Items:          items,
		TotalFee:       total,
		Profit:         &profit,
		FlatTax:        &flatTax,
	}
}

func emptyEstimate(role domain.Role) *domain.Estimate {
	return &domain.Estimate{
		Role:           role,
		EstimatedPrice: decimal.Zero,
		AcquirePrice:   decimal.Zero,
		Items:          []domain.FeeItem{},
		TotalFee:       decimal.Zero,
	}
}
