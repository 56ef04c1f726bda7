package calculation

import (
	"fmt"
	"time"

	"github.com/rpgo/realestate-estimator/internal/domain"
	"github.com/rpgo/realestate-estimator/pkg/dateutil"
	money "github.com/rpgo/realestate-estimator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// FLAT TAX ASSUMPTIONS:
//
// 1. Holding period runs from the registration date to now, measured with a
//    365.25-day year. It is not the statutory day count.
// 2. Taxable income = sale price - acquisition price - the configured deductible costs.
// 3. Self-use residence exemptions and loss carry-forward are not modeled.

const noteIndeterminable = "Flat tax cannot be calculated: the acquisition price is missing or zero, or the registration date is not a valid date."

// FlatTaxInput carries the aggregates the seller assembler hands to the flat tax calculator
type FlatTaxInput struct {
	SellPrice            decimal.Decimal
	BuyPrice             decimal.Decimal
	DecorationFee        decimal.Decimal
	DeductibleCommission decimal.Decimal
	LandValueIncrement   decimal.Decimal
	ContractTax          decimal.Decimal
	NotaryFee            decimal.Decimal
	RegistrationDate     domain.ROCDate
}

// FlatTaxCalculator computes the integrated housing-and-land tax on a sale
type FlatTaxCalculator struct {
	Tiers      TierTable
	Deductions []domain.DeductibleCost
	// Now overrides the package clock when set
	Now    func() time.Time
	Logger Logger
}

// NewFlatTaxCalculator creates a calculator with the statutory rates and every deduction enabled
func NewFlatTaxCalculator() *FlatTaxCalculator {
	return NewFlatTaxCalculatorWithConfig(domain.DefaultConfiguration())
}

// NewFlatTaxCalculatorWithConfig creates a calculator from a loaded configuration
func NewFlatTaxCalculatorWithConfig(config domain.Configuration) *FlatTaxCalculator {
	return &FlatTaxCalculator{
		Tiers:      NewTierTable(config.Rates),
		Deductions: append([]domain.DeductibleCost(nil), config.DeductibleCosts...),
		Logger:     NopLogger{},
	}
}

func (ftc *FlatTaxCalculator) now() time.Time {
	if ftc.Now != nil {
		return ftc.Now()
	}
	return nowFunc()
}

func (ftc *FlatTaxCalculator) logger() Logger {
	if ftc.Logger == nil {
		return NopLogger{}
	}
	return ftc.Logger
}

// HoldingYears returns the years between registration and now
func (ftc *FlatTaxCalculator) HoldingYears(registration time.Time) float64 {
	return dateutil.YearsBetween(registration, ftc.now())
}

// TaxableIncome subtracts the acquisition price and each configured deductible cost
func (ftc *FlatTaxCalculator) TaxableIncome(in FlatTaxInput) decimal.Decimal {
	income := in.SellPrice.Sub(in.BuyPrice)
	for _, d := range ftc.Deductions {
		income = income.Sub(deductionAmount(d, in))
	}
	return income
}

func deductionAmount(d domain.DeductibleCost, in FlatTaxInput) decimal.Decimal {
	switch d {
	case domain.DeductDecoration:
		return in.DecorationFee
	case domain.DeductCommission:
		return in.DeductibleCommission
	case domain.DeductLandValueIncrement:
		return in.LandValueIncrement
	case domain.DeductContractTax:
		return in.ContractTax
	case domain.DeductNotaryFee:
		return in.NotaryFee
	default:
		return decimal.Zero
	}
}

// IsDeductible reports whether a cost term is subtracted from taxable income
func (ftc *FlatTaxCalculator) IsDeductible(d domain.DeductibleCost) bool {
	for _, configured := range ftc.Deductions {
		if configured == d {
			return true
		}
	}
	return false
}

// Calculate never fails: missing inputs produce a zero amount with an explanatory note
func (ftc *FlatTaxCalculator) Calculate(in FlatTaxInput) domain.FlatTaxResult {
	now := ftc.now()

	if !in.BuyPrice.IsPositive() {
		ftc.logger().Warnf("flat tax indeterminable: acquisition price %s is not positive", in.BuyPrice.String())
		return domain.FlatTaxResult{Amount: decimal.Zero, Note: noteIndeterminable}
	}
	if in.RegistrationDate.IsEmpty() {
		ftc.logger().Warnf("flat tax indeterminable: no registration date entered")
		return domain.FlatTaxResult{Amount: decimal.Zero, Note: noteIndeterminable}
	}
	registration, err := in.RegistrationDate.Gregorian(now.Location())
	if err != nil {
		ftc.logger().Warnf("flat tax indeterminable: %v", err)
		return domain.FlatTaxResult{Amount: decimal.Zero, Note: noteIndeterminable}
	}

	years := ftc.HoldingYears(registration)
	tier := ftc.Tiers.Resolve(years)
	taxable := ftc.TaxableIncome(in)

	ftc.logger().Debugf("flat tax: held %.3f years since %s, tier %s, taxable income %s",
		years, registration.Format("2006-01-02"), percent(tier.Rate), taxable.StringFixed(0))

	result := domain.FlatTaxResult{
		Determinable:  true,
		HoldingYears:  years,
		TaxableIncome: taxable,
		Tier:          &tier,
	}

	if taxable.LessThanOrEqual(decimal.Zero) {
		result.Amount = decimal.Zero
		result.Note = fmt.Sprintf("%s; no taxable income, tax NT$0.", tier.Description)
		return result
	}

	result.Amount = taxable.Mul(tier.Rate)
	result.Note = fmt.Sprintf("%s. Taxable income NT$%s at a %s%% rate.",
		tier.Description, money.NewMoneyFromDecimal(taxable).Grouped(), percent(tier.Rate))
	return result
}
