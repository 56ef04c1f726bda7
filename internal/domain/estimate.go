package domain

import (
	"github.com/shopspring/decimal"
)

// FeeKind identifies a line item independently of its display name
type FeeKind string

const (
	FeeDownPayment     FeeKind = "down_payment"
	FeeBuyerCommission FeeKind = "buyer_commission"
	FeeNotary          FeeKind = "notary_fee"
	FeeContractTax     FeeKind = "contract_tax"
	FeeGovernment      FeeKind = "government_fee"
	FeeStampTax        FeeKind = "stamp_tax"

	FeeSaleCommissionActual        FeeKind = "sale_commission_actual"
	FeeSaleCommissionEstimated     FeeKind = "sale_commission_estimated"
	FeeAcquisitionCommissionActual FeeKind = "acquisition_commission_actual"
	FeeAcquisitionCommissionEst    FeeKind = "acquisition_commission_estimated"
	FeeDecoration                  FeeKind = "decoration"
	FeeLandValueIncrement          FeeKind = "land_value_increment"
	FeeFlatTax                     FeeKind = "flat_tax"
)

// FeeItem is one line of the cost breakdown. Amount is in base currency units.
type FeeItem struct {
	Kind   FeeKind         `json:"kind" yaml:"kind"`
	Name   string          `json:"name" yaml:"name"`
	Amount decimal.Decimal `json:"amount" yaml:"amount"`
	Note   string          `json:"note,omitempty" yaml:"note,omitempty"`
}

// LegSource records which branch produced a commission leg
type LegSource int

const (
	// LegOmitted means the leg does not apply and contributes nothing
	LegOmitted LegSource = iota
	// LegEstimated is computed from a price and a commission rate
	LegEstimated
	// LegActualPaid comes from a manually entered amount
	LegActualPaid
)

func (s LegSource) String() string {
	switch s {
	case LegEstimated:
		return "estimated"
	case LegActualPaid:
		return "actual_paid"
	default:
		return "omitted"
	}
}

// CommissionLeg is one side of agent commission: either a computed default,
// a manual actual-paid override, or omitted entirely.
type CommissionLeg struct {
	Source LegSource
	Amount decimal.Decimal
}

// Applies reports whether the leg produces a line item
func (l CommissionLeg) Applies() bool { return l.Source != LegOmitted }

// TaxTier is one holding-period band of the flat tax
type TaxTier struct {
	MinYears    float64         `json:"min_years" yaml:"min_years"`
	MaxYears    float64         `json:"max_years,omitempty" yaml:"max_years,omitempty"` // 0 means unbounded
	Rate        decimal.Decimal `json:"rate" yaml:"rate"`
	Description string          `json:"description" yaml:"description"`
}

// FlatTaxResult is always produced, even when the tax cannot be determined
type FlatTaxResult struct {
	Amount decimal.Decimal `json:"amount"`
	Note   string          `json:"note"`

	Determinable  bool            `json:"determinable"`
	HoldingYears  float64         `json:"holding_years,omitempty"`
	TaxableIncome decimal.Decimal `json:"taxable_income"`
	Tier          *TaxTier        `json:"tier,omitempty"`
}

// Estimate is the result of one calculation. Items are an unordered bag;
// display order is decided by the renderer.
type Estimate struct {
	Role           Role            `json:"role"`
	Calculated     bool            `json:"calculated"`
	EstimatedPrice decimal.Decimal `json:"estimated_price"`
	AcquirePrice   decimal.Decimal `json:"acquire_price"`
	Items          []FeeItem       `json:"items"`
	TotalFee       decimal.Decimal `json:"total_fee"`
	// Profit is nil for buyers
	Profit  *decimal.Decimal `json:"profit,omitempty"`
	FlatTax *FlatTaxResult   `json:"flat_tax,omitempty"`
}

// Item returns the first item of the given kind
func (e *Estimate) Item(kind FeeKind) (FeeItem, bool) {
	for _, item := range e.Items {
		if item.Kind == kind {
			return item, true
		}
	}
	return FeeItem{}, false
}

// SumItems adds up the amounts of all items
func SumItems(items []FeeItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount)
	}
	return total
}
