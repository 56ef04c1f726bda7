package calculation

import (
	"fmt"

	"github.com/rpgo/realestate-estimator/internal/domain"
	money "github.com/rpgo/realestate-estimator/pkg/decimal"
	"github.com/shopspring/decimal"
)

const (
	noteCommissionCap = "Under the Ministry of the Interior brokerage fee standard, total agent commission may not exceed 6% of the transaction price."
	noteNotaryFee     = "Based on the fee schedule of the local land administration agents' association."
	noteAsEntered     = "As entered."
)

// BuyerFeeCalculator assembles the buyer's itemized costs
type BuyerFeeCalculator struct {
	Rates  domain.RateConfig
	Policy domain.DownPaymentPolicy
}

// NewBuyerFeeCalculator creates a buyer calculator from a configuration
func NewBuyerFeeCalculator(config domain.Configuration) *BuyerFeeCalculator {
	return &BuyerFeeCalculator{Rates: config.Rates, Policy: config.DownPayment}
}

// DownPaymentQuote is the down payment together with how its rate was chosen
type DownPaymentQuote struct {
	Rate       decimal.Decimal
	Amount     decimal.Decimal
	LoanAmount decimal.Decimal
	Manual     bool
}

// EffectiveRate returns the manually entered percentage as a fraction when it is
// present and non-negative, otherwise the selected preset, otherwise the policy default.
func (bc *BuyerFeeCalculator) EffectiveRate(in domain.BuyInput) (rate decimal.Decimal, manual bool) {
	if in.ManualRatePercent != nil && !in.ManualRatePercent.IsNegative() {
		return in.ManualRatePercent.Div(decimalHundred), true
	}
	if in.SelectedRate != nil {
		return *in.SelectedRate, false
	}
	return bc.Policy.DefaultRate, false
}

// DownPayment previews the down payment and resulting loan amount
func (bc *BuyerFeeCalculator) DownPayment(in domain.BuyInput) DownPaymentQuote {
	rate, manual := bc.EffectiveRate(in)
	amount := in.EstimatedPrice.Mul(rate)
	return DownPaymentQuote{
		Rate:       rate,
		Amount:     amount,
		LoanAmount: in.EstimatedPrice.Sub(amount),
		Manual:     manual,
	}
}

// AssembleFees returns the six buyer items, or nothing when the price is not positive
func (bc *BuyerFeeCalculator) AssembleFees(in domain.BuyInput) []domain.FeeItem {
	if !in.EstimatedPrice.IsPositive() {
		return []domain.FeeItem{}
	}

	dp := bc.DownPayment(in)
	loan := money.NewMoneyFromDecimal(dp.LoanAmount).Grouped()
	var dpNote string
	if dp.Manual {
		dpNote = fmt.Sprintf("Using the manually entered ratio of %s%%. Loan amount NT$%s.",
			in.ManualRatePercent.String(), loan)
	} else {
		dpNote = fmt.Sprintf("Total price NT$%s at the selected ratio of %s%%. Loan amount NT$%s.",
			money.NewMoneyFromDecimal(in.EstimatedPrice).Grouped(), percent(dp.Rate), loan)
	}

	return []domain.FeeItem{
		{Kind: domain.FeeDownPayment, Name: "Down payment", Amount: dp.Amount, Note: dpNote},
		{Kind: domain.FeeBuyerCommission, Name: "Agent commission",
			Amount: in.EstimatedPrice.Mul(bc.Rates.BuyerCommissionRate), Note: noteCommissionCap},
		{Kind: domain.FeeNotary, Name: "Notary fee", Amount: in.NotaryFee, Note: noteNotaryFee},
		{Kind: domain.FeeContractTax, Name: "Contract tax", Amount: in.ContractTax, Note: noteAsEntered},
		{Kind: domain.FeeGovernment, Name: "Government fees", Amount: in.GovernmentFee, Note: noteAsEntered},
		{Kind: domain.FeeStampTax, Name: "Stamp tax", Amount: in.StampTax, Note: noteAsEntered},
	}
}
