package calculation

import (
	"fmt"

	"github.com/rpgo/realestate-estimator/internal/domain"
	money "github.com/rpgo/realestate-estimator/pkg/decimal"
	"github.com/shopspring/decimal"
)

const (
	noteAcquisitionActual = "Commission actually paid when the property was acquired, supported by an invoice."
	noteDecoration        = "Recognized from the invoices provided, at actual cost."
	noteLandIncrement     = "Used to compute flat-tax taxable income; this is not the land value increment tax."
	noteSellerContractTax = "Contract tax paid during ownership."
	noteDeductible        = " Deductible from flat-tax taxable income."
)

// SellerFeeCalculator assembles the seller's itemized costs including the flat tax
type SellerFeeCalculator struct {
	Rates   domain.RateConfig
	FlatTax *FlatTaxCalculator
}

// NewSellerFeeCalculator creates a seller calculator sharing the given flat tax calculator
func NewSellerFeeCalculator(config domain.Configuration, flatTax *FlatTaxCalculator) *SellerFeeCalculator {
	return &SellerFeeCalculator{Rates: config.Rates, FlatTax: flatTax}
}

// SaleCommission resolves the sale-side leg: a positive actual-paid amount replaces the estimate
func (sc *SellerFeeCalculator) SaleCommission(in domain.SellInput) domain.CommissionLeg {
	if in.ManualSaleCommission != nil && in.ManualSaleCommission.IsPositive() {
		return domain.CommissionLeg{Source: domain.LegActualPaid, Amount: *in.ManualSaleCommission}
	}
	return domain.CommissionLeg{
		Source: domain.LegEstimated,
		Amount: in.EstimatedPrice.Mul(sc.Rates.SellerCommissionRate),
	}
}

// AcquisitionCommission resolves the acquisition-side leg. It only applies when an
// agent was used at acquisition, and is omitted when neither an actual amount nor
// an acquisition price is available.
func (sc *SellerFeeCalculator) AcquisitionCommission(in domain.SellInput) domain.CommissionLeg {
	switch {
	case !in.AgentUsedAtAcquisition:
		return domain.CommissionLeg{Source: domain.LegOmitted, Amount: decimal.Zero}
	case in.ManualAcquisitionCommission != nil && in.ManualAcquisitionCommission.IsPositive():
		return domain.CommissionLeg{Source: domain.LegActualPaid, Amount: *in.ManualAcquisitionCommission}
	case in.AcquirePrice.IsPositive():
		return domain.CommissionLeg{
			Source: domain.LegEstimated,
			Amount: in.AcquirePrice.Mul(sc.Rates.BuyerCommissionRate),
		}
	default:
		return domain.CommissionLeg{Source: domain.LegOmitted, Amount: decimal.Zero}
	}
}

// AssembleFees returns the seller items as an unordered bag
func (sc *SellerFeeCalculator) AssembleFees(in domain.SellInput) []domain.FeeItem {
	items, _ := sc.Assemble(in)
	return items
}

// Assemble returns the seller items and the flat tax result they include
func (sc *SellerFeeCalculator) Assemble(in domain.SellInput) ([]domain.FeeItem, domain.FlatTaxResult) {
	items := []domain.FeeItem{
		{Kind: domain.FeeNotary, Name: "Notary fee", Amount: in.NotaryFee, Note: noteNotaryFee},
	}

	sale := sc.SaleCommission(in)
	if sale.Source == domain.LegActualPaid {
		items = append(items, domain.FeeItem{Kind: domain.FeeSaleCommissionActual,
			Name: "Agent commission (sale, actual paid)", Amount: sale.Amount, Note: noteCommissionCap})
	} else {
		items = append(items, domain.FeeItem{Kind: domain.FeeSaleCommissionEstimated,
			Name: "Agent commission (sale)", Amount: sale.Amount, Note: noteCommissionCap})
	}

	acquisition := sc.AcquisitionCommission(in)
	if acquisition.Applies() {
		items = append(items, sc.acquisitionItem(in, acquisition))
	}

	if in.DecorationFee.IsPositive() {
		items = append(items, domain.FeeItem{Kind: domain.FeeDecoration,
			Name: "Deductible decoration costs", Amount: in.DecorationFee, Note: noteDecoration})
	}

	contractNote := noteSellerContractTax
	if sc.FlatTax.IsDeductible(domain.DeductContractTax) {
		contractNote += noteDeductible
	}
	items = append(items,
		domain.FeeItem{Kind: domain.FeeContractTax, Name: "Contract tax", Amount: in.ContractTax, Note: contractNote},
		domain.FeeItem{Kind: domain.FeeLandValueIncrement, Name: "Land value increment", Amount: in.LandValueIncrement, Note: noteLandIncrement},
	)

	flatTax := sc.FlatTax.Calculate(FlatTaxInput{
		SellPrice:            in.EstimatedPrice,
		BuyPrice:             in.AcquirePrice,
		DecorationFee:        in.DecorationFee,
		DeductibleCommission: sale.Amount.Add(acquisition.Amount),
		LandValueIncrement:   in.LandValueIncrement,
		ContractTax:          in.ContractTax,
		NotaryFee:            in.NotaryFee,
		RegistrationDate:     in.RegistrationDate,
	})
	items = append(items, domain.FeeItem{Kind: domain.FeeFlatTax,
		Name: "Flat tax (integrated housing and land tax)", Amount: flatTax.Amount, Note: flatTax.Note})

	return items, flatTax
}

func (sc *SellerFeeCalculator) acquisitionItem(in domain.SellInput, leg domain.CommissionLeg) domain.FeeItem {
	if leg.Source == domain.LegActualPaid {
		return domain.FeeItem{Kind: domain.FeeAcquisitionCommissionActual,
			Name: "Agent commission (acquisition, actual paid)", Amount: leg.Amount, Note: noteAcquisitionActual}
	}
	return domain.FeeItem{Kind: domain.FeeAcquisitionCommissionEst,
		Name: "Agent commission (acquisition)", Amount: leg.Amount,
		Note: fmt.Sprintf("Based on the acquisition price of NT$%s at the standard rate of %s%%.",
			money.NewMoneyFromDecimal(in.AcquirePrice).Grouped(), percent(sc.Rates.BuyerCommissionRate))}
}
