package output

import (
	"github.com/rpgo/realestate-estimator/internal/domain"
	"github.com/shopspring/decimal"
)

// Messages shown in place of the breakdown when nothing was calculated
const (
	MessageBuyerEmpty  = "Enter a valid estimated total price."
	MessageSellerEmpty = "Enter the transaction details to run the calculation."
)

// Placeholder stands in for a total or profit that has no meaningful value
const Placeholder = "--"

var buyerDisplayOrder = []domain.FeeKind{
	domain.FeeDownPayment,
	domain.FeeBuyerCommission,
	domain.FeeNotary,
	domain.FeeContractTax,
	domain.FeeGovernment,
	domain.FeeStampTax,
}

var sellerDisplayOrder = []domain.FeeKind{
	domain.FeeNotary,
	domain.FeeSaleCommissionActual,
	domain.FeeSaleCommissionEstimated,
	domain.FeeAcquisitionCommissionActual,
	domain.FeeAcquisitionCommissionEst,
	domain.FeeDecoration,
	domain.FeeContractTax,
	domain.FeeLandValueIncrement,
	domain.FeeFlatTax,
}

// supersededBy maps an estimated commission leg to the actual-paid leg that hides it
var supersededBy = map[domain.FeeKind]domain.FeeKind{
	domain.FeeSaleCommissionEstimated:  domain.FeeSaleCommissionActual,
	domain.FeeAcquisitionCommissionEst: domain.FeeAcquisitionCommissionActual,
}

// DisplayOrder returns the fixed display priority for a role
func DisplayOrder(role domain.Role) []domain.FeeKind {
	if role == domain.RoleSeller {
		return sellerDisplayOrder
	}
	return buyerDisplayOrder
}

// VisibleItems orders the estimate's items for display and drops the ones a reader should not see:
// an estimated commission leg when the actual-paid leg is shown, and zero amounts.
// The flat tax is always shown, even at zero.
func VisibleItems(est *domain.Estimate) []domain.FeeItem {
	shown := make(map[domain.FeeKind]bool)
	items := make([]domain.FeeItem, 0, len(est.Items))
	for _, kind := range DisplayOrder(est.Role) {
		item, ok := est.Item(kind)
		if !ok {
			continue
		}
		if actual, ok := supersededBy[kind]; ok && shown[actual] {
			continue
		}
		if item.Amount.IsZero() && kind != domain.FeeFlatTax {
			continue
		}
		items = append(items, item)
		shown[kind] = true
	}
	return items
}

// DisplayRow is one rendered line of the breakdown
type DisplayRow struct {
	Kind       domain.FeeKind  `json:"kind"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	AmountText string          `json:"amount_text"`
	Note       string          `json:"note,omitempty"`
}

// Display is an estimate prepared for rendering
type Display struct {
	Role    domain.Role
	Title   string
	Rows    []DisplayRow
	Message string

	TotalText string
	// ProfitText is empty for buyers
	ProfitText string
}

// Empty reports whether the display carries a message instead of rows
func (d Display) Empty() bool { return d.Message != "" }

// BuildDisplay applies ordering, suppression and number formatting to an estimate
func BuildDisplay(est *domain.Estimate) Display {
	d := Display{Role: est.Role, Title: roleTitle(est.Role), TotalText: Placeholder}
	if est.Role == domain.RoleSeller {
		d.ProfitText = Placeholder
	}

	if !est.Calculated || len(est.Items) == 0 {
		d.Message = MessageBuyerEmpty
		if est.Role == domain.RoleSeller {
			d.Message = MessageSellerEmpty
		}
		return d
	}

	for _, item := range VisibleItems(est) {
		d.Rows = append(d.Rows, DisplayRow{
			Kind:       item.Kind,
			Name:       item.Name,
			Amount:     item.Amount,
			AmountText: FormatAmount(item.Amount),
			Note:       item.Note,
		})
	}

	if !est.TotalFee.IsZero() {
		d.TotalText = FormatAmount(est.TotalFee)
	}
	if est.Profit != nil {
		d.ProfitText = FormatAmount(*est.Profit)
	}
	return d
}

// DownPaymentPreview shows the down payment in ten-thousands as the buyer types,
// or the placeholder when there is no price to base it on.
func DownPaymentPreview(price, downPayment decimal.Decimal) string {
	if !price.IsPositive() || downPayment.IsNegative() {
		return Placeholder
	}
	return FormatTenThousands(downPayment)
}

func roleTitle(role domain.Role) string {
	if role == domain.RoleSeller {
		return "Seller cost breakdown"
	}
	return "Buyer cost breakdown"
}
