package output

import (
	"testing"

	"github.com/rpgo/realestate-estimator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(kind domain.FeeKind, name string, amount int64) domain.FeeItem {
	return domain.FeeItem{Kind: kind, Name: name, Amount: decimal.NewFromInt(amount)}
}

func kindsOf(items []domain.FeeItem) []domain.FeeKind {
	kinds := make([]domain.FeeKind, 0, len(items))
	for _, it := range items {
		kinds = append(kinds, it.Kind)
	}
	return kinds
}

func buildSellerEstimate() *domain.Estimate {
	profit := decimal.NewFromInt(2340000)
	return &domain.Estimate{
		Role:           domain.RoleSeller,
		Calculated:     true,
		EstimatedPrice: decimal.NewFromInt(10000000),
		AcquirePrice:   decimal.NewFromInt(6000000),
		// deliberately scrambled
		Items: []domain.FeeItem{
			item(domain.FeeFlatTax, "Flat tax (integrated housing and land tax)", 1260000),
			item(domain.FeeLandValueIncrement, "Land value increment", 0),
			item(domain.FeeSaleCommissionEstimated, "Agent commission (sale)", 400000),
			item(domain.FeeContractTax, "Contract tax", 0),
			item(domain.FeeNotary, "Notary fee", 0),
		},
		TotalFee: decimal.NewFromInt(1660000),
		Profit:   &profit,
		FlatTax: &domain.FlatTaxResult{
			Amount:        decimal.NewFromInt(1260000),
			Determinable:  true,
			HoldingYears:  3.0,
			TaxableIncome: decimal.NewFromInt(3600000),
			Tier:          &domain.TaxTier{MinYears: 2, MaxYears: 5, Rate: decimal.NewFromFloat(0.35), Description: "Held 2 years to less than 5 years (35% rate)"},
		},
	}
}

func buildBuyerEstimate() *domain.Estimate {
	return &domain.Estimate{
		Role:           domain.RoleBuyer,
		Calculated:     true,
		EstimatedPrice: decimal.NewFromInt(10000000),
		Items: []domain.FeeItem{
			item(domain.FeeStampTax, "Stamp tax", 1200),
			item(domain.FeeGovernment, "Government fees", 0),
			item(domain.FeeContractTax, "Contract tax", 35000),
			item(domain.FeeNotary, "Notary fee", 18000),
			item(domain.FeeBuyerCommission, "Agent commission", 200000),
			item(domain.FeeDownPayment, "Down payment", 3000000),
		},
		TotalFee: decimal.NewFromInt(3254200),
	}
}

func TestVisibleItems_BuyerOrderAndZeroSuppression(t *testing.T) {
	items := VisibleItems(buildBuyerEstimate())
	assert.Equal(t, []domain.FeeKind{
		domain.FeeDownPayment, domain.FeeBuyerCommission, domain.FeeNotary,
		domain.FeeContractTax, domain.FeeStampTax,
	}, kindsOf(items))
}

func TestVisibleItems_SellerKeepsZeroFlatTax(t *testing.T) {
	est := buildSellerEstimate()
	est.Items[0].Amount = decimal.Zero

	items := VisibleItems(est)
	assert.Equal(t, []domain.FeeKind{domain.FeeSaleCommissionEstimated, domain.FeeFlatTax}, kindsOf(items))
}

func TestVisibleItems_ActualPaidHidesEstimate(t *testing.T) {
	est := buildSellerEstimate()
	est.Items = append(est.Items,
		item(domain.FeeSaleCommissionActual, "Agent commission (sale, actual paid)", 300000),
		item(domain.FeeAcquisitionCommissionEst, "Agent commission (acquisition)", 120000),
		item(domain.FeeAcquisitionCommissionActual, "Agent commission (acquisition, actual paid)", 100000),
	)

	kinds := kindsOf(VisibleItems(est))
	assert.Equal(t, []domain.FeeKind{
		domain.FeeSaleCommissionActual, domain.FeeAcquisitionCommissionActual, domain.FeeFlatTax,
	}, kinds)
}

func TestVisibleItems_SellerFullOrder(t *testing.T) {
	est := &domain.Estimate{
		Role:       domain.RoleSeller,
		Calculated: true,
		Items: []domain.FeeItem{
			item(domain.FeeFlatTax, "f", 1),
			item(domain.FeeLandValueIncrement, "l", 1),
			item(domain.FeeContractTax, "c", 1),
			item(domain.FeeDecoration, "d", 1),
			item(domain.FeeAcquisitionCommissionEst, "a", 1),
			item(domain.FeeSaleCommissionEstimated, "s", 1),
			item(domain.FeeNotary, "n", 1),
		},
	}
	assert.Equal(t, []domain.FeeKind{
		domain.FeeNotary, domain.FeeSaleCommissionEstimated, domain.FeeAcquisitionCommissionEst,
		domain.FeeDecoration, domain.FeeContractTax, domain.FeeLandValueIncrement, domain.FeeFlatTax,
	}, kindsOf(VisibleItems(est)))
}

func TestBuildDisplay_Seller(t *testing.T) {
	d := BuildDisplay(buildSellerEstimate())

	assert.False(t, d.Empty())
	assert.Equal(t, "Seller cost breakdown", d.Title)
	require.Len(t, d.Rows, 2)
	assert.Equal(t, "400,000", d.Rows[0].AmountText)
	assert.Equal(t, "1,260,000", d.Rows[1].AmountText)
	assert.Equal(t, "1,660,000", d.TotalText)
	assert.Equal(t, "2,340,000", d.ProfitText)
}

func TestBuildDisplay_Empty(t *testing.T) {
	tests := []struct {
		role    domain.Role
		message string
		profit  string
	}{
		{domain.RoleBuyer, MessageBuyerEmpty, ""},
		{domain.RoleSeller, MessageSellerEmpty, Placeholder},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			d := BuildDisplay(&domain.Estimate{Role: tt.role, Items: []domain.FeeItem{}})
			assert.True(t, d.Empty())
			assert.Equal(t, tt.message, d.Message)
			assert.Equal(t, Placeholder, d.TotalText)
			assert.Equal(t, tt.profit, d.ProfitText)
			assert.Empty(t, d.Rows)
		})
	}
}

func TestBuildDisplay_ZeroTotalShowsPlaceholder(t *testing.T) {
	profit := decimal.NewFromInt(-50000)
	est := &domain.Estimate{
		Role:       domain.RoleSeller,
		Calculated: true,
		Items:      []domain.FeeItem{item(domain.FeeFlatTax, "Flat tax", 0)},
		TotalFee:   decimal.Zero,
		Profit:     &profit,
	}
	d := BuildDisplay(est)
	assert.Equal(t, Placeholder, d.TotalText)
	assert.Equal(t, "-50,000", d.ProfitText)
	require.Len(t, d.Rows, 1)
	assert.Equal(t, "0", d.Rows[0].AmountText)
}

func TestDownPaymentPreview(t *testing.T) {
	tests := []struct {
		name     string
		price    int64
		amount   decimal.Decimal
		expected string
	}{
		{"Preset ratio", 10000000, decimal.NewFromInt(3000000), "300"},
		{"Fractional ten-thousands", 8250000, decimal.NewFromInt(2475000), "247.5"},
		{"Large amount is grouped", 500000000, decimal.NewFromInt(150000000), "15,000"},
		{"No price", 0, decimal.Zero, Placeholder},
		{"Negative amount", 10000000, decimal.NewFromInt(-1), Placeholder},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DownPaymentPreview(decimal.NewFromInt(tt.price), tt.amount))
		})
	}
}
