package calculation

import (
	"fmt"
	"testing"

	"github.com/rpgo/realestate-estimator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculationEngine_BuyerScenario(t *testing.T) {
	engine := newTestEngine()

	est := engine.Calculate(domain.Transaction{
		Role: domain.RoleBuyer,
		Buy:  domain.BuyInput{EstimatedPrice: dec(10000000), SelectedRate: decPtr(0.3)},
	})

	require.True(t, est.Calculated)
	assert.Equal(t, domain.RoleBuyer, est.Role)
	assert.Nil(t, est.Profit)
	assert.Nil(t, est.FlatTax)

	dp, ok := est.Item(domain.FeeDownPayment)
	require.True(t, ok)
	assertDecimal(t, dec(3000000), dp.Amount)

	commission, ok := est.Item(domain.FeeBuyerCommission)
	require.True(t, ok)
	assertDecimal(t, dec(200000), commission.Amount)

	assertDecimal(t, dec(3200000), est.TotalFee)
}

func TestCalculationEngine_SellerScenario(t *testing.T) {
	engine := newTestEngine()

	est := engine.Calculate(domain.Transaction{
		Role: domain.RoleSeller,
		Sell: domain.SellInput{
			EstimatedPrice:         dec(10000000),
			AcquirePrice:           dec(6000000),
			RegistrationDate:       registeredYearsAgo(3),
			AgentUsedAtAcquisition: false,
		},
	})

	require.True(t, est.Calculated)
	sale, ok := est.Item(domain.FeeSaleCommissionEstimated)
	require.True(t, ok)
	assertDecimal(t, dec(400000), sale.Amount)

	require.NotNil(t, est.FlatTax)
	assertDecimal(t, dec(3600000), est.FlatTax.TaxableIncome)
	assertDecimal(t, dec(1260000), est.FlatTax.Amount)

	assertDecimal(t, dec(1660000), est.TotalFee)
	require.NotNil(t, est.Profit)
	assertDecimal(t, dec(2340000), *est.Profit)
}

// TestCalculationEngine_NonPositivePrice tests the short-circuit for both roles
func TestCalculationEngine_NonPositivePrice(t *testing.T) {
	engine := newTestEngine()

	for _, price := range []int64{0, -1} {
		for _, role := range []domain.Role{domain.RoleBuyer, domain.RoleSeller} {
			t.Run(fmt.Sprintf("%s_%d", role, price), func(t *testing.T) {
				est := engine.Calculate(domain.Transaction{
					Role: role,
					Buy:  domain.BuyInput{EstimatedPrice: dec(price)},
					Sell: domain.SellInput{EstimatedPrice: dec(price), AcquirePrice: dec(5000000)},
				})
				assert.Equal(t, role, est.Role)
				assert.False(t, est.Calculated)
				assert.NotNil(t, est.Items)
				assert.Empty(t, est.Items)
				assert.True(t, est.TotalFee.IsZero())
				assert.Nil(t, est.Profit)
				assert.Nil(t, est.FlatTax)
			})
		}
	}
}

func TestCalculationEngine_ProfitCanBeNegative(t *testing.T) {
	est := newTestEngine().CalculateSell(domain.SellInput{
		EstimatedPrice:   dec(5000000),
		AcquirePrice:     dec(6000000),
		RegistrationDate: registeredYearsAgo(3),
	})

	// Loss: no flat tax, commission 200,000
	assertDecimal(t, dec(200000), est.TotalFee)
	require.NotNil(t, est.Profit)
	assertDecimal(t, dec(-1200000), *est.Profit)
}

func TestCalculationEngine_WithConfig(t *testing.T) {
	config := domain.DefaultConfiguration()
	config.Rates.BuyerCommissionRate = decimal.NewFromFloat(0.01)
	engine := NewCalculationEngineWithConfig(config)

	est := engine.CalculateBuy(domain.BuyInput{EstimatedPrice: dec(10000000)})
	commission, ok := est.Item(domain.FeeBuyerCommission)
	require.True(t, ok)
	assertDecimal(t, dec(100000), commission.Amount)
}

type recordingLogger struct {
	NopLogger
	warnings []string
}

func (r *recordingLogger) Warnf(format string, args ...any) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

func TestCalculationEngine_SetLogger(t *testing.T) {
	engine := newTestEngine()
	logger := &recordingLogger{}
	engine.SetLogger(logger)

	engine.CalculateSell(domain.SellInput{EstimatedPrice: dec(10000000)})
	assert.Len(t, logger.warnings, 1)
	assert.Contains(t, logger.warnings[0], "indeterminable")

	engine.SetLogger(nil)
	assert.IsType(t, NopLogger{}, engine.Logger)
	assert.IsType(t, NopLogger{}, engine.FlatTaxCalc.Logger)
}
