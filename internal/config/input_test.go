package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rpgo/realestate-estimator/internal/domain"
	"github.com/rpgo/realestate-estimator/internal/form"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFile_Success(t *testing.T) {
	testConfig := "rates:\n" +
		"  buyer_commission_rate: 0.01\n" +
		"  tax_rate_2_to_5_years: 0.3\n" +
		"down_payment:\n" +
		"  presets: [0.2, 0.4]\n" +
		"  default_rate: 0.4\n" +
		"deductible_costs:\n" +
		"  - commission\n" +
		"  - decoration\n"

	parser := NewInputParser()
	config, err := parser.LoadFromFile(writeTemp(t, "config.yaml", testConfig))
	require.NoError(t, err)

	assert.True(t, decimal.NewFromFloat(0.01).Equal(config.Rates.BuyerCommissionRate))
	assert.True(t, decimal.NewFromFloat(0.3).Equal(config.Rates.TaxRate2To5Years))
	// Keys that are not in the file keep their defaults
	assert.True(t, decimal.NewFromFloat(0.04).Equal(config.Rates.SellerCommissionRate))
	assert.True(t, decimal.NewFromFloat(0.45).Equal(config.Rates.TaxRateUnder2Years))

	require.Len(t, config.DownPayment.Presets, 2)
	assert.True(t, decimal.NewFromFloat(0.4).Equal(config.DownPayment.DefaultRate))
	assert.Equal(t, []domain.DeductibleCost{domain.DeductCommission, domain.DeductDecoration}, config.DeductibleCosts)
}

func TestLoadFromFile_EmptyFileUsesDefaults(t *testing.T) {
	parser := NewInputParser()
	config, err := parser.LoadFromFile(writeTemp(t, "empty.yaml", ""))
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfiguration().Summary(), config.Summary())
}

func TestLoadFromFile_Errors(t *testing.T) {
	parser := NewInputParser()

	_, err := parser.LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")

	_, err = parser.LoadFromFile(writeTemp(t, "bad.yaml", "rates: [unclosed"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")

	_, err = parser.LoadFromFile(writeTemp(t, "invalid.yaml", "rates:\n  seller_commission_rate: 1.5\n"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "configuration validation failed")
}

func TestValidateConfiguration(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *domain.Configuration)
		expectedErr string
	}{
		{"Defaults are valid", func(c *domain.Configuration) {}, ""},
		{"Negative commission", func(c *domain.Configuration) { c.Rates.BuyerCommissionRate = decimal.NewFromFloat(-0.01) }, "buyer commission rate must be between 0 and 1"},
		{"Tax rate above one", func(c *domain.Configuration) { c.Rates.TaxRate5To10Years = decimal.NewFromFloat(1.2) }, "tax rate 5 to 10 years"},
		{"Commission over cap", func(c *domain.Configuration) { c.Rates.SellerCommissionRate = decimal.NewFromFloat(0.05) }, "cannot exceed 6%"},
		{"No presets", func(c *domain.Configuration) { c.DownPayment.Presets = nil }, "at least one down payment preset"},
		{"Default not a preset", func(c *domain.Configuration) { c.DownPayment.DefaultRate = decimal.NewFromFloat(0.5) }, "not one of the presets"},
		{"Unknown deductible", func(c *domain.Configuration) { c.DeductibleCosts = []domain.DeductibleCost{"moving_costs"} }, "unknown deductible cost"},
		{"Duplicate deductible", func(c *domain.Configuration) {
			c.DeductibleCosts = []domain.DeductibleCost{domain.DeductNotaryFee, domain.DeductNotaryFee}
		}, "more than once"},
		{"No deductibles is allowed", func(c *domain.Configuration) { c.DeductibleCosts = nil }, ""},
	}

	parser := NewInputParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := domain.DefaultConfiguration()
			tt.mutate(&config)
			err := parser.ValidateConfiguration(&config)
			if tt.expectedErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedErr)
		})
	}
}

func TestLoadTransaction(t *testing.T) {
	parser := NewInputParser()

	t.Run("YAML seller", func(t *testing.T) {
		path := writeTemp(t, "sell.yaml", "role: sell\n"+
			"sell:\n"+
			"  estimated_price: 1000\n"+
			"  acquire_price: 600\n"+
			"  registration_date: 111/03/15\n"+
			"  agent_used_at_acquisition: true\n")
		tx, err := parser.LoadTransaction(path)
		require.NoError(t, err)
		assert.Equal(t, "sell", tx.Role)
		assert.Equal(t, form.Field("1000"), tx.Sell.EstimatedPrice)
		assert.Equal(t, "111/03/15", tx.Sell.RegistrationDate)
		assert.True(t, tx.Sell.AgentUsedAtAcquisition)
	})

	t.Run("JSON buyer", func(t *testing.T) {
		path := writeTemp(t, "buy.json", `{"role": "buy", "buy": {"estimated_price": 1000, "down_payment_rate": "0.2"}}`)
		tx, err := parser.LoadTransaction(path)
		require.NoError(t, err)
		assert.Equal(t, form.Field("1000"), tx.Buy.EstimatedPrice)
		assert.Equal(t, form.Field("0.2"), tx.Buy.DownPaymentRate)
	})

	t.Run("Unknown role", func(t *testing.T) {
		_, err := parser.LoadTransaction(writeTemp(t, "rent.yaml", "role: rent\n"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnknownRole))
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		_, err := parser.LoadTransaction(writeTemp(t, "bad.json", `{"role": `))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse JSON")
	})
}

func TestSelectedRateWarning(t *testing.T) {
	parser := NewInputParser()
	config := domain.DefaultConfiguration()

	preset := decimal.NewFromFloat(0.25)
	odd := decimal.NewFromFloat(0.33)

	assert.Empty(t, parser.SelectedRateWarning(&config, domain.BuyInput{}))
	assert.Empty(t, parser.SelectedRateWarning(&config, domain.BuyInput{SelectedRate: &preset}))
	assert.Contains(t, parser.SelectedRateWarning(&config, domain.BuyInput{SelectedRate: &odd}), "0.33")
}

func TestCreateExampleConfiguration(t *testing.T) {
	parser := NewInputParser()
	config := parser.CreateExampleConfiguration()
	require.NoError(t, parser.ValidateConfiguration(config))

	// The example survives a YAML round trip through the loader
	data, err := yaml.Marshal(config)
	require.NoError(t, err)
	loaded, err := parser.LoadFromFile(writeTemp(t, "example.yaml", string(data)))
	require.NoError(t, err)
	assert.Equal(t, config.Summary(), loaded.Summary())
}

func TestCreateExampleTransaction(t *testing.T) {
	parser := NewInputParser()
	for _, role := range []domain.Role{domain.RoleBuyer, domain.RoleSeller} {
		example := parser.CreateExampleTransaction(role)
		require.NoError(t, parser.ValidateTransaction(example))
		tx, err := example.ToTransaction()
		require.NoError(t, err)
		assert.Equal(t, role, tx.Role)
		assert.True(t, tx.EstimatedPrice().IsPositive())
	}
}
