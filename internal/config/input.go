package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rpgo/realestate-estimator/internal/domain"
	"github.com/rpgo/realestate-estimator/internal/form"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ErrUnknownRole is returned when a transaction file names neither a buyer nor a seller
var ErrUnknownRole = errors.New("unknown transaction role")

// maxCombinedCommission caps buyer plus seller agent commission
var maxCombinedCommission = decimal.NewFromFloat(0.06)

// InputParser handles parsing of configuration and transaction files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a policy configuration from a YAML file.
// Keys missing from the file keep their default values.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	config := domain.DefaultConfiguration()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := ip.validateRates(&config.Rates); err != nil {
		return fmt.Errorf("rates validation failed: %w", err)
	}
	if err := ip.validateDownPayment(&config.DownPayment); err != nil {
		return fmt.Errorf("down payment validation failed: %w", err)
	}

	seen := make(map[domain.DeductibleCost]bool, len(config.DeductibleCosts))
	for _, cost := range config.DeductibleCosts {
		if !cost.Valid() {
			return fmt.Errorf("unknown deductible cost %q", cost)
		}
		if seen[cost] {
			return fmt.Errorf("deductible cost %q listed more than once", cost)
		}
		seen[cost] = true
	}

	return nil
}

// validateRates checks that every rate is a fraction and that commission stays under the legal cap
func (ip *InputParser) validateRates(rates *domain.RateConfig) error {
	named := []struct {
		name string
		rate decimal.Decimal
	}{
		{"buyer commission rate", rates.BuyerCommissionRate},
		{"seller commission rate", rates.SellerCommissionRate},
		{"tax rate under 2 years", rates.TaxRateUnder2Years},
		{"tax rate 2 to 5 years", rates.TaxRate2To5Years},
		{"tax rate 5 to 10 years", rates.TaxRate5To10Years},
		{"tax rate 10 years or more", rates.TaxRate10YearsOrMore},
	}
	for _, r := range named {
		if err := requireFraction(r.name, r.rate); err != nil {
			return err
		}
	}

	if rates.BuyerCommissionRate.Add(rates.SellerCommissionRate).GreaterThan(maxCombinedCommission) {
		return fmt.Errorf("combined agent commission cannot exceed 6%% of the price")
	}
	return nil
}

func (ip *InputParser) validateDownPayment(policy *domain.DownPaymentPolicy) error {
	if len(policy.Presets) == 0 {
		return fmt.Errorf("at least one down payment preset is required")
	}
	for i, preset := range policy.Presets {
		if err := requireFraction(fmt.Sprintf("preset %d", i), preset); err != nil {
			return err
		}
	}
	if err := requireFraction("default rate", policy.DefaultRate); err != nil {
		return err
	}
	if !policy.IsPreset(policy.DefaultRate) {
		return fmt.Errorf("default rate %s is not one of the presets", policy.DefaultRate)
	}
	return nil
}

func requireFraction(name string, rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%s must be between 0 and 1", name)
	}
	return nil
}

// LoadTransaction reads a transaction form from a YAML or JSON file. Amounts in the file
// are in ten-thousands, as the user would enter them.
func (ip *InputParser) LoadTransaction(filename string) (*form.TransactionForm, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var tx form.TransactionForm
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		if err := json.Unmarshal(data, &tx); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &tx); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateTransaction(&tx); err != nil {
		return nil, fmt.Errorf("transaction validation failed: %w", err)
	}
	return &tx, nil
}

// ValidateTransaction only checks the role. Bad amounts and dates become zeros
// and explanatory notes during calculation instead of errors.
func (ip *InputParser) ValidateTransaction(tx *form.TransactionForm) error {
	if _, err := domain.ParseRole(strings.ToLower(strings.TrimSpace(tx.Role))); err != nil {
		return fmt.Errorf("%w: %q", ErrUnknownRole, tx.Role)
	}
	return nil
}

// SelectedRateWarning returns a message when a buyer picked a down payment ratio that
// is not a configured preset, or "" when the choice is fine.
func (ip *InputParser) SelectedRateWarning(config *domain.Configuration, in domain.BuyInput) string {
	if in.SelectedRate == nil || config.DownPayment.IsPreset(*in.SelectedRate) {
		return ""
	}
	return fmt.Sprintf("down payment rate %s is not one of the configured presets", in.SelectedRate.String())
}

// CreateExampleConfiguration returns the default policy, suitable for writing out as a starting point
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	config := domain.DefaultConfiguration()
	return &config
}

// CreateExampleTransaction returns a sample transaction form for the given role
func (ip *InputParser) CreateExampleTransaction(role domain.Role) *form.TransactionForm {
	if role == domain.RoleSeller {
		return &form.TransactionForm{
			Role: string(domain.RoleSeller),
			Sell: form.SellForm{
				EstimatedPrice:         "1000",
				AcquirePrice:           "600",
				DecorationFee:          "50",
				RegistrationDate:       "111/03/15",
				LandValueIncrement:     "3",
				ContractTax:            "1.2",
				NotaryFee:              "1",
				AgentUsedAtAcquisition: true,
			},
		}
	}
	return &form.TransactionForm{
		Role: string(domain.RoleBuyer),
		Buy: form.BuyForm{
			EstimatedPrice:  "1000",
			DownPaymentRate: "0.3",
			NotaryFee:       "1.8",
			ContractTax:     "3.5",
			GovernmentFee:   "0.5",
			StampTax:        "0.12",
		},
	}
}
