package output

import (
	"github.com/rpgo/realestate-estimator/internal/domain"
	"github.com/shopspring/decimal"
)

// standingAssumptions hold regardless of configuration
var standingAssumptions = []string{
	"Holding period: registration date to today, using a 365.25-day year",
	"Figures are estimates only and carry no legal authority",
}

// DefaultAssumptions lists key modeling assumptions rendered in detailed outputs
// when no configuration was supplied.
var DefaultAssumptions = GenerateAssumptions(nil)

// GenerateAssumptions creates the assumptions list from actual config values
func GenerateAssumptions(config *domain.Configuration) []string {
	if config == nil {
		defaults := domain.DefaultConfiguration()
		config = &defaults
	}
	return append(config.Summary(), standingAssumptions...)
}

var decimalHundred = decimal.NewFromInt(100)
