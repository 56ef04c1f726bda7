package output

import (
	"fmt"

	"github.com/dustin/go-humanize"
	money "github.com/rpgo/realestate-estimator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as whole New Taiwan dollars with thousands separators.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount decimal.Decimal) string { return money.NewMoneyFromDecimal(amount).Format() }

// FormatAmount formats a decimal as a grouped whole number without the currency prefix.
func FormatAmount(amount decimal.Decimal) string { return money.NewMoneyFromDecimal(amount).Grouped() }

// FormatPercentage formats a rate given as a fraction, so 0.35 becomes "35%".
func FormatPercentage(rate decimal.Decimal) string {
	return rate.Mul(decimalHundred).Round(2).String() + "%"
}

// FormatTenThousands expresses an amount in ten-thousands with at most two decimals.
func FormatTenThousands(amount decimal.Decimal) string {
	wan := money.NewMoneyFromDecimal(amount).TenThousands().Round(2)
	return humanize.CommafWithDigits(wan.InexactFloat64(), 2)
}

// FormatYears formats a holding period.
func FormatYears(years float64) string { return fmt.Sprintf("%.1f years", years) }
