package decimal

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// TenThousand is the scale of the 萬 unit that prices are usually quoted in.
var TenThousand = decimal.NewFromInt(10000)

// Money represents a monetary amount in base currency units (NT$)
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// FromTenThousand converts an amount quoted in ten-thousands into base units
func FromTenThousand(d decimal.Decimal) Money {
	return Money{d.Mul(TenThousand)}
}

// TenThousands expresses the amount in ten-thousand units
func (m Money) TenThousands() decimal.Decimal {
	return m.Decimal.Div(TenThousand)
}

// Round rounds to whole currency units (half away from zero)
func (m Money) Round() Money {
	return Money{m.Decimal.Round(0)}
}

// Grouped returns the rounded amount with thousands separators, e.g. 1,260,000.
// Amounts beyond int64 are grouped exactly.
func (m Money) Grouped() string {
	return humanize.BigComma(m.Round().Decimal.BigInt())
}

// Format formats the money amount with the currency prefix
func (m Money) Format() string {
	return "NT$" + m.Grouped()
}
