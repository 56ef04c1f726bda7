// Package form holds the user-facing transaction forms. Amounts are entered in
// ten-thousands (萬) and converted to base currency units before they reach the engine.
package form

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/rpgo/realestate-estimator/internal/domain"
	"github.com/rpgo/realestate-estimator/pkg/dateutil"
	money "github.com/rpgo/realestate-estimator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// Field is a raw numeric entry. It decodes from JSON numbers or strings and from any YAML scalar.
type Field string

// UnmarshalJSON accepts 1000, "1000" and null
func (f *Field) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = Field(s)
		return nil
	}
	*f = Field(b)
	return nil
}

// NewField formats a decimal as a Field
func NewField(d decimal.Decimal) Field { return Field(d.String()) }

// IsEmpty reports whether nothing was entered
func (f Field) IsEmpty() bool { return strings.TrimSpace(string(f)) == "" }

// Optional returns nil when the field is empty or not a number
func (f Field) Optional() *decimal.Decimal {
	if f.IsEmpty() {
		return nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(string(f)))
	if err != nil {
		return nil
	}
	return &d
}

// Decimal returns the entered value, or zero when it is empty or not a number
func (f Field) Decimal() decimal.Decimal {
	if d := f.Optional(); d != nil {
		return *d
	}
	return decimal.Zero
}

// Wan converts a ten-thousand entry into base units
func (f Field) Wan() decimal.Decimal {
	return money.FromTenThousand(f.Decimal()).Decimal
}

// OptionalWan converts a ten-thousand entry into base units, keeping "not entered" as nil
func (f Field) OptionalWan() *decimal.Decimal {
	d := f.Optional()
	if d == nil {
		return nil
	}
	scaled := money.FromTenThousand(*d).Decimal
	return &scaled
}

// BuyForm is the buyer tab. Prices and fees are in ten-thousands.
type BuyForm struct {
	EstimatedPrice Field `yaml:"estimated_price" json:"estimated_price"`
	// DownPaymentRate is the selected preset as a fraction (0.3)
	DownPaymentRate Field `yaml:"down_payment_rate,omitempty" json:"down_payment_rate,omitempty"`
	// ManualDownPaymentPercent is a percentage (18 means 18%) that overrides the preset
	ManualDownPaymentPercent Field `yaml:"manual_down_payment_percent,omitempty" json:"manual_down_payment_percent,omitempty"`
	NotaryFee                Field `yaml:"notary_fee,omitempty" json:"notary_fee,omitempty"`
	ContractTax              Field `yaml:"contract_tax,omitempty" json:"contract_tax,omitempty"`
	GovernmentFee            Field `yaml:"government_fee,omitempty" json:"government_fee,omitempty"`
	StampTax                 Field `yaml:"stamp_tax,omitempty" json:"stamp_tax,omitempty"`
}

// ToInput converts the form into engine input in base units
func (f BuyForm) ToInput() domain.BuyInput {
	return domain.BuyInput{
		EstimatedPrice:    f.EstimatedPrice.Wan(),
		SelectedRate:      f.DownPaymentRate.Optional(),
		ManualRatePercent: f.ManualDownPaymentPercent.Optional(),
		NotaryFee:         f.NotaryFee.Wan(),
		ContractTax:       f.ContractTax.Wan(),
		GovernmentFee:     f.GovernmentFee.Wan(),
		StampTax:          f.StampTax.Wan(),
	}
}

// SellForm is the seller tab. Prices and fees are in ten-thousands.
type SellForm struct {
	EstimatedPrice Field `yaml:"estimated_price" json:"estimated_price"`
	AcquirePrice   Field `yaml:"acquire_price" json:"acquire_price"`
	DecorationFee  Field `yaml:"decoration_fee,omitempty" json:"decoration_fee,omitempty"`

	// Registration date in the ROC calendar, either as one "110/02/28" string
	// or as separate components. The combined string wins when both are given.
	RegistrationDate string `yaml:"registration_date,omitempty" json:"registration_date,omitempty"`
	RegisterYear     Field  `yaml:"register_year,omitempty" json:"register_year,omitempty"`
	RegisterMonth    Field  `yaml:"register_month,omitempty" json:"register_month,omitempty"`
	RegisterDay      Field  `yaml:"register_day,omitempty" json:"register_day,omitempty"`

	LandValueIncrement Field `yaml:"land_value_increment,omitempty" json:"land_value_increment,omitempty"`
	ContractTax        Field `yaml:"contract_tax,omitempty" json:"contract_tax,omitempty"`
	NotaryFee          Field `yaml:"notary_fee,omitempty" json:"notary_fee,omitempty"`

	ActualSaleCommission        Field `yaml:"actual_sale_commission,omitempty" json:"actual_sale_commission,omitempty"`
	ActualAcquisitionCommission Field `yaml:"actual_acquisition_commission,omitempty" json:"actual_acquisition_commission,omitempty"`
	AgentUsedAtAcquisition      bool  `yaml:"agent_used_at_acquisition" json:"agent_used_at_acquisition"`
}

// Registration returns the ROC date components as entered
func (f SellForm) Registration() domain.ROCDate {
	if strings.TrimSpace(f.RegistrationDate) != "" {
		y, m, d, err := dateutil.SplitROCDate(f.RegistrationDate)
		if err != nil {
			// keep the raw text so the flat tax reports it as indeterminable
			return domain.ROCDate{Year: f.RegistrationDate}
		}
		return domain.ROCDate{Year: y, Month: m, Day: d}
	}
	return domain.ROCDate{
		Year:  strings.TrimSpace(string(f.RegisterYear)),
		Month: strings.TrimSpace(string(f.RegisterMonth)),
		Day:   strings.TrimSpace(string(f.RegisterDay)),
	}
}

// ToInput converts the form into engine input in base units
func (f SellForm) ToInput() domain.SellInput {
	return domain.SellInput{
		EstimatedPrice:              f.EstimatedPrice.Wan(),
		AcquirePrice:                f.AcquirePrice.Wan(),
		DecorationFee:               f.DecorationFee.Wan(),
		RegistrationDate:            f.Registration(),
		LandValueIncrement:          f.LandValueIncrement.Wan(),
		ContractTax:                 f.ContractTax.Wan(),
		NotaryFee:                   f.NotaryFee.Wan(),
		ManualSaleCommission:        f.ActualSaleCommission.OptionalWan(),
		ManualAcquisitionCommission: f.ActualAcquisitionCommission.OptionalWan(),
		AgentUsedAtAcquisition:      f.AgentUsedAtAcquisition,
	}
}

// WithWrappedDate cycles an out-of-range month or day back into range:
// above the maximum becomes 1 and below 1 becomes the maximum. The day's maximum
// is the length of the (wrapped) month, or 31 when the year or month is unusable.
func (f SellForm) WithWrappedDate() SellForm {
	date := f.Registration()
	month := wrapText(date.Month, 12)
	f.RegistrationDate = ""
	f.RegisterYear = Field(date.Year)
	f.RegisterMonth = Field(month)
	f.RegisterDay = Field(wrapText(date.Day, monthLength(date.Year, month)))
	return f
}

func monthLength(rocYear, month string) int {
	y, err := strconv.Atoi(strings.TrimSpace(rocYear))
	if err != nil {
		return 31
	}
	m, err := strconv.Atoi(month)
	if err != nil {
		return 31
	}
	return dateutil.DaysInMonth(y+dateutil.ROCYearOffset, time.Month(m))
}

func wrapText(s string, max int) string {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return ""
	}
	return strconv.Itoa(WrapComponent(v, max))
}

// WrapComponent wraps a month or day entry into [1, max]
func WrapComponent(value, max int) int {
	switch {
	case value > max:
		return 1
	case value < 1:
		return max
	default:
		return value
	}
}

// TransactionForm is a role plus the matching form, as read from a file or request body
type TransactionForm struct {
	Role string   `yaml:"role" json:"role"`
	Buy  BuyForm  `yaml:"buy,omitempty" json:"buy,omitempty"`
	Sell SellForm `yaml:"sell,omitempty" json:"sell,omitempty"`
}

// ToTransaction converts the form for the engine; only the role can be invalid
func (f TransactionForm) ToTransaction() (domain.Transaction, error) {
	role, err := domain.ParseRole(strings.ToLower(strings.TrimSpace(f.Role)))
	if err != nil {
		return domain.Transaction{}, err
	}
	tx := domain.Transaction{Role: role}
	if role == domain.RoleSeller {
		tx.Sell = f.Sell.ToInput()
	} else {
		tx.Buy = f.Buy.ToInput()
	}
	return tx, nil
}
