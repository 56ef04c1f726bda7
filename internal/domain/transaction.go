package domain

import (
	"fmt"
	"time"

	"github.com/rpgo/realestate-estimator/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// Role selects the buyer or seller calculation path
type Role string

const (
	RoleBuyer  Role = "buy"
	RoleSeller Role = "sell"
)

// ParseRole accepts "buy"/"buyer" and "sell"/"seller"
func ParseRole(s string) (Role, error) {
	switch s {
	case "buy", "buyer":
		return RoleBuyer, nil
	case "sell", "seller":
		return RoleSeller, nil
	default:
		return "", fmt.Errorf("unknown role %q: must be 'buy' or 'sell'", s)
	}
}

// ROCDate is a registration date in the ROC (民國) calendar, kept as the numeric
// strings the user typed so that invalid input reaches the converter unchanged.
type ROCDate struct {
	Year  string `yaml:"year" json:"year"`
	Month string `yaml:"month" json:"month"`
	Day   string `yaml:"day" json:"day"`
}

// NewROCDate builds an ROCDate from integers
func NewROCDate(year, month, day int) ROCDate {
	return ROCDate{Year: fmt.Sprint(year), Month: fmt.Sprint(month), Day: fmt.Sprint(day)}
}

// ROCDateFromTime expresses a Gregorian date in the ROC calendar
func ROCDateFromTime(t time.Time) ROCDate {
	return NewROCDate(dateutil.GregorianToROC(t))
}

// Gregorian converts the date to midnight in loc
func (d ROCDate) Gregorian(loc *time.Location) (time.Time, error) {
	return dateutil.ParseROCDate(d.Year, d.Month, d.Day, loc)
}

// IsEmpty reports whether no component was supplied
func (d ROCDate) IsEmpty() bool {
	return d.Year == "" && d.Month == "" && d.Day == ""
}

func (d ROCDate) String() string {
	return d.Year + "/" + d.Month + "/" + d.Day
}

// BuyInput holds buyer inputs in base currency units
type BuyInput struct {
	EstimatedPrice decimal.Decimal `yaml:"estimated_price" json:"estimated_price"`

	// SelectedRate is the preset the caller has chosen; nil uses the policy default.
	SelectedRate *decimal.Decimal `yaml:"selected_rate,omitempty" json:"selected_rate,omitempty"`
	// ManualRatePercent overrides the preset when present and non-negative (e.g. 18 for 18%).
	ManualRatePercent *decimal.Decimal `yaml:"manual_rate_percent,omitempty" json:"manual_rate_percent,omitempty"`

	NotaryFee     decimal.Decimal `yaml:"notary_fee" json:"notary_fee"`
	ContractTax   decimal.Decimal `yaml:"contract_tax" json:"contract_tax"`
	GovernmentFee decimal.Decimal `yaml:"government_fee" json:"government_fee"`
	StampTax      decimal.Decimal `yaml:"stamp_tax" json:"stamp_tax"`
}

// SellInput holds seller inputs in base currency units
type SellInput struct {
	EstimatedPrice     decimal.Decimal `yaml:"estimated_price" json:"estimated_price"`
	AcquirePrice       decimal.Decimal `yaml:"acquire_price" json:"acquire_price"`
	DecorationFee      decimal.Decimal `yaml:"decoration_fee" json:"decoration_fee"`
	RegistrationDate   ROCDate         `yaml:"registration_date" json:"registration_date"`
	LandValueIncrement decimal.Decimal `yaml:"land_value_increment" json:"land_value_increment"`
	ContractTax        decimal.Decimal `yaml:"contract_tax" json:"contract_tax"`
	NotaryFee          decimal.Decimal `yaml:"notary_fee" json:"notary_fee"`

	// Actual commission paid on the sale; nil or non-positive falls back to the estimate.
	ManualSaleCommission *decimal.Decimal `yaml:"manual_sale_commission,omitempty" json:"manual_sale_commission,omitempty"`
	// Actual commission paid when the property was acquired.
	ManualAcquisitionCommission *decimal.Decimal `yaml:"manual_acquisition_commission,omitempty" json:"manual_acquisition_commission,omitempty"`
	AgentUsedAtAcquisition      bool             `yaml:"agent_used_at_acquisition" json:"agent_used_at_acquisition"`
}

// Transaction is a role plus the inputs for that role
type Transaction struct {
	Role Role      `yaml:"role" json:"role"`
	Buy  BuyInput  `yaml:"buy,omitempty" json:"buy,omitempty"`
	Sell SellInput `yaml:"sell,omitempty" json:"sell,omitempty"`
}

// EstimatedPrice returns the price for the transaction's role
func (t Transaction) EstimatedPrice() decimal.Decimal {
	if t.Role == RoleSeller {
		return t.Sell.EstimatedPrice
	}
	return t.Buy.EstimatedPrice
}
