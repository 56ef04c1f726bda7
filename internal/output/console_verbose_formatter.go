package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rpgo/realestate-estimator/internal/domain"
)

var (
	accentColor = lipgloss.Color("#0D47A1")
	subtleColor = lipgloss.Color("#666666")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true)

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	noteStyle = lipgloss.NewStyle().
			Foreground(subtleColor)

	totalStyle = lipgloss.NewStyle().
			Bold(true)
)

const labelWidth = 46

// ConsoleVerboseFormatter renders the detailed, styled console report via the pluggable interface.
type ConsoleVerboseFormatter struct {
	Assumptions []string
}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) withAssumptions(assumptions []string) Formatter {
	c.Assumptions = assumptions
	return c
}

func (c ConsoleVerboseFormatter) Format(est *domain.Estimate) ([]byte, error) {
	var buf bytes.Buffer
	d := BuildDisplay(est)

	fmt.Fprintln(&buf, titleStyle.Render(strings.ToUpper(d.Title)))
	fmt.Fprintln(&buf, strings.Repeat("=", labelWidth+16))
	if d.Empty() {
		fmt.Fprintln(&buf, d.Message)
		return buf.Bytes(), nil
	}

	writeLine(&buf, "Estimated price", FormatCurrency(est.EstimatedPrice))
	if est.Role == domain.RoleSeller {
		writeLine(&buf, "Acquisition price", FormatCurrency(est.AcquirePrice))
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, sectionStyle.Render("COST BREAKDOWN"))
	for _, row := range d.Rows {
		writeLine(&buf, row.Name, "NT$"+row.AmountText)
		if row.Note != "" {
			fmt.Fprintf(&buf, "    %s\n", noteStyle.Render("- "+row.Note))
		}
	}
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, totalStyle.Render(fmt.Sprintf("%-*s %s", labelWidth, "Total fees:", d.TotalText)))
	if est.Role == domain.RoleSeller {
		fmt.Fprintln(&buf, totalStyle.Render(fmt.Sprintf("%-*s %s", labelWidth, "Net profit:", d.ProfitText)))
	}
	fmt.Fprintln(&buf)

	if ft := est.FlatTax; ft != nil && ft.Determinable {
		fmt.Fprintln(&buf, sectionStyle.Render("FLAT TAX DETAIL"))
		writeLine(&buf, "Holding period", FormatYears(ft.HoldingYears))
		if ft.Tier != nil {
			writeLine(&buf, "Tax tier", ft.Tier.Description)
		}
		writeLine(&buf, "Taxable income", FormatCurrency(ft.TaxableIncome))
		writeLine(&buf, "Flat tax", FormatCurrency(ft.Amount))
		fmt.Fprintln(&buf)
	}

	a := AnalyzeEstimate(est)
	fmt.Fprintln(&buf, sectionStyle.Render("ANALYSIS"))
	writeLine(&buf, "Transaction costs", fmt.Sprintf("%s (%s of price)", FormatCurrency(a.TransactionCosts), FormatPercentage(a.CostRatio)))
	if a.CapitalGain != nil {
		writeLine(&buf, "Gain before costs", FormatCurrency(*a.CapitalGain))
	}
	if a.NetProceeds != nil {
		writeLine(&buf, "Net proceeds after fees", FormatCurrency(*a.NetProceeds))
	}
	if a.EffectiveTaxRate != nil {
		writeLine(&buf, "Flat tax as share of gain", FormatPercentage(*a.EffectiveTaxRate))
	}
	fmt.Fprintln(&buf)

	assumptions := c.Assumptions
	if len(assumptions) == 0 {
		assumptions = DefaultAssumptions
	}
	fmt.Fprintln(&buf, sectionStyle.Render("KEY ASSUMPTIONS"))
	for _, line := range assumptions {
		fmt.Fprintf(&buf, "• %s\n", line)
	}
	return buf.Bytes(), nil
}

func writeLine(buf *bytes.Buffer, label, value string) {
	fmt.Fprintf(buf, "  %s %s\n", labelStyle.Render(fmt.Sprintf("%-*s", labelWidth, label+":")), value)
}
