package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/rpgo/realestate-estimator/internal/calculation"
	"github.com/rpgo/realestate-estimator/internal/output"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	currentStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
)

func (a *app) tiersCmd() *cobra.Command {
	var years float64
	cmd := &cobra.Command{
		Use:   "tiers",
		Short: "Show the flat tax holding-period bands",
		Example: `  estimator tiers
  estimator tiers --years 4.5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table := calculation.NewTierTable(a.config.Rates)
			highlight := -1
			if cmd.Flags().Changed("years") {
				resolved := table.Resolve(years)
				for i := range table {
					if table[i].MinYears == resolved.MinYears {
						highlight = i
					}
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%-14s %-8s %s", "HOLDING", "RATE", "DESCRIPTION")))
			for i, tier := range table {
				span := fmt.Sprintf("%g-%g y", tier.MinYears, tier.MaxYears)
				if tier.MaxYears == 0 {
					span = fmt.Sprintf("%g+ y", tier.MinYears)
				}
				line := fmt.Sprintf("%-14s %-8s %s", span, output.FormatPercentage(tier.Rate), tier.Description)
				if i == highlight {
					line = currentStyle.Render(line + "  <- " + output.FormatYears(years))
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&years, "years", 0, "highlight the band for this holding period")
	return cmd
}
