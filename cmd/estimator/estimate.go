package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rpgo/realestate-estimator/internal/domain"
	"github.com/rpgo/realestate-estimator/internal/form"
	"github.com/rpgo/realestate-estimator/internal/output"
)

func (a *app) buyCmd() *cobra.Command {
	var f form.BuyForm
	cmd := &cobra.Command{
		Use:   "buy",
		Short: "Estimate the costs of buying a home",
		Example: `  estimator buy --price 1000 --rate 0.3
  estimator buy --price 1000 --manual-percent 18 --notary 1.8 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := f.ToInput()
			if warning := a.parser.SelectedRateWarning(a.config, in); warning != "" {
				a.logger.Warn(warning)
			}
			if isConsole(a.format()) {
				quote := a.engine.BuyerCalc.DownPayment(in)
				fmt.Fprintf(cmd.OutOrStdout(), "Down payment preview (萬): %s\n\n",
					output.DownPaymentPreview(in.EstimatedPrice, quote.Amount))
			}
			return a.emit(cmd, a.engine.CalculateBuy(in))
		},
	}

	fieldVar(cmd, &f.EstimatedPrice, "price", "estimated total price (萬)")
	fieldVar(cmd, &f.DownPaymentRate, "rate", "down payment preset as a fraction, e.g. 0.3")
	fieldVar(cmd, &f.ManualDownPaymentPercent, "manual-percent", "manual down payment percentage, overrides --rate")
	fieldVar(cmd, &f.NotaryFee, "notary", "notary fee (萬)")
	fieldVar(cmd, &f.ContractTax, "contract-tax", "deed tax (萬)")
	fieldVar(cmd, &f.GovernmentFee, "gov-fee", "government registration fee (萬)")
	fieldVar(cmd, &f.StampTax, "stamp-tax", "stamp tax (萬)")
	return cmd
}

func (a *app) sellCmd() *cobra.Command {
	var (
		f    form.SellForm
		wrap bool
	)
	cmd := &cobra.Command{
		Use:   "sell",
		Short: "Estimate the costs, flat tax and profit of selling a home",
		Example: `  estimator sell --price 1000 --acquire 600 --registered 111/03/15 --agent-at-acquisition
  estimator sell --price 1000 --acquire 600 --year 108 --month 5 --day 20 --sale-commission 30`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if wrap {
				f = f.WithWrappedDate()
			}
			return a.emit(cmd, a.engine.CalculateSell(f.ToInput()))
		},
	}

	fl := cmd.Flags()
	fieldVar(cmd, &f.EstimatedPrice, "price", "estimated sale price (萬)")
	fieldVar(cmd, &f.AcquirePrice, "acquire", "acquisition price (萬)")
	fieldVar(cmd, &f.DecorationFee, "decoration", "decoration cost (萬)")
	fl.StringVar(&f.RegistrationDate, "registered", "", "ROC registration date as YYY/MM/DD, e.g. 111/03/15")
	fieldVar(cmd, &f.RegisterYear, "year", "ROC registration year")
	fieldVar(cmd, &f.RegisterMonth, "month", "registration month")
	fieldVar(cmd, &f.RegisterDay, "day", "registration day")
	fieldVar(cmd, &f.LandValueIncrement, "land-increment", "land value increment tax (萬)")
	fieldVar(cmd, &f.ContractTax, "contract-tax", "contract tax (萬)")
	fieldVar(cmd, &f.NotaryFee, "notary", "notary fee (萬)")
	fieldVar(cmd, &f.ActualSaleCommission, "sale-commission", "agent commission actually paid on this sale (萬)")
	fieldVar(cmd, &f.ActualAcquisitionCommission, "acquisition-commission", "agent commission actually paid at acquisition (萬)")
	fl.BoolVar(&f.AgentUsedAtAcquisition, "agent-at-acquisition", false, "an agent was used when the home was bought")
	fl.BoolVar(&wrap, "wrap-date", false, "wrap out-of-range month and day values instead of rejecting the date")
	cmd.MarkFlagsMutuallyExclusive("registered", "year")
	return cmd
}

func (a *app) fileCmd() *cobra.Command {
	var wrap bool
	cmd := &cobra.Command{
		Use:   "file <transaction.yaml>",
		Short: "Estimate a transaction described in a YAML or JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tf, err := a.parser.LoadTransaction(args[0])
			if err != nil {
				return err
			}
			if wrap {
				tf.Sell = tf.Sell.WithWrappedDate()
			}
			tx, err := tf.ToTransaction()
			if err != nil {
				return err
			}
			a.logger.Debug("loaded transaction", zap.String("path", args[0]), zap.String("role", string(tx.Role)))

			if tx.Role == domain.RoleBuyer {
				if warning := a.parser.SelectedRateWarning(a.config, tx.Buy); warning != "" {
					a.logger.Warn(warning)
				}
			}
			return a.emit(cmd, a.engine.Calculate(tx))
		},
	}
	cmd.Flags().BoolVar(&wrap, "wrap-date", false, "wrap out-of-range month and day values instead of rejecting the date")
	return cmd
}

func (a *app) format() string {
	return a.v.GetString("output.format")
}

// emit writes the estimate to stdout, or to a report file when an output directory is set
func (a *app) emit(cmd *cobra.Command, est *domain.Estimate) error {
	if dir := a.v.GetString("output.dir"); dir != "" {
		path, err := output.GenerateReport(est, a.format(), dir, a.config)
		if err != nil {
			return err
		}
		a.logger.Info("report written", zap.String("path", path))
		fmt.Fprintf(cmd.OutOrStdout(), "Report saved to: %s\n", path)
		return nil
	}

	data, err := output.Render(est, a.format(), a.config)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func isConsole(format string) bool {
	return strings.HasPrefix(output.NormalizeFormatName(format), "console")
}
