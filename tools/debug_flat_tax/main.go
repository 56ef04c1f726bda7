package main

import (
	"fmt"
	"os"
	"time"

	calc "github.com/rpgo/realestate-estimator/internal/calculation"
	"github.com/rpgo/realestate-estimator/internal/config"
	"github.com/rpgo/realestate-estimator/internal/domain"
)

// Prints the taxable income terms of a seller transaction, then the flat tax it
// would owe had the property been registered 0..12 years before today.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: debug_flat_tax <transaction-file> [config-file]")
		return
	}
	p := config.NewInputParser()
	cfg := p.CreateExampleConfiguration()
	if len(os.Args) > 2 {
		var err error
		if cfg, err = p.LoadFromFile(os.Args[2]); err != nil {
			panic(err)
		}
	}
	tf, err := p.LoadTransaction(os.Args[1])
	if err != nil {
		panic(err)
	}
	tx, err := tf.ToTransaction()
	if err != nil {
		panic(err)
	}
	if tx.Role != domain.RoleSeller {
		fmt.Println("flat tax only applies to sellers")
		return
	}

	engine := calc.NewCalculationEngineWithConfig(*cfg)
	in := tx.Sell
	sale := engine.SellerCalc.SaleCommission(in)
	acquisition := engine.SellerCalc.AcquisitionCommission(in)
	base := calc.FlatTaxInput{
		SellPrice:            in.EstimatedPrice,
		BuyPrice:             in.AcquirePrice,
		DecorationFee:        in.DecorationFee,
		DeductibleCommission: sale.Amount.Add(acquisition.Amount),
		LandValueIncrement:   in.LandValueIncrement,
		ContractTax:          in.ContractTax,
		NotaryFee:            in.NotaryFee,
		RegistrationDate:     in.RegistrationDate,
	}

	fmt.Printf("Sale commission: %s (%s)\n", sale.Amount.StringFixed(0), sale.Source)
	fmt.Printf("Acquisition commission: %s (%s)\n", acquisition.Amount.StringFixed(0), acquisition.Source)
	for _, d := range cfg.DeductibleCosts {
		fmt.Printf("Deductible %s: enabled\n", d)
	}
	fmt.Printf("Taxable income: %s\n", engine.FlatTaxCalc.TaxableIncome(base).StringFixed(0))

	actual := engine.FlatTaxCalc.Calculate(base)
	fmt.Printf("As entered (%s): determinable=%v years=%.3f tax=%s\n\n",
		in.RegistrationDate, actual.Determinable, actual.HoldingYears, actual.Amount.StringFixed(0))

	// Header
	fmt.Println("Years,Registered,Rate,FlatTax")
	now := time.Now()
	for years := 0; years <= 12; years++ {
		in := base
		in.RegistrationDate = domain.ROCDateFromTime(now.AddDate(-years, 0, -1))
		res := engine.FlatTaxCalc.Calculate(in)
		rate := "-"
		if res.Tier != nil {
			rate = res.Tier.Rate.String()
		}
		fmt.Printf("%d,%s,%s,%s\n", years, in.RegistrationDate, rate, res.Amount.StringFixed(0))
	}
}
