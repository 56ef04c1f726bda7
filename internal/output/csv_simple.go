package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rpgo/realestate-estimator/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per estimate).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(est *domain.Estimate) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Role", "Calculated", "EstimatedPrice", "AcquirePrice", "TotalFee", "Profit", "FlatTax", "TaxableIncome", "HoldingYears", "TaxRate"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	row := []string{
		string(est.Role),
		strconv.FormatBool(est.Calculated),
		est.EstimatedPrice.StringFixed(0),
		est.AcquirePrice.StringFixed(0),
		est.TotalFee.StringFixed(0),
		"", "", "", "", "",
	}
	if est.Profit != nil {
		row[5] = est.Profit.StringFixed(0)
	}
	if ft := est.FlatTax; ft != nil {
		row[6] = ft.Amount.StringFixed(0)
		if ft.Determinable {
			row[7] = ft.TaxableIncome.StringFixed(0)
			row[8] = strconv.FormatFloat(ft.HoldingYears, 'f', 2, 64)
		}
		if ft.Tier != nil {
			row[9] = ft.Tier.Rate.String()
		}
	}
	if err := w.Write(row); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
