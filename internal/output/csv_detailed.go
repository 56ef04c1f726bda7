package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/realestate-estimator/internal/domain"
)

// CSVDetailedExporter writes one row per displayed line item, in display order, followed by the total.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(est *domain.Estimate) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Kind", "Name", "Amount", "Note"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, item := range VisibleItems(est) {
		row := []string{string(item.Kind), item.Name, item.Amount.StringFixed(0), item.Note}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	if est.Calculated {
		if err := w.Write([]string{"total", "Total fees", est.TotalFee.StringFixed(0), ""}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
