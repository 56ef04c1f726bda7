package output

import (
	"encoding/json"

	"github.com/rpgo/realestate-estimator/internal/domain"
)

// JSONFormatter serializes the estimate as pretty-printed JSON, together with
// the rows a client should display.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

// EstimateReport is the JSON shape shared by the json format and the HTTP API
type EstimateReport struct {
	*domain.Estimate
	Display    []DisplayRow `json:"display"`
	Message    string       `json:"message,omitempty"`
	TotalText  string       `json:"total_text"`
	ProfitText string       `json:"profit_text,omitempty"`
}

// NewEstimateReport pairs an estimate with its display rows
func NewEstimateReport(est *domain.Estimate) EstimateReport {
	d := BuildDisplay(est)
	rows := d.Rows
	if rows == nil {
		rows = []DisplayRow{}
	}
	return EstimateReport{
		Estimate:   est,
		Display:    rows,
		Message:    d.Message,
		TotalText:  d.TotalText,
		ProfitText: d.ProfitText,
	}
}

func (j JSONFormatter) Format(est *domain.Estimate) ([]byte, error) {
	return json.MarshalIndent(NewEstimateReport(est), "", "  ")
}
