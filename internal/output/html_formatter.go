package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rpgo/realestate-estimator/internal/domain"
)

// HTMLFormatter produces a standalone HTML page for one estimate.
type HTMLFormatter struct {
	Assumptions []string
}

func (h HTMLFormatter) Name() string { return "html" }

func (h HTMLFormatter) withAssumptions(assumptions []string) Formatter {
	h.Assumptions = assumptions
	return h
}

//go:embed templates/estimate.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("estimate").Funcs(template.FuncMap{
	"curr":  FormatCurrency,
	"pct":   FormatPercentage,
	"years": FormatYears,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(est *domain.Estimate) ([]byte, error) {
	var buf bytes.Buffer

	assumptions := h.Assumptions
	if len(assumptions) == 0 {
		assumptions = DefaultAssumptions
	}

	data := struct {
		*domain.Estimate
		Display     Display
		Analysis    Analysis
		Assumptions []string
		IsSeller    bool
	}{est, BuildDisplay(est), AnalyzeEstimate(est), assumptions, est.Role == domain.RoleSeller}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
