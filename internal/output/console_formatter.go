package output

import (
	"bytes"
	"fmt"

	"github.com/rpgo/realestate-estimator/internal/domain"
)

// ConsoleFormatter provides a concise, unstyled console summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(est *domain.Estimate) ([]byte, error) {
	var buf bytes.Buffer
	d := BuildDisplay(est)

	fmt.Fprintln(&buf, d.Title)
	if d.Empty() {
		fmt.Fprintln(&buf, d.Message)
		return buf.Bytes(), nil
	}
	for _, row := range d.Rows {
		fmt.Fprintf(&buf, "%s: %s\n", row.Name, row.AmountText)
	}
	fmt.Fprintf(&buf, "Total: %s\n", d.TotalText)
	if est.Role == domain.RoleSeller {
		fmt.Fprintf(&buf, "Profit: %s\n", d.ProfitText)
	}
	return buf.Bytes(), nil
}
