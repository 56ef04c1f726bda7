package calculation

import (
	"testing"
	"time"

	"github.com/rpgo/realestate-estimator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// testNow is the fixed clock used across calculation tests
var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func decPtr(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

// registeredYearsAgo returns the ROC date that lies the given calendar years before testNow
func registeredYearsAgo(years int) domain.ROCDate {
	return domain.ROCDateFromTime(testNow.AddDate(-years, 0, 0))
}

func newTestEngine() *CalculationEngine {
	engine := NewCalculationEngine()
	engine.FlatTaxCalc.Now = fixedClock(testNow)
	return engine
}

func assertDecimal(t *testing.T, expected, actual decimal.Decimal) {
	t.Helper()
	assert.Truef(t, expected.Equal(actual), "expected %s, got %s", expected.String(), actual.String())
}

func itemKinds(items []domain.FeeItem) []domain.FeeKind {
	kinds := make([]domain.FeeKind, 0, len(items))
	for _, item := range items {
		kinds = append(kinds, item.Kind)
	}
	return kinds
}

func findItem(t *testing.T, items []domain.FeeItem, kind domain.FeeKind) domain.FeeItem {
	t.Helper()
	for _, item := range items {
		if item.Kind == kind {
			return item
		}
	}
	t.Fatalf("item %s not found in %v", kind, itemKinds(items))
	return domain.FeeItem{}
}
