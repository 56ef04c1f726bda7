package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/rpgo/realestate-estimator/internal/calculation"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	engine := calculation.NewCalculationEngine()
	engine.FlatTaxCalc.Now = func() time.Time { return testNow }
	return New(engine, zaptest.NewLogger(t))
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody(t, rec)["status"])
}

func TestBuyEstimate(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodPost, "/api/estimates/buy", `{"estimated_price": 1000, "down_payment_rate": "0.3"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decodeBody(t, rec)
	assert.Equal(t, "buy", body["role"])
	assert.Equal(t, true, body["calculated"])
	assert.Equal(t, "3,200,000", body["total_text"])
	assert.Nil(t, body["profit"])
	assert.Nil(t, body["warnings"])

	display := body["display"].([]any)
	require.Len(t, display, 2)
	assert.Equal(t, "down_payment", display[0].(map[string]any)["kind"])
}

func TestBuyEstimate_WarnsOnNonPresetRate(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodPost, "/api/estimates/buy", `{"estimated_price": 1000, "down_payment_rate": 0.33}`)
	require.Equal(t, http.StatusOK, rec.Code)

	warnings := decodeBody(t, rec)["warnings"].([]any)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "not one of the configured presets")
}

func TestBuyEstimate_EmptyPrice(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodPost, "/api/estimates/buy", `{"estimated_price": ""}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, false, body["calculated"])
	assert.Equal(t, "Enter a valid estimated total price.", body["message"])
	assert.Equal(t, "--", body["total_text"])
	assert.Empty(t, body["display"])
}

func TestSellEstimate(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodPost, "/api/estimates/sell",
		`{"estimated_price": 1000, "acquire_price": 600, "registration_date": "111/06/01"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "sell", body["role"])
	assert.Equal(t, "1,660,000", body["total_text"])
	assert.Equal(t, "2,340,000", body["profit_text"])

	flatTax := body["flat_tax"].(map[string]any)
	assert.Equal(t, true, flatTax["determinable"])
	assert.Equal(t, "1260000", flatTax["amount"])
}

func TestSellEstimate_WrapDate(t *testing.T) {
	s := newTestServer(t)
	body := `{"estimated_price": 1000, "acquire_price": 600, "register_year": "111", "register_month": "13", "register_day": "1"}`

	rec := do(t, s, http.MethodPost, "/api/estimates/sell", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["flat_tax"].(map[string]any)["determinable"])

	// month 13 wraps to January, 111/01/01 is 2022-01-01
	rec = do(t, s, http.MethodPost, "/api/estimates/sell?wrap_date=true", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["flat_tax"].(map[string]any)["determinable"])
}

func TestEstimate_RoleInBody(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/estimates", `{"role": "seller", "sell": {"estimated_price": 1000, "acquire_price": 600, "registration_date": "111/06/01"}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "sell", decodeBody(t, rec)["role"])

	rec = do(t, s, http.MethodPost, "/api/estimates", `{"role": "landlord"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "unknown transaction role")
}

func TestEstimate_BadBody(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodPost, "/api/estimates/buy", `{"estimated_price":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "invalid request body")
}

func TestEstimate_AlternateFormats(t *testing.T) {
	s := newTestServer(t)
	body := `{"estimated_price": 1000}`

	rec := do(t, s, http.MethodPost, "/api/estimates/buy?format=html", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html"))
	assert.Contains(t, rec.Body.String(), "Buyer cost breakdown")

	rec = do(t, s, http.MethodPost, "/api/estimates/buy?format=csv-items", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "Kind,Name,Amount,Note"))

	rec = do(t, s, http.MethodPost, "/api/estimates/buy?format=pdf", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTiers(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/api/tiers", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var tiers []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tiers))
	require.Len(t, tiers, 4)
	assert.Equal(t, "0.45", tiers[0]["rate"])
	assert.Equal(t, "Held 10 years or more (15% rate)", tiers[3]["description"])
}

func TestConfig(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/api/config", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	rates := body["rates"].(map[string]any)
	assert.Equal(t, "0.02", rates["buyer_commission_rate"])
	assert.Len(t, body["deductible_costs"], 5)
}

func TestDownPaymentPreview(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/down-payment?price=1000&rate=0.2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "200", body["preview"])
	assert.Equal(t, "8000000", body["loan_amount"])
	assert.Equal(t, false, body["manual"])

	rec = do(t, s, http.MethodGet, "/api/down-payment?price=1000&rate=0.2&manual_percent=18", "")
	body = decodeBody(t, rec)
	assert.Equal(t, "180", body["preview"])
	assert.Equal(t, true, body["manual"])

	rec = do(t, s, http.MethodGet, "/api/down-payment", "")
	assert.Equal(t, "--", decodeBody(t, rec)["preview"])
}
