package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/rpgo/realestate-estimator/internal/calculation"
	"github.com/rpgo/realestate-estimator/internal/config"
	"github.com/rpgo/realestate-estimator/internal/domain"
	"github.com/rpgo/realestate-estimator/internal/form"
	"github.com/rpgo/realestate-estimator/internal/output"
)

type errorResponse struct {
	Error string `json:"error"`
}

// estimateResponse is the JSON estimate plus any non-fatal warnings about the input
type estimateResponse struct {
	output.EstimateReport
	Warnings []string `json:"warnings,omitempty"`
}

type downPaymentResponse struct {
	Rate       string `json:"rate"`
	Manual     bool   `json:"manual"`
	Amount     string `json:"amount"`
	LoanAmount string `json:"loan_amount"`
	// Preview is the down payment in ten-thousands, or "--" without a price
	Preview string `json:"preview"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleConfig(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.engine.Config)
}

func (s *Server) handleTiers(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, calculation.NewTierTable(s.engine.Config.Rates))
}

// handleDownPayment previews the down payment from query parameters in ten-thousands:
// price, rate (preset fraction) and manual_percent.
func (s *Server) handleDownPayment(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	in := form.BuyForm{
		EstimatedPrice:           form.Field(q.Get("price")),
		DownPaymentRate:          form.Field(q.Get("rate")),
		ManualDownPaymentPercent: form.Field(q.Get("manual_percent")),
	}.ToInput()

	quote := s.engine.BuyerCalc.DownPayment(in)
	s.writeJSON(w, http.StatusOK, downPaymentResponse{
		Rate:       quote.Rate.String(),
		Manual:     quote.Manual,
		Amount:     quote.Amount.StringFixed(0),
		LoanAmount: quote.LoanAmount.StringFixed(0),
		Preview:    output.DownPaymentPreview(in.EstimatedPrice, quote.Amount),
	})
}

func (s *Server) handleBuy(w http.ResponseWriter, r *http.Request) {
	var f form.BuyForm
	if !s.decode(w, r, &f) {
		return
	}
	s.respond(w, r, domain.Transaction{Role: domain.RoleBuyer, Buy: f.ToInput()})
}

func (s *Server) handleSell(w http.ResponseWriter, r *http.Request) {
	var f form.SellForm
	if !s.decode(w, r, &f) {
		return
	}
	if wrapDate(r) {
		f = f.WithWrappedDate()
	}
	s.respond(w, r, domain.Transaction{Role: domain.RoleSeller, Sell: f.ToInput()})
}

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	var f form.TransactionForm
	if !s.decode(w, r, &f) {
		return
	}
	if err := s.parser.ValidateTransaction(&f); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if wrapDate(r) {
		f.Sell = f.Sell.WithWrappedDate()
	}
	tx, err := f.ToTransaction()
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("%w: %v", config.ErrUnknownRole, err))
		return
	}
	s.respond(w, r, tx)
}

// respond calculates and writes the estimate in the format named by the "format"
// query parameter, JSON by default.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, tx domain.Transaction) {
	est := s.engine.Calculate(tx)

	format := r.URL.Query().Get("format")
	if format == "" || output.NormalizeFormatName(format) == "json" {
		resp := estimateResponse{EstimateReport: output.NewEstimateReport(est)}
		if tx.Role == domain.RoleBuyer {
			if warning := s.parser.SelectedRateWarning(&s.engine.Config, tx.Buy); warning != "" {
				resp.Warnings = append(resp.Warnings, warning)
			}
		}
		s.writeJSON(w, http.StatusOK, resp)
		return
	}

	data, err := output.Render(est, format, &s.engine.Config)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, output.ErrUnsupportedFormat) {
			status = http.StatusBadRequest
		}
		s.writeError(w, status, err)
		return
	}
	contentType := mime.TypeByExtension("." + output.ExtensionFor(format))
	if contentType == "" {
		contentType = "text/plain; charset=utf-8"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.logger.Warn("failed to write response", zap.Error(err))
	}
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return false
	}
	return true
}

func wrapDate(r *http.Request) bool {
	wrap, _ := strconv.ParseBool(r.URL.Query().Get("wrap_date"))
	return wrap
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.logger.Debug("request rejected", zap.Int("status", status), zap.Error(err))
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}
