package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/davron17/finflow/internal/analytics"
)

type forecastRequest struct {
	InitialBalance float64 `json:"initial_balance"`
	ForecastDays   int     `json:"forecast_days"`
}

type liquidityRequest struct {
	InitialBalance float64 `json:"initial_balance"`
	PeriodDays     int     `json:"period_days"`
	ExpenseAmount  float64 `json:"expense_amount"`
}

type dashboardRequest struct {
	FilterType string   `json:"filter_type"`
	StartDate  *string  `json:"start_date"`
	EndDate    *string  `json:"end_date"`
	Category   string   `json:"category"`
	MinAmount  *float64 `json:"min_amount"`
	MaxAmount  *float64 `json:"max_amount"`
}

// Forecast runs the hybrid balance projection
func (h *Handler) Forecast(w http.ResponseWriter, r *http.Request) {
	var req forecastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.RunForecast(r.Context(), req.InitialBalance, req.ForecastDays)
	if err != nil {
		respondError(w, statusForError(err), userMessage(err))
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// AnalyzeLiquidity runs the liquidity analysis use case
func (h *Handler) AnalyzeLiquidity(w http.ResponseWriter, r *http.Request) {
	var req liquidityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	analysis, err := h.svc.AnalyzeLiquidity(r.Context(), req.InitialBalance, req.PeriodDays, req.ExpenseAmount)
	if err != nil {
		respondError(w, statusForError(err), userMessage(err))
		return
	}
	respondJSON(w, http.StatusOK, analysis)
}

// StressTest projects the pessimistic fixed-shock scenario
func (h *Handler) StressTest(w http.ResponseWriter, r *http.Request) {
	horizonDays, _ := strconv.Atoi(r.URL.Query().Get("days"))
	initialBalance, _ := strconv.ParseFloat(r.URL.Query().Get("initial_balance"), 64)

	result, err := h.svc.RunStressTest(r.Context(), initialBalance, horizonDays)
	if err != nil {
		respondError(w, statusForError(err), userMessage(err))
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Anomalies lists category spending anomalies
func (h *Handler) Anomalies(w http.ResponseWriter, r *http.Request) {
	anomalies, err := h.svc.DetectAnomalies(r.Context())
	if err != nil {
		respondError(w, statusForError(err), userMessage(err))
		return
	}
	respondJSON(w, http.StatusOK, anomalies)
}

// Dashboard returns the aggregated dashboard payload
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	var req dashboardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	filter := analytics.Filter{
		Type:      req.FilterType,
		Category:  req.Category,
		MinAmount: req.MinAmount,
		MaxAmount: req.MaxAmount,
	}
	if req.StartDate != nil {
		start, err := time.Parse("2006-01-02", *req.StartDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "start_date must be YYYY-MM-DD")
			return
		}
		filter.StartDate = &start
	}
	if req.EndDate != nil {
		end, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "end_date must be YYYY-MM-DD")
			return
		}
		filter.EndDate = &end
	}

	data, err := h.svc.Dashboard(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, data)
}

// FilterOptions reports selectable dashboard filter ranges
func (h *Handler) FilterOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.svc.FilterOptions(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, options)
}
