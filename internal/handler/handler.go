package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/davron17/finflow/internal/forecast"
	"github.com/davron17/finflow/internal/service"
)

type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// statusForError maps engine precondition failures to client errors and
// everything else to a server error.
func statusForError(err error) int {
	switch {
	case errors.Is(err, forecast.ErrEmptyInput),
		errors.Is(err, forecast.ErrInsufficientHistory),
		errors.Is(err, forecast.ErrNoForecast):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, forecast.ErrEmptyInput):
		return "insufficient data: upload transactions first"
	case errors.Is(err, forecast.ErrForecastUnavailable):
		return "forecast generation failed"
	default:
		return err.Error()
	}
}
