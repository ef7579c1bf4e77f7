package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/davron17/finflow/internal/models"
)

// maxUploadBytes caps statement uploads at 10 MiB.
const maxUploadBytes = 10 << 20

type createTransactionRequest struct {
	Date        string          `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	IsExpense   bool            `json:"is_expense"`
	IsFixed     bool            `json:"is_fixed"`
}

// ListTransactions returns the authenticated user's transactions
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	txns, err := h.svc.ListTransactions(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if txns == nil {
		txns = []models.Transaction{}
	}
	respondJSON(w, http.StatusOK, txns)
}

// CreateTransaction records one transaction
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		respondError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	txn, err := h.svc.AddTransaction(r.Context(), models.Transaction{
		Date:        date,
		Amount:      req.Amount,
		Description: req.Description,
		Category:    req.Category,
		IsExpense:   req.IsExpense,
		IsFixed:     req.IsFixed,
	})
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, txn)
}

// ImportStatement accepts a CSV or XML statement upload
func (h *Handler) ImportStatement(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart upload")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	summary, err := h.svc.ImportStatement(r.Context(), header.Filename, file)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
