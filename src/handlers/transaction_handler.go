package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/username/honorarios/src/logger"
	"github.com/username/honorarios/src/models"
	"github.com/username/honorarios/src/security/validation"
	"github.com/username/honorarios/src/services"
	"github.com/username/honorarios/src/utils"
)

type TransactionHandler struct {
	reportService services.ReportService
	validate      *validator.Validate
}

func NewTransactionHandler(reportService services.ReportService, validate *validator.Validate) *TransactionHandler {
	return &TransactionHandler{reportService: reportService, validate: validate}
}

// HandleListTransactions serves GET /api/transactions?status=&year=&month=&q=.
func (h *TransactionHandler) HandleListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "user ID not found in context", http.StatusUnauthorized)
		return
	}
	q := r.URL.Query()
	txs, err := h.reportService.ListTransactions(r.Context(), userID,
		q.Get("status"), q.Get("year"), q.Get("month"), q.Get("q"))
	if err != nil {
		sendServiceError(w, r, err)
		return
	}
	logger.FromContext(r.Context()).Debug("Listed transactions", "userID", userID, "count", len(txs))
	utils.SendJSON(w, r, txs, http.StatusOK)
}

// HandleSaveTransaction serves POST /api/transactions.
func (h *TransactionHandler) HandleSaveTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "user ID not found in context", http.StatusUnauthorized)
		return
	}
	var tx models.Transaction
	if err := json.NewDecoder(r.Body).Decode(&tx); err != nil {
		utils.SendJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	tx = validation.SanitizeTransaction(tx)
	if err := h.validate.Struct(tx); err != nil {
		utils.SendJSONError(w, "validation failed: "+validation.Describe(err), http.StatusBadRequest)
		return
	}
	// Aliases such as "closed" are stored under their canonical name.
	tx.Status, _ = models.ParseStatus(string(tx.Status))

	saved, err := h.reportService.SaveTransaction(r.Context(), userID, tx)
	if err != nil {
		sendServiceError(w, r, err)
		return
	}
	logger.FromContext(r.Context()).Info("Transaction saved", "userID", userID, "transactionID", saved.ID)
	utils.SendJSON(w, r, saved, http.StatusCreated)
}

// HandleDeleteTransaction serves DELETE /api/transactions/{id}.
func (h *TransactionHandler) HandleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "user ID not found in context", http.StatusUnauthorized)
		return
	}
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		utils.SendJSONError(w, "transaction id required", http.StatusBadRequest)
		return
	}
	if err := h.reportService.DeleteTransaction(r.Context(), userID, id); err != nil {
		sendServiceError(w, r, err)
		return
	}
	logger.FromContext(r.Context()).Info("Transaction deleted", "userID", userID, "transactionID", id)
	w.WriteHeader(http.StatusNoContent)
}
