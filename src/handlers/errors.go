package handlers

import (
	"errors"
	"net/http"

	"github.com/username/honorarios/src/database"
	"github.com/username/honorarios/src/logger"
	"github.com/username/honorarios/src/services"
	"github.com/username/honorarios/src/utils"
)

// sendServiceError maps a service error to a status code and writes it.
func sendServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case services.IsClientError(err):
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, services.ErrNoProfile):
		utils.SendJSONError(w, "profile not found", http.StatusNotFound)
	case errors.Is(err, database.ErrTransactionNotFound):
		utils.SendJSONError(w, "transaction not found", http.StatusNotFound)
	default:
		logger.FromContext(r.Context()).Error("Request failed", "path", r.URL.Path, "error", err)
		utils.SendJSONError(w, "internal server error", http.StatusInternalServerError)
	}
}
