package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/username/honorarios/src/logger"
)

// GenerateETag creates a SHA256 hash of the JSON representation of the data.
func GenerateETag(data interface{}) (string, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to marshal data for ETag generation: %w", err)
	}
	hash := sha256.Sum256(jsonData)
	return hex.EncodeToString(hash[:]), nil
}

// SendJSONError sends a JSON formatted error response.
func SendJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	logger.L.Warn("Sending JSON error to client", "message", message, "statusCode", statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// SendJSON writes data with an ETag header and answers 304 when the client
// already holds the same representation.
func SendJSON(w http.ResponseWriter, r *http.Request, data interface{}, statusCode int) {
	etag, err := GenerateETag(data)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to generate ETag", "error", err)
		SendJSONError(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
	quoted := `"` + etag + `"`
	w.Header().Set("ETag", quoted)
	if statusCode == http.StatusOK && r.Header.Get("If-None-Match") == quoted {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContext(r.Context()).Error("Failed to encode JSON response", "error", err)
	}
}
