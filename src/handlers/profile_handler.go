package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/username/honorarios/src/models"
	"github.com/username/honorarios/src/security/validation"
	"github.com/username/honorarios/src/services"
	"github.com/username/honorarios/src/utils"
)

type ProfileHandler struct {
	reportService   services.ReportService
	validate        *validator.Validate
	defaultCurrency string
}

func NewProfileHandler(reportService services.ReportService, validate *validator.Validate, defaultCurrency string) *ProfileHandler {
	return &ProfileHandler{reportService: reportService, validate: validate, defaultCurrency: defaultCurrency}
}

func (h *ProfileHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "user ID not found in context", http.StatusUnauthorized)
		return
	}
	profile, err := h.reportService.GetProfile(r.Context(), userID)
	if err != nil {
		sendServiceError(w, r, err)
		return
	}
	utils.SendJSON(w, r, profile, http.StatusOK)
}

// HandleSaveProfile serves PUT /api/profile. A blank currency takes the configured default.
func (h *ProfileHandler) HandleSaveProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "user ID not found in context", http.StatusUnauthorized)
		return
	}
	var p models.Profile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		utils.SendJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	p.UID = validation.SanitizeText(p.UID)
	p.Email = strings.ToLower(validation.SanitizeText(p.Email))
	p.Currency = strings.ToUpper(validation.SanitizeText(p.Currency))
	if p.Currency == "" {
		p.Currency = h.defaultCurrency
	}
	if err := h.validate.Struct(p); err != nil {
		utils.SendJSONError(w, "validation failed: "+validation.Describe(err), http.StatusBadRequest)
		return
	}
	if err := h.reportService.SaveProfile(r.Context(), userID, p); err != nil {
		sendServiceError(w, r, err)
		return
	}
	utils.SendJSON(w, r, p, http.StatusOK)
}
