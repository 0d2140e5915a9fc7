package handlers

import (
	"net/http"

	"github.com/username/honorarios/src/services"
	"github.com/username/honorarios/src/utils"
)

type ReportHandler struct {
	reportService services.ReportService
}

func NewReportHandler(reportService services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "user ID not found in context", http.StatusUnauthorized)
		return
	}
	result, err := h.reportService.Summary(r.Context(), userID)
	if err != nil {
		sendServiceError(w, r, err)
		return
	}
	utils.SendJSON(w, r, result, http.StatusOK)
}

// HandleGetFiltered serves GET /api/reports/filtered?year=&status=.
func (h *ReportHandler) HandleGetFiltered(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "user ID not found in context", http.StatusUnauthorized)
		return
	}
	q := r.URL.Query()
	fees, err := h.reportService.Filtered(r.Context(), userID, q.Get("year"), q.Get("status"))
	if err != nil {
		sendServiceError(w, r, err)
		return
	}
	utils.SendJSON(w, r, fees, http.StatusOK)
}

func (h *ReportHandler) HandleGetAgentReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "user ID not found in context", http.StatusUnauthorized)
		return
	}
	q := r.URL.Query()
	report, err := h.reportService.AgentReport(r.Context(), userID, q.Get("year"), q.Get("month"))
	if err != nil {
		sendServiceError(w, r, err)
		return
	}
	utils.SendJSON(w, r, report, http.StatusOK)
}

func (h *ReportHandler) HandleGetTypeReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "user ID not found in context", http.StatusUnauthorized)
		return
	}
	report, err := h.reportService.TypeReport(r.Context(), userID)
	if err != nil {
		sendServiceError(w, r, err)
		return
	}
	utils.SendJSON(w, r, report, http.StatusOK)
}

func (h *ReportHandler) HandleGetChartReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "user ID not found in context", http.StatusUnauthorized)
		return
	}
	report, err := h.reportService.ChartReport(r.Context(), userID, r.URL.Query().Get("status"))
	if err != nil {
		sendServiceError(w, r, err)
		return
	}
	utils.SendJSON(w, r, report, http.StatusOK)
}
