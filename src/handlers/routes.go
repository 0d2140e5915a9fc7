package handlers

import "net/http"

// NewAPIRouter registers every /api route. All routes require the X-User-ID header.
func NewAPIRouter(tx *TransactionHandler, profile *ProfileHandler, report *ReportHandler) *http.ServeMux {
	apiRouter := http.NewServeMux()
	withUser := UserMiddleware

	apiRouter.HandleFunc("GET /api/transactions", withUser(tx.HandleListTransactions))
	apiRouter.HandleFunc("POST /api/transactions", withUser(tx.HandleSaveTransaction))
	apiRouter.HandleFunc("DELETE /api/transactions/{id}", withUser(tx.HandleDeleteTransaction))
	apiRouter.HandleFunc("GET /api/profile", withUser(profile.HandleGetProfile))
	apiRouter.HandleFunc("PUT /api/profile", withUser(profile.HandleSaveProfile))
	apiRouter.HandleFunc("GET /api/reports/summary", withUser(report.HandleGetSummary))
	apiRouter.HandleFunc("GET /api/reports/filtered", withUser(report.HandleGetFiltered))
	apiRouter.HandleFunc("GET /api/reports/agent", withUser(report.HandleGetAgentReport))
	apiRouter.HandleFunc("GET /api/reports/by-type", withUser(report.HandleGetTypeReport))
	apiRouter.HandleFunc("GET /api/reports/charts", withUser(report.HandleGetChartReport))
	return apiRouter
}
