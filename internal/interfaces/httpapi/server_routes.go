package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicReportRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/seasons/current", handler.GetCurrentSeason)
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/entries", handler.ListEntries)
	mux.HandleFunc("GET /v1/entries/{entryID}", handler.GetEntry)
	mux.HandleFunc("GET /v1/entries/{entryID}/picks", handler.ListEntryPicks)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/sync-matches", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSyncMatchesJob)))
	mux.Handle("POST /v1/internal/jobs/score-picks", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunScorePicksJob)))
	mux.Handle("POST /v1/internal/jobs/replay-scores", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunReplayScoresJob)))
	mux.Handle("POST /v1/internal/jobs/recompute-statistics", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRecomputeStatisticsJob)))
	mux.Handle("POST /v1/internal/jobs/advance-week", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunAdvanceWeekJob)))
	mux.Handle("POST /v1/internal/jobs/assign-autopicks", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunAssignAutoPicksJob)))
	mux.Handle("POST /v1/internal/jobs/maintenance", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunMaintenanceJob)))
}
