// Package api implements the hosted ChainCred REST API.
// It provides ingest and read endpoints backed by Postgres and blob storage.
package api

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/JerrySanjuJoanes/chaincred/internal/candidate"
	"github.com/JerrySanjuJoanes/chaincred/internal/ingestion"
)

// Handler is the top-level API handler for the hosted ChainCred service.
type Handler struct {
	db           *sql.DB
	candidateSvc *candidate.Service
	ingestionSvc *ingestion.Service
	cache        *ReportCache
}

// NewHandler creates a new API handler.
func NewHandler(db *sql.DB, candidateSvc *candidate.Service, ingestionSvc *ingestion.Service, cache *ReportCache) *Handler {
	if cache == nil {
		cache = NewReportCacheFromEnv()
	}
	return &Handler{
		db:           db,
		candidateSvc: candidateSvc,
		ingestionSvc: ingestionSvc,
		cache:        cache,
	}
}

// RegisterRoutes registers all API routes on the given ServeMux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Write endpoints (auth-protected)
	mux.HandleFunc("POST /api/v1/analyses", h.handleUploadAnalysis)
	mux.HandleFunc("POST /api/v1/reports", h.handleScore)

	// Read endpoints
	mux.HandleFunc("GET /api/candidates", h.handleListCandidates)
	mux.HandleFunc("GET /api/candidates/{candidateID}", h.handleGetCandidate)
	mux.HandleFunc("GET /api/candidates/{candidateID}/repos", h.handleListRepos)
	mux.HandleFunc("GET /api/candidates/{candidateID}/reports", h.handleListReports)
	mux.HandleFunc("GET /api/candidates/{candidateID}/reports/{reportID}", h.handleGetReport)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
