package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/JerrySanjuJoanes/chaincred/internal/candidate"
	"github.com/JerrySanjuJoanes/chaincred/pkg/analysis"
)

type reportSummaryResponse struct {
	ID            string          `json:"id"`
	SkillCount    int             `json:"skill_count"`
	VerifiedCount int             `json:"verified_count"`
	TopSkill      *string         `json:"top_skill,omitempty"`
	TopScore      *float64        `json:"top_score,omitempty"`
	Warnings      json.RawMessage `json:"warnings"`
	CreatedAt     string          `json:"created_at"`
}

func reportRowToResponse(rr *candidate.ReportRow) reportSummaryResponse {
	return reportSummaryResponse{
		ID:            rr.ID,
		SkillCount:    rr.SkillCount,
		VerifiedCount: rr.VerifiedCount,
		TopSkill:      rr.TopSkill,
		TopScore:      rr.TopScore,
		Warnings:      rr.Warnings,
		CreatedAt:     rr.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func (h *Handler) handleListReports(w http.ResponseWriter, r *http.Request) {
	candidateID := r.PathValue("candidateID")

	rows, err := h.candidateSvc.ListReportsByCandidate(r.Context(), candidateID)
	if err != nil {
		writeJSON(w, http.StatusOK, []reportSummaryResponse{})
		return
	}

	var result []reportSummaryResponse
	for i := range rows {
		result = append(result, reportRowToResponse(&rows[i]))
	}

	if result == nil {
		result = []reportSummaryResponse{}
	}
	writeJSON(w, http.StatusOK, result)
}

// handleGetReport returns the full report body, loading it from blob storage
// through the LRU cache.
func (h *Handler) handleGetReport(w http.ResponseWriter, r *http.Request) {
	candidateID := r.PathValue("candidateID")
	reportID := r.PathValue("reportID")

	rr, err := h.candidateSvc.GetReportByID(r.Context(), reportID)
	if err != nil || rr.CandidateID != candidateID {
		writeError(w, http.StatusNotFound, "report not found")
		return
	}

	if cached := h.cache.Get(rr.ID); cached != nil {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	blobID := blobIDFromStorageRef(rr.StorageRef)
	data, err := h.ingestionSvc.Storage().GetReport(r.Context(), rr.CandidateID, blobID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load report body")
		return
	}

	var report analysis.SkillReport
	if err := json.Unmarshal(data, &report); err != nil {
		writeError(w, http.StatusInternalServerError, "corrupt report body")
		return
	}

	h.cache.Put(rr.ID, &report)
	writeJSON(w, http.StatusOK, &report)
}

// blobIDFromStorageRef extracts the blob ID from a storage reference of the
// form "<candidateID>/reports/<blobID>.json".
func blobIDFromStorageRef(ref string) string {
	base := ref
	if idx := strings.LastIndex(ref, "/"); idx >= 0 {
		base = ref[idx+1:]
	}
	return strings.TrimSuffix(base, ".json")
}
