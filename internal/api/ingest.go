package api

import (
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/JerrySanjuJoanes/chaincred/internal/ingestion"
	"github.com/JerrySanjuJoanes/chaincred/pkg/analysis"
)

// scoreRequest is the JSON body for POST /api/v1/reports.
type scoreRequest struct {
	CandidateName  string                  `json:"candidate_name"`
	CandidateEmail string                  `json:"candidate_email"`
	Technologies   []string                `json:"technologies,omitempty"`
	Analyses       []analysis.RepoAnalysis `json:"analyses,omitempty"`
	AnalysisIDs    []string                `json:"analysis_ids,omitempty"`
}

type scoreResponse struct {
	ReportID string `json:"report_id"`
}

// handleUploadAnalysis handles POST /api/v1/analyses. It uploads a single
// repository analysis and returns its storage ID. Used for the two-step flow
// where large analyses are uploaded separately from the scoring request.
func (h *Handler) handleUploadAnalysis(w http.ResponseWriter, r *http.Request) {
	var body io.Reader = r.Body
	if r.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(r.Body)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid gzip body: "+err.Error())
			return
		}
		defer gz.Close()
		body = gz
	}

	data, err := io.ReadAll(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read body: "+err.Error())
		return
	}

	var ra analysis.RepoAnalysis
	if err := json.Unmarshal(data, &ra); err != nil {
		writeError(w, http.StatusBadRequest, "invalid analysis JSON: "+err.Error())
		return
	}
	if ra.RepoName == "" {
		writeError(w, http.StatusBadRequest, "analysis missing repo_name")
		return
	}

	// Pre-uploads live under a synthetic candidate namespace; the actual
	// candidate association happens when the scoring request references them.
	analysisID := uuid.New().String()
	if err := h.ingestionSvc.Storage().PutAnalysis(r.Context(), "_uploads", analysisID, data); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store analysis: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"analysis_id": analysisID})
}

// handleScore handles POST /api/v1/reports. It accepts inline analyses or
// references to pre-uploaded ones, runs the scoring pipeline, and returns the
// report ID.
func (h *Handler) handleScore(w http.ResponseWriter, r *http.Request) {
	var body io.Reader = r.Body
	if r.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(r.Body)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid gzip body: "+err.Error())
			return
		}
		defer gz.Close()
		body = gz
	}

	var req scoreRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	ctx := r.Context()

	// Reference mode: load pre-uploaded analyses from storage
	for _, id := range req.AnalysisIDs {
		data, err := h.ingestionSvc.Storage().GetAnalysis(ctx, "_uploads", id)
		if err != nil {
			writeError(w, http.StatusBadRequest, "failed to load referenced analysis: "+err.Error())
			return
		}
		var ra analysis.RepoAnalysis
		if err := json.Unmarshal(data, &ra); err != nil {
			writeError(w, http.StatusBadRequest, "invalid referenced analysis: "+err.Error())
			return
		}
		req.Analyses = append(req.Analyses, ra)
	}

	if req.CandidateEmail == "" || len(req.Analyses) == 0 {
		writeError(w, http.StatusBadRequest, "candidate_email and at least one analysis are required")
		return
	}

	reportID, err := h.ingestionSvc.Process(ctx, ingestion.SubmissionRequest{
		CandidateName:  req.CandidateName,
		CandidateEmail: req.CandidateEmail,
		Technologies:   req.Technologies,
		Analyses:       req.Analyses,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to score submission: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, scoreResponse{ReportID: reportID})
}
