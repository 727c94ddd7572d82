package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/JerrySanjuJoanes/chaincred/internal/candidate"
	"github.com/JerrySanjuJoanes/chaincred/internal/ingestion"
)

// Handler processes incoming CI webhook events.
type Handler struct {
	webhookSecret []byte
	candidates    *candidate.Service
	ingestions    *ingestion.Service
}

// NewHandler creates a new webhook Handler.
func NewHandler(webhookSecret []byte, candidates *candidate.Service, ingestions *ingestion.Service) *Handler {
	return &Handler{
		webhookSecret: webhookSecret,
		candidates:    candidates,
		ingestions:    ingestions,
	}
}

// ServeHTTP handles incoming webhook requests.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 10<<20)) // 10 MB limit
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	signature := r.Header.Get("X-Hub-Signature-256")
	if err := VerifySignature(body, signature, h.webhookSecret); err != nil {
		log.Printf("webhook signature verification failed: %v", err)
		http.Error(w, "invalid signature", http.StatusUnauthorized)
		return
	}

	eventType := r.Header.Get("X-ChainCred-Event")
	if eventType == "" {
		http.Error(w, "missing X-ChainCred-Event header", http.StatusBadRequest)
		return
	}

	event, err := ParseEvent(eventType, body)
	if err != nil {
		log.Printf("webhook parse error for %s: %v", eventType, err)
		http.Error(w, "unsupported event", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	switch e := event.(type) {
	case *CandidateEvent:
		if err := h.handleCandidate(ctx, e); err != nil {
			log.Printf("handle candidate event: %v", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

	case *AnalysisEvent:
		if err := h.handleAnalysis(ctx, e); err != nil {
			log.Printf("handle analysis event: %v", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
	}

	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "accepted"})
}

func (h *Handler) handleCandidate(ctx context.Context, e *CandidateEvent) error {
	switch e.Action {
	case "registered", "":
	case "removed":
		log.Printf("candidate %s removed, soft-delete not yet implemented", e.Candidate.Email)
		return nil
	default:
		return nil
	}

	c, err := h.candidates.EnsureCandidate(ctx, e.Candidate.Name, e.Candidate.Email)
	if err != nil {
		return fmt.Errorf("ensure candidate %s: %w", e.Candidate.Email, err)
	}

	for _, repo := range e.Repositories {
		if _, err := h.candidates.UpsertRepository(ctx, c.ID, repo.FullName, repo.CloneURL, repo.DefaultBranch); err != nil {
			return fmt.Errorf("upsert repository %s: %w", repo.FullName, err)
		}
		log.Printf("tracked repository %s for candidate %s", repo.FullName, c.ID)
	}
	return nil
}

func (h *Handler) handleAnalysis(ctx context.Context, e *AnalysisEvent) error {
	if len(e.Analyses) == 0 {
		return nil // nothing to score
	}

	req := ingestion.SubmissionRequest{
		CandidateName:  e.Candidate.Name,
		CandidateEmail: e.Candidate.Email,
		Technologies:   e.Technologies,
		Analyses:       e.Analyses,
	}

	reportID, err := h.ingestions.Process(ctx, req)
	if err != nil {
		return fmt.Errorf("process submission: %w", err)
	}

	log.Printf("scored %d analyses for %s (report %s)", len(e.Analyses), e.Candidate.Email, reportID)
	return nil
}
