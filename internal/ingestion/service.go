package ingestion

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/JerrySanjuJoanes/chaincred/internal/candidate"
	"github.com/JerrySanjuJoanes/chaincred/pkg/analysis"
	"github.com/JerrySanjuJoanes/chaincred/pkg/identity"
)

// Submission lifecycle states.
const (
	StatusQueued    = "QUEUED"
	StatusRunning   = "RUNNING"
	StatusCompleted = "COMPLETED"
	StatusFailed    = "FAILED"
)

// SubmissionRequest carries one batch of repository analyses for a candidate.
type SubmissionRequest struct {
	CandidateName  string                  `json:"candidate_name"`
	CandidateEmail string                  `json:"candidate_email"`
	Technologies   []string                `json:"technologies,omitempty"`
	Analyses       []analysis.RepoAnalysis `json:"analyses"`
}

// Reporter abstracts the scoring pipeline so the ingestion package does not
// depend on a concrete implementation.
type Reporter interface {
	Run(contributor identity.Identity, repos []*analysis.RepoAnalysis, technologies []string) (*analysis.SkillReport, error)
}

// Service orchestrates the hosted scoring pipeline.
type Service struct {
	db         *sql.DB
	candidates *candidate.Service
	storage    StorageClient
	reporter   Reporter
}

// NewService creates a new ingestion Service.
func NewService(db *sql.DB, candidates *candidate.Service, storage StorageClient, reporter Reporter) *Service {
	return &Service{
		db:         db,
		candidates: candidates,
		storage:    storage,
		reporter:   reporter,
	}
}

// Storage returns the blob storage client.
func (s *Service) Storage() StorageClient {
	return s.storage
}

// CreateSubmission creates a new submission record and returns its ID.
// The idempotency key is candidate email + the set of analysis snapshot IDs.
func (s *Service) CreateSubmission(ctx context.Context, candidateID string, req SubmissionRequest) (string, error) {
	idempotencyKey := req.CandidateEmail
	for _, ra := range req.Analyses {
		idempotencyKey += ":" + ra.ID
	}

	var id string
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO submissions (candidate_id, analysis_count, idempotency_key)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (idempotency_key) DO UPDATE SET updated_at = now()
		 RETURNING id`,
		candidateID, len(req.Analyses), idempotencyKey,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("create submission: %w", err)
	}
	return id, nil
}

// UpdateSubmissionStatus updates the status and optional error message.
func (s *Service) UpdateSubmissionStatus(ctx context.Context, id, status string, errMsg *string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE submissions SET status = $1, error_message = $2, updated_at = now() WHERE id = $3`,
		status, errMsg, id,
	)
	if err != nil {
		return fmt.Errorf("update submission status: %w", err)
	}
	return nil
}

// Process runs the full pipeline for one submission: ensure the candidate
// exists, persist the analysis blobs, score, and store the report.
func (s *Service) Process(ctx context.Context, req SubmissionRequest) (reportID string, err error) {
	if len(req.Analyses) == 0 {
		return "", fmt.Errorf("submission has no analyses")
	}
	if req.CandidateEmail == "" {
		return "", fmt.Errorf("submission missing candidate email")
	}

	// 1. Ensure candidate and tracked repositories
	cand, err := s.candidates.EnsureCandidate(ctx, req.CandidateName, req.CandidateEmail)
	if err != nil {
		return "", fmt.Errorf("ensure candidate: %w", err)
	}

	for i := range req.Analyses {
		ra := &req.Analyses[i]
		if _, err := s.candidates.UpsertRepository(ctx, cand.ID, ra.RepoName, nil, ""); err != nil {
			return "", fmt.Errorf("track repository %s: %w", ra.RepoName, err)
		}
	}

	// 2. Create or retrieve submission record
	submissionID, err := s.CreateSubmission(ctx, cand.ID, req)
	if err != nil {
		return "", fmt.Errorf("create submission: %w", err)
	}

	if err = s.UpdateSubmissionStatus(ctx, submissionID, StatusRunning, nil); err != nil {
		return "", fmt.Errorf("update status to running: %w", err)
	}

	// On failure, mark submission as failed
	defer func() {
		if err != nil {
			errMsg := err.Error()
			if updateErr := s.UpdateSubmissionStatus(ctx, submissionID, StatusFailed, &errMsg); updateErr != nil {
				log.Printf("failed to update submission status: %v", updateErr)
			}
		}
	}()

	// 3. Persist analysis blobs
	repos := make([]*analysis.RepoAnalysis, len(req.Analyses))
	for i := range req.Analyses {
		ra := &req.Analyses[i]
		data, marshalErr := json.Marshal(ra)
		if marshalErr != nil {
			err = fmt.Errorf("marshal analysis %s: %w", ra.RepoName, marshalErr)
			return "", err
		}
		if err = s.storage.PutAnalysis(ctx, cand.ID, ra.ID, data); err != nil {
			err = fmt.Errorf("put analysis blob %s: %w", ra.ID, err)
			return "", err
		}
		repos[i] = ra
	}

	// 4. Score
	contributor := identity.Identity{Name: req.CandidateName, Email: req.CandidateEmail}
	report, err := s.reporter.Run(contributor, repos, req.Technologies)
	if err != nil {
		err = fmt.Errorf("score submission: %w", err)
		return "", err
	}

	// 5. Store report
	reportID, err = s.storeReport(ctx, cand.ID, report)
	if err != nil {
		err = fmt.Errorf("store report: %w", err)
		return "", err
	}

	// 6. Finalize submission
	_, err = s.db.ExecContext(ctx,
		`UPDATE submissions SET status = $1, report_id = $2, updated_at = now() WHERE id = $3`,
		StatusCompleted, reportID, submissionID,
	)
	if err != nil {
		err = fmt.Errorf("finalize submission: %w", err)
		return "", err
	}

	log.Printf("submission %s completed: candidate=%s report=%s", submissionID, cand.ID, reportID)
	return reportID, nil
}

// storeReport writes the report blob and inserts its summary row.
func (s *Service) storeReport(ctx context.Context, candidateID string, report *analysis.SkillReport) (string, error) {
	data, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}

	warningsJSON, err := json.Marshal(report.Warnings)
	if err != nil {
		return "", fmt.Errorf("marshal warnings: %w", err)
	}

	blobID := uuid.NewString()
	row := candidate.ReportRow{
		CandidateID: candidateID,
		SkillCount:  len(report.Skills),
		Warnings:    warningsJSON,
		StorageRef:  fmt.Sprintf("%s/reports/%s.json", candidateID, blobID),
	}
	for _, skill := range report.Skills {
		if !skill.Verified {
			continue
		}
		row.VerifiedCount++
		if row.TopScore == nil || skill.Score > *row.TopScore {
			score := skill.Score
			name := skill.Technology
			row.TopScore = &score
			row.TopSkill = &name
		}
	}

	// Blob first, row second: a row must never reference a missing blob.
	if err := s.storage.PutReport(ctx, candidateID, blobID, data); err != nil {
		return "", fmt.Errorf("put report blob: %w", err)
	}

	return s.candidates.InsertReport(ctx, row)
}
