// Package candidate manages persistent state for scored contributors:
// candidates and the repositories tracked for each of them.
package candidate

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Service provides candidate and repository management backed by Postgres.
type Service struct {
	db *sql.DB
}

// Candidate represents one contributor whose skills are scored.
type Candidate struct {
	ID          string
	DisplayName string
	Email       string
	CreatedAt   time.Time
}

// Repository represents a repository tracked for a candidate.
type Repository struct {
	ID            string
	CandidateID   string
	FullName      string
	CloneURL      *string
	DefaultBranch string
	CreatedAt     time.Time
}

// ReportRow represents a stored skill report from the database. The full
// report body lives in blob storage; the row carries the summary columns and
// the storage reference.
type ReportRow struct {
	ID            string
	CandidateID   string
	SkillCount    int
	VerifiedCount int
	TopSkill      *string
	TopScore      *float64
	Warnings      json.RawMessage
	StorageRef    string
	CreatedAt     time.Time
}

// NewService creates a new candidate Service.
func NewService(db *sql.DB) *Service {
	return &Service{db: db}
}

// CreateCandidate creates a new candidate.
func (s *Service) CreateCandidate(ctx context.Context, displayName, email string) (*Candidate, error) {
	c := &Candidate{}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO candidates (display_name, email)
		 VALUES ($1, $2)
		 RETURNING id, display_name, email, created_at`,
		displayName, email,
	).Scan(&c.ID, &c.DisplayName, &c.Email, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create candidate: %w", err)
	}
	return c, nil
}

// GetCandidateByEmail looks up a candidate by email.
func (s *Service) GetCandidateByEmail(ctx context.Context, email string) (*Candidate, error) {
	c := &Candidate{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, display_name, email, created_at
		 FROM candidates WHERE email = $1`,
		email,
	).Scan(&c.ID, &c.DisplayName, &c.Email, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get candidate by email %s: %w", email, err)
	}
	return c, nil
}

// GetCandidate retrieves a candidate by ID.
func (s *Service) GetCandidate(ctx context.Context, id string) (*Candidate, error) {
	c := &Candidate{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, display_name, email, created_at
		 FROM candidates WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.DisplayName, &c.Email, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get candidate %s: %w", id, err)
	}
	return c, nil
}

// ListCandidates returns all candidates ordered by display name.
func (s *Service) ListCandidates(ctx context.Context) ([]Candidate, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, display_name, email, created_at
		 FROM candidates ORDER BY display_name`,
	)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	defer rows.Close()

	var candidates []Candidate
	for rows.Next() {
		var c Candidate
		if err := rows.Scan(&c.ID, &c.DisplayName, &c.Email, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

// UpsertRepository creates or updates a tracked repository for a candidate.
func (s *Service) UpsertRepository(ctx context.Context, candidateID, fullName string, cloneURL *string, defaultBranch string) (*Repository, error) {
	r := &Repository{}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO repositories (candidate_id, full_name, clone_url, default_branch)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (candidate_id, full_name) DO UPDATE
		   SET clone_url = COALESCE(EXCLUDED.clone_url, repositories.clone_url),
		       default_branch = EXCLUDED.default_branch
		 RETURNING id, candidate_id, full_name, clone_url, default_branch, created_at`,
		candidateID, fullName, cloneURL, defaultBranch,
	).Scan(&r.ID, &r.CandidateID, &r.FullName, &r.CloneURL, &r.DefaultBranch, &r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert repository %s: %w", fullName, err)
	}
	return r, nil
}

// ListRepositories returns all tracked repositories for a candidate.
func (s *Service) ListRepositories(ctx context.Context, candidateID string) ([]Repository, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, candidate_id, full_name, clone_url, default_branch, created_at
		 FROM repositories WHERE candidate_id = $1 ORDER BY full_name`,
		candidateID,
	)
	if err != nil {
		return nil, fmt.Errorf("list repositories: %w", err)
	}
	defer rows.Close()

	var repos []Repository
	for rows.Next() {
		var r Repository
		if err := rows.Scan(&r.ID, &r.CandidateID, &r.FullName, &r.CloneURL, &r.DefaultBranch, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan repository: %w", err)
		}
		repos = append(repos, r)
	}
	return repos, rows.Err()
}

// EnsureCandidate gets or creates a candidate by email.
func (s *Service) EnsureCandidate(ctx context.Context, displayName, email string) (*Candidate, error) {
	c, err := s.GetCandidateByEmail(ctx, email)
	if err == nil {
		return c, nil
	}

	c, err = s.CreateCandidate(ctx, displayName, email)
	if err != nil {
		// Could be a race condition; try getting again
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique") {
			return s.GetCandidateByEmail(ctx, email)
		}
		return nil, fmt.Errorf("ensure candidate: %w", err)
	}
	return c, nil
}

// InsertReport records a stored report's summary row.
func (s *Service) InsertReport(ctx context.Context, row ReportRow) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO reports (candidate_id, skill_count, verified_count, top_skill, top_score, warnings, storage_ref)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		row.CandidateID, row.SkillCount, row.VerifiedCount, row.TopSkill, row.TopScore, row.Warnings, row.StorageRef,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("insert report row: %w", err)
	}
	return id, nil
}

// ListReportsByCandidate returns all report rows for a candidate, newest first.
func (s *Service) ListReportsByCandidate(ctx context.Context, candidateID string) ([]ReportRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, candidate_id, skill_count, verified_count, top_skill, top_score, warnings, storage_ref, created_at
		 FROM reports WHERE candidate_id = $1 ORDER BY created_at DESC`,
		candidateID,
	)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var reports []ReportRow
	for rows.Next() {
		var rr ReportRow
		if err := rows.Scan(
			&rr.ID, &rr.CandidateID, &rr.SkillCount, &rr.VerifiedCount,
			&rr.TopSkill, &rr.TopScore, &rr.Warnings, &rr.StorageRef, &rr.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		reports = append(reports, rr)
	}
	return reports, rows.Err()
}

// GetReportByID returns a single report row by ID.
func (s *Service) GetReportByID(ctx context.Context, reportID string) (*ReportRow, error) {
	rr := &ReportRow{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, candidate_id, skill_count, verified_count, top_skill, top_score, warnings, storage_ref, created_at
		 FROM reports WHERE id = $1`,
		reportID,
	).Scan(
		&rr.ID, &rr.CandidateID, &rr.SkillCount, &rr.VerifiedCount,
		&rr.TopSkill, &rr.TopScore, &rr.Warnings, &rr.StorageRef, &rr.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get report %s: %w", reportID, err)
	}
	return rr, nil
}
