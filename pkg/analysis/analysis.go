// Package analysis ties the collectors and the scoring engine together. An
// Analyzer captures a per-repository snapshot (commit history plus detection
// facts), and a Pipeline turns snapshots into a contributor skill report.
package analysis

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/JerrySanjuJoanes/chaincred/pkg/evidence"
	"github.com/JerrySanjuJoanes/chaincred/pkg/evidence/static"
	"github.com/JerrySanjuJoanes/chaincred/pkg/gitlog"
	"github.com/JerrySanjuJoanes/chaincred/pkg/identity"
)

// RepoAnalysis is a point-in-time snapshot of one repository: everything the
// scoring pipeline needs, decoupled from the checkout it was read from.
type RepoAnalysis struct {
	ID         string                    `json:"id"`
	RepoName   string                    `json:"repo_name"`
	Path       string                    `json:"path,omitempty"`
	AnalyzedAt time.Time                 `json:"analyzed_at"`
	Changes    []gitlog.CommitLineChange `json:"changes"`
	Facts      map[string]evidence.Facts `json:"facts"`
}

// CommitCount returns the total number of commits in the snapshot.
func (ra *RepoAnalysis) CommitCount() int {
	return len(ra.Changes)
}

// CommitsBy counts commits authored by the given identity.
func (ra *RepoAnalysis) CommitsBy(target identity.Identity) int {
	n := 0
	for _, c := range ra.Changes {
		if target.Matches(c.Author) {
			n++
		}
	}
	return n
}

// Analyzer captures repository snapshots.
type Analyzer struct {
	Git          *gitlog.Collector
	Evidence     evidence.Collector
	Technologies []string
}

// NewAnalyzer returns an Analyzer over the default git collector and static
// evidence profiles, scanning for the given technologies.
func NewAnalyzer(technologies []string) *Analyzer {
	return &Analyzer{
		Git:          &gitlog.Collector{},
		Evidence:     static.NewCollector(nil),
		Technologies: technologies,
	}
}

// Analyze reads commit history and detection facts from a checkout and
// returns a snapshot named after the checkout directory.
func (a *Analyzer) Analyze(ctx context.Context, repoPath string) (*RepoAnalysis, error) {
	changes, err := a.Git.Collect(ctx, repoPath)
	if err != nil {
		return nil, fmt.Errorf("collecting history for %s: %w", repoPath, err)
	}

	facts, err := a.Evidence.Collect(ctx, repoPath, a.Technologies)
	if err != nil {
		return nil, fmt.Errorf("collecting evidence for %s: %w", repoPath, err)
	}

	return &RepoAnalysis{
		ID:         uuid.NewString(),
		RepoName:   filepath.Base(repoPath),
		Path:       repoPath,
		AnalyzedAt: time.Now().UTC(),
		Changes:    changes,
		Facts:      facts,
	}, nil
}
