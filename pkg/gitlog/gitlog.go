// Package gitlog extracts per-commit line-change records from git history.
// The scoring core consumes these records as already-available in-memory
// values; it never walks git itself.
package gitlog

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/JerrySanjuJoanes/chaincred/pkg/identity"
)

// CommitLineChange is one record per (commit, author, repository).
// Immutable once produced.
type CommitLineChange struct {
	CommitSHA    string            `json:"commit_sha"`
	Author       identity.Identity `json:"author"`
	LinesAdded   int               `json:"lines_added"`
	LinesRemoved int               `json:"lines_removed"`
	FilesTouched int               `json:"files_touched"`
}

// LinesTouched returns the combined line-change count for the commit.
func (c CommitLineChange) LinesTouched() int {
	return c.LinesAdded + c.LinesRemoved
}

// Collector reads commit history from a local clone.
type Collector struct {
	GitPath string // git binary (default "git")
}

// Collect runs git log over the repository at dir and parses the output
// into line-change records, oldest first.
func (c *Collector) Collect(ctx context.Context, dir string) ([]CommitLineChange, error) {
	gitPath := c.GitPath
	if gitPath == "" {
		gitPath = "git"
	}

	cmd := exec.CommandContext(ctx, gitPath, "log", "--reverse", "--numstat",
		"--format="+logFormat)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("git log in %s failed: %w\nstderr: %s", dir, err, stderr.String())
	}

	changes, err := Parse(&stdout)
	if err != nil {
		return nil, fmt.Errorf("parsing git log output: %w", err)
	}
	return changes, nil
}
