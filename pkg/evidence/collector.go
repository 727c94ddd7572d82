package evidence

import "context"

// Collector gathers facts for a set of technologies from a repository
// checkout. The scoring core consumes the result; it never performs
// filesystem or network I/O itself.
type Collector interface {
	// Collect returns one fact bag per requested technology. Technologies
	// with nothing detected map to an empty bag, not a missing entry.
	Collect(ctx context.Context, repoPath string, technologies []string) (map[string]Facts, error)
}
