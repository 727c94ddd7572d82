package gitlog

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/JerrySanjuJoanes/chaincred/pkg/identity"
)

// logFormat is the --format string used by the Collector. Each commit opens
// with a single header line; numstat lines follow until the next header or EOF.
const logFormat = "@commit\x1f%H\x1f%an\x1f%ae"

// Parse reads `git log --numstat --format=@commit<US><sha><US><name><US><email>`
// output and produces one record per commit. Binary files (numstat "-") count
// zero lines but still count the file as touched.
func Parse(r io.Reader) ([]CommitLineChange, error) {
	var (
		changes []CommitLineChange
		current *CommitLineChange
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "@commit\x1f") {
			if current != nil {
				changes = append(changes, *current)
			}
			parts := strings.Split(line, "\x1f")
			if len(parts) != 4 {
				return nil, fmt.Errorf("malformed commit header: %q", line)
			}
			current = &CommitLineChange{
				CommitSHA: parts[1],
				Author:    identity.Identity{Name: parts[2], Email: parts[3]},
			}
			continue
		}

		if current == nil {
			// Stray content before the first header; git never emits this,
			// but a truncated stream might.
			return nil, fmt.Errorf("numstat line before any commit header: %q", line)
		}

		added, removed, ok := parseNumstatLine(line)
		if !ok {
			continue
		}
		current.LinesAdded += added
		current.LinesRemoved += removed
		current.FilesTouched++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading git log stream: %w", err)
	}

	if current != nil {
		changes = append(changes, *current)
	}
	return changes, nil
}

// parseNumstatLine parses "<added>\t<removed>\t<path>". A "-" count marks a
// binary file and reads as zero.
func parseNumstatLine(line string) (added, removed int, ok bool) {
	fields := strings.SplitN(line, "\t", 3)
	if len(fields) != 3 {
		return 0, 0, false
	}

	added, okA := parseCount(fields[0])
	removed, okR := parseCount(fields[1])
	if !okA || !okR {
		return 0, 0, false
	}
	return added, removed, true
}

func parseCount(s string) (int, bool) {
	if s == "-" {
		return 0, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
