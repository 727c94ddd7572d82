package surface

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/JerrySanjuJoanes/chaincred/pkg/analysis"
	"github.com/JerrySanjuJoanes/chaincred/pkg/scoring"
)

// TerminalRenderer renders SkillReport as colored terminal output.
type TerminalRenderer struct{}

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

func scoreColor(score float64) string {
	if noColor() {
		return ""
	}
	switch {
	case score >= 70:
		return colorGreen
	case score >= 40:
		return colorYellow
	default:
		return colorRed
	}
}

func noColor() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

func bold(s string) string {
	if noColor() {
		return s
	}
	return colorBold + s + colorReset
}

func dim(s string) string {
	if noColor() {
		return s
	}
	return colorDim + s + colorReset
}

func colored(s, color string) string {
	if noColor() || color == "" {
		return s
	}
	return color + s + colorReset
}

func (r *TerminalRenderer) Render(w io.Writer, report *analysis.SkillReport) error {
	// Header
	fmt.Fprintf(w, "%s\n\n",
		bold(fmt.Sprintf("ChainCred: %s", report.Contributor)))

	// Repositories
	fmt.Fprintln(w, "Repositories:")
	for _, repo := range report.Repositories {
		fmt.Fprintf(w, "  %s — %.1f%% authorship (%d commits, %d bot)\n",
			bold(repo.RepoName), repo.Authorship*100, repo.Commits, repo.BotCommits)
	}
	fmt.Fprintln(w)

	// Skills
	hasSkills := false
	for _, skill := range report.Skills {
		if !skill.Verified {
			continue
		}
		if !hasSkills {
			fmt.Fprintln(w, "Skills:")
			hasSkills = true
		}

		sc := scoreColor(skill.Score)
		fmt.Fprintf(w, "  %s %s", colored(fmt.Sprintf("%5.1f", skill.Score), sc), bold(skill.Technology))
		fmt.Fprintf(w, " — %s", skill.Reason)
		fmt.Fprintln(w)

		for _, rs := range skill.PerRepository {
			if !rs.Detected {
				continue
			}
			fmt.Fprintf(w, "         %s\n", dim(fmt.Sprintf("%s: %g capped to %g (%s)",
				rs.RepoID, rs.SubScore, rs.Capped.Score, rs.Capped.Tier)))
		}

		// Show evidence (up to 5 total)
		maxEvidence := 5
		if len(skill.Evidence) < maxEvidence {
			maxEvidence = len(skill.Evidence)
		}
		for i := 0; i < maxEvidence; i++ {
			fmt.Fprintf(w, "         %s\n", dim(skill.Evidence[i]))
		}
		if len(skill.Evidence) > 5 {
			fmt.Fprintf(w, "         %s\n", dim(fmt.Sprintf("... and %d more", len(skill.Evidence)-5)))
		}
		fmt.Fprintln(w)
	}

	if !hasSkills {
		fmt.Fprintln(w, "No verified skills.")
		fmt.Fprintln(w)
	}

	undetected := undetectedTechnologies(report)
	if len(undetected) > 0 {
		fmt.Fprintf(w, "Not detected: %s\n\n", dim(strings.Join(undetected, ", ")))
	}

	// Warnings
	if len(report.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warning := range report.Warnings {
			fmt.Fprintf(w, "  %s %s\n", colored("!", colorYellow), warning)
		}
		fmt.Fprintln(w)
	}

	// Failures
	if len(report.Failures) > 0 {
		fmt.Fprintln(w, "Failures:")
		for _, f := range report.Failures {
			fmt.Fprintf(w, "  %s %s/%s — %s\n",
				colored("✗", colorRed), bold(f.Technology), f.RepoName, f.Message)
		}
		fmt.Fprintln(w)
	}

	return nil
}

func undetectedTechnologies(report *analysis.SkillReport) []string {
	var names []string
	for _, skill := range report.Skills {
		if !skill.Verified {
			names = append(names, skill.Technology)
		}
	}
	return names
}

func verifiedSkills(report *analysis.SkillReport) []scoring.AggregatedSkillScore {
	var out []scoring.AggregatedSkillScore
	for _, skill := range report.Skills {
		if skill.Verified {
			out = append(out, skill)
		}
	}
	return out
}
