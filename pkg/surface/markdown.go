package surface

import (
	"fmt"
	"io"
	"strings"

	"github.com/JerrySanjuJoanes/chaincred/pkg/analysis"
)

// MarkdownRenderer renders SkillReport as a Markdown document, suitable for
// candidate profiles and CI job summaries.
type MarkdownRenderer struct{}

func (r *MarkdownRenderer) Render(w io.Writer, report *analysis.SkillReport) error {
	_, err := io.WriteString(w, BuildMarkdown(report))
	return err
}

// BuildMarkdown creates the Markdown body for a report.
func BuildMarkdown(report *analysis.SkillReport) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("## ChainCred: %s\n\n", report.Contributor))

	// Repositories
	sb.WriteString("### Repositories\n\n")
	sb.WriteString("| Repository | Authorship | Commits | Bot commits |\n")
	sb.WriteString("|------------|-----------:|--------:|------------:|\n")
	for _, repo := range report.Repositories {
		sb.WriteString(fmt.Sprintf("| %s | %.1f%% | %d | %d |\n",
			repo.RepoName, repo.Authorship*100, repo.Commits, repo.BotCommits))
	}
	sb.WriteString("\n")

	// Skills
	sb.WriteString("### Skills\n\n")
	verified := verifiedSkills(report)
	if len(verified) == 0 {
		sb.WriteString("_No verified skills._\n\n")
	} else {
		sb.WriteString("| Technology | Score | Repositories | Insufficient |\n")
		sb.WriteString("|------------|------:|-------------:|-------------:|\n")
		for _, skill := range verified {
			sb.WriteString(fmt.Sprintf("| %s | %.1f | %d | %d |\n",
				skill.Technology, skill.Score, skill.ReposUsed, skill.ReposInsufficient))
		}
		sb.WriteString("\n")

		// Evidence (top 3 per skill)
		sb.WriteString("### Evidence\n\n")
		for _, skill := range verified {
			sb.WriteString(fmt.Sprintf("- **%s**\n", skill.Technology))
			maxEv := 3
			if len(skill.Evidence) < maxEv {
				maxEv = len(skill.Evidence)
			}
			for i := 0; i < maxEv; i++ {
				sb.WriteString(fmt.Sprintf("  - %s\n", skill.Evidence[i]))
			}
		}
		sb.WriteString("\n")
	}

	if undetected := undetectedTechnologies(report); len(undetected) > 0 {
		sb.WriteString(fmt.Sprintf("_Not detected: %s_\n\n", strings.Join(undetected, ", ")))
	}

	// Warnings (max 5)
	if len(report.Warnings) > 0 {
		sb.WriteString("### Warnings\n\n")
		max := 5
		if len(report.Warnings) < max {
			max = len(report.Warnings)
		}
		for i := 0; i < max; i++ {
			sb.WriteString(fmt.Sprintf("- %s\n", report.Warnings[i]))
		}
		if len(report.Warnings) > 5 {
			sb.WriteString(fmt.Sprintf("- _... and %d more_\n", len(report.Warnings)-5))
		}
		sb.WriteString("\n")
	}

	if len(report.Failures) > 0 {
		sb.WriteString("### Failures\n\n")
		for _, f := range report.Failures {
			sb.WriteString(fmt.Sprintf("- **%s**/%s — %s\n", f.Technology, f.RepoName, f.Message))
		}
	}

	return sb.String()
}
