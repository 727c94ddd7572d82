// Package surface defines output rendering interfaces for ChainCred reports.
// Implementations handle different output targets: terminal, Markdown, JSON.
package surface

import (
	"io"

	"github.com/JerrySanjuJoanes/chaincred/pkg/analysis"
)

// Renderer produces formatted output from a SkillReport.
type Renderer interface {
	// Render writes the formatted report to the writer.
	Render(w io.Writer, report *analysis.SkillReport) error
}
