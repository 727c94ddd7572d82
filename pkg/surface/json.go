package surface

import (
	"encoding/json"
	"io"

	"github.com/JerrySanjuJoanes/chaincred/pkg/analysis"
)

// JSONRenderer marshals SkillReport to indented JSON.
type JSONRenderer struct{}

func (r *JSONRenderer) Render(w io.Writer, report *analysis.SkillReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
