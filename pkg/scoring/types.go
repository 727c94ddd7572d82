// Package scoring implements the contribution-weighted skill scoring engine.
// It turns detection evidence and authorship statistics into bounded,
// reproducible, evidence-backed scores: a heuristic evaluator over
// data-driven rule tables, a confidence capper keyed on authorship fraction,
// and a multi-repository aggregator.
package scoring

// Score bounds. Architecture invariants: five criteria per technology, 20
// points each, sub-scores are plain sums in [0,100].
const (
	MaxCriterionScore = 20.0
	MaxSubScore       = 100.0
	CriteriaPerSkill  = 5
)

// CriterionScore is one of the five criterion results for a technology.
type CriterionScore struct {
	Key    string  `json:"key"`    // machine key: "hooks_usage"
	Name   string  `json:"name"`   // human name: "Hooks usage"
	Score  float64 `json:"score"`  // in [0,20]
	Reason string  `json:"reason"` // fact citation: "7 hook usages found"
}

// Evaluation is the heuristic evaluator's output for one
// (technology, repository) pair, before confidence capping.
// Immutable once returned.
type Evaluation struct {
	Technology string           `json:"technology"`
	SubScore   float64          `json:"sub_score"` // sum of criteria, in [0,100]
	Detected   bool             `json:"detected"`
	Breakdown  []CriterionScore `json:"breakdown"`
	Trail      []string         `json:"trail"` // human-readable evidence citations
}

// RepoMeta is the repository metadata the evaluator may read. Only the
// authorship criterion reads Authorship.
type RepoMeta struct {
	CommitCount int     `json:"commit_count"` // commits by the target identity
	Authorship  float64 `json:"authorship"`   // fraction in [0,1]
}

// Capped is the confidence capper's output: a sub-score clamped to the
// ceiling of the matched confidence tier.
type Capped struct {
	Score  float64 `json:"score"` // min(sub_score, tier max)
	Tier   string  `json:"tier"`  // tier label: "medium confidence"
	Reason string  `json:"reason"`
}

// RepoSkillScore is the fully scored result for one (technology, repository)
// pair: evaluation plus capping, ready for aggregation.
type RepoSkillScore struct {
	RepoID     string   `json:"repo_id"`
	Technology string   `json:"technology"`
	SubScore   float64  `json:"sub_score"`
	Capped     Capped   `json:"capped"`
	Authorship float64  `json:"authorship"`
	Detected   bool     `json:"detected"`
	Trail      []string `json:"trail"`
}

// AggregatedSkillScore is the final per-technology score across all analyzed
// repositories. Created once per analysis run; immutable after creation.
type AggregatedSkillScore struct {
	Technology        string           `json:"technology"`
	Score             float64          `json:"score"` // in [0,100], rounded to one decimal
	Verified          bool             `json:"verified"`
	ReposUsed         int              `json:"repos_used"`
	ReposInsufficient int              `json:"repos_insufficient"`
	Reason            string           `json:"reason"`
	PerRepository     []RepoSkillScore `json:"per_repository"` // breakdown, unmodified
	Evidence          []string         `json:"evidence"`       // repo-tagged trails, concatenated
}
