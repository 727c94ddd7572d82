package scoring

import (
	"fmt"
	"sort"
)

// CriterionSource selects where a criterion reads its input value from.
type CriterionSource string

const (
	// SourceFactCount reads a numeric fact from the evidence bag.
	SourceFactCount CriterionSource = "fact_count"
	// SourceFactFlag reads a boolean fact from the evidence bag (value 1 or 0).
	SourceFactFlag CriterionSource = "fact_flag"
	// SourceCommitCount reads RepoMeta.CommitCount.
	SourceCommitCount CriterionSource = "commit_count"
	// SourceAuthorship reads RepoMeta.Authorship. The only source allowed to
	// see the authorship fraction.
	SourceAuthorship CriterionSource = "authorship"
)

// Bucket is one step of a monotonic step function: values at or above
// Threshold earn at least Score.
type Bucket struct {
	Threshold float64 `json:"threshold" yaml:"threshold"`
	Score     float64 `json:"score" yaml:"score"`
}

// Criterion declares one of a rule-set's five scoring criteria.
type Criterion struct {
	Key     string          `json:"key" yaml:"key"`
	Name    string          `json:"name" yaml:"name"`
	Source  CriterionSource `json:"source" yaml:"source"`
	FactKey string          `json:"fact_key,omitempty" yaml:"fact_key,omitempty"` // for fact sources
	// Unit names the thing being counted, used in evidence trails
	// ("7 hook usages found").
	Unit    string   `json:"unit,omitempty" yaml:"unit,omitempty"`
	Buckets []Bucket `json:"buckets" yaml:"buckets"`
}

// score maps a raw value through the bucket table. Malformed inputs
// (negative counts, values far beyond the top threshold) clamp rather than
// error: below the lowest bucket scores 0, and the result is always clamped
// into [0, MaxCriterionScore].
func (c Criterion) score(value float64) float64 {
	if value < 0 {
		value = 0
	}
	best := 0.0
	for _, b := range c.Buckets {
		if value >= b.Threshold && b.Score > best {
			best = b.Score
		}
	}
	if best > MaxCriterionScore {
		best = MaxCriterionScore
	}
	if best < 0 {
		best = 0
	}
	return best
}

// RuleSet is the complete scoring table for one technology: exactly five
// criteria, the first of which is the presence criterion. A presence score
// of zero short-circuits the evaluation to the canonical "not detected"
// zero result.
type RuleSet struct {
	Technology string               `json:"technology" yaml:"technology"`
	Criteria   [CriteriaPerSkill]Criterion `json:"criteria" yaml:"criteria"`
}

// validateRuleSet rejects tables that could violate the score bounds.
func validateRuleSet(rs RuleSet) error {
	if rs.Technology == "" {
		return fmt.Errorf("rule-set missing technology name")
	}
	for i, c := range rs.Criteria {
		if c.Key == "" {
			return fmt.Errorf("%s: criterion %d missing key", rs.Technology, i)
		}
		if len(c.Buckets) == 0 {
			return fmt.Errorf("%s/%s: no buckets", rs.Technology, c.Key)
		}
		for _, b := range c.Buckets {
			if b.Score < 0 || b.Score > MaxCriterionScore {
				return fmt.Errorf("%s/%s: bucket score %g outside [0, %g]",
					rs.Technology, c.Key, b.Score, MaxCriterionScore)
			}
		}
		switch c.Source {
		case SourceFactCount, SourceFactFlag:
			if c.FactKey == "" {
				return fmt.Errorf("%s/%s: fact source without fact_key", rs.Technology, c.Key)
			}
		case SourceCommitCount, SourceAuthorship:
		default:
			return fmt.Errorf("%s/%s: unknown source %q", rs.Technology, c.Key, c.Source)
		}
	}
	return nil
}

// Registry holds one rule-set per technology. Lookups for unregistered
// technologies fail loudly. Safe for concurrent readers once built.
type Registry struct {
	rules map[string]RuleSet
}

// NewRegistry creates a registry from the given rule-sets.
func NewRegistry(sets ...RuleSet) (*Registry, error) {
	r := &Registry{rules: make(map[string]RuleSet, len(sets))}
	for _, rs := range sets {
		if err := r.Register(rs); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds or replaces a technology's rule-set.
func (r *Registry) Register(rs RuleSet) error {
	if err := validateRuleSet(rs); err != nil {
		return fmt.Errorf("invalid rule-set: %w", err)
	}
	r.rules[rs.Technology] = rs
	return nil
}

// Lookup returns the rule-set for a technology.
func (r *Registry) Lookup(technology string) (RuleSet, error) {
	rs, ok := r.rules[technology]
	if !ok {
		return RuleSet{}, &UnknownTechnologyError{Technology: technology}
	}
	return rs, nil
}

// Technologies lists registered technologies, sorted.
func (r *Registry) Technologies() []string {
	names := make([]string, 0, len(r.rules))
	for name := range r.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
