package scoring

import (
	"fmt"

	"github.com/JerrySanjuJoanes/chaincred/pkg/evidence"
)

// Evaluator interprets rule-set tables over evidence fact bags. One
// instance serves any number of concurrent callers; evaluation is pure.
type Evaluator struct {
	registry *Registry
}

// NewEvaluator creates an evaluator over the given registry.
func NewEvaluator(registry *Registry) *Evaluator {
	return &Evaluator{registry: registry}
}

// Evaluate scores one technology for one repository. The five criterion
// scores are computed independently from the declared facets of evidence;
// missing facts read as zero, never error. A zero presence criterion (the
// first) short-circuits to the canonical all-zero "not detected" result.
func (e *Evaluator) Evaluate(technology string, facts evidence.Facts, meta RepoMeta) (*Evaluation, error) {
	rs, err := e.registry.Lookup(technology)
	if err != nil {
		return nil, err
	}

	ev := &Evaluation{Technology: technology, Detected: true}

	for i, crit := range rs.Criteria {
		value := criterionValue(crit, facts, meta)
		score := crit.score(value)
		if err := Validate(score, 0, MaxCriterionScore, fmt.Sprintf("%s/%s criterion score", technology, crit.Key)); err != nil {
			return nil, err
		}

		reason := criterionReason(crit, value, score)
		ev.Breakdown = append(ev.Breakdown, CriterionScore{
			Key:    crit.Key,
			Name:   crit.Name,
			Score:  score,
			Reason: reason,
		})
		if score > 0 {
			ev.Trail = append(ev.Trail, reason)
			for _, sample := range factSamples(crit, facts) {
				ev.Trail = append(ev.Trail, fmt.Sprintf("%s: %s", crit.Name, sample))
			}
		}

		// Presence criterion scored zero: the technology is absent. Emit the
		// explicit not-detected result instead of evaluating the rest.
		if i == 0 && score == 0 {
			return notDetected(technology, ev.Breakdown[0]), nil
		}

		ev.SubScore += score
	}

	if err := Validate(ev.SubScore, 0, MaxSubScore, technology+" sub-score"); err != nil {
		return nil, err
	}
	return ev, nil
}

// notDetected builds the canonical zero result: all five criteria at zero
// with an explicit trail, distinct from any silently-produced zero.
func notDetected(technology string, presence CriterionScore) *Evaluation {
	ev := &Evaluation{
		Technology: technology,
		Detected:   false,
		Breakdown:  []CriterionScore{presence},
		Trail:      []string{fmt.Sprintf("%s not detected: %s", technology, presence.Reason)},
	}
	return ev
}

func criterionValue(c Criterion, facts evidence.Facts, meta RepoMeta) float64 {
	switch c.Source {
	case SourceFactCount:
		return float64(facts.Count(c.FactKey))
	case SourceFactFlag:
		if facts.Bool(c.FactKey) {
			return 1
		}
		return 0
	case SourceCommitCount:
		return float64(meta.CommitCount)
	case SourceAuthorship:
		return meta.Authorship
	}
	return 0
}

func criterionReason(c Criterion, value, score float64) string {
	switch c.Source {
	case SourceFactFlag:
		if value > 0 {
			return fmt.Sprintf("%s found", c.unitOrKey())
		}
		return fmt.Sprintf("no %s found", c.unitOrKey())
	case SourceCommitCount:
		return fmt.Sprintf("%d commits", int(value))
	case SourceAuthorship:
		return fmt.Sprintf("%.1f%% of repository changes", value*100)
	default:
		if score == 0 {
			return fmt.Sprintf("only %d %s found", int(value), c.unitOrKey())
		}
		return fmt.Sprintf("%d %s found", int(value), c.unitOrKey())
	}
}

func (c Criterion) unitOrKey() string {
	if c.Unit != "" {
		return c.Unit
	}
	return c.Key
}

func factSamples(c Criterion, facts evidence.Facts) []string {
	if c.FactKey == "" {
		return nil
	}
	return facts.SampleList(c.FactKey, 3)
}
