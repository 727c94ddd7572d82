package scoring

import "fmt"

// Tier maps an authorship-fraction range to a maximum allowed sub-score.
// Tables are evaluated top-down with inclusive lower bounds; first match wins.
type Tier struct {
	MinFraction float64 `json:"min_fraction" yaml:"min_fraction"`
	MaxScore    float64 `json:"max_score" yaml:"max_score"`
	Label       string  `json:"label" yaml:"label"`
}

// DefaultTiers returns the standard confidence tier table. The historical
// 0.05/0.10 overlap is resolved into two non-overlapping steps with the same
// ceiling and distinct labels.
func DefaultTiers() []Tier {
	return []Tier{
		{MinFraction: 0.70, MaxScore: 100, Label: "high confidence"},
		{MinFraction: 0.30, MaxScore: 60, Label: "medium confidence"},
		{MinFraction: 0.10, MaxScore: 40, Label: "low confidence"},
		{MinFraction: 0.05, MaxScore: 40, Label: "low confidence (boundary)"},
		{MinFraction: 0, MaxScore: 0, Label: "insufficient"},
	}
}

// Capper clamps sub-scores to the ceiling of the matched confidence tier.
// It sees only the two numeric inputs, never the evidence.
type Capper struct {
	tiers []Tier
}

// NewCapper creates a Capper over the given tier table (ordered by
// descending MinFraction). An empty table falls back to DefaultTiers.
func NewCapper(tiers []Tier) *Capper {
	if len(tiers) == 0 {
		tiers = DefaultTiers()
	}
	return &Capper{tiers: tiers}
}

// Cap applies the confidence ceiling: min(subScore, tier max). A pure clamp,
// never a raise. A fraction of exactly 0 yields a zero score with a reason
// distinguishable from both "insufficient" and the evaluator's "not
// detected".
func (c *Capper) Cap(subScore, fraction float64) (Capped, error) {
	if err := Validate(subScore, 0, MaxSubScore, "sub-score"); err != nil {
		return Capped{}, err
	}
	if err := Validate(fraction, 0, 1, "authorship fraction"); err != nil {
		return Capped{}, err
	}

	tier := c.match(fraction)

	if fraction == 0 {
		return Capped{
			Score:  0,
			Tier:   tier.Label,
			Reason: "no measurable contribution by this identity",
		}, nil
	}

	capped := subScore
	reason := fmt.Sprintf("full score applied (%.1f%% contribution)", fraction*100)
	if tier.MaxScore < capped {
		capped = tier.MaxScore
		reason = fmt.Sprintf("capped at %g due to %.1f%% contribution", tier.MaxScore, fraction*100)
	}
	if tier.MaxScore == 0 {
		reason = fmt.Sprintf("contribution too low (%.1f%%)", fraction*100)
	}

	if err := Validate(capped, 0, MaxSubScore, "capped score"); err != nil {
		return Capped{}, err
	}
	return Capped{Score: capped, Tier: tier.Label, Reason: reason}, nil
}

func (c *Capper) match(fraction float64) Tier {
	for _, t := range c.tiers {
		if fraction >= t.MinFraction {
			return t
		}
	}
	// Fractions are validated non-negative, so a table ending at 0 always
	// matches; this is the guard for custom tables that do not.
	return Tier{MinFraction: 0, MaxScore: 0, Label: "insufficient"}
}
