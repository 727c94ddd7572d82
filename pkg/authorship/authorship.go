// Package authorship computes the fraction of a repository's human-attributed
// modified lines contributed by one identity. This is the single authorship
// formula for the whole system; every downstream consumer goes through
// Compute rather than recomputing its own ratio.
package authorship

import (
	"math"

	"github.com/JerrySanjuJoanes/chaincred/pkg/gitlog"
	"github.com/JerrySanjuJoanes/chaincred/pkg/identity"
)

// Fraction is the authorship result for one (repository, identity) pair.
// Immutable once computed.
type Fraction struct {
	Value        float64 `json:"value"` // in [0,1]
	AuthorLines  int     `json:"author_lines"`
	HumanLines   int     `json:"human_lines"` // denominator, bot lines excluded
	BotLines     int     `json:"bot_lines"`   // excluded lines, reported not dropped
	Commits      int     `json:"commits"`     // commits matching the target identity
	HumanCommits int     `json:"human_commits"`
	BotCommits   int     `json:"bot_commits"`
	// NoHumanLines flags the zero-denominator condition (bot-only or empty
	// history). It is an expected edge case, not an error: Value is 0.
	NoHumanLines bool `json:"no_human_lines"`
}

// Compute derives the authorship fraction for target from a repository's
// line-change records. Bot records are excluded from numerator and
// denominator alike. Pure function over the provided history.
func Compute(changes []gitlog.CommitLineChange, target identity.Identity, classifier *identity.Classifier) Fraction {
	if classifier == nil {
		classifier = identity.NewClassifier(nil)
	}

	var f Fraction
	for _, ch := range changes {
		if classifier.IsBot(ch.Author) {
			f.BotLines += ch.LinesTouched()
			f.BotCommits++
			continue
		}
		f.HumanLines += ch.LinesTouched()
		f.HumanCommits++
		if target.Matches(ch.Author) {
			f.AuthorLines += ch.LinesTouched()
			f.Commits++
		}
	}

	if f.HumanLines == 0 {
		f.NoHumanLines = true
		return f
	}

	f.Value = float64(f.AuthorLines) / float64(f.HumanLines)
	if f.Value > 1 {
		f.Value = 1
	}
	return f
}

// Share is one contributor's slice of a repository's human-attributed lines.
type Share struct {
	Author   identity.Identity `json:"author"`
	Lines    int               `json:"lines"`
	Commits  int               `json:"commits"`
	Fraction float64           `json:"fraction"`
	IsBot    bool              `json:"is_bot"`
}

// Breakdown computes per-identity shares for every contributor in the
// history. Human fractions sum to 1.0 (within floating tolerance) unless the
// repository has no human-attributed lines. Bot contributors appear with
// IsBot set and a zero fraction.
func Breakdown(changes []gitlog.CommitLineChange, classifier *identity.Classifier) []Share {
	if classifier == nil {
		classifier = identity.NewClassifier(nil)
	}

	type acc struct {
		share Share
		order int
	}
	byKey := make(map[string]*acc)
	keys := make([]string, 0)
	humanLines := 0

	for _, ch := range changes {
		key := ch.Author.Name + "\x1f" + ch.Author.Email
		a, ok := byKey[key]
		if !ok {
			a = &acc{share: Share{Author: ch.Author, IsBot: classifier.IsBot(ch.Author)}, order: len(keys)}
			byKey[key] = a
			keys = append(keys, key)
		}
		a.share.Lines += ch.LinesTouched()
		a.share.Commits++
		if !a.share.IsBot {
			humanLines += ch.LinesTouched()
		}
	}

	shares := make([]Share, len(keys))
	for _, key := range keys {
		a := byKey[key]
		if !a.share.IsBot && humanLines > 0 {
			a.share.Fraction = float64(a.share.Lines) / float64(humanLines)
		}
		shares[a.order] = a.share
	}
	return shares
}

// SumTolerance is the floating tolerance for the sum-to-one invariant.
const SumTolerance = 1e-6

// SharesSumToOne checks the invariant that human fractions in a breakdown
// sum to 1.0 within tolerance. Returns true for a breakdown with no human
// lines (all fractions zero).
func SharesSumToOne(shares []Share) bool {
	sum := 0.0
	any := false
	for _, s := range shares {
		if s.IsBot {
			continue
		}
		sum += s.Fraction
		if s.Fraction > 0 {
			any = true
		}
	}
	if !any {
		return true
	}
	return math.Abs(sum-1.0) <= SumTolerance
}
