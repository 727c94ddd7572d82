package authorship_test

import (
	"math"
	"testing"

	"github.com/JerrySanjuJoanes/chaincred/pkg/authorship"
	"github.com/JerrySanjuJoanes/chaincred/pkg/gitlog"
	"github.com/JerrySanjuJoanes/chaincred/pkg/identity"
)

var (
	jane = identity.Identity{Name: "Jane Doe", Email: "jane@example.com"}
	john = identity.Identity{Name: "John Smith", Email: "john@example.com"}
	bot  = identity.Identity{Name: "dependabot[bot]", Email: "support@github.com"}
)

func change(id identity.Identity, added, removed int) gitlog.CommitLineChange {
	return gitlog.CommitLineChange{Author: id, LinesAdded: added, LinesRemoved: removed}
}

func TestComputeBasicFraction(t *testing.T) {
	changes := []gitlog.CommitLineChange{
		change(jane, 60, 10), // 70
		change(john, 20, 10), // 30
	}

	f := authorship.Compute(changes, jane, nil)

	if got, want := f.Value, 0.7; math.Abs(got-want) > 1e-9 {
		t.Errorf("Value = %f, want %f", got, want)
	}
	if f.AuthorLines != 70 || f.HumanLines != 100 {
		t.Errorf("lines = %d/%d, want 70/100", f.AuthorLines, f.HumanLines)
	}
	if f.NoHumanLines {
		t.Error("NoHumanLines should be false")
	}
}

func TestComputeExcludesBots(t *testing.T) {
	// 10 bot commits and 5 human commits by the target identity: the bot
	// lines must vanish from both numerator and denominator.
	var changes []gitlog.CommitLineChange
	for i := 0; i < 10; i++ {
		changes = append(changes, change(bot, 500, 500))
	}
	for i := 0; i < 5; i++ {
		changes = append(changes, change(jane, 10, 10))
	}

	f := authorship.Compute(changes, jane, nil)

	if f.Value != 1.0 {
		t.Errorf("Value = %f, want 1.0 (bots excluded from denominator)", f.Value)
	}
	if f.BotCommits != 10 || f.HumanCommits != 5 {
		t.Errorf("commits = %d bot / %d human, want 10/5", f.BotCommits, f.HumanCommits)
	}
	if f.BotLines != 10000 {
		t.Errorf("BotLines = %d, want 10000 (reported, not dropped)", f.BotLines)
	}
}

func TestComputeBotOnlyRepository(t *testing.T) {
	changes := []gitlog.CommitLineChange{
		change(bot, 100, 100),
		change(bot, 50, 0),
	}

	f := authorship.Compute(changes, jane, nil)

	if f.Value != 0 {
		t.Errorf("Value = %f, want 0", f.Value)
	}
	if !f.NoHumanLines {
		t.Error("expected NoHumanLines for bot-only repository")
	}
}

func TestComputeEmptyHistory(t *testing.T) {
	f := authorship.Compute(nil, jane, nil)
	if f.Value != 0 || !f.NoHumanLines {
		t.Errorf("empty history: got value %f, NoHumanLines %v", f.Value, f.NoHumanLines)
	}
}

func TestComputeMatchesByNameOrEmail(t *testing.T) {
	changes := []gitlog.CommitLineChange{
		// Same person under two git configs: name match and email match.
		change(identity.Identity{Name: "jane doe", Email: "work@corp.example"}, 30, 0),
		change(identity.Identity{Name: "JD", Email: "JANE@example.com"}, 20, 0),
		change(john, 50, 0),
	}

	f := authorship.Compute(changes, jane, nil)

	if got, want := f.Value, 0.5; math.Abs(got-want) > 1e-9 {
		t.Errorf("Value = %f, want %f", got, want)
	}
	if f.Commits != 2 {
		t.Errorf("Commits = %d, want 2 (no double counting)", f.Commits)
	}
}

func TestBreakdownSumsToOne(t *testing.T) {
	changes := []gitlog.CommitLineChange{
		change(jane, 30, 3),
		change(john, 20, 7),
		change(bot, 999, 1),
		change(jane, 10, 5),
	}

	shares := authorship.Breakdown(changes, nil)

	if !authorship.SharesSumToOne(shares) {
		t.Errorf("human fractions do not sum to 1: %+v", shares)
	}

	var botSeen bool
	for _, s := range shares {
		if s.IsBot {
			botSeen = true
			if s.Fraction != 0 {
				t.Errorf("bot share has fraction %f, want 0", s.Fraction)
			}
			if s.Lines != 1000 {
				t.Errorf("bot lines = %d, want 1000", s.Lines)
			}
		}
	}
	if !botSeen {
		t.Error("bot contributor missing from breakdown (must be reported, not dropped)")
	}
}

func TestBreakdownNoHumans(t *testing.T) {
	shares := authorship.Breakdown([]gitlog.CommitLineChange{change(bot, 10, 0)}, nil)
	if !authorship.SharesSumToOne(shares) {
		t.Error("bot-only breakdown should satisfy the sum invariant vacuously")
	}
}

func TestComputeDeterminism(t *testing.T) {
	changes := []gitlog.CommitLineChange{
		change(jane, 13, 7),
		change(john, 29, 11),
		change(bot, 400, 2),
	}

	a := authorship.Compute(changes, jane, nil)
	b := authorship.Compute(changes, jane, nil)
	if a != b {
		t.Errorf("repeated runs differ: %+v vs %+v", a, b)
	}
}
