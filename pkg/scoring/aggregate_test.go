package scoring_test

import (
	"strings"
	"testing"

	"github.com/JerrySanjuJoanes/chaincred/pkg/scoring"
)

func repoScore(repoID string, sub, capped, authorship float64, detected bool, trail ...string) scoring.RepoSkillScore {
	return scoring.RepoSkillScore{
		RepoID:     repoID,
		Technology: "React",
		SubScore:   sub,
		Capped:     scoring.Capped{Score: capped},
		Authorship: authorship,
		Detected:   detected,
		Trail:      trail,
	}
}

func TestAggregateWorkedExample(t *testing.T) {
	// (94*1.00 + 60*0.45 + 0*0.45) / 1.90 = 63.7 — the undetected repo C
	// still counts at its authorship weight and pulls the average down.
	perRepo := []scoring.RepoSkillScore{
		repoScore("repo-a", 94, 94, 1.00, true, "React dependencies found"),
		repoScore("repo-b", 62, 60, 0.45, true, "5 hook usages found"),
		repoScore("repo-c", 0, 0, 0.45, false, "React not detected"),
	}

	agg, err := scoring.Aggregate("React", perRepo)
	if err != nil {
		t.Fatalf("Aggregate() error: %v", err)
	}

	if agg.Score != 63.7 {
		t.Errorf("Score = %g, want 63.7", agg.Score)
	}
	if !agg.Verified {
		t.Error("Verified should be true")
	}
	if agg.ReposUsed != 2 {
		t.Errorf("ReposUsed = %d, want 2", agg.ReposUsed)
	}
	if len(agg.PerRepository) != 3 {
		t.Errorf("per-repository breakdown has %d entries, want 3 (unmodified)", len(agg.PerRepository))
	}
}

func TestAggregateZeroTotalWeight(t *testing.T) {
	perRepo := []scoring.RepoSkillScore{
		repoScore("repo-a", 80, 0, 0, true),
		repoScore("repo-b", 70, 0, 0, true),
	}

	agg, err := scoring.Aggregate("React", perRepo)
	if err != nil {
		t.Fatalf("Aggregate() error: %v", err)
	}
	if agg.Score != 0 {
		t.Errorf("Score = %g, want 0 (not NaN) for zero total weight", agg.Score)
	}
	if agg.Reason == "" {
		t.Error("expected an explanatory reason for the zero score")
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	agg, err := scoring.Aggregate("React", nil)
	if err != nil {
		t.Fatalf("Aggregate() error: %v", err)
	}
	if agg.Score != 0 || agg.Verified {
		t.Errorf("empty input: score %g verified %v, want 0/false", agg.Score, agg.Verified)
	}
}

func TestAggregateEvidenceTagging(t *testing.T) {
	perRepo := []scoring.RepoSkillScore{
		repoScore("alpha", 50, 50, 0.8, true, "12 hook usages found", "3000 lines of code"),
		repoScore("beta", 40, 40, 0.6, true, "12 hook usages found"),
	}

	agg, err := scoring.Aggregate("React", perRepo)
	if err != nil {
		t.Fatalf("Aggregate() error: %v", err)
	}

	if len(agg.Evidence) != 3 {
		t.Fatalf("evidence has %d entries, want 3 (concatenated, not deduplicated)", len(agg.Evidence))
	}
	if !strings.HasPrefix(agg.Evidence[0], "[alpha] ") {
		t.Errorf("evidence %q missing repository tag", agg.Evidence[0])
	}
	if !strings.HasPrefix(agg.Evidence[2], "[beta] ") {
		t.Errorf("evidence %q missing repository tag", agg.Evidence[2])
	}
}

func TestAggregateRejectsMixedTechnologies(t *testing.T) {
	perRepo := []scoring.RepoSkillScore{
		{RepoID: "a", Technology: "React", Authorship: 1},
		{RepoID: "b", Technology: "Django", Authorship: 1},
	}
	if _, err := scoring.Aggregate("React", perRepo); err == nil {
		t.Error("expected error for mixed-technology input")
	}
}

func TestAggregateBoundInvariant(t *testing.T) {
	perRepo := []scoring.RepoSkillScore{
		repoScore("a", 100, 100, 1.0, true),
		repoScore("b", 100, 100, 1.0, true),
	}
	agg, err := scoring.Aggregate("React", perRepo)
	if err != nil {
		t.Fatal(err)
	}
	if agg.Score < 0 || agg.Score > 100 {
		t.Errorf("Score %g outside [0,100]", agg.Score)
	}
}
