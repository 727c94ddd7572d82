package scoring_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/JerrySanjuJoanes/chaincred/pkg/evidence"
	"github.com/JerrySanjuJoanes/chaincred/pkg/scoring"
)

func reactFacts(hooks, loc int) evidence.Facts {
	f := evidence.NewFacts()
	f.SetFlag(evidence.FactDependencyPresent, true)
	f.SetCount("pattern:hooks", hooks)
	f.SetCount(evidence.FactLOCWithTechnology, loc)
	return f
}

func TestEvaluateFullMarks(t *testing.T) {
	e := scoring.NewEvaluator(scoring.DefaultRegistry())

	ev, err := e.Evaluate("React", reactFacts(12, 5000), scoring.RepoMeta{CommitCount: 40, Authorship: 0.9})
	if err != nil {
		t.Fatalf("Evaluate() error: %v", err)
	}

	if ev.SubScore != 100 {
		t.Errorf("SubScore = %g, want 100", ev.SubScore)
	}
	if !ev.Detected {
		t.Error("Detected should be true")
	}
	if len(ev.Breakdown) != scoring.CriteriaPerSkill {
		t.Fatalf("breakdown has %d criteria, want %d", len(ev.Breakdown), scoring.CriteriaPerSkill)
	}
	for _, cs := range ev.Breakdown {
		if cs.Score < 0 || cs.Score > scoring.MaxCriterionScore {
			t.Errorf("criterion %s score %g outside [0,20]", cs.Key, cs.Score)
		}
	}
	if len(ev.Trail) == 0 {
		t.Error("expected a non-empty evidence trail")
	}
}

func TestEvaluateBuckets(t *testing.T) {
	e := scoring.NewEvaluator(scoring.DefaultRegistry())

	tests := []struct {
		hooks     int
		hookScore float64
	}{
		{0, 0},
		{1, 6},
		{4, 6},
		{5, 12},
		{9, 12},
		{10, 20},
		{500, 20},
	}

	for _, tt := range tests {
		ev, err := e.Evaluate("React", reactFacts(tt.hooks, 0), scoring.RepoMeta{})
		if err != nil {
			t.Fatalf("Evaluate() error: %v", err)
		}
		var hook *scoring.CriterionScore
		for i := range ev.Breakdown {
			if ev.Breakdown[i].Key == "hooks_usage" {
				hook = &ev.Breakdown[i]
			}
		}
		if hook == nil {
			t.Fatal("hooks_usage criterion missing")
		}
		if hook.Score != tt.hookScore {
			t.Errorf("hooks=%d: score %g, want %g", tt.hooks, hook.Score, tt.hookScore)
		}
	}
}

func TestEvaluateNotDetectedShortCircuit(t *testing.T) {
	e := scoring.NewEvaluator(scoring.DefaultRegistry())

	// Full usage evidence but no dependency: presence criterion gates it.
	f := evidence.NewFacts()
	f.SetCount("pattern:hooks", 50)
	f.SetCount(evidence.FactLOCWithTechnology, 9000)

	ev, err := e.Evaluate("React", f, scoring.RepoMeta{CommitCount: 100, Authorship: 1.0})
	if err != nil {
		t.Fatalf("Evaluate() error: %v", err)
	}

	if ev.Detected {
		t.Error("Detected should be false")
	}
	if ev.SubScore != 0 {
		t.Errorf("SubScore = %g, want 0", ev.SubScore)
	}
	if len(ev.Breakdown) != 1 {
		t.Errorf("short-circuit should report only the presence criterion, got %d", len(ev.Breakdown))
	}
	if len(ev.Trail) == 0 || !strings.Contains(ev.Trail[0], "not detected") {
		t.Errorf("trail %v should carry an explicit not-detected entry", ev.Trail)
	}
}

func TestEvaluateMissingFactsAreZero(t *testing.T) {
	e := scoring.NewEvaluator(scoring.DefaultRegistry())

	// Presence holds but every other fact is absent: total over sparse
	// evidence, no error.
	f := evidence.NewFacts()
	f.SetFlag(evidence.FactDependencyPresent, true)

	ev, err := e.Evaluate("React", f, scoring.RepoMeta{})
	if err != nil {
		t.Fatalf("Evaluate() error: %v", err)
	}
	if ev.SubScore != 20 {
		t.Errorf("SubScore = %g, want 20 (presence only)", ev.SubScore)
	}
}

func TestEvaluateClampsMalformedFacts(t *testing.T) {
	e := scoring.NewEvaluator(scoring.DefaultRegistry())

	f := reactFacts(-50, 1<<30) // negative count and absurdly large count

	ev, err := e.Evaluate("React", f, scoring.RepoMeta{CommitCount: -3})
	if err != nil {
		t.Fatalf("Evaluate() error: %v", err)
	}
	for _, cs := range ev.Breakdown {
		if cs.Score < 0 || cs.Score > scoring.MaxCriterionScore {
			t.Errorf("criterion %s score %g outside [0,20] for malformed facts", cs.Key, cs.Score)
		}
	}
	if ev.SubScore < 0 || ev.SubScore > scoring.MaxSubScore {
		t.Errorf("SubScore %g outside [0,100]", ev.SubScore)
	}
}

func TestEvaluateUnknownTechnology(t *testing.T) {
	e := scoring.NewEvaluator(scoring.DefaultRegistry())

	_, err := e.Evaluate("Fortran", evidence.NewFacts(), scoring.RepoMeta{})
	var unknownErr *scoring.UnknownTechnologyError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("error = %v, want UnknownTechnologyError", err)
	}
	if unknownErr.Technology != "Fortran" {
		t.Errorf("Technology = %q, want Fortran", unknownErr.Technology)
	}
}

func TestEvaluateDeterminism(t *testing.T) {
	e := scoring.NewEvaluator(scoring.DefaultRegistry())
	f := reactFacts(7, 1800)
	meta := scoring.RepoMeta{CommitCount: 17, Authorship: 0.42}

	a, err := e.Evaluate("React", f, meta)
	if err != nil {
		t.Fatal(err)
	}
	b, err := e.Evaluate("React", f, meta)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("repeated evaluations differ:\n%+v\n%+v", a, b)
	}
}

func TestDefaultRegistryCoversAllTechnologies(t *testing.T) {
	r := scoring.DefaultRegistry()

	want := []string{"C", "C++", "Django", "JavaScript", "NodeJS", "Python", "React", "TailwindCSS", "TypeScript"}
	got := r.Technologies()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Technologies() = %v, want %v", got, want)
	}
}
