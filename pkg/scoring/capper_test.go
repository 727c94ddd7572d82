package scoring_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/JerrySanjuJoanes/chaincred/pkg/scoring"
)

func TestCapTierTable(t *testing.T) {
	c := scoring.NewCapper(nil)

	tests := []struct {
		name     string
		sub      float64
		fraction float64
		want     float64
		tier     string
	}{
		{"high full", 94, 1.00, 94, "high confidence"},
		{"high boundary exact", 80, 0.70, 80, "high confidence"},
		{"medium caps", 80, 0.45, 60, "medium confidence"},
		{"medium boundary exact", 55, 0.30, 55, "medium confidence"},
		{"low caps", 90, 0.15, 40, "low confidence"},
		{"low boundary exact", 35, 0.10, 35, "low confidence"},
		{"boundary tier exact", 90, 0.05, 40, "low confidence (boundary)"},
		{"insufficient", 100, 0.02, 0, "insufficient"},
		{"just under boundary", 100, 0.049, 0, "insufficient"},
		{"capped below sub", 62, 0.45, 60, "medium confidence"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Cap(tt.sub, tt.fraction)
			if err != nil {
				t.Fatalf("Cap(%g, %g) error: %v", tt.sub, tt.fraction, err)
			}
			if got.Score != tt.want {
				t.Errorf("Cap(%g, %g) = %g, want %g", tt.sub, tt.fraction, got.Score, tt.want)
			}
			if got.Tier != tt.tier {
				t.Errorf("tier = %q, want %q", got.Tier, tt.tier)
			}
			if got.Score > tt.sub {
				t.Errorf("cap raised the score: %g > %g", got.Score, tt.sub)
			}
		})
	}
}

func TestCapZeroContribution(t *testing.T) {
	c := scoring.NewCapper(nil)

	for _, sub := range []float64{0, 1, 50, 100} {
		got, err := c.Cap(sub, 0)
		if err != nil {
			t.Fatalf("Cap(%g, 0) error: %v", sub, err)
		}
		if got.Score != 0 {
			t.Errorf("Cap(%g, 0) = %g, want 0", sub, got.Score)
		}
		// The zero-fraction reason must not read like "skill not detected".
		if !strings.Contains(got.Reason, "no measurable contribution") {
			t.Errorf("zero-fraction reason = %q, want a no-contribution reason", got.Reason)
		}
	}
}

func TestCapMonotonicInFraction(t *testing.T) {
	c := scoring.NewCapper(nil)
	const sub = 85.0

	prev := -1.0
	for _, fr := range []float64{0, 0.01, 0.05, 0.0501, 0.10, 0.25, 0.30, 0.55, 0.70, 0.90, 1.0} {
		got, err := c.Cap(sub, fr)
		if err != nil {
			t.Fatalf("Cap(%g, %g) error: %v", sub, fr, err)
		}
		if got.Score < prev {
			t.Errorf("capped score decreased as fraction rose: %g at fraction %g (prev %g)", got.Score, fr, prev)
		}
		prev = got.Score
	}
}

func TestCapMonotonicInSubScore(t *testing.T) {
	c := scoring.NewCapper(nil)
	const fraction = 0.45

	prev := -1.0
	for sub := 0.0; sub <= 100; sub += 5 {
		got, err := c.Cap(sub, fraction)
		if err != nil {
			t.Fatalf("Cap(%g, %g) error: %v", sub, fraction, err)
		}
		if got.Score < prev {
			t.Errorf("capped score decreased as sub-score rose: %g at sub %g", got.Score, sub)
		}
		if got.Score > sub {
			t.Errorf("capped score %g exceeds sub-score %g", got.Score, sub)
		}
		prev = got.Score
	}
}

func TestCapRejectsOutOfRangeInputs(t *testing.T) {
	c := scoring.NewCapper(nil)

	var rangeErr *scoring.RangeError
	if _, err := c.Cap(101, 0.5); !errors.As(err, &rangeErr) {
		t.Errorf("Cap(101, 0.5) error = %v, want RangeError", err)
	}
	if _, err := c.Cap(-1, 0.5); !errors.As(err, &rangeErr) {
		t.Errorf("Cap(-1, 0.5) error = %v, want RangeError", err)
	}
	if _, err := c.Cap(50, 1.5); !errors.As(err, &rangeErr) {
		t.Errorf("Cap(50, 1.5) error = %v, want RangeError", err)
	}
}

func TestCapCustomTiers(t *testing.T) {
	c := scoring.NewCapper([]scoring.Tier{
		{MinFraction: 0.50, MaxScore: 100, Label: "trusted"},
		{MinFraction: 0, MaxScore: 10, Label: "probation"},
	})

	got, err := c.Cap(90, 0.49)
	if err != nil {
		t.Fatal(err)
	}
	if got.Score != 10 || got.Tier != "probation" {
		t.Errorf("custom tier: got %g/%q, want 10/probation", got.Score, got.Tier)
	}
}
