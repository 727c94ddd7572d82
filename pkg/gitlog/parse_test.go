package gitlog

import (
	"strings"
	"testing"
)

const us = "\x1f"

func header(sha, name, email string) string {
	return "@commit" + us + sha + us + name + us + email
}

func TestParseNumstatOutput(t *testing.T) {
	input := strings.Join([]string{
		header("abc123", "Jane Doe", "jane@example.com"),
		"10\t2\tmain.go",
		"5\t0\tREADME.md",
		"",
		header("def456", "dependabot[bot]", "support@github.com"),
		"100\t100\tgo.sum",
		header("789aaa", "Jane Doe", "jane@example.com"),
		"-\t-\tlogo.png",
		"3\t1\tcmd/root.go",
	}, "\n")

	changes, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if len(changes) != 3 {
		t.Fatalf("expected 3 commits, got %d", len(changes))
	}

	first := changes[0]
	if first.CommitSHA != "abc123" {
		t.Errorf("first commit SHA = %q, want abc123", first.CommitSHA)
	}
	if first.Author.Name != "Jane Doe" || first.Author.Email != "jane@example.com" {
		t.Errorf("unexpected author: %v", first.Author)
	}
	if first.LinesAdded != 15 || first.LinesRemoved != 2 {
		t.Errorf("first commit lines = +%d/-%d, want +15/-2", first.LinesAdded, first.LinesRemoved)
	}
	if first.LinesTouched() != 17 {
		t.Errorf("LinesTouched() = %d, want 17", first.LinesTouched())
	}
	if first.FilesTouched != 2 {
		t.Errorf("FilesTouched = %d, want 2", first.FilesTouched)
	}

	// Binary file counts zero lines but one file.
	third := changes[2]
	if third.LinesAdded != 3 || third.LinesRemoved != 1 {
		t.Errorf("third commit lines = +%d/-%d, want +3/-1", third.LinesAdded, third.LinesRemoved)
	}
	if third.FilesTouched != 2 {
		t.Errorf("third commit FilesTouched = %d, want 2", third.FilesTouched)
	}
}

func TestParseEmptyStream(t *testing.T) {
	changes, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(changes) != 0 {
		t.Errorf("expected no commits, got %d", len(changes))
	}
}

func TestParseMalformedHeader(t *testing.T) {
	_, err := Parse(strings.NewReader("@commit" + us + "onlysha"))
	if err == nil {
		t.Error("expected error for malformed header")
	}
}

func TestParseStrayNumstatLine(t *testing.T) {
	_, err := Parse(strings.NewReader("10\t2\tmain.go"))
	if err == nil {
		t.Error("expected error for numstat line before any header")
	}
}

func TestParseDeterminism(t *testing.T) {
	input := header("abc", "A", "a@x.io") + "\n1\t1\tf.go\n"

	a, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != len(b) || a[0] != b[0] {
		t.Errorf("repeated parses differ: %v vs %v", a, b)
	}
}
