package evidence_test

import (
	"reflect"
	"testing"

	"github.com/JerrySanjuJoanes/chaincred/pkg/evidence"
)

func TestFactsZeroValueReads(t *testing.T) {
	var f evidence.Facts

	if f.Count("anything") != 0 {
		t.Error("missing count must read as zero")
	}
	if f.Bool("anything") {
		t.Error("missing flag must read as false")
	}
	if got := f.SampleList("anything", 3); len(got) != 0 {
		t.Errorf("missing samples = %v, want none", got)
	}
	if !f.Empty() {
		t.Error("zero value must be empty")
	}
}

func TestBoolTreatsPositiveCountAsTrue(t *testing.T) {
	f := evidence.NewFacts()
	f.SetCount("pattern:hooks", 3)

	if !f.Bool("pattern:hooks") {
		t.Error("positive count must be truthy")
	}
	f.SetCount("pattern:hooks", 0)
	if f.Bool("pattern:hooks") {
		t.Error("zero count must be falsy")
	}
}

func TestSampleListLimit(t *testing.T) {
	f := evidence.NewFacts()
	for _, s := range []string{"a.js", "b.js", "c.js"} {
		f.AddSample("files_of_type", s)
	}

	if got := f.SampleList("files_of_type", 2); !reflect.DeepEqual(got, []string{"a.js", "b.js"}) {
		t.Errorf("limited samples = %v", got)
	}
	if got := f.SampleList("files_of_type", 0); len(got) != 3 {
		t.Errorf("unlimited samples = %v", got)
	}

	// Returned slices are copies; mutating one must not alter the bag.
	got := f.SampleList("files_of_type", 0)
	got[0] = "mutated"
	if f.SampleList("files_of_type", 0)[0] != "a.js" {
		t.Error("SampleList must copy")
	}
}

func TestKeysSortedAcrossCountsAndFlags(t *testing.T) {
	f := evidence.NewFacts()
	f.SetCount("loc_with_technology", 500)
	f.SetFlag("dependency_present", true)
	f.SetCount("files_of_type", 4)

	want := []string{"dependency_present", "files_of_type", "loc_with_technology"}
	if got := f.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("keys = %v, want %v", got, want)
	}
}

func TestFactsZeroValueMutation(t *testing.T) {
	var f evidence.Facts

	f.SetCount("pattern:hooks", 3)
	f.SetFlag("dependency_present", true)
	f.AddSample("pattern:hooks", "src/App.jsx")

	if f.Count("pattern:hooks") != 3 {
		t.Errorf("count = %d, want 3", f.Count("pattern:hooks"))
	}
	if !f.Bool("dependency_present") {
		t.Error("flag not recorded")
	}
	if got := f.SampleList("pattern:hooks", 0); !reflect.DeepEqual(got, []string{"src/App.jsx"}) {
		t.Errorf("samples = %v", got)
	}
}
