// Package evidence defines the boundary contract between technology
// detection and scoring: a bag of named facts per (technology, repository).
// Consumers must treat a missing fact as "not detected" (false/zero), never
// as an error.
package evidence

import "sort"

// Well-known fact keys. Technology rule-sets may declare additional keys
// (typically "pattern:<name>" hit counters).
const (
	FactDependencyPresent = "dependency_present"
	FactConfigPresent     = "config_present"
	FactFilesOfType       = "files_of_type"
	FactLOCWithTechnology = "loc_with_technology"
)

// Facts is a read-only bag of named facts for one (technology, repository)
// pair. The zero value is a valid, empty bag. Built once by a Collector and
// never mutated afterwards.
type Facts struct {
	Counts  map[string]int      `json:"counts,omitempty"`
	Flags   map[string]bool     `json:"flags,omitempty"`
	Samples map[string][]string `json:"samples,omitempty"`
}

// NewFacts returns an empty fact bag ready for population.
func NewFacts() Facts {
	return Facts{
		Counts:  make(map[string]int),
		Flags:   make(map[string]bool),
		Samples: make(map[string][]string),
	}
}

// Count returns the numeric fact for key, or 0 when absent.
func (f Facts) Count(key string) int {
	return f.Counts[key]
}

// Bool returns the boolean fact for key. A count fact under the same key is
// truthy when positive, so detectors may record either form.
func (f Facts) Bool(key string) bool {
	if f.Flags[key] {
		return true
	}
	return f.Counts[key] > 0
}

// SampleList returns up to limit recorded sample strings (file paths,
// matched snippets) backing the fact at key. limit <= 0 returns all.
func (f Facts) SampleList(key string, limit int) []string {
	s := f.Samples[key]
	if limit > 0 && len(s) > limit {
		s = s[:limit]
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// Keys returns all fact keys, sorted, for stable display.
func (f Facts) Keys() []string {
	seen := make(map[string]bool, len(f.Counts)+len(f.Flags))
	for k := range f.Counts {
		seen[k] = true
	}
	for k := range f.Flags {
		seen[k] = true
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Empty reports whether the bag holds no facts at all.
func (f Facts) Empty() bool {
	return len(f.Counts) == 0 && len(f.Flags) == 0
}

// SetCount records a numeric fact. Intended for collectors and tests.
func (f *Facts) SetCount(key string, n int) {
	if f.Counts == nil {
		f.Counts = make(map[string]int)
	}
	f.Counts[key] = n
}

// SetFlag records a boolean fact. Intended for collectors and tests.
func (f *Facts) SetFlag(key string, v bool) {
	if f.Flags == nil {
		f.Flags = make(map[string]bool)
	}
	f.Flags[key] = v
}

// AddSample appends a sample string backing the fact at key.
func (f *Facts) AddSample(key, sample string) {
	if f.Samples == nil {
		f.Samples = make(map[string][]string)
	}
	f.Samples[key] = append(f.Samples[key], sample)
}
