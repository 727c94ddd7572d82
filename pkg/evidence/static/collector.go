package static

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/JerrySanjuJoanes/chaincred/pkg/evidence"
)

// maxFileSize guards against scanning generated bundles and binary blobs.
const maxFileSize = 1 << 20

// sampleLimit caps recorded file paths per fact key.
const sampleLimit = 5

var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	"venv":         true,
	".venv":        true,
	"__pycache__":  true,
	"dist":         true,
	"build":        true,
	"target":       true,
}

// Collector walks a checkout once and evaluates every profile against each
// file, producing one Facts bundle per requested technology.
type Collector struct {
	profiles []Profile
}

// NewCollector returns a Collector over the given profiles, or the defaults
// when none are supplied.
func NewCollector(profiles []Profile) *Collector {
	if len(profiles) == 0 {
		profiles = DefaultProfiles()
	}
	return &Collector{profiles: profiles}
}

type profileState struct {
	profile Profile
	facts   evidence.Facts
	extHits map[string]int
}

// Collect implements evidence.Collector. Technologies without a registered
// profile are returned with empty Facts so the caller can report them as not
// detected rather than failing.
func (c *Collector) Collect(ctx context.Context, repoPath string, technologies []string) (map[string]evidence.Facts, error) {
	// An empty technology list means scan for everything profiled.
	wanted := make(map[string]bool, len(technologies))
	for _, t := range technologies {
		wanted[t] = true
	}

	var states []*profileState
	for _, p := range c.profiles {
		if len(technologies) > 0 && !wanted[p.Technology] {
			continue
		}
		states = append(states, &profileState{
			profile: p,
			facts:   evidence.NewFacts(),
			extHits: make(map[string]int),
		})
	}

	err := filepath.WalkDir(repoPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		rel, relErr := filepath.Rel(repoPath, path)
		if relErr != nil {
			rel = path
		}
		name := d.Name()
		ext := strings.ToLower(filepath.Ext(name))

		var content string
		loaded := false
		load := func() (string, bool) {
			if loaded {
				return content, content != ""
			}
			loaded = true
			info, infoErr := d.Info()
			if infoErr != nil || info.Size() > maxFileSize {
				return "", false
			}
			data, readErr := os.ReadFile(path)
			if readErr != nil {
				return "", false
			}
			content = string(data)
			return content, true
		}

		for _, st := range states {
			st.observe(name, ext, rel, load)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", repoPath, err)
	}

	out := make(map[string]evidence.Facts, len(technologies))
	for _, st := range states {
		st.finish()
		out[st.profile.Technology] = st.facts
	}
	for _, t := range technologies {
		if _, ok := out[t]; !ok {
			out[t] = evidence.NewFacts()
		}
	}
	return out, nil
}

func (s *profileState) observe(name, ext, rel string, load func() (string, bool)) {
	p := s.profile

	for _, dep := range p.DependencyFiles {
		if name != dep {
			continue
		}
		if len(p.DependencyMatch) == 0 {
			s.setFlagOnce(evidence.FactDependencyPresent, rel)
			break
		}
		if body, ok := load(); ok {
			lower := strings.ToLower(body)
			for _, m := range p.DependencyMatch {
				if strings.Contains(lower, strings.ToLower(m)) {
					s.setFlagOnce(evidence.FactDependencyPresent, rel)
					break
				}
			}
		}
		break
	}

	for _, cfg := range p.ConfigFiles {
		if name == cfg {
			s.setFlagOnce(evidence.FactConfigPresent, rel)
			break
		}
	}

	for key, names := range p.FileNamePatterns {
		for _, n := range names {
			if name == n {
				s.bump("pattern:"+key, 1, rel)
				break
			}
		}
	}

	if !containsExt(p.Extensions, ext) {
		return
	}
	s.extHits[ext]++
	s.bump(evidence.FactFilesOfType, 1, rel)

	body, ok := load()
	if !ok {
		return
	}
	s.facts.SetCount(evidence.FactLOCWithTechnology,
		s.facts.Count(evidence.FactLOCWithTechnology)+countLines(body))

	for key, needles := range p.Patterns {
		hits := 0
		for _, needle := range needles {
			hits += strings.Count(body, needle)
		}
		if hits > 0 {
			s.bump("pattern:"+key, hits, rel)
		}
	}
}

// finish derives facts that depend on whole-tree counts.
func (s *profileState) finish() {
	a, b := s.profile.PairExtensions[0], s.profile.PairExtensions[1]
	if a == "" || b == "" {
		return
	}
	pairs := s.extHits[a]
	if s.extHits[b] < pairs {
		pairs = s.extHits[b]
	}
	s.facts.SetCount("pattern:header_pairs", pairs)
}

func (s *profileState) setFlagOnce(key, sample string) {
	if !s.facts.Bool(key) {
		s.facts.SetFlag(key, true)
		s.sample(key, sample)
	}
}

func (s *profileState) bump(key string, n int, sample string) {
	s.facts.SetCount(key, s.facts.Count(key)+n)
	s.sample(key, sample)
}

func (s *profileState) sample(key, rel string) {
	if len(s.facts.SampleList(key, sampleLimit+1)) < sampleLimit {
		s.facts.AddSample(key, rel)
	}
}

func containsExt(exts []string, ext string) bool {
	for _, e := range exts {
		if e == ext {
			return true
		}
	}
	return false
}

func countLines(body string) int {
	if body == "" {
		return 0
	}
	n := strings.Count(body, "\n")
	if !strings.HasSuffix(body, "\n") {
		n++
	}
	return n
}
