// Package config handles loading and managing ChainCred configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/JerrySanjuJoanes/chaincred/pkg/identity"
	"github.com/JerrySanjuJoanes/chaincred/pkg/scoring"
)

// Config is the top-level configuration for ChainCred. Every threshold the
// scoring engine consults is overridable here; an absent section means the
// built-in defaults.
type Config struct {
	Identity IdentityConfig `yaml:"identity"`
	Scoring  ScoringConfig  `yaml:"scoring"`
	Analysis AnalysisConfig `yaml:"analysis"`
}

// IdentityConfig controls contributor classification.
type IdentityConfig struct {
	// BotPatterns replaces the built-in bot name/email patterns when set.
	BotPatterns []string `yaml:"bot_patterns"`
}

// ScoringConfig controls the scoring engine.
type ScoringConfig struct {
	// Tiers replaces the confidence tier table when set, ordered by
	// descending min_fraction.
	Tiers []scoring.Tier `yaml:"tiers"`
	// Criteria overrides bucket tables per technology and criterion key.
	Criteria map[string]map[string][]scoring.Bucket `yaml:"criteria"`
}

// AnalysisConfig controls repository analysis.
type AnalysisConfig struct {
	GitPath      string   `yaml:"git_path"`
	Technologies []string `yaml:"technologies"` // empty means all registered
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			GitPath: "git",
		},
	}
}

// Load reads a config file from the given path.
// If the file does not exist, it returns the default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Classifier builds the bot classifier from the configured patterns.
func (c *Config) Classifier() *identity.Classifier {
	return identity.NewClassifier(c.Identity.BotPatterns)
}

// Capper builds the confidence capper from the configured tier table. An
// override table that is not in descending fraction order, or whose bounds
// fall outside [0,1] and [0,100], is a configuration error: the capper
// matches top-down, so a mis-ordered table silently mis-tiers.
func (c *Config) Capper() (*scoring.Capper, error) {
	for i, tier := range c.Scoring.Tiers {
		if tier.MinFraction < 0 || tier.MinFraction > 1 {
			return nil, fmt.Errorf("tier override %q: min_fraction %g outside [0,1]", tier.Label, tier.MinFraction)
		}
		if tier.MaxScore < 0 || tier.MaxScore > 100 {
			return nil, fmt.Errorf("tier override %q: max_score %g outside [0,100]", tier.Label, tier.MaxScore)
		}
		if i > 0 && tier.MinFraction >= c.Scoring.Tiers[i-1].MinFraction {
			return nil, fmt.Errorf("tier override %q: min_fraction %g not below the previous tier's %g",
				tier.Label, tier.MinFraction, c.Scoring.Tiers[i-1].MinFraction)
		}
	}
	return scoring.NewCapper(c.Scoring.Tiers), nil
}

// Registry builds the rule-set registry: the built-in tables with the
// configured bucket overrides applied. An override naming an unknown
// technology or criterion key is a configuration error, never silently
// ignored.
func (c *Config) Registry() (*scoring.Registry, error) {
	registry := scoring.DefaultRegistry()

	for tech, criteria := range c.Scoring.Criteria {
		rs, err := registry.Lookup(tech)
		if err != nil {
			return nil, fmt.Errorf("criteria override: %w", err)
		}
		for key, buckets := range criteria {
			found := false
			for i, criterion := range rs.Criteria {
				if criterion.Key != key {
					continue
				}
				rs.Criteria[i].Buckets = buckets
				found = true
				break
			}
			if !found {
				return nil, fmt.Errorf("criteria override: %s has no criterion %q", tech, key)
			}
		}
		if err := registry.Register(rs); err != nil {
			return nil, fmt.Errorf("criteria override for %s: %w", tech, err)
		}
	}

	return registry, nil
}

// FindConfigFile looks for .chaincred/config.yaml in the given directory
// and its parents, returning the path if found, or "" if not.
func FindConfigFile(dir string) string {
	for {
		candidate := filepath.Join(dir, ".chaincred", "config.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// CacheDir returns the cache directory for a given repository path.
// Uses ~/.cache/chaincred/<repo-slug>/ to avoid polluting the repo.
func CacheDir(repoPath string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to temp dir if HOME isn't available
		home = os.TempDir()
	}
	slug := repoSlug(repoPath)
	return filepath.Join(home, ".cache", "chaincred", slug)
}

// AnalysisDir returns the analysis snapshot storage directory for a repository.
func AnalysisDir(repoPath string) string {
	return filepath.Join(CacheDir(repoPath), "analyses")
}

// ReportDir returns the report storage directory for a repository.
func ReportDir(repoPath string) string {
	return filepath.Join(CacheDir(repoPath), "reports")
}

// repoSlug creates a filesystem-safe identifier from a repository path.
// Uses the last two path components (e.g., "user/myrepo" from "/home/user/repos/myrepo").
func repoSlug(repoPath string) string {
	abs, err := filepath.Abs(repoPath)
	if err != nil {
		abs = repoPath
	}
	// Use last two path components for readability
	dir := filepath.Base(filepath.Dir(abs))
	base := filepath.Base(abs)
	return dir + "_" + base
}

// FindRepoRoot walks up from dir looking for a .git directory.
func FindRepoRoot(dir string) (string, error) {
	for {
		candidate := filepath.Join(dir, ".git")
		if _, err := os.Stat(candidate); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("no git repository found (looked for a .git directory)")
}
