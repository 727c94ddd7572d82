package analysis

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SaveRepoAnalysis writes a snapshot to disk as JSON.
func SaveRepoAnalysis(path string, ra *RepoAnalysis) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for analysis: %w", err)
	}

	data, err := json.MarshalIndent(ra, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling analysis: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing analysis: %w", err)
	}

	return nil
}

// LoadRepoAnalysis reads a snapshot from disk.
func LoadRepoAnalysis(path string) (*RepoAnalysis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading analysis: %w", err)
	}

	var ra RepoAnalysis
	if err := json.Unmarshal(data, &ra); err != nil {
		return nil, fmt.Errorf("unmarshaling analysis: %w", err)
	}

	return &ra, nil
}

// SaveReport writes a skill report to disk as JSON.
func SaveReport(path string, rep *SkillReport) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for report: %w", err)
	}

	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	return nil
}

// LoadReport reads a skill report from disk.
func LoadReport(path string) (*SkillReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}

	var rep SkillReport
	if err := json.Unmarshal(data, &rep); err != nil {
		return nil, fmt.Errorf("unmarshaling report: %w", err)
	}

	return &rep, nil
}
