// Package ingestion orchestrates the hosted ChainCred pipeline: analysis
// intake, skill scoring, and result storage.
package ingestion

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// StorageClient abstracts blob storage for repository analyses and reports.
type StorageClient interface {
	PutAnalysis(ctx context.Context, candidateID, analysisID string, data []byte) error
	GetAnalysis(ctx context.Context, candidateID, analysisID string) ([]byte, error)
	PutReport(ctx context.Context, candidateID, reportID string, data []byte) error
	GetReport(ctx context.Context, candidateID, reportID string) ([]byte, error)
}

// LocalStorage implements StorageClient using the local filesystem.
// Useful for development and testing.
type LocalStorage struct {
	BaseDir string
}

// NewLocalStorage creates a LocalStorage rooted at the given directory.
func NewLocalStorage(baseDir string) *LocalStorage {
	return &LocalStorage{BaseDir: baseDir}
}

func (s *LocalStorage) path(candidateID, kind, id string) string {
	return filepath.Join(s.BaseDir, candidateID, kind, id+".json")
}

func (s *LocalStorage) put(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// PutAnalysis stores a repository analysis blob.
func (s *LocalStorage) PutAnalysis(ctx context.Context, candidateID, analysisID string, data []byte) error {
	return s.put(s.path(candidateID, "analyses", analysisID), data)
}

// GetAnalysis retrieves a repository analysis blob.
func (s *LocalStorage) GetAnalysis(ctx context.Context, candidateID, analysisID string) ([]byte, error) {
	return os.ReadFile(s.path(candidateID, "analyses", analysisID))
}

// PutReport stores a report blob.
func (s *LocalStorage) PutReport(ctx context.Context, candidateID, reportID string, data []byte) error {
	return s.put(s.path(candidateID, "reports", reportID), data)
}

// GetReport retrieves a report blob.
func (s *LocalStorage) GetReport(ctx context.Context, candidateID, reportID string) ([]byte, error) {
	return os.ReadFile(s.path(candidateID, "reports", reportID))
}
