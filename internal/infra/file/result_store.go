// Package file persists client-local state the way the browser original
// used localStorage: one JSON array of results under a well-known path, and
// a single identity token in a sibling file.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"quiz-portal/internal/domain"
)

// ResultStore is a JSON-file implementation of app.ResultStore. The whole
// log is rewritten on append under a single lock, which keeps Append atomic
// with respect to ReadAll.
type ResultStore struct {
	mu   sync.Mutex
	path string
}

func NewResultStore(path string) *ResultStore {
	return &ResultStore{path: path}
}

func (s *ResultStore) Append(_ context.Context, result domain.QuizResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	results, err := s.readLocked()
	if err != nil {
		return err
	}
	results = append(results, result)
	return s.writeLocked(results)
}

func (s *ResultStore) ReadAll(_ context.Context) ([]domain.QuizResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readLocked()
}

func (s *ResultStore) ClearAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear results: %w", err)
	}
	return nil
}

func (s *ResultStore) readLocked() ([]domain.QuizResult, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []domain.QuizResult{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read results: %w", err)
	}
	var results []domain.QuizResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("decode results: %w", err)
	}
	return results, nil
}

func (s *ResultStore) writeLocked(results []domain.QuizResult) error {
	data, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create results dir: %w", err)
		}
	}
	// Write-then-rename so a crash mid-write cannot truncate the log.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace results: %w", err)
	}
	return nil
}
