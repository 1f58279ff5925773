package memory

import (
	"context"
	"sync"

	"quiz-portal/internal/domain"
)

// ResultStore is an in-memory implementation of app.ResultStore, used in
// tests and when no durable path is configured. Appends are atomic with
// respect to reads.
type ResultStore struct {
	mu      sync.Mutex
	results []domain.QuizResult
}

func NewResultStore() *ResultStore {
	return &ResultStore{}
}

func (s *ResultStore) Append(_ context.Context, result domain.QuizResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, result)
	return nil
}

func (s *ResultStore) ReadAll(_ context.Context) ([]domain.QuizResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.QuizResult, len(s.results))
	copy(out, s.results)
	return out, nil
}

func (s *ResultStore) ClearAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = nil
	return nil
}

// StaticIdentity is a fixed identity, mainly for tests and single-user dev.
type StaticIdentity struct {
	ID      int
	Present bool
}

func (i StaticIdentity) UserID() (int, bool) {
	return i.ID, i.Present
}
