package app

import (
	"context"
	"encoding/json"
	"io"
	"log"

	"quiz-portal/internal/domain"
	"quiz-portal/internal/fallback"
)

// Gateway abstracts the upstream backend client (see internal/backend).
type Gateway interface {
	GetCategories(ctx context.Context) ([]string, error)
	GetQuizzes(ctx context.Context) ([]domain.QuizSummary, error)
	GetQuiz(ctx context.Context, id int) (domain.Quiz, error)
	GetLeaderboard(ctx context.Context, category string) ([]domain.LeaderboardEntry, error)
	GetOverallLeaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error)
	SubmitResult(ctx context.Context, sub domain.ResultSubmission) (json.RawMessage, error)
	SubmitDocument(ctx context.Context, contentType string, form io.Reader) (json.RawMessage, error)
}

// QuizFetcher loads one quiz; caches wrap the gateway behind this.
type QuizFetcher interface {
	FetchQuiz(ctx context.Context, id int) (domain.Quiz, error)
}

// Source tags where a read's data came from. The HTTP surface collapses all
// three to a plain 200 body; the tag stays available out-of-band so callers
// and tests can tell a real empty result from an absorbed outage.
type Source string

const (
	SourceLive     Source = "live"
	SourceFallback Source = "fallback"
	SourceEmpty    Source = "empty"
)

// Sourced pairs read data with its provenance tag.
type Sourced[T any] struct {
	Data   T
	Source Source
}

func live[T any](data T) Sourced[T]     { return Sourced[T]{Data: data, Source: SourceLive} }
func fellBack[T any](data T) Sourced[T] { return Sourced[T]{Data: data, Source: SourceFallback} }

func liveSlice[T any](data []T) Sourced[[]T] {
	if len(data) == 0 {
		return Sourced[[]T]{Data: []T{}, Source: SourceEmpty}
	}
	return live(data)
}

// CatalogService is the resilient query layer every externally reachable
// operation passes through. Reads absorb backend failures into fallback
// data; writes surface them.
type CatalogService struct {
	gateway Gateway
	quizzes QuizFetcher
}

// NewCatalogService wires the gateway and an optional quiz cache. A nil
// fetcher means quizzes go straight to the gateway.
func NewCatalogService(gateway Gateway, quizzes QuizFetcher) *CatalogService {
	if quizzes == nil {
		quizzes = gatewayFetcher{gateway}
	}
	return &CatalogService{gateway: gateway, quizzes: quizzes}
}

type gatewayFetcher struct{ gw Gateway }

func (f gatewayFetcher) FetchQuiz(ctx context.Context, id int) (domain.Quiz, error) {
	return f.gw.GetQuiz(ctx, id)
}

// Categories returns the known category labels, or the fixed fallback list.
func (s *CatalogService) Categories(ctx context.Context) Sourced[[]string] {
	categories, err := s.gateway.GetCategories(ctx)
	if err != nil {
		log.Printf("categories read fell back: %v", err)
		return fellBack(fallback.Categories())
	}
	return liveSlice(categories)
}

// Quizzes returns quiz summaries, or the fixed two-entry fallback list.
func (s *CatalogService) Quizzes(ctx context.Context) Sourced[[]domain.QuizSummary] {
	quizzes, err := s.gateway.GetQuizzes(ctx)
	if err != nil {
		log.Printf("quiz list read fell back: %v", err)
		return fellBack(fallback.Quizzes())
	}
	return liveSlice(quizzes)
}

// Quiz returns the full quiz, or a synthetic one echoing the requested id.
// There is no NotFound on this path: the fallback always synthesizes.
func (s *CatalogService) Quiz(ctx context.Context, id int) Sourced[domain.Quiz] {
	quiz, err := s.quizzes.FetchQuiz(ctx, id)
	if err != nil {
		log.Printf("quiz %d read fell back: %v", id, err)
		return fellBack(fallback.Quiz(id))
	}
	return live(quiz)
}

// LoadQuiz adapts Quiz to the session loader contract. It never fails.
func (s *CatalogService) LoadQuiz(ctx context.Context, id int) (domain.Quiz, error) {
	return s.Quiz(ctx, id).Data, nil
}

// Leaderboard returns ranked entries for a category ("" = default view), or
// an empty board when the backend is down.
func (s *CatalogService) Leaderboard(ctx context.Context, category string) Sourced[[]domain.LeaderboardEntry] {
	entries, err := s.gateway.GetLeaderboard(ctx, category)
	if err != nil {
		log.Printf("leaderboard read fell back: %v", err)
		return fellBack(fallback.Leaderboard())
	}
	return liveSlice(entries)
}

// OverallLeaderboard returns the cross-category ranking, or an empty board.
func (s *CatalogService) OverallLeaderboard(ctx context.Context) Sourced[[]domain.LeaderboardEntry] {
	entries, err := s.gateway.GetOverallLeaderboard(ctx)
	if err != nil {
		log.Printf("overall leaderboard read fell back: %v", err)
		return fellBack(fallback.Leaderboard())
	}
	return liveSlice(entries)
}

// SubmitResult pushes a completed attempt upstream. Write failures surface;
// there is no silent success.
func (s *CatalogService) SubmitResult(ctx context.Context, sub domain.ResultSubmission) (json.RawMessage, error) {
	return s.gateway.SubmitResult(ctx, sub)
}

// SubmitDocument forwards a document upload for quiz generation. Same write
// contract as SubmitResult.
func (s *CatalogService) SubmitDocument(ctx context.Context, contentType string, form io.Reader) (json.RawMessage, error) {
	return s.gateway.SubmitDocument(ctx, contentType, form)
}
