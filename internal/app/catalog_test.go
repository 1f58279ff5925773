package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"quiz-portal/internal/app"
	"quiz-portal/internal/backend"
	"quiz-portal/internal/domain"
	"quiz-portal/internal/fallback"
)

func TestReadsFallBackWhenBackendDown(t *testing.T) {
	ctx := context.Background()
	catalog := app.NewCatalogService(&fakeGateway{down: true}, nil)

	categories := catalog.Categories(ctx)
	if categories.Source != app.SourceFallback {
		t.Fatalf("source = %v, want fallback", categories.Source)
	}
	want := fallback.Categories()
	if len(categories.Data) != len(want) {
		t.Fatalf("categories = %v, want %v", categories.Data, want)
	}
	for i := range want {
		if categories.Data[i] != want[i] {
			t.Fatalf("categories = %v, want %v", categories.Data, want)
		}
	}

	quizzes := catalog.Quizzes(ctx)
	if quizzes.Source != app.SourceFallback || len(quizzes.Data) != 2 {
		t.Fatalf("expected 2 fallback quizzes, got %v (%v)", quizzes.Data, quizzes.Source)
	}

	quiz := catalog.Quiz(ctx, 42)
	if quiz.Source != app.SourceFallback {
		t.Fatalf("quiz source = %v, want fallback", quiz.Source)
	}
	if quiz.Data.ID != 42 || quiz.Data.Title != "Data Science Quiz" || len(quiz.Data.Questions) != 5 {
		t.Fatalf("synthetic quiz mismatch: %+v", quiz.Data)
	}

	board := catalog.Leaderboard(ctx, "General")
	if board.Source != app.SourceFallback || len(board.Data) != 0 {
		t.Fatalf("expected empty fallback leaderboard, got %v (%v)", board.Data, board.Source)
	}
}

func TestReadsTagLiveAndEmpty(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{
		categories: []string{"History"},
		entries:    []domain.LeaderboardEntry{},
	}
	catalog := app.NewCatalogService(gw, nil)

	categories := catalog.Categories(ctx)
	if categories.Source != app.SourceLive || len(categories.Data) != 1 {
		t.Fatalf("expected live single category, got %v (%v)", categories.Data, categories.Source)
	}

	// A live-but-empty sequence must be distinguishable from an absorbed outage.
	board := catalog.Leaderboard(ctx, "History")
	if board.Source != app.SourceEmpty {
		t.Fatalf("source = %v, want empty", board.Source)
	}
}

func TestWritesSurfaceErrors(t *testing.T) {
	ctx := context.Background()
	catalog := app.NewCatalogService(&fakeGateway{down: true}, nil)

	_, err := catalog.SubmitResult(ctx, domain.ResultSubmission{UserID: 1, QuizID: 1})
	var werr *domain.WriteError
	if !errors.As(err, &werr) {
		t.Fatalf("expected WriteError, got %v", err)
	}
	if werr.Guidance != backend.SaveResultGuidance {
		t.Fatalf("guidance = %q", werr.Guidance)
	}
}

// fakeGateway serves canned data, or normalized failures when down.
type fakeGateway struct {
	down       bool
	categories []string
	summaries  []domain.QuizSummary
	quiz       domain.Quiz
	entries    []domain.LeaderboardEntry
}

func (g *fakeGateway) readErr(op string) error {
	return &domain.BackendError{Op: op, Err: errors.New("connection refused")}
}

func (g *fakeGateway) GetCategories(context.Context) ([]string, error) {
	if g.down {
		return nil, g.readErr("getCategories")
	}
	return g.categories, nil
}

func (g *fakeGateway) GetQuizzes(context.Context) ([]domain.QuizSummary, error) {
	if g.down {
		return nil, g.readErr("getQuizzes")
	}
	return g.summaries, nil
}

func (g *fakeGateway) GetQuiz(context.Context, int) (domain.Quiz, error) {
	if g.down {
		return domain.Quiz{}, g.readErr("getQuiz")
	}
	return g.quiz, nil
}

func (g *fakeGateway) GetLeaderboard(context.Context, string) ([]domain.LeaderboardEntry, error) {
	if g.down {
		return nil, g.readErr("getLeaderboard")
	}
	return g.entries, nil
}

func (g *fakeGateway) GetOverallLeaderboard(context.Context) ([]domain.LeaderboardEntry, error) {
	if g.down {
		return nil, g.readErr("getOverallLeaderboard")
	}
	return g.entries, nil
}

func (g *fakeGateway) SubmitResult(context.Context, domain.ResultSubmission) (json.RawMessage, error) {
	if g.down {
		return nil, &domain.WriteError{Op: "submitResult", Guidance: backend.SaveResultGuidance, Err: errors.New("connection refused")}
	}
	return json.RawMessage(`{"success":true}`), nil
}

func (g *fakeGateway) SubmitDocument(context.Context, string, io.Reader) (json.RawMessage, error) {
	if g.down {
		return nil, &domain.WriteError{Op: "submitDocument", Guidance: backend.UploadGuidance, Err: errors.New("connection refused")}
	}
	return json.RawMessage(`{"success":true,"quizId":3}`), nil
}
