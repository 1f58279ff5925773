package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"quiz-portal/internal/domain"
)

type countingFetcher struct {
	calls int
	quiz  domain.Quiz
	err   error
}

func (f *countingFetcher) FetchQuiz(_ context.Context, id int) (domain.Quiz, error) {
	f.calls++
	if f.err != nil {
		return domain.Quiz{}, f.err
	}
	quiz := f.quiz
	quiz.ID = id
	return quiz, nil
}

func TestQuizCacheServesFromCacheWithinTTL(t *testing.T) {
	ctx := context.Background()
	fetcher := &countingFetcher{quiz: domain.Quiz{Title: "Cached"}}
	cache := NewQuizCache(fetcher, time.Minute)

	for i := 0; i < 3; i++ {
		quiz, err := cache.FetchQuiz(ctx, 1)
		if err != nil {
			t.Fatalf("fetch %d: %v", i, err)
		}
		if quiz.Title != "Cached" || quiz.ID != 1 {
			t.Fatalf("fetch %d returned %+v", i, quiz)
		}
	}
	if fetcher.calls != 1 {
		t.Fatalf("expected a single upstream fetch, got %d", fetcher.calls)
	}
}

func TestQuizCacheRefetchesAfterExpiry(t *testing.T) {
	ctx := context.Background()
	fetcher := &countingFetcher{quiz: domain.Quiz{Title: "Cached"}}
	cache := NewQuizCache(fetcher, time.Minute)

	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	cache.clock = func() time.Time { return now }

	if _, err := cache.FetchQuiz(ctx, 1); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	// Past the TTL plus its 10% jitter headroom.
	now = now.Add(2 * time.Minute)
	if _, err := cache.FetchQuiz(ctx, 1); err != nil {
		t.Fatalf("fetch after expiry: %v", err)
	}
	if fetcher.calls != 2 {
		t.Fatalf("expected refetch after expiry, got %d calls", fetcher.calls)
	}
}

func TestQuizCacheKeysByID(t *testing.T) {
	ctx := context.Background()
	fetcher := &countingFetcher{quiz: domain.Quiz{Title: "Cached"}}
	cache := NewQuizCache(fetcher, time.Minute)

	_, _ = cache.FetchQuiz(ctx, 1)
	_, _ = cache.FetchQuiz(ctx, 2)
	if fetcher.calls != 2 {
		t.Fatalf("distinct ids must fetch separately, got %d calls", fetcher.calls)
	}
}

func TestQuizCacheDoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	fetcher := &countingFetcher{err: errors.New("backend down")}
	cache := NewQuizCache(fetcher, time.Minute)

	if _, err := cache.FetchQuiz(ctx, 1); err == nil {
		t.Fatalf("expected error from failing fetcher")
	}
	fetcher.err = nil
	fetcher.quiz = domain.Quiz{Title: "Recovered"}
	quiz, err := cache.FetchQuiz(ctx, 1)
	if err != nil {
		t.Fatalf("fetch after recovery: %v", err)
	}
	if quiz.Title != "Recovered" {
		t.Fatalf("stale error cached: %+v", quiz)
	}
}
