package app

import (
	"context"
	"sort"

	"quiz-portal/internal/domain"
)

// ResultStats summarizes the local result log for the "my results" view.
type ResultStats struct {
	TotalQuizzes int
	AverageScore float64
	BestScore    float64
}

// RecentResults reads the log and returns it most-recent-first.
func RecentResults(ctx context.Context, store ResultStore) ([]domain.QuizResult, error) {
	results, err := store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CompletedAt.After(results[j].CompletedAt)
	})
	return results, nil
}

// ComputeStats derives totals, mean and best score from completed attempts.
func ComputeStats(results []domain.QuizResult) ResultStats {
	if len(results) == 0 {
		return ResultStats{}
	}
	stats := ResultStats{TotalQuizzes: len(results)}
	sum := 0.0
	for _, r := range results {
		sum += r.Score
		if r.Score > stats.BestScore {
			stats.BestScore = r.Score
		}
	}
	stats.AverageScore = sum / float64(len(results))
	return stats
}
