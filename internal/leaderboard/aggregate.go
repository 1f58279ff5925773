// Package leaderboard turns raw per-user-per-quiz submissions into ranked
// tables. Aggregation is recomputed on every read; entries are never
// hand-edited.
package leaderboard

import (
	"sort"
	"time"

	"quiz-portal/internal/domain"
)

// OverallCategory labels rows in the cross-category view.
const OverallCategory = "overall"

// Overall groups submissions by username across all categories and ranks
// them: average score descending, best score descending, username ascending.
// The tie-break beyond the average is this implementation's documented
// choice of a deterministic total order.
func Overall(subs []domain.Submission) []domain.LeaderboardEntry {
	return rank(subs, OverallCategory)
}

// ByCategory aggregates only submissions whose category matches exactly
// (case-sensitive, no normalization), with the same ordering as Overall.
func ByCategory(subs []domain.Submission, category string) []domain.LeaderboardEntry {
	scoped := make([]domain.Submission, 0, len(subs))
	for _, sub := range subs {
		if sub.Category == category {
			scoped = append(scoped, sub)
		}
	}
	return rank(scoped, category)
}

type accumulator struct {
	sum    float64
	best   float64
	count  int
	latest time.Time
}

func rank(subs []domain.Submission, category string) []domain.LeaderboardEntry {
	byUser := make(map[string]*accumulator)
	for _, sub := range subs {
		acc, ok := byUser[sub.Username]
		if !ok {
			acc = &accumulator{}
			byUser[sub.Username] = acc
		}
		acc.sum += sub.Percentage
		acc.count++
		if sub.Percentage > acc.best {
			acc.best = sub.Percentage
		}
		if sub.SubmittedAt.After(acc.latest) {
			acc.latest = sub.SubmittedAt
		}
	}

	entries := make([]domain.LeaderboardEntry, 0, len(byUser))
	for username, acc := range byUser {
		entry := domain.LeaderboardEntry{
			Username:     username,
			Category:     category,
			AverageScore: acc.sum / float64(acc.count),
			TotalQuizzes: acc.count,
			BestScore:    acc.best,
		}
		if !acc.latest.IsZero() {
			entry.LatestQuizDate = acc.latest.UTC().Format(time.RFC3339)
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].AverageScore != entries[j].AverageScore {
			return entries[i].AverageScore > entries[j].AverageScore
		}
		if entries[i].BestScore != entries[j].BestScore {
			return entries[i].BestScore > entries[j].BestScore
		}
		return entries[i].Username < entries[j].Username
	})
	return entries
}
