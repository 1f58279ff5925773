package leaderboard

import (
	"testing"
	"time"

	"quiz-portal/internal/domain"
)

func sub(user, category string, pct float64, at time.Time) domain.Submission {
	return domain.Submission{Username: user, Category: category, Percentage: pct, SubmittedAt: at}
}

func TestOverallAveragesAcrossCategories(t *testing.T) {
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	subs := []domain.Submission{
		sub("alice", "General", 80, day),
		sub("alice", "Machine Learning", 60, day.Add(time.Hour)),
		sub("bob", "General", 90, day),
	}

	entries := Overall(subs)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	// bob's 90 average beats alice's (80+60)/2 = 70.
	if entries[0].Username != "bob" || entries[0].AverageScore != 90 {
		t.Fatalf("first entry = %+v", entries[0])
	}
	if entries[1].Username != "alice" || entries[1].AverageScore != 70 {
		t.Fatalf("second entry = %+v", entries[1])
	}
	if entries[1].TotalQuizzes != 2 || entries[1].BestScore != 80 {
		t.Fatalf("alice aggregates wrong: %+v", entries[1])
	}
	if entries[0].Category != OverallCategory {
		t.Fatalf("overall rows must carry category %q, got %q", OverallCategory, entries[0].Category)
	}
}

func TestByCategoryFiltersExactly(t *testing.T) {
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	subs := []domain.Submission{
		sub("alice", "General", 80, day),
		sub("alice", "general", 10, day), // different category: case matters
		sub("bob", "General", 90, day),
		sub("carol", "Programming", 100, day),
	}

	entries := ByCategory(subs, "General")
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %v", entries)
	}
	if entries[0].Username != "bob" || entries[1].Username != "alice" {
		t.Fatalf("order = %s, %s", entries[0].Username, entries[1].Username)
	}
	if entries[1].AverageScore != 80 {
		t.Fatalf("lowercase category leaked into alice's average: %v", entries[1].AverageScore)
	}

	if got := ByCategory(subs, "History"); len(got) != 0 {
		t.Fatalf("unknown category must rank nobody, got %v", got)
	}
}

func TestTieBreakIsDeterministic(t *testing.T) {
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	// Same average, different best: higher best wins.
	subs := []domain.Submission{
		sub("steady", "General", 70, day),
		sub("steady", "General", 70, day),
		sub("swingy", "General", 90, day),
		sub("swingy", "General", 50, day),
	}
	entries := Overall(subs)
	if entries[0].Username != "swingy" {
		t.Fatalf("best score must break average ties, got %+v", entries)
	}

	// Identical average and best: username ascending.
	subs = []domain.Submission{
		sub("zoe", "General", 75, day),
		sub("amy", "General", 75, day),
	}
	entries = Overall(subs)
	if entries[0].Username != "amy" || entries[1].Username != "zoe" {
		t.Fatalf("full tie must order by username, got %+v", entries)
	}
}

func TestLatestQuizDateTracksNewestSubmission(t *testing.T) {
	early := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	late := time.Date(2024, 5, 3, 21, 30, 0, 0, time.UTC)
	subs := []domain.Submission{
		sub("alice", "General", 60, late),
		sub("alice", "General", 80, early),
	}

	entries := Overall(subs)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].LatestQuizDate != "2024-05-03T21:30:00Z" {
		t.Fatalf("latest date = %q", entries[0].LatestQuizDate)
	}
}

func TestEmptyInputRanksNobody(t *testing.T) {
	if got := Overall(nil); len(got) != 0 {
		t.Fatalf("expected empty ranking, got %v", got)
	}
}
