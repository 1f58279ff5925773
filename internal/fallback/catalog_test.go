package fallback

import (
	"testing"

	"quiz-portal/internal/domain"
)

func TestCategoriesAreFixed(t *testing.T) {
	want := []string{"General", "Machine Learning", "Data Science", "Programming"}
	got := Categories()
	if len(got) != len(want) {
		t.Fatalf("categories = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("categories[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestQuizzesListTwoSummaries(t *testing.T) {
	quizzes := Quizzes()
	if len(quizzes) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(quizzes))
	}
	if quizzes[0].ID != 1 || quizzes[0].Title != "Machine Learning Fundamentals" {
		t.Fatalf("first summary mismatch: %+v", quizzes[0])
	}
	if quizzes[1].ID != 2 || quizzes[1].Title != "Data Science Basics" {
		t.Fatalf("second summary mismatch: %+v", quizzes[1])
	}
}

func TestQuizSynthesizesFiveQuestions(t *testing.T) {
	quiz := Quiz(1)
	if quiz.Title != "Machine Learning Fundamentals" {
		t.Fatalf("id 1 title = %q", quiz.Title)
	}
	if len(quiz.Questions) != 5 {
		t.Fatalf("expected 5 questions, got %d", len(quiz.Questions))
	}
	wantAnswers := []domain.Label{"b", "c", "c", "b", "c"}
	for i, q := range quiz.Questions {
		if q.ID != i+1 {
			t.Fatalf("question %d has id %d", i, q.ID)
		}
		if q.CorrectAnswer != wantAnswers[i] {
			t.Fatalf("question %d correct answer = %q, want %q", q.ID, q.CorrectAnswer, wantAnswers[i])
		}
		if q.OptionA == "" || q.OptionB == "" || q.OptionC == "" || q.OptionD == "" {
			t.Fatalf("question %d has an empty option", q.ID)
		}
	}
}

func TestQuizEchoesRequestedID(t *testing.T) {
	quiz := Quiz(99)
	if quiz.ID != 99 {
		t.Fatalf("id = %d, want 99", quiz.ID)
	}
	if quiz.Title != "Data Science Quiz" {
		t.Fatalf("generic title = %q", quiz.Title)
	}
}

func TestLeaderboardIsEmptyButNotNil(t *testing.T) {
	board := Leaderboard()
	if board == nil || len(board) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", board)
	}
}
