// Package postgres backs the bundled reference backend: quiz content as
// JSONB plus the authoritative raw-submission log that leaderboard views
// are aggregated from.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"quiz-portal/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// Store wraps a pgx pool with the queries the reference backend needs.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// InsertQuiz stores a quiz and its category, returning the assigned id.
func (s *Store) InsertQuiz(ctx context.Context, quiz domain.Quiz, category string) (int, error) {
	data, err := json.Marshal(quiz)
	if err != nil {
		return 0, fmt.Errorf("encode quiz: %w", err)
	}
	var id int
	err = s.pool.QueryRow(ctx,
		`INSERT INTO quizzes (title, description, category, data) VALUES ($1, $2, $3, $4::jsonb) RETURNING id`,
		quiz.Title, quiz.Description, category, string(data),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert quiz: %w", err)
	}
	return id, nil
}

// GetQuiz loads one quiz by id. The stored JSONB is the source of truth for
// questions; id and title come from the row so renames win.
func (s *Store) GetQuiz(ctx context.Context, id int) (domain.Quiz, error) {
	var (
		raw         []byte
		title       string
		description string
	)
	err := s.pool.QueryRow(ctx,
		`SELECT title, COALESCE(description, ''), data FROM quizzes WHERE id=$1`, id,
	).Scan(&title, &description, &raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("load quiz: %w", err)
	}
	var quiz domain.Quiz
	if err := json.Unmarshal(raw, &quiz); err != nil {
		return domain.Quiz{}, fmt.Errorf("unmarshal quiz: %w", err)
	}
	quiz.ID = id
	quiz.Title = title
	quiz.Description = description
	return quiz, nil
}

// ListQuizzes returns summaries, newest first.
func (s *Store) ListQuizzes(ctx context.Context) ([]domain.QuizSummary, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, title, COALESCE(description, ''), to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD"T"HH24:MI:SS"Z"')
		 FROM quizzes ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	defer rows.Close()

	var quizzes []domain.QuizSummary
	for rows.Next() {
		var q domain.QuizSummary
		if err := rows.Scan(&q.ID, &q.Title, &q.Description, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan quiz: %w", err)
		}
		quizzes = append(quizzes, q)
	}
	return quizzes, rows.Err()
}

// ListCategories returns the distinct quiz categories.
func (s *Store) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT DISTINCT category FROM quizzes WHERE category <> '' ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// InsertSubmission appends one raw score to the authoritative log.
func (s *Store) InsertSubmission(ctx context.Context, sub domain.Submission) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO submissions (username, quiz_id, category, percentage, submitted_at) VALUES ($1, $2, $3, $4, $5)`,
		sub.Username, sub.QuizID, sub.Category, sub.Percentage, sub.SubmittedAt)
	if err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

// ListSubmissions loads every raw submission; ranking is recomputed from
// them on read.
func (s *Store) ListSubmissions(ctx context.Context) ([]domain.Submission, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT username, quiz_id, category, percentage, submitted_at FROM submissions`)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var subs []domain.Submission
	for rows.Next() {
		var sub domain.Submission
		if err := rows.Scan(&sub.Username, &sub.QuizID, &sub.Category, &sub.Percentage, &sub.SubmittedAt); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// QuizCategory resolves a quiz's category for tagging submissions.
func (s *Store) QuizCategory(ctx context.Context, quizID int) (string, error) {
	var category string
	err := s.pool.QueryRow(ctx, `SELECT category FROM quizzes WHERE id=$1`, quizID).Scan(&category)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", domain.ErrQuizNotFound
	}
	if err != nil {
		return "", fmt.Errorf("quiz category: %w", err)
	}
	return category, nil
}
