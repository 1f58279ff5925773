// Package backend holds the typed HTTP client for the external quiz and
// leaderboard service. Every call is a single round trip with no retries;
// read failures of any kind normalize to *domain.BackendError and write
// failures to *domain.WriteError.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"quiz-portal/internal/domain"
)

// Guidance texts surfaced to end users when a write fails. Each operation
// keeps its own message.
const (
	LoginGuidance      = "Login failed. Please try again."
	RegisterGuidance   = "Registration failed. Please try again."
	UploadGuidance     = "Failed to upload PDF and generate quiz"
	SaveResultGuidance = "Failed to save quiz result"
)

// Client talks to the upstream quiz backend.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for the given base URL. The timeout bounds each
// call; there is no retry or backoff on top of it.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// GetCategories fetches the known category labels.
func (c *Client) GetCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.getJSON(ctx, "/api/categories", &categories); err != nil {
		return nil, &domain.BackendError{Op: "getCategories", Err: err}
	}
	return categories, nil
}

// GetQuizzes fetches quiz summaries.
func (c *Client) GetQuizzes(ctx context.Context) ([]domain.QuizSummary, error) {
	var quizzes []domain.QuizSummary
	if err := c.getJSON(ctx, "/api/quizzes", &quizzes); err != nil {
		return nil, &domain.BackendError{Op: "getQuizzes", Err: err}
	}
	return quizzes, nil
}

// GetQuiz fetches one full quiz by id.
func (c *Client) GetQuiz(ctx context.Context, id int) (domain.Quiz, error) {
	var quiz domain.Quiz
	if err := c.getJSON(ctx, "/api/quiz/"+strconv.Itoa(id), &quiz); err != nil {
		return domain.Quiz{}, &domain.BackendError{Op: "getQuiz", Err: err}
	}
	return quiz, nil
}

// GetLeaderboard fetches the ranked entries, optionally scoped to a category.
func (c *Client) GetLeaderboard(ctx context.Context, category string) ([]domain.LeaderboardEntry, error) {
	path := "/api/leaderboard"
	if category != "" {
		path += "?category=" + url.QueryEscape(category)
	}
	var entries []domain.LeaderboardEntry
	if err := c.getJSON(ctx, path, &entries); err != nil {
		return nil, &domain.BackendError{Op: "getLeaderboard", Err: err}
	}
	return entries, nil
}

// GetOverallLeaderboard fetches the cross-category ranking.
func (c *Client) GetOverallLeaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	var entries []domain.LeaderboardEntry
	if err := c.getJSON(ctx, "/api/leaderboard/overall", &entries); err != nil {
		return nil, &domain.BackendError{Op: "getOverallLeaderboard", Err: err}
	}
	return entries, nil
}

// SubmitResult pushes one completed attempt toward the leaderboard store.
func (c *Client) SubmitResult(ctx context.Context, sub domain.ResultSubmission) (json.RawMessage, error) {
	payload, err := json.Marshal(sub)
	if err != nil {
		return nil, &domain.WriteError{Op: "submitResult", Guidance: SaveResultGuidance, Err: err}
	}
	ack, err := c.postRaw(ctx, "/api/saveResult", "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, &domain.WriteError{Op: "submitResult", Guidance: SaveResultGuidance, Err: err}
	}
	return ack, nil
}

// SubmitDocument forwards a multipart form (title, description, pdf) for
// quiz generation. The body is streamed through untouched.
func (c *Client) SubmitDocument(ctx context.Context, contentType string, form io.Reader) (json.RawMessage, error) {
	resp, err := c.postRaw(ctx, "/api/uploadPdf", contentType, form)
	if err != nil {
		return nil, &domain.WriteError{Op: "submitDocument", Guidance: UploadGuidance, Err: err}
	}
	return resp, nil
}

// Login forwards credentials verbatim and returns the backend's status and
// body unchanged, so error bodies reach the caller as the backend wrote
// them. Only transport failure is an error.
func (c *Client) Login(ctx context.Context, body []byte) (int, []byte, error) {
	status, resp, err := c.passthrough(ctx, "/api/login", body)
	if err != nil {
		return 0, nil, &domain.WriteError{Op: "login", Guidance: LoginGuidance, Err: err}
	}
	return status, resp, nil
}

// Register forwards a registration payload, same contract as Login.
func (c *Client) Register(ctx context.Context, body []byte) (int, []byte, error) {
	status, resp, err := c.passthrough(ctx, "/api/register", body)
	if err != nil {
		return 0, nil, &domain.WriteError{Op: "register", Guidance: RegisterGuidance, Err: err}
	}
	return status, resp, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("backend responded with %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) postRaw(ctx context.Context, path, contentType string, body io.Reader) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("backend error: %s", string(raw))
	}
	return json.RawMessage(raw), nil
}

func (c *Client) passthrough(ctx context.Context, path string, body []byte) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, raw, nil
}
