package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrQuizNotFound indicates the quiz content could not be loaded.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrInvalidAnswerLabel is returned when a selected label is outside {a,b,c,d}.
	ErrInvalidAnswerLabel = errors.New("answer label must be one of a, b, c, d")
	// ErrQuestionNotFound indicates an answered question id is not part of the quiz.
	ErrQuestionNotFound = errors.New("question not found in quiz")
	// ErrSessionSubmitted is returned when an operation hits an already submitted session.
	ErrSessionSubmitted = errors.New("session already submitted")
	// ErrSessionNotReady is returned when a session operation runs before the quiz loaded.
	ErrSessionNotReady = errors.New("session not ready")
	// ErrValidation wraps request problems caught before any network call.
	ErrValidation = errors.New("validation failed")
)

// BackendError normalizes every read failure against the upstream backend:
// transport errors, non-2xx statuses, and undecodable bodies all collapse
// into it. Carries the attempted operation name only.
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend unavailable during %s: %v", e.Op, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// WriteError is a surfaced write failure. Guidance is the operation-specific
// human-readable message shown to the end user; writes never fall back.
type WriteError struct {
	Op       string
	Guidance string
	Err      error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
