package app

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"quiz-portal/internal/domain"
)

// SessionState tracks one quiz attempt through its lifecycle.
type SessionState int

const (
	StateLoading SessionState = iota
	StateReady
	StateSubmitted
	StateErrored
)

func (s SessionState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateSubmitted:
		return "submitted"
	case StateErrored:
		return "errored"
	}
	return "unknown"
}

// QuizLoader loads quiz content for a new session. The resilient catalog
// implements it without ever failing; only a loader that itself raises can
// put a session into StateErrored.
type QuizLoader interface {
	LoadQuiz(ctx context.Context, id int) (domain.Quiz, error)
}

// ResultStore is the durable per-device log of completed attempts.
// Append must be atomic with respect to ReadAll.
type ResultStore interface {
	Append(ctx context.Context, result domain.QuizResult) error
	ReadAll(ctx context.Context) ([]domain.QuizResult, error)
	ClearAll(ctx context.Context) error
}

// Identity exposes the opportunistically read user identity. Absence means
// "do not publish", never an error.
type Identity interface {
	UserID() (int, bool)
}

// ResultPublisher pushes a completed attempt toward the leaderboard store.
type ResultPublisher interface {
	SubmitResult(ctx context.Context, sub domain.ResultSubmission) (json.RawMessage, error)
}

// PublishOutcome reports how the fire-and-forget leaderboard submission
// ended. Callers may observe it for logging; nothing in the session depends
// on it.
type PublishOutcome struct {
	Published bool
	Err       error
}

// Session is the in-memory state machine for one quiz attempt.
type Session struct {
	mu        sync.Mutex
	state     SessionState
	quiz      domain.Quiz
	index     int
	answers   domain.AnswerSet
	results   ResultStore
	identity  Identity
	publisher ResultPublisher
	now       func() time.Time
}

// SessionDeps carries the collaborators a session emits to on submission.
// Results is required; Identity and Publisher may be nil (no publishing).
type SessionDeps struct {
	Results   ResultStore
	Identity  Identity
	Publisher ResultPublisher
	Clock     func() time.Time
}

// StartSession fetches the quiz and returns a session positioned at the
// first question. A loader failure leaves the session in StateErrored and
// is returned to the caller.
func StartSession(ctx context.Context, loader QuizLoader, quizID int, deps SessionDeps) (*Session, error) {
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	s := &Session{
		state:     StateLoading,
		answers:   make(domain.AnswerSet),
		results:   deps.Results,
		identity:  deps.Identity,
		publisher: deps.Publisher,
		now:       deps.Clock,
	}
	quiz, err := loader.LoadQuiz(ctx, quizID)
	if err != nil {
		s.state = StateErrored
		return s, err
	}
	s.quiz = quiz
	s.state = StateReady
	return s, nil
}

// State returns the current lifecycle state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Quiz returns the loaded quiz content.
func (s *Session) Quiz() domain.Quiz {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quiz
}

// Index returns the current question index.
func (s *Session) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// CurrentQuestion returns the question at the current index.
func (s *Session) CurrentQuestion() (domain.Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady || s.index >= len(s.quiz.Questions) {
		return domain.Question{}, false
	}
	return s.quiz.Questions[s.index], true
}

// Answers returns a copy of the recorded answer set.
func (s *Session) Answers() domain.AnswerSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(domain.AnswerSet, len(s.answers))
	for id, label := range s.answers {
		out[id] = label
	}
	return out
}

// Progress returns percent progress through the quiz by position.
func (s *Session) Progress() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := len(s.quiz.Questions)
	if total == 0 {
		return 0
	}
	return float64(s.index+1) / float64(total) * 100
}

// SelectAnswer records a label for a question, overwriting any earlier
// choice. Labels outside {a,b,c,d} and unknown question ids are caller
// errors.
func (s *Session) SelectAnswer(questionID int, label domain.Label) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case StateSubmitted:
		return domain.ErrSessionSubmitted
	case StateReady:
	default:
		return domain.ErrSessionNotReady
	}
	if !label.Valid() {
		return domain.ErrInvalidAnswerLabel
	}
	if !s.hasQuestionLocked(questionID) {
		return domain.ErrQuestionNotFound
	}
	s.answers[questionID] = label
	return nil
}

// Next advances to the following question; a no-op at the last one.
// Answered-before-advance gating is a presentation policy, not enforced here.
func (s *Session) Next() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateReady && s.index+1 < len(s.quiz.Questions) {
		s.index++
	}
}

// Previous steps back one question; a no-op at the first one.
func (s *Session) Previous() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateReady && s.index > 0 {
		s.index--
	}
}

// Submit scores the attempt and moves the session to StateSubmitted, a
// one-way transition. Unanswered questions count as incorrect. The result
// is appended to the store exactly once; the leaderboard publish runs
// asynchronously and its outcome arrives on the returned channel without
// ever affecting the transition. An append failure is returned but does not
// roll back the submission.
func (s *Session) Submit(ctx context.Context) (domain.QuizResult, <-chan PublishOutcome, error) {
	s.mu.Lock()
	switch s.state {
	case StateSubmitted:
		s.mu.Unlock()
		return domain.QuizResult{}, nil, domain.ErrSessionSubmitted
	case StateReady:
	default:
		s.mu.Unlock()
		return domain.QuizResult{}, nil, domain.ErrSessionNotReady
	}

	correct := 0
	for _, q := range s.quiz.Questions {
		if s.answers[q.ID] == q.CorrectAnswer {
			correct++
		}
	}
	total := len(s.quiz.Questions)
	score := 0.0
	if total > 0 {
		score = float64(correct) / float64(total) * 100
	}

	result := domain.QuizResult{
		QuizID:         s.quiz.ID,
		QuizTitle:      s.quiz.Title,
		Score:          score,
		CorrectAnswers: correct,
		TotalQuestions: total,
		Answers:        make(domain.AnswerSet, len(s.answers)),
		CompletedAt:    s.now(),
	}
	for id, label := range s.answers {
		result.Answers[id] = label
	}
	s.state = StateSubmitted

	identity := s.identity
	publisher := s.publisher
	results := s.results
	s.mu.Unlock()

	var appendErr error
	if results != nil {
		appendErr = results.Append(ctx, result)
	}

	done := make(chan PublishOutcome, 1)
	userID, ok := 0, false
	if identity != nil {
		userID, ok = identity.UserID()
	}
	if !ok || publisher == nil {
		done <- PublishOutcome{}
		close(done)
		return result, done, appendErr
	}

	sub := domain.ResultSubmission{
		UserID:         userID,
		QuizID:         result.QuizID,
		Score:          result.CorrectAnswers,
		TotalQuestions: result.TotalQuestions,
		Percentage:     result.Score,
	}
	go func() {
		// Detached from the caller's context: the publish must outlive the
		// request that triggered submission.
		_, err := publisher.SubmitResult(context.Background(), sub)
		if err != nil {
			log.Printf("leaderboard publish failed for quiz %d: %v", sub.QuizID, err)
		}
		done <- PublishOutcome{Published: err == nil, Err: err}
		close(done)
	}()
	return result, done, appendErr
}

func (s *Session) hasQuestionLocked(questionID int) bool {
	for _, q := range s.quiz.Questions {
		if q.ID == questionID {
			return true
		}
	}
	return false
}
