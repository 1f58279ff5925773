package domain

import "time"

// Label identifies one of the four fixed answer options of a question.
type Label string

const (
	LabelA Label = "a"
	LabelB Label = "b"
	LabelC Label = "c"
	LabelD Label = "d"
)

// Labels lists the fixed option label set in display order.
var Labels = []Label{LabelA, LabelB, LabelC, LabelD}

// Valid reports whether the label belongs to the fixed set {a,b,c,d}.
func (l Label) Valid() bool {
	switch l {
	case LabelA, LabelB, LabelC, LabelD:
		return true
	}
	return false
}

// Question is a multiple-choice question with exactly four options and one
// correct label. The option_* wire shape is fixed by the upstream backend.
type Question struct {
	ID            int    `json:"id"`
	Text          string `json:"question"`
	OptionA       string `json:"option_a"`
	OptionB       string `json:"option_b"`
	OptionC       string `json:"option_c"`
	OptionD       string `json:"option_d"`
	CorrectAnswer Label  `json:"correct_answer"`
}

// Option returns the option text for a label, or "" for an unknown label.
func (q Question) Option(l Label) string {
	switch l {
	case LabelA:
		return q.OptionA
	case LabelB:
		return q.OptionB
	case LabelC:
		return q.OptionC
	case LabelD:
		return q.OptionD
	}
	return ""
}

// Quiz is an ordered set of questions. Immutable once fetched; the backend
// owns it, clients hold transient copies only.
type Quiz struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	CreatedAt   string     `json:"created_at,omitempty"`
	Questions   []Question `json:"questions"`
}

// QuizSummary is the listing view of a quiz, without questions.
type QuizSummary struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// AnswerSet maps question IDs to chosen labels. Selecting twice overwrites,
// so it can never grow past the quiz's question count.
type AnswerSet map[int]Label

// QuizResult is the immutable record of one completed attempt. QuizTitle is
// a snapshot taken at completion so the record survives the source quiz
// changing or disappearing.
type QuizResult struct {
	QuizID         int       `json:"quizId"`
	QuizTitle      string    `json:"quizTitle"`
	Score          float64   `json:"score"`
	CorrectAnswers int       `json:"correctAnswers"`
	TotalQuestions int       `json:"totalQuestions"`
	Answers        AnswerSet `json:"answers"`
	CompletedAt    time.Time `json:"completedAt"`
}

// LeaderboardEntry is one aggregated ranking row, per user and optionally
// per category. Derived data, recomputed on read.
type LeaderboardEntry struct {
	Username       string  `json:"username"`
	Category       string  `json:"category"`
	AverageScore   float64 `json:"average_score"`
	TotalQuizzes   int     `json:"total_quizzes"`
	BestScore      float64 `json:"best_score"`
	LatestQuizDate string  `json:"latest_quiz_date,omitempty"`
}

// ResultSubmission is the raw leaderboard write pushed after a completed
// session.
type ResultSubmission struct {
	UserID         int     `json:"userId"`
	QuizID         int     `json:"quizId"`
	Score          int     `json:"score"`
	TotalQuestions int     `json:"totalQuestions"`
	Percentage     float64 `json:"percentage"`
}

// Submission is one raw per-user-per-quiz score as held by the authoritative
// store, the input to leaderboard aggregation.
type Submission struct {
	Username    string
	QuizID      int
	Category    string
	Percentage  float64
	SubmittedAt time.Time
}
