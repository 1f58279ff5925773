package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"quiz-portal/internal/domain"
	"quiz-portal/internal/infra/postgres"
	"quiz-portal/internal/leaderboard"
	"github.com/gorilla/mux"
)

// BackendHandler is the bundled reference backend: an upstream-compatible
// stand-in backed by Postgres, with ranked views computed by the
// leaderboard aggregation on every read. Auth endpoints are deliberately
// absent; the real backend owns those.
type BackendHandler struct {
	store *postgres.Store
	now   func() time.Time
}

func NewBackendHandler(store *postgres.Store) *BackendHandler {
	return &BackendHandler{store: store, now: time.Now}
}

// NewBackendRouter exposes the upstream API shape the proxy expects.
func NewBackendRouter(h *BackendHandler) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/api/categories", h.HandleCategories).Methods(http.MethodGet)
	r.HandleFunc("/api/quizzes", h.HandleQuizzes).Methods(http.MethodGet)
	r.HandleFunc("/api/quiz/{id}", h.HandleQuiz).Methods(http.MethodGet)
	r.HandleFunc("/api/leaderboard", h.HandleLeaderboard).Methods(http.MethodGet)
	r.HandleFunc("/api/leaderboard/overall", h.HandleOverallLeaderboard).Methods(http.MethodGet)
	r.HandleFunc("/api/saveResult", h.HandleSaveResult).Methods(http.MethodPost)
	return r
}

func (h *BackendHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.store.ListCategories(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to list categories"})
		return
	}
	if categories == nil {
		categories = []string{}
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *BackendHandler) HandleQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.store.ListQuizzes(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to list quizzes"})
		return
	}
	if quizzes == nil {
		quizzes = []domain.QuizSummary{}
	}
	writeJSON(w, http.StatusOK, quizzes)
}

func (h *BackendHandler) HandleQuiz(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "quiz id must be numeric"})
		return
	}
	quiz, err := h.store.GetQuiz(r.Context(), id)
	if errors.Is(err, domain.ErrQuizNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "quiz not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to load quiz"})
		return
	}
	writeJSON(w, http.StatusOK, quiz)
}

func (h *BackendHandler) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	subs, err := h.store.ListSubmissions(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to load submissions"})
		return
	}
	category := r.URL.Query().Get("category")
	var entries []domain.LeaderboardEntry
	if category == "" || category == leaderboard.OverallCategory {
		entries = leaderboard.Overall(subs)
	} else {
		entries = leaderboard.ByCategory(subs, category)
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *BackendHandler) HandleOverallLeaderboard(w http.ResponseWriter, r *http.Request) {
	subs, err := h.store.ListSubmissions(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to load submissions"})
		return
	}
	writeJSON(w, http.StatusOK, leaderboard.Overall(subs))
}

// HandleSaveResult appends one raw submission. The reference backend has no
// user directory, so usernames are derived from the numeric id.
func (h *BackendHandler) HandleSaveResult(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var sub domain.ResultSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	category, err := h.store.QuizCategory(r.Context(), sub.QuizID)
	if err != nil && !errors.Is(err, domain.ErrQuizNotFound) {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to resolve quiz"})
		return
	}

	record := domain.Submission{
		Username:    fmt.Sprintf("user-%d", sub.UserID),
		QuizID:      sub.QuizID,
		Category:    category,
		Percentage:  sub.Percentage,
		SubmittedAt: h.now(),
	}
	if err := h.store.InsertSubmission(r.Context(), record); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to save result"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
