// Package http exposes the proxied API surface the browser UI talks to,
// plus the WebSocket session driver and the reference-backend handlers.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"quiz-portal/internal/app"
	"quiz-portal/internal/domain"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// sourceHeader carries the read provenance tag (live/fallback/empty)
// out-of-band; response bodies keep the upstream shapes.
const sourceHeader = "X-Data-Source"

// AuthGateway is the verbatim passthrough contract for the auth endpoints:
// backend status and body are forwarded unchanged, only transport failure
// is an error.
type AuthGateway interface {
	Login(ctx context.Context, body []byte) (int, []byte, error)
	Register(ctx context.Context, body []byte) (int, []byte, error)
}

// ProxyHandler serves the client-facing API: resilient reads through the
// catalog, surfaced writes through the gateway.
type ProxyHandler struct {
	catalog *app.CatalogService
	auth    AuthGateway
}

func NewProxyHandler(catalog *app.CatalogService, auth AuthGateway) *ProxyHandler {
	return &ProxyHandler{catalog: catalog, auth: auth}
}

// NewProxyRouter wires the proxied surface with permissive CORS, preflight
// included, for the state-changing endpoints.
func NewProxyRouter(h *ProxyHandler) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/api/auth/login", h.HandleLogin).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/api/auth/register", h.HandleRegister).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/api/categories", h.HandleCategories).Methods(http.MethodGet)
	r.HandleFunc("/api/quizzes", h.HandleQuizzes).Methods(http.MethodGet)
	r.HandleFunc("/api/quiz/{id}", h.HandleQuiz).Methods(http.MethodGet)
	r.HandleFunc("/api/leaderboard", h.HandleLeaderboard).Methods(http.MethodGet)
	r.HandleFunc("/api/leaderboard", h.HandleSubmitResult).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/api/leaderboard/overall", h.HandleOverallLeaderboard).Methods(http.MethodGet)
	r.HandleFunc("/api/upload-pdf", h.HandleUpload).Methods(http.MethodPost, http.MethodOptions)

	return cors.New(cors.Options{
		AllowedOrigins:       []string{"*"},
		AllowedMethods:       []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:       []string{"Content-Type"},
		OptionsSuccessStatus: http.StatusOK,
	}).Handler(r)
}

func (h *ProxyHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	res := h.catalog.Categories(r.Context())
	writeSourced(w, res.Source, res.Data)
}

func (h *ProxyHandler) HandleQuizzes(w http.ResponseWriter, r *http.Request) {
	res := h.catalog.Quizzes(r.Context())
	writeSourced(w, res.Source, res.Data)
}

func (h *ProxyHandler) HandleQuiz(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "quiz id must be numeric"})
		return
	}
	res := h.catalog.Quiz(r.Context(), id)
	writeSourced(w, res.Source, res.Data)
}

func (h *ProxyHandler) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	res := h.catalog.Leaderboard(r.Context(), r.URL.Query().Get("category"))
	writeSourced(w, res.Source, res.Data)
}

func (h *ProxyHandler) HandleOverallLeaderboard(w http.ResponseWriter, r *http.Request) {
	res := h.catalog.OverallLeaderboard(r.Context())
	writeSourced(w, res.Source, res.Data)
}

// HandleSubmitResult is a write: failures surface as 500, never a fallback.
func (h *ProxyHandler) HandleSubmitResult(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var sub domain.ResultSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	ack, err := h.catalog.SubmitResult(r.Context(), sub)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: guidanceFor(err)})
		return
	}
	writeRaw(w, http.StatusOK, ack)
}

func (h *ProxyHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	h.forwardAuth(w, r, h.auth.Login)
}

func (h *ProxyHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	h.forwardAuth(w, r, h.auth.Register)
}

func (h *ProxyHandler) forwardAuth(w http.ResponseWriter, r *http.Request, call func(context.Context, []byte) (int, []byte, error)) {
	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unreadable request body"})
		return
	}
	status, resp, err := call(r.Context(), body)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, authErrorResponse{Error: guidanceFor(err), Success: false})
		return
	}
	// Backend verdicts, success or not, pass through verbatim.
	writeRaw(w, status, resp)
}

// HandleUpload validates the form before any network call, then forwards
// the multipart body upstream.
func (h *ProxyHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	const maxUpload = 32 << 20
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		writeJSON(w, http.StatusBadRequest, authErrorResponse{Error: "invalid multipart form", Success: false})
		return
	}
	title := strings.TrimSpace(r.FormValue("title"))
	description := r.FormValue("description")
	pdf, header, err := r.FormFile("pdf")
	if verr := validateUpload(title, header, err); verr != nil {
		writeJSON(w, http.StatusBadRequest, authErrorResponse{Error: verr.Error(), Success: false})
		return
	}
	defer pdf.Close()

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	_ = form.WriteField("title", title)
	if description != "" {
		_ = form.WriteField("description", description)
	}
	part, err := form.CreateFormFile("pdf", header.Filename)
	if err == nil {
		_, err = io.Copy(part, pdf)
	}
	if err == nil {
		err = form.Close()
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, authErrorResponse{Error: "failed to buffer upload", Success: false})
		return
	}

	ack, err := h.catalog.SubmitDocument(r.Context(), form.FormDataContentType(), &buf)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, authErrorResponse{Error: guidanceFor(err), Success: false})
		return
	}
	writeRaw(w, http.StatusOK, ack)
}

func validateUpload(title string, header *multipart.FileHeader, fileErr error) error {
	if title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if fileErr != nil || header == nil {
		return fmt.Errorf("%w: pdf file is required", domain.ErrValidation)
	}
	contentType := header.Header.Get("Content-Type")
	if contentType != "application/pdf" && !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		return fmt.Errorf("%w: only PDF files are accepted", domain.ErrValidation)
	}
	return nil
}

type errorResponse struct {
	Error string `json:"error"`
}

type authErrorResponse struct {
	Error   string `json:"error"`
	Success bool   `json:"success"`
}

func guidanceFor(err error) string {
	var werr *domain.WriteError
	if errors.As(err, &werr) && werr.Guidance != "" {
		return werr.Guidance
	}
	return "request failed"
}

func writeSourced(w http.ResponseWriter, source app.Source, payload any) {
	w.Header().Set(sourceHeader, string(source))
	writeJSON(w, http.StatusOK, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
