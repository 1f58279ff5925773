package http

import (
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"quiz-portal/internal/app"
	"quiz-portal/internal/backend"
	"quiz-portal/internal/domain"
	"quiz-portal/internal/infra/memory"
	"github.com/gorilla/websocket"
)

func dialSession(t *testing.T, quizID string) *websocket.Conn {
	t.Helper()
	// Backend down: the loader serves the synthetic quiz, which gives the
	// test a known set of correct answers.
	client := backend.NewClient("http://127.0.0.1:1", 200*time.Millisecond)
	catalog := app.NewCatalogService(client, nil)
	handler := NewSessionHandler(catalog, app.SessionDeps{Results: memory.NewResultStore()})

	srv := httptest.NewServer(nethttp.HandlerFunc(handler.ServeWS))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?quizId=" + quizID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func readMessage(t *testing.T, conn *websocket.Conn) wsMessage {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg wsMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg
}

func sendMessage(t *testing.T, conn *websocket.Conn, msgType string, payload any) {
	t.Helper()
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	if err := conn.WriteJSON(map[string]any{"type": msgType, "payload": json.RawMessage(raw)}); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestSessionWalkthrough(t *testing.T) {
	conn := dialSession(t, "1")

	// First frame is the opening question.
	msg := readMessage(t, conn)
	if msg.Type != "question" {
		t.Fatalf("first message type = %q", msg.Type)
	}
	var view questionView
	if err := json.Unmarshal(msg.Payload, &view); err != nil {
		t.Fatalf("decode question: %v", err)
	}
	if view.Index != 0 || view.Total != 5 || view.ID != 1 || view.Answered {
		t.Fatalf("opening question = %+v", view)
	}
	if view.Question == "" || view.OptionA == "" {
		t.Fatalf("question text missing: %+v", view)
	}

	// Answer all five questions correctly, advancing after each.
	correct := []domain.Label{"b", "c", "c", "b", "c"}
	for i, label := range correct {
		sendMessage(t, conn, "select", map[string]any{"questionId": i + 1, "label": label})
		msg = readMessage(t, conn)
		if msg.Type != "question" {
			t.Fatalf("after select: type = %q (%s)", msg.Type, msg.Payload)
		}
		_ = json.Unmarshal(msg.Payload, &view)
		if !view.Answered {
			t.Fatalf("question %d not marked answered", i+1)
		}
		sendMessage(t, conn, "next", nil)
		msg = readMessage(t, conn)
		if msg.Type != "question" {
			t.Fatalf("after next: type = %q", msg.Type)
		}
	}

	sendMessage(t, conn, "submit", nil)
	msg = readMessage(t, conn)
	if msg.Type != "result" {
		t.Fatalf("after submit: type = %q (%s)", msg.Type, msg.Payload)
	}
	var result domain.QuizResult
	if err := json.Unmarshal(msg.Payload, &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.Score != 100.0 || result.CorrectAnswers != 5 || result.TotalQuestions != 5 {
		t.Fatalf("result = %+v", result)
	}
	if result.QuizID != 1 || result.QuizTitle != "Machine Learning Fundamentals" {
		t.Fatalf("result snapshot = %+v", result)
	}
}

func TestSessionNeverRevealsCorrectAnswers(t *testing.T) {
	conn := dialSession(t, "1")

	msg := readMessage(t, conn)
	var raw map[string]any
	if err := json.Unmarshal(msg.Payload, &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, leaked := raw["correct_answer"]; leaked {
		t.Fatalf("question payload leaks the correct answer: %v", raw)
	}
}

func TestSessionRejectsBadSelect(t *testing.T) {
	conn := dialSession(t, "1")
	_ = readMessage(t, conn) // opening question

	sendMessage(t, conn, "select", map[string]any{"questionId": 1, "label": "z"})
	msg := readMessage(t, conn)
	if msg.Type != "error" {
		t.Fatalf("invalid label: type = %q", msg.Type)
	}

	sendMessage(t, conn, "select", map[string]any{"questionId": 999, "label": "a"})
	if msg := readMessage(t, conn); msg.Type != "error" {
		t.Fatalf("unknown question: type = %q", msg.Type)
	}
}

func TestSessionDoubleSubmitErrors(t *testing.T) {
	conn := dialSession(t, "2")
	_ = readMessage(t, conn)

	sendMessage(t, conn, "submit", nil)
	if msg := readMessage(t, conn); msg.Type != "result" {
		t.Fatalf("first submit: type = %q", msg.Type)
	}
	sendMessage(t, conn, "submit", nil)
	if msg := readMessage(t, conn); msg.Type != "error" {
		t.Fatalf("second submit: type = %q", msg.Type)
	}
}

func TestSessionRequiresQuizID(t *testing.T) {
	client := backend.NewClient("http://127.0.0.1:1", 200*time.Millisecond)
	catalog := app.NewCatalogService(client, nil)
	handler := NewSessionHandler(catalog, app.SessionDeps{Results: memory.NewResultStore()})

	rec := httptest.NewRecorder()
	handler.ServeWS(rec, httptest.NewRequest(nethttp.MethodGet, "/?quizId=abc", nil))
	if rec.Code != nethttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
