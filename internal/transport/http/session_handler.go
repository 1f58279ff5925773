package http

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"quiz-portal/internal/app"
	"quiz-portal/internal/domain"
	"github.com/gorilla/websocket"
)

// SessionHandler drives one quiz attempt over a websocket. Questions go out
// without their correct answers; scoring happens only on submit.
type SessionHandler struct {
	loader   app.QuizLoader
	deps     app.SessionDeps
	upgrader websocket.Upgrader
}

func NewSessionHandler(loader app.QuizLoader, deps app.SessionDeps) *SessionHandler {
	return &SessionHandler{
		loader: loader,
		deps:   deps,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type selectPayload struct {
	QuestionID int          `json:"questionId"`
	Label      domain.Label `json:"label"`
}

type outboundMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// questionView is the client-safe projection of a question.
type questionView struct {
	Index    int     `json:"index"`
	Total    int     `json:"total"`
	Progress float64 `json:"progress"`
	ID       int     `json:"id"`
	Question string  `json:"question"`
	OptionA  string  `json:"option_a"`
	OptionB  string  `json:"option_b"`
	OptionC  string  `json:"option_c"`
	OptionD  string  `json:"option_d"`
	Answered bool    `json:"answered"`
}

// ServeWS upgrades the connection and runs the session loop until the
// client disconnects.
func (h *SessionHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	quizID, err := strconv.Atoi(r.URL.Query().Get("quizId"))
	if err != nil {
		http.Error(w, "missing or non-numeric quizId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	session, err := app.StartSession(r.Context(), h.loader, quizID, h.deps)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}

	h.sendQuestion(conn, session)

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}
		switch inbound.Type {
		case "select":
			var payload selectPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				h.sendError(conn, "invalid select payload")
				continue
			}
			if err := session.SelectAnswer(payload.QuestionID, payload.Label); err != nil {
				h.sendError(conn, err.Error())
				continue
			}
			h.sendQuestion(conn, session)
		case "next":
			session.Next()
			h.sendQuestion(conn, session)
		case "previous":
			session.Previous()
			h.sendQuestion(conn, session)
		case "submit":
			result, _, err := session.Submit(r.Context())
			if err != nil {
				h.sendError(conn, err.Error())
				continue
			}
			_ = conn.WriteJSON(outboundMessage{Type: "result", Payload: result})
		default:
			h.sendError(conn, "unsupported message type")
		}
	}
}

func (h *SessionHandler) sendQuestion(conn *websocket.Conn, session *app.Session) {
	q, ok := session.CurrentQuestion()
	if !ok {
		return
	}
	answers := session.Answers()
	_, answered := answers[q.ID]
	view := questionView{
		Index:    session.Index(),
		Total:    len(session.Quiz().Questions),
		Progress: session.Progress(),
		ID:       q.ID,
		Question: q.Text,
		OptionA:  q.OptionA,
		OptionB:  q.OptionB,
		OptionC:  q.OptionC,
		OptionD:  q.OptionD,
		Answered: answered,
	}
	if err := conn.WriteJSON(outboundMessage{Type: "question", Payload: view}); err != nil {
		log.Printf("ws write error: %v", err)
	}
}

func (h *SessionHandler) sendError(conn *websocket.Conn, message string) {
	_ = conn.WriteJSON(outboundMessage{Type: "error", Payload: errorPayload{Message: message}})
}
