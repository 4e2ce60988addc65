package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/mbratke/buergertest/internal/exam"
	"github.com/mbratke/buergertest/internal/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type timerMessage struct {
	Status               exam.Status `json:"status"`
	TimeRemainingSeconds int         `json:"time_remaining_seconds"`
}

// handleExamTimer streams the countdown of an exam session over a websocket,
// one message per second. The stream ends with a final message when the
// session is submitted, or when the client hangs up.
func (s *Server) handleExamTimer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	id := chi.URLParam(r, "id")

	sess, err := s.ExamService.Session(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade to websocket: %v", err)
		return
	}
	defer conn.Close()

	log.Info("exam timer websocket connected: id=%s", id)

	// Drain client frames so close handshakes are processed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		msg := timerMessage{
			Status:               sess.Status(),
			TimeRemainingSeconds: sess.TimeRemaining(),
		}
		if err := conn.WriteJSON(msg); err != nil {
			log.Debug("timer websocket write failed: %v", err)
			return
		}
		if msg.Status == exam.StatusSubmitted {
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "submitted"))
			return
		}

		select {
		case <-ticker.C:
		case <-done:
			log.Debug("exam timer websocket closed by client: id=%s", id)
			return
		}
	}
}
