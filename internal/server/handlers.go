package server

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/yourusername/wschat/internal/protocol"
)

const maxBodySize = 1 << 20

// Routes builds the relay HTTP router
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/", s.handleIndex)
	r.Get("/ws", s.HandleWebSocket)
	r.Post("/api/button", s.handleButton)
	return r
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "wschat relay: connect a websocket client to /ws\n")
}

// handleButton broadcasts a posted button event to every client
func (s *Server) handleButton(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		http.Error(w, "read body failed", http.StatusBadRequest)
		return
	}

	event, err := protocol.DecodeButtonEvent(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := event.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	data, err := protocol.EncodeButtonEvent(*event)
	if err != nil {
		http.Error(w, "encode failed", http.StatusInternalServerError)
		return
	}

	receivers := s.room.ClientCount()
	s.room.Broadcast(data, nil)
	s.logger.Info().
		Str("button", event.Button).
		Str("state", event.State).
		Int("receivers", receivers).
		Msg("[relay] button event broadcast")

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "Event received")
}
