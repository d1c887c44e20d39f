package server

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second    //time allowed to read the next pong message from client
	pingPeriod     = (pongWait * 9) / 10 //send pings to client with this period. must be less than pongWait
	maxMessageSize = 4096
	sendBuffer     = 256
)

var upgrader = websocket.Upgrader{ //upgrade HTTP connections to WebSocket connections
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // local development relay
	},
}

// Client represents a WebSocket client
type Client struct {
	ID   string
	conn *websocket.Conn
	send chan []byte
}

// Server relays chat text between clients and broadcasts button events
type Server struct {
	room   *Room
	logger zerolog.Logger
}

// NewServer creates a relay server
func NewServer(logger zerolog.Logger) *Server {
	return &Server{
		room:   NewRoom(logger),
		logger: logger,
	}
}

// Run drives the relay until ctx is done
func (s *Server) Run(ctx context.Context) {
	s.room.Run(ctx)
}

// Room returns the server's broadcast room
func (s *Server) Room() *Room {
	return s.room
}

// HandleWebSocket handles WebSocket connections
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn().Err(err).Msg("[relay] upgrade failed")
		return
	}

	client := &Client{
		ID:   uuid.New().String(),
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}

	if !s.room.Join(client) {
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump(s)
}

// readPump pumps text from the WebSocket connection to the room
func (c *Client) readPump(s *Server) {
	defer func() {
		s.room.Leave(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug().Err(err).Str("client", c.ID).Msg("[relay] read error")
			}
			break
		}

		c.handleMessage(s, message)
	}
}

// writePump pumps messages from the room to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}

			// One frame per message; clients show frames verbatim
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage relays sanitized chat text to everyone else
func (c *Client) handleMessage(s *Server, data []byte) {
	text := sanitizeText(string(data))
	if text == "" {
		return
	}
	s.room.Broadcast([]byte(text), c)
}
