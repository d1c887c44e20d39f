package server

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// outbound is a frame to fan out; from is skipped when set
type outbound struct {
	data []byte
	from *Client
}

// Room is the single broadcast group every relay client joins
type Room struct {
	Clients map[string]*Client
	logger  zerolog.Logger

	mu         sync.RWMutex
	broadcast  chan outbound
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

// NewRoom creates a room; call Run to start it
func NewRoom(logger zerolog.Logger) *Room {
	return &Room{
		Clients: make(map[string]*Client),
		logger:  logger,

		broadcast:  make(chan outbound, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run starts the room's main loop and returns once ctx is done.
// All remaining clients are disconnected on the way out.
func (r *Room) Run(ctx context.Context) {
	defer func() {
		r.mu.Lock()
		for id, client := range r.Clients {
			close(client.send)
			delete(r.Clients, id)
		}
		r.mu.Unlock()
		close(r.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-r.register:
			r.handleRegister(client)

		case client := <-r.unregister:
			r.handleUnregister(client)

		case msg := <-r.broadcast:
			r.handleBroadcast(msg)
		}
	}
}

// Join adds client to the room. It returns false if the room has stopped.
func (r *Room) Join(client *Client) bool {
	select {
	case r.register <- client:
		return true
	case <-r.done:
		return false
	}
}

// Leave removes client from the room
func (r *Room) Leave(client *Client) {
	select {
	case r.unregister <- client:
	case <-r.done:
	}
}

// Broadcast queues data for every client except from (which may be nil)
func (r *Room) Broadcast(data []byte, from *Client) {
	select {
	case r.broadcast <- outbound{data: data, from: from}:
	case <-r.done:
	}
}

// ClientCount returns the number of connected clients
func (r *Room) ClientCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.Clients)
}

func (r *Room) handleRegister(client *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Clients[client.ID] = client
	r.logger.Info().Str("client", client.ID).Int("clients", len(r.Clients)).Msg("[relay] client joined")
}

func (r *Room) handleUnregister(client *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.Clients[client.ID]; ok {
		delete(r.Clients, client.ID)
		close(client.send)

		r.logger.Info().Str("client", client.ID).Int("clients", len(r.Clients)).Msg("[relay] client left")
	}
}

func (r *Room) handleBroadcast(msg outbound) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, client := range r.Clients {
		if client == msg.from {
			continue
		}
		select {
		case client.send <- msg.data:
		default:
			// Slow consumer
			close(client.send)
			delete(r.Clients, id)
			r.logger.Warn().Str("client", id).Msg("[relay] dropped slow client")
		}
	}
}
