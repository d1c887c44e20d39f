package transport

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	handshakeTimeout = 10 * time.Second
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second    // time allowed to read the next pong message from the server
	pingPeriod       = (pongWait * 9) / 10 // must be less than pongWait
	closeGrace       = 2 * time.Second     // how long to wait for the server to echo our close frame
	maxMessageSize   = 64 * 1024
)

// WSDialer opens gorilla websocket transports
type WSDialer struct {
	dialer websocket.Dialer
	logger zerolog.Logger
}

// NewWSDialer creates a dialer that logs diagnostics to logger
func NewWSDialer(logger zerolog.Logger) *WSDialer {
	return &WSDialer{
		dialer: websocket.Dialer{
			HandshakeTimeout: handshakeTimeout,
		},
		logger: logger,
	}
}

// Dial starts connecting to url in the background and returns immediately.
// All events of the transport are delivered to h from one goroutine.
func (d *WSDialer) Dial(url string, h Handler) Transport {
	if h == nil {
		h = func(Event) {}
	}

	ctx, cancel := context.WithCancel(context.Background())
	t := &wsTransport{
		url:     url,
		handler: h,
		logger:  d.logger.With().Str("url", url).Logger(),
		state:   Connecting,
		cancel:  cancel,
		done:    make(chan struct{}),
	}

	go t.run(ctx, &d.dialer)
	return t
}

type wsTransport struct {
	url     string
	handler Handler
	logger  zerolog.Logger

	mu     sync.Mutex
	state  ReadyState
	conn   *websocket.Conn
	cancel context.CancelFunc

	writeMu  sync.Mutex // one concurrent writer per gorilla conn
	done     chan struct{}
	finished sync.Once
}

func (t *wsTransport) ReadyState() ReadyState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Send writes text as a single text frame
func (t *wsTransport) Send(text string) error {
	t.mu.Lock()
	if t.state != Open {
		t.mu.Unlock()
		return ErrNotOpen
	}
	conn := t.conn
	t.mu.Unlock()

	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteMessage(websocket.TextMessage, []byte(text)); err != nil {
		// Dropping the socket makes the read loop report the failure
		conn.Close()
		return fmt.Errorf("write message: %w", err)
	}
	return nil
}

// Close starts the close handshake without waiting for the server.
func (t *wsTransport) Close() error {
	t.mu.Lock()
	switch t.state {
	case Closing, Closed:
		t.mu.Unlock()
		return ErrClosed
	case Connecting:
		t.state = Closing
		t.mu.Unlock()
		t.cancel()
		return nil
	}
	t.state = Closing
	conn := t.conn
	t.mu.Unlock()

	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err := conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait)); err != nil {
		conn.Close()
		return &CloseError{Err: err}
	}

	// Don't hang on a server that never answers the close frame. The read
	// loop owns conn's read side, so the deadline goes on the net.Conn.
	conn.UnderlyingConn().SetReadDeadline(time.Now().Add(closeGrace))
	return nil
}

// run dials, then reads until the connection ends
func (t *wsTransport) run(ctx context.Context, dialer *websocket.Dialer) {
	defer t.cancel()

	conn, _, err := dialer.DialContext(ctx, t.url, nil)
	if err != nil {
		t.logger.Debug().Err(err).Msg("[transport] dial failed")
		t.finish(true)
		return
	}

	t.mu.Lock()
	if t.state != Connecting {
		// Closed while the handshake was in flight
		t.mu.Unlock()
		conn.Close()
		t.finish(true)
		return
	}
	t.conn = conn
	t.state = Open
	t.mu.Unlock()

	t.logger.Debug().Msg("[transport] connected")
	t.handler(Event{Kind: EventOpened})

	go t.pingLoop(conn)
	t.readLoop(conn)
}

// readLoop reads messages from the websocket connection
func (t *wsTransport) readLoop(conn *websocket.Conn) {
	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		t.mu.Lock()
		closing := t.state == Closing
		t.mu.Unlock()
		if !closing {
			conn.SetReadDeadline(time.Now().Add(pongWait))
		}
		return nil
	})

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			t.mu.Lock()
			closing := t.state == Closing
			t.mu.Unlock()

			failed := !closing && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway)
			if failed {
				t.logger.Warn().Err(err).Msg("[transport] connection lost")
			}
			t.finish(failed)
			return
		}

		switch msgType {
		case websocket.TextMessage, websocket.BinaryMessage:
			t.handler(Event{Kind: EventMessage, Data: string(data)})
		}
	}
}

// pingLoop keeps the connection alive until the transport finishes
func (t *wsTransport) pingLoop(conn *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-t.done:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

// finish marks the transport closed and reports errored (if failed) then closed.
func (t *wsTransport) finish(failed bool) {
	t.finished.Do(func() {
		t.mu.Lock()
		t.state = Closed
		conn := t.conn
		t.mu.Unlock()

		close(t.done)
		if conn != nil {
			conn.Close()
		}

		if failed {
			t.handler(Event{Kind: EventErrored})
		}
		t.handler(Event{Kind: EventClosed})
	})
}
