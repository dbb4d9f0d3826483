package render

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	ws "github.com/gorilla/websocket"
)

const (
	sendChSize = 256
	writeWait  = 10 * time.Second
)

// envelope wraps payloads on the wire so the frontend can route them.
type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// typeSearchResult labels a full search-area result message.
const typeSearchResult = "search_result"

// WebSocketAdapter streams render payloads to a live map server. Writes are
// fire-and-forget through a buffered channel and a single write goroutine;
// a stalled frontend drops frames instead of blocking the engine.
type WebSocketAdapter struct {
	mu     sync.Mutex
	conn   *ws.Conn
	sendCh chan []byte
	done   chan struct{}
	closed bool

	logger *slog.Logger
}

// NewWebSocketAdapter creates an unconnected adapter.
func NewWebSocketAdapter(logger *slog.Logger) *WebSocketAdapter {
	return &WebSocketAdapter{
		sendCh: make(chan []byte, sendChSize),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// Dial connects to the map server and starts the write loop. The secret is
// carried as a query parameter.
func (a *WebSocketAdapter) Dial(rawURL, secret string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid websocket URL: %w", err)
	}
	q := u.Query()
	q.Set("secret", secret)
	u.RawQuery = q.Encode()

	conn, _, err := ws.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return fmt.Errorf("websocket dial failed: %w", err)
	}

	a.mu.Lock()
	a.conn = conn
	a.mu.Unlock()

	go a.writeLoop()
	return nil
}

// Render queues the payload for streaming. Frames are dropped when the send
// buffer is full.
func (a *WebSocketAdapter) Render(p Payload) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal render payload: %w", err)
	}
	data, err := json.Marshal(envelope{Type: typeSearchResult, Payload: raw})
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}

	select {
	case a.sendCh <- data:
	default:
		a.logger.Warn("render send buffer full, dropping frame")
	}
	return nil
}

// Close stops the write loop and closes the connection.
func (a *WebSocketAdapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return nil
	}
	a.closed = true
	close(a.done)
	if a.conn != nil {
		return a.conn.Close()
	}
	return nil
}

func (a *WebSocketAdapter) writeLoop() {
	for {
		select {
		case <-a.done:
			return
		case data := <-a.sendCh:
			a.mu.Lock()
			conn := a.conn
			a.mu.Unlock()
			if conn == nil {
				continue
			}

			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				a.logger.Warn("websocket SetWriteDeadline error", "error", err)
				return
			}
			if err := conn.WriteMessage(ws.TextMessage, data); err != nil {
				a.logger.Warn("websocket write error", "error", err)
				return
			}
		}
	}
}
