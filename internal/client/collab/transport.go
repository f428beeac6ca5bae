package collab

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/iudanet/notesync/pkg/api"
)

const (
	// Time allowed to write a message to the relay.
	writeWait = 10 * time.Second

	// Relay pings every ~54s; a silent connection is considered dead after this.
	readWait = 75 * time.Second

	// Maximum message size accepted from the relay.
	maxMessageSize = 8 << 20
)

// Transport opens connections to the room relay.
//
//go:generate moq -out transport_mock.go . Transport
type Transport interface {
	Dial(ctx context.Context, roomID string) (Conn, error)
}

// Conn is one connection to a room.
type Conn interface {
	// Send writes msg. Presence messages may be coalesced.
	Send(msg *api.RoomMessage) error
	// Receive blocks until the next message arrives or the connection fails.
	Receive() (*api.RoomMessage, error)
	// Close unblocks Receive and releases the connection.
	Close() error
}

// WSTransport dials the relay over websocket.
type WSTransport struct {
	dialer           *websocket.Dialer
	logger           *slog.Logger
	baseURL          string
	token            string
	presenceInterval time.Duration
}

// NewWSTransport creates a transport for the server at baseURL
// (http, https, ws or wss) authenticating with token.
func NewWSTransport(baseURL, token string, logger *slog.Logger) *WSTransport {
	return &WSTransport{
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: 10 * time.Second,
			ReadBufferSize:   4096,
			WriteBufferSize:  4096,
		},
		logger:           logger,
		baseURL:          baseURL,
		token:            token,
		presenceInterval: DefaultPresenceInterval,
	}
}

// Dial connects to roomID. A 401 from the server is reported as ErrUnauthorized.
func (t *WSTransport) Dial(ctx context.Context, roomID string) (Conn, error) {
	u, err := roomURL(t.baseURL, roomID)
	if err != nil {
		return nil, err
	}

	header := http.Header{}
	if t.token != "" {
		header.Set("Authorization", "Bearer "+t.token)
	}

	conn, resp, err := t.dialer.DialContext(ctx, u, header)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
		}
		return nil, fmt.Errorf("failed to dial room: %w", err)
	}

	return newWSConn(conn, t.presenceInterval, t.logger), nil
}

func roomURL(baseURL, roomID string) (string, error) {
	if roomID == "" {
		return "", fmt.Errorf("room id is required")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse server url: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported server url scheme %q", u.Scheme)
	}
	return u.JoinPath("api", "v1", "rooms", roomID, "ws").String(), nil
}

// wsConn is a Conn over gorilla websocket. Writes are serialized;
// Close may be called concurrently with Receive.
type wsConn struct {
	conn      *websocket.Conn
	presence  *throttle
	writeMu   sync.Mutex
	closeOnce sync.Once
}

func newWSConn(conn *websocket.Conn, presenceInterval time.Duration, logger *slog.Logger) *wsConn {
	c := &wsConn{conn: conn}
	c.presence = newThrottle(presenceInterval, c.write, logger)

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(readWait))
	conn.SetPingHandler(func(data string) error {
		_ = conn.SetReadDeadline(time.Now().Add(readWait))
		err := conn.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(writeWait))
		if err == websocket.ErrCloseSent {
			return nil
		}
		return err
	})
	return c
}

func (c *wsConn) Send(msg *api.RoomMessage) error {
	if msg.Type == api.MsgPresence {
		return c.presence.push(msg)
	}
	return c.write(msg)
}

func (c *wsConn) write(msg *api.RoomMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	return nil
}

func (c *wsConn) Receive() (*api.RoomMessage, error) {
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return nil, err
	}
	_ = c.conn.SetReadDeadline(time.Now().Add(readWait))

	var msg api.RoomMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("failed to decode message: %w", err)
	}
	return &msg, nil
}

func (c *wsConn) Close() error {
	err := errConnClosed
	c.closeOnce.Do(func() {
		c.presence.stop()

		c.writeMu.Lock()
		_ = c.conn.SetWriteDeadline(time.Now().Add(time.Second))
		_ = c.conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		c.writeMu.Unlock()

		err = c.conn.Close()
	})
	return err
}
