package room

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/iudanet/notesync/internal/models"
	"github.com/iudanet/notesync/pkg/api"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer. Canvas documents are large.
	maxMessageSize = 8 << 20

	// DefaultJoinTimeout bounds the wait for the join message.
	DefaultJoinTimeout = 10 * time.Second
)

// Peer is the outbound side of one connection.
type Peer interface {
	ID() string
	// Send queues an encoded message without blocking. It returns false
	// when the message was dropped because the peer is closed or too slow.
	Send(data []byte) bool
	// Close flushes queued messages and disconnects the peer.
	Close()
}

// wsPeer is a Peer over a websocket connection.
type wsPeer struct {
	conn      *websocket.Conn
	send      chan []byte
	quit      chan struct{}
	logger    *slog.Logger
	id        string
	closeOnce sync.Once
}

func newWSPeer(conn *websocket.Conn, logger *slog.Logger) *wsPeer {
	return &wsPeer{
		conn:   conn,
		send:   make(chan []byte, 256),
		quit:   make(chan struct{}),
		logger: logger,
		id:     uuid.New().String(),
	}
}

func (p *wsPeer) ID() string { return p.id }

func (p *wsPeer) Send(data []byte) bool {
	select {
	case <-p.quit:
		return false
	default:
	}

	select {
	case p.send <- data:
		return true
	default:
		// Буфер переполнен: медленный клиент отключается
		p.logger.Warn("peer send buffer full, disconnecting", "connection_id", p.id)
		p.Close()
		return false
	}
}

func (p *wsPeer) Close() {
	p.closeOnce.Do(func() {
		close(p.quit)
	})
}

func (p *wsPeer) write(messageType int, data []byte) error {
	_ = p.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return p.conn.WriteMessage(messageType, data)
}

// writePump pumps queued messages to the websocket connection.
func (p *wsPeer) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = p.conn.Close()
	}()

	for {
		select {
		case msg := <-p.send:
			if err := p.write(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := p.write(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-p.quit:
			for {
				select {
				case msg := <-p.send:
					if err := p.write(websocket.TextMessage, msg); err != nil {
						return
					}
				default:
					_ = p.write(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
					return
				}
			}
		}
	}
}

// readPump feeds messages from the websocket connection into the room.
func (p *wsPeer) readPump(ctx context.Context, r *Room) {
	p.conn.SetReadLimit(maxMessageSize)
	_ = p.conn.SetReadDeadline(time.Now().Add(pongWait))
	p.conn.SetPongHandler(func(string) error {
		return p.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := p.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				p.logger.Warn("websocket read error", "connection_id", p.id, "error", err)
			}
			return
		}
		_ = p.conn.SetReadDeadline(time.Now().Add(pongWait))

		var msg api.RoomMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			p.sendError(fmt.Errorf("%w: %v", ErrBadRequest, err))
			continue
		}

		if err := r.Handle(ctx, p.id, &msg); err != nil {
			p.sendError(err)
			if errors.Is(err, ErrRoomEnded) || errors.Is(err, ErrNotMember) {
				return
			}
		}
	}
}

func (p *wsPeer) sendError(err error) {
	data, mErr := json.Marshal(errorMessage(err))
	if mErr != nil {
		return
	}
	p.Send(data)
}

func errorMessage(err error) *api.RoomMessage {
	return &api.RoomMessage{
		Type:    api.MsgError,
		Code:    ErrorCode(err),
		Message: err.Error(),
	}
}

// Serve runs one websocket connection until it closes. The first message
// must be a join; it has to arrive within joinTimeout.
func Serve(ctx context.Context, hub *Hub, conn *websocket.Conn, roomID string, identity Identity, joinTimeout time.Duration) {
	logger := hub.logger.With("room_id", roomID, "user_id", identity.UserID)
	if joinTimeout <= 0 {
		joinTimeout = DefaultJoinTimeout
	}

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(joinTimeout))

	var join api.RoomMessage
	if err := conn.ReadJSON(&join); err != nil {
		logger.Warn("join not received", "error", err)
		_ = conn.Close()
		return
	}
	if join.Type != api.MsgJoin {
		rejectConn(conn, fmt.Errorf("%w: expected join, got %q", ErrBadRequest, join.Type))
		return
	}

	var presence models.Presence
	if join.Presence != nil {
		presence = *join.Presence
	}

	peer := newWSPeer(conn, logger)
	r, err := hub.Join(ctx, roomID, peer, JoinRequest{
		Identity: identity,
		Role:     join.Role,
		Presence: presence,
	})
	if err != nil {
		logger.Warn("join rejected", "role", join.Role, "error", err)
		rejectConn(conn, err)
		return
	}

	go peer.writePump()
	peer.readPump(ctx, r)

	r.Leave(peer.ID())
	peer.Close()
}

// rejectConn writes an error message and closes a connection that never joined.
func rejectConn(conn *websocket.Conn, err error) {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = conn.WriteJSON(errorMessage(err))
	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.ClosePolicyViolation, ErrorCode(err)))
	_ = conn.Close()
}
