// Package collab is the client side of a collaboration room: connection
// lifecycle, presence, the mirrored shared document and the event bus.
package collab

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cenkalti/backoff"

	"github.com/iudanet/notesync/internal/client/stream"
	"github.com/iudanet/notesync/internal/models"
	"github.com/iudanet/notesync/pkg/api"
)

// State is the lifecycle state of a session.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateConnecting    State = "connecting"
	StateConnected     State = "connected"
	StateReconnecting  State = "reconnecting"
	StateClosed        State = "closed"
)

// Busy reports whether the session is still establishing a connection.
func (s State) Busy() bool {
	return s == StateConnecting || s == StateReconnecting
}

// Default session timings.
const (
	DefaultHandshakeTimeout    = 10 * time.Second
	DefaultReconnectInitial    = 500 * time.Millisecond
	DefaultReconnectMax        = 10 * time.Second
	DefaultReconnectMaxElapsed = 2 * time.Minute
)

// Options configures a session.
type Options struct {
	RoomID   string
	Role     models.Role
	Presence models.Presence // Presence начальное состояние присутствия

	HandshakeTimeout    time.Duration
	ReconnectInitial    time.Duration
	ReconnectMax        time.Duration
	ReconnectMaxElapsed time.Duration // ReconnectMaxElapsed 0 = значение по умолчанию, <0 = без ограничения
}

func (o Options) withDefaults() Options {
	if o.HandshakeTimeout <= 0 {
		o.HandshakeTimeout = DefaultHandshakeTimeout
	}
	if o.ReconnectInitial <= 0 {
		o.ReconnectInitial = DefaultReconnectInitial
	}
	if o.ReconnectMax <= 0 {
		o.ReconnectMax = DefaultReconnectMax
	}
	if o.ReconnectMaxElapsed == 0 {
		o.ReconnectMaxElapsed = DefaultReconnectMaxElapsed
	}
	return o
}

// Session is a handle to one room.
//
// Stream callbacks run without the session lock and may read the
// session, but must not mutate it synchronously.
type Session struct {
	transport Transport
	logger    *slog.Logger
	now       func() time.Time

	state    *stream.Subject[State]
	presence *stream.Subject[models.PresenceSet]
	storage  *stream.Subject[models.Snapshot]
	events   *stream.Bus[models.RoomEvent]

	ctx       context.Context
	cancel    context.CancelFunc
	done      chan struct{}
	disposers stream.Disposers

	// emit сохраняет порядок публикаций между горутинами
	emit sync.Mutex

	mu       sync.Mutex
	conn     Conn
	err      error
	peers    models.PresenceSet
	self     models.Presence
	snapshot models.Snapshot
	connID   string
	st       State
	opts     Options
	// unacked число отправленных storage_set без эха сервера
	unacked int
}

// NewSession creates a session in the uninitialized state.
func NewSession(transport Transport, opts Options, logger *slog.Logger) *Session {
	opts = opts.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())

	return &Session{
		transport: transport,
		logger:    logger.With("room_id", opts.RoomID, "role", opts.Role),
		now:       time.Now,
		state:     stream.NewDistinctSubject(StateUninitialized),
		presence:  stream.NewSubject(models.PresenceSet{}),
		storage:   stream.NewSubject(models.Snapshot{}),
		events:    stream.NewBus[models.RoomEvent](),
		ctx:       ctx,
		cancel:    cancel,
		done:      make(chan struct{}),
		peers:     models.PresenceSet{},
		self:      opts.Presence,
		st:        StateUninitialized,
		opts:      opts,
	}
}

// RoomID returns the room this session belongs to.
func (s *Session) RoomID() string { return s.opts.RoomID }

// Role returns the local role.
func (s *Session) Role() models.Role { return s.opts.Role }

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st
}

// ConnectionID returns the id assigned by the relay, empty when not connected.
func (s *Session) ConnectionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connID
}

// Snapshot returns a copy of the mirrored shared document.
func (s *Session) Snapshot() models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot.Clone()
}

// Self returns the local presence.
func (s *Session) Self() models.Presence {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.self.WithCursor(s.self.Cursor)
}

// Err returns why the session closed; nil after Leave or while open.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Done is closed when the session reaches StateClosed.
func (s *Session) Done() <-chan struct{} { return s.done }

// States streams lifecycle changes.
func (s *Session) States() stream.Observable[State] { return s.state }

// Presence streams the presence set of all peers including self.
func (s *Session) Presence() stream.Observable[models.PresenceSet] { return s.presence }

// Storage streams the mirrored shared document. Values are shared
// between subscribers and must not be modified.
func (s *Session) Storage() stream.Observable[models.Snapshot] { return s.storage }

// Events streams room events sent by other peers.
func (s *Session) Events() stream.Source[models.RoomEvent] { return s.events }

// Track ties dispose to the session lifetime: it runs when the session closes.
func (s *Session) Track(dispose func()) {
	s.disposers.Add(dispose)
}

// Connect dials the room and waits for the welcome message.
func (s *Session) Connect(ctx context.Context) error {
	s.mu.Lock()
	if s.st != StateUninitialized {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	s.st = StateConnecting
	s.unlockAndEmit(func() { s.state.Publish(StateConnecting) })

	conn, welcome, err := s.handshake(ctx)
	if err != nil {
		if s.ctx.Err() != nil {
			// Leave во время рукопожатия
			return ErrSessionClosed
		}
		s.shutdown(err)
		return err
	}

	if !s.attach(conn, welcome) {
		_ = conn.Close()
		return ErrSessionClosed
	}

	s.logger.Info("joined room", "connection_id", welcome.ConnectionID)
	go s.run(conn)
	return nil
}

// handshake dials and joins. It is bounded by HandshakeTimeout and
// cancelled by both ctx and Leave.
func (s *Session) handshake(ctx context.Context) (Conn, *api.RoomMessage, error) {
	hsCtx, cancel := context.WithTimeout(ctx, s.opts.HandshakeTimeout)
	defer cancel()
	stopLeave := context.AfterFunc(s.ctx, cancel)
	defer stopLeave()

	conn, err := s.transport.Dial(hsCtx, s.opts.RoomID)
	if err != nil {
		if errors.Is(hsCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, nil, ErrHandshakeTimeout
		}
		return nil, nil, err
	}

	// Receive не принимает контекст: по отмене закрываем соединение
	stopClose := context.AfterFunc(hsCtx, func() { _ = conn.Close() })

	welcome, err := s.join(conn)
	if !stopClose() {
		_ = conn.Close()
		if errors.Is(hsCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil && s.ctx.Err() == nil {
			return nil, nil, ErrHandshakeTimeout
		}
		if ctx.Err() != nil {
			return nil, nil, ctx.Err()
		}
		return nil, nil, ErrSessionClosed
	}
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return conn, welcome, nil
}

// join sends the join message and waits for the welcome.
func (s *Session) join(conn Conn) (*api.RoomMessage, error) {
	self := s.Self()
	if err := conn.Send(&api.RoomMessage{Type: api.MsgJoin, Role: s.opts.Role, Presence: &self}); err != nil {
		return nil, fmt.Errorf("failed to send join: %w", err)
	}

	for {
		msg, err := conn.Receive()
		if err != nil {
			return nil, fmt.Errorf("failed to receive welcome: %w", err)
		}
		switch msg.Type {
		case api.MsgWelcome:
			return msg, nil
		case api.MsgError:
			return nil, serverError(msg, s.opts.Role, "join")
		default:
			s.logger.Debug("message before welcome ignored", "type", msg.Type)
		}
	}
}

// attach installs a freshly joined connection. The welcome replaces the
// presence set and the snapshot, dropping any speculative local state.
// It returns false when the session closed meanwhile.
func (s *Session) attach(conn Conn, welcome *api.RoomMessage) bool {
	s.mu.Lock()
	if s.st == StateClosed {
		s.mu.Unlock()
		return false
	}

	s.conn = conn
	s.connID = welcome.ConnectionID
	s.self.ConnectionID = welcome.ConnectionID

	s.snapshot = models.Snapshot{}
	s.unacked = 0
	if welcome.Snapshot != nil {
		s.snapshot = welcome.Snapshot.Clone()
	}

	s.peers = make(models.PresenceSet, len(welcome.Peers)+1)
	for _, p := range welcome.Peers {
		s.peers[p.ConnectionID] = p
	}
	s.peers[s.connID] = s.self

	s.st = StateConnected
	snap := s.snapshot.Clone()
	peers := s.peers.Clone()
	s.unlockAndEmit(
		func() { s.storage.Publish(snap) },
		func() { s.presence.Publish(peers) },
		func() { s.state.Publish(StateConnected) },
	)
	return true
}

// run reads from conn and reconnects until the session closes.
func (s *Session) run(conn Conn) {
	for {
		err := s.readLoop(conn)
		if err == nil {
			return
		}

		next, ok := s.reconnect(conn, err)
		if !ok {
			return
		}
		conn = next
	}
}

// readLoop returns nil when the session reached a terminal state and the
// read error otherwise.
func (s *Session) readLoop(conn Conn) error {
	for {
		msg, err := conn.Receive()
		if err != nil {
			if s.ctx.Err() != nil {
				return nil
			}
			return err
		}
		if s.handle(msg) {
			return nil
		}
	}
}

// reconnect moves to reconnecting and dials again with backoff.
func (s *Session) reconnect(old Conn, cause error) (Conn, bool) {
	s.mu.Lock()
	if s.st == StateClosed {
		s.mu.Unlock()
		return nil, false
	}
	s.conn = nil
	s.connID = ""
	s.st = StateReconnecting
	s.unlockAndEmit(func() { s.state.Publish(StateReconnecting) })
	_ = old.Close()

	s.logger.Warn("room connection lost, reconnecting", "error", cause)

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.opts.ReconnectInitial
	b.MaxInterval = s.opts.ReconnectMax
	b.MaxElapsedTime = max(s.opts.ReconnectMaxElapsed, 0)
	b.Reset()

	lastErr := cause
	for attempt := 1; ; attempt++ {
		delay := b.NextBackOff()
		if delay == backoff.Stop {
			s.shutdown(fmt.Errorf("failed to reconnect: %w", lastErr))
			return nil, false
		}

		timer := time.NewTimer(delay)
		select {
		case <-s.ctx.Done():
			timer.Stop()
			return nil, false
		case <-timer.C:
		}

		conn, welcome, err := s.handshake(s.ctx)
		if err == nil {
			if !s.attach(conn, welcome) {
				_ = conn.Close()
				return nil, false
			}
			s.logger.Info("rejoined room", "connection_id", welcome.ConnectionID, "attempt", attempt)
			return conn, true
		}
		if s.ctx.Err() != nil {
			return nil, false
		}
		if isTerminal(err) {
			s.shutdown(err)
			return nil, false
		}

		lastErr = err
		s.logger.Warn("reconnect attempt failed", "attempt", attempt, "error", err)
	}
}

// handle applies one relay message. It returns true when the session closed.
func (s *Session) handle(msg *api.RoomMessage) bool {
	switch msg.Type {
	case api.MsgPresence:
		if msg.Presence != nil {
			s.applyPresence(*msg.Presence)
		}
	case api.MsgPeerLeft:
		s.removePeer(msg.ConnectionID)
	case api.MsgStorage:
		if msg.Snapshot != nil {
			s.applySnapshot(*msg.Snapshot)
		}
	case api.MsgEvent:
		if msg.Event != nil {
			s.applyEvent(*msg.Event)
		}
	case api.MsgSessionEnded:
		s.logger.Info("session ended by owner")
		s.shutdown(ErrSessionEnded)
		return true
	case api.MsgError:
		err := serverError(msg, s.opts.Role, "perform this operation")
		if errors.Is(err, ErrUnauthorized) {
			s.shutdown(err)
			return true
		}
		s.logger.Warn("relay rejected operation", "code", msg.Code, "message", msg.Message)
	default:
		s.logger.Debug("unexpected room message", "type", msg.Type)
	}
	return false
}

func (s *Session) applyPresence(p models.Presence) {
	s.mu.Lock()
	if s.st != StateConnected || p.ConnectionID == "" || p.ConnectionID == s.connID {
		s.mu.Unlock()
		return
	}
	s.peers[p.ConnectionID] = p
	peers := s.peers.Clone()
	s.unlockAndEmit(func() { s.presence.Publish(peers) })
}

func (s *Session) removePeer(connID string) {
	s.mu.Lock()
	if _, ok := s.peers[connID]; !ok || connID == s.connID {
		s.mu.Unlock()
		return
	}
	delete(s.peers, connID)
	peers := s.peers.Clone()
	s.unlockAndEmit(func() { s.presence.Publish(peers) })
}

// applySnapshot replaces the mirror unless snap is older than what we hold.
// While the owner has unechoed writes, its own echoes only advance the
// sequence and the newer local draft is kept.
func (s *Session) applySnapshot(snap models.Snapshot) {
	s.mu.Lock()
	if !snap.Supersedes(s.snapshot) {
		cur := s.snapshot
		s.mu.Unlock()
		s.logger.Warn("stale snapshot discarded",
			"epoch", snap.Epoch,
			"seq", snap.Seq,
			"current_epoch", cur.Epoch,
			"current_seq", cur.Seq,
		)
		return
	}

	own := s.unacked > 0 && snap.Origin != "" && snap.Origin == s.connID && snap.Epoch == s.snapshot.Epoch
	if !own {
		s.unacked = 0
		s.snapshot = snap.Clone()
		out := snap.Clone()
		s.unlockAndEmit(func() { s.storage.Publish(out) })
		return
	}

	s.unacked--
	if s.unacked > 0 {
		// Эхо более ранней записи: черновик новее, сдвигаем только seq
		s.snapshot.Seq = snap.Seq
		s.mu.Unlock()
		return
	}
	s.snapshot = snap.Clone()
	out := snap.Clone()
	s.unlockAndEmit(func() { s.storage.Publish(out) })
}

func (s *Session) applyEvent(ev models.RoomEvent) {
	s.emit.Lock()
	s.events.Emit(ev)
	s.emit.Unlock()

	if s.opts.Role.CanMutate() {
		s.fold(ev)
	}
}

// fold records an observer contribution carried by ev in the shared
// document. The sender identity is taken from its presence when known.
func (s *Session) fold(ev models.RoomEvent) {
	sender, known := s.sender(ev.From)

	var (
		apply func(doc *models.SharedDocument) bool
		err   error
	)
	switch ev.Type {
	case models.EventPollVote:
		var vote models.PollVote
		if err = json.Unmarshal(ev.Payload, &vote); err == nil {
			if known {
				vote.UserID = sender.UserID
			}
			apply = func(doc *models.SharedDocument) bool { return ApplyVote(doc, vote) }
		}
	case models.EventHandRaise:
		var signal models.HandSignal
		if err = json.Unmarshal(ev.Payload, &signal); err == nil {
			if known {
				signal.UserID, signal.UserName = sender.UserID, sender.UserName
			}
			ts := ev.Timestamp
			if ts <= 0 {
				ts = s.now().UnixMilli()
			}
			apply = func(doc *models.SharedDocument) bool { return ApplyHandRaise(doc, signal, ts) }
		}
	case models.EventHandLower:
		var signal models.HandSignal
		if err = json.Unmarshal(ev.Payload, &signal); err == nil {
			// Наблюдатель опускает только свою руку
			if known {
				signal.UserID = sender.UserID
			}
			apply = func(doc *models.SharedDocument) bool { return ApplyHandLower(doc, signal.UserID) }
		}
	case models.EventQuestionAdded:
		var q models.Question
		if err = json.Unmarshal(ev.Payload, &q); err == nil {
			if known {
				q.AuthorID, q.AuthorName = sender.UserID, sender.UserName
			}
			q.Answers, q.Upvotes, q.IsPinned = nil, nil, false
			apply = func(doc *models.SharedDocument) bool { return ApplyQuestion(doc, q) }
		}
	case models.EventQuestionUpvoted:
		var up models.QuestionUpvote
		if err = json.Unmarshal(ev.Payload, &up); err == nil {
			if known {
				up.UserID = sender.UserID
			}
			apply = func(doc *models.SharedDocument) bool { return ApplyUpvote(doc, up) }
		}
	default:
		return
	}
	if err != nil {
		s.logger.Warn("malformed room event", "type", ev.Type, "from", ev.From, "error", err)
		return
	}
	if err := s.mutate(apply); err != nil {
		s.logger.Warn("failed to record room event", "type", ev.Type, "from", ev.From, "error", err)
	}
}

// sender returns the presence of the peer with connection id connID.
func (s *Session) sender(connID string) (models.Presence, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.peers[connID]
	return p, ok && p.UserID != ""
}

// Mutate applies fn to a copy of the shared document and replicates the
// result. Observers get *AuthorityError and nothing is sent.
func (s *Session) Mutate(fn func(doc *models.SharedDocument)) error {
	return s.mutate(func(doc *models.SharedDocument) bool {
		fn(doc)
		return true
	})
}

// mutate sends the document only when fn reports a change.
func (s *Session) mutate(fn func(doc *models.SharedDocument) bool) error {
	if !s.opts.Role.CanMutate() {
		err := &AuthorityError{Role: s.opts.Role, Op: "mutate shared storage"}
		s.logger.Warn("mutation rejected", "error", err)
		return err
	}

	s.mu.Lock()
	if err := s.connectedLocked(); err != nil {
		s.mu.Unlock()
		return err
	}

	doc := s.snapshot.Document.Clone()
	if !fn(&doc) {
		s.mu.Unlock()
		return nil
	}

	// Отправка под блокировкой: порядок на проводе совпадает с локальным
	if err := s.conn.Send(&api.RoomMessage{Type: api.MsgStorageSet, Document: &doc}); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to send storage update: %w", err)
	}

	// Локальная копия опережает эхо сервера до следующего seq
	s.unacked++
	s.snapshot.Document = doc.Clone()
	s.snapshot.Origin = s.connID
	snap := s.snapshot.Clone()
	s.unlockAndEmit(func() { s.storage.Publish(snap) })
	return nil
}

// UpdatePresence replaces the local presence and sends it to the room.
// While reconnecting the value is kept and sent with the next join.
func (s *Session) UpdatePresence(p models.Presence) error {
	s.mu.Lock()
	if s.st == StateClosed {
		s.mu.Unlock()
		return ErrSessionClosed
	}

	p = p.WithCursor(p.Cursor)
	p.ConnectionID = s.connID
	s.self = p

	if s.st != StateConnected {
		s.mu.Unlock()
		return nil
	}

	s.peers[s.connID] = p
	conn := s.conn
	peers := s.peers.Clone()
	s.unlockAndEmit(func() { s.presence.Publish(peers) })

	if err := conn.Send(&api.RoomMessage{Type: api.MsgPresence, Presence: &p}); err != nil {
		return fmt.Errorf("failed to send presence: %w", err)
	}
	return nil
}

// MoveCursor updates only the cursor position.
func (s *Session) MoveCursor(x, y float64) error {
	return s.UpdatePresence(s.Self().WithCursor(&models.Cursor{X: x, Y: y}))
}

// LeaveSurface clears the cursor when the pointer leaves the surface.
func (s *Session) LeaveSurface() error {
	return s.UpdatePresence(s.Self().WithCursor(nil))
}

// SetPage updates the file page the local user is looking at.
func (s *Session) SetPage(fileID string, page int) error {
	return s.UpdatePresence(s.Self().WithPage(fileID, page))
}

// SetDrawingMode toggles the drawing flag of the local presence.
func (s *Session) SetDrawingMode(on bool) error {
	return s.UpdatePresence(s.Self().WithDrawingMode(on))
}

// Broadcast sends a fire-and-forget event to the other peers. Any role
// may broadcast; events are not echoed back.
func (s *Session) Broadcast(eventType models.RoomEventType, payload any) error {
	var raw json.RawMessage
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal event payload: %w", err)
		}
		raw = data
	}

	s.mu.Lock()
	if err := s.connectedLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	conn := s.conn
	ev := models.RoomEvent{
		Type:      eventType,
		From:      s.connID,
		Payload:   raw,
		Timestamp: s.now().UnixMilli(),
	}
	s.mu.Unlock()

	if err := conn.Send(&api.RoomMessage{Type: api.MsgEvent, Event: &ev}); err != nil {
		return fmt.Errorf("failed to send event: %w", err)
	}
	return nil
}

// End closes the room for every peer. Only the owner may end a session.
// It waits until the relay confirms or ctx expires.
func (s *Session) End(ctx context.Context) error {
	if !s.opts.Role.CanMutate() {
		return &AuthorityError{Role: s.opts.Role, Op: "end the session"}
	}

	s.mu.Lock()
	if err := s.connectedLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	conn := s.conn
	s.mu.Unlock()

	if err := conn.Send(&api.RoomMessage{Type: api.MsgEnd}); err != nil {
		return fmt.Errorf("failed to send end: %w", err)
	}

	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		s.shutdown(ErrSessionEnded)
		return ctx.Err()
	}
}

// Leave disconnects and closes the session. It is safe to call at any
// time, including mid-handshake, and more than once.
func (s *Session) Leave() {
	s.shutdown(nil)
}

func (s *Session) connectedLocked() error {
	switch s.st {
	case StateConnected:
		return nil
	case StateClosed:
		return ErrSessionClosed
	default:
		return ErrNotConnected
	}
}

// shutdown moves the session to closed exactly once.
func (s *Session) shutdown(cause error) {
	s.mu.Lock()
	if s.st == StateClosed {
		s.mu.Unlock()
		return
	}
	s.st = StateClosed
	s.err = cause
	conn := s.conn
	s.conn = nil
	s.connID = ""
	s.unlockAndEmit(func() { s.state.Publish(StateClosed) })

	s.cancel()
	if conn != nil {
		_ = conn.Close()
	}

	if cause != nil {
		s.logger.Warn("session closed", "error", cause)
	} else {
		s.logger.Info("left room")
	}

	close(s.done)
	s.disposers.Dispose()
	s.state.Close()
	s.presence.Close()
	s.storage.Close()
	s.events.Close()
}

// unlockAndEmit releases s.mu and runs fns in order. Publishing happens
// outside s.mu but in the same order as the state changes.
func (s *Session) unlockAndEmit(fns ...func()) {
	s.emit.Lock()
	s.mu.Unlock()
	defer s.emit.Unlock()
	for _, fn := range fns {
		fn()
	}
}
