package collab

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/notesync/internal/models"
	"github.com/iudanet/notesync/pkg/api"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// fakeConn записывает отправленные сообщения и отдаёт то, что положил тест
type fakeConn struct {
	in        chan *api.RoomMessage
	sent      chan *api.RoomMessage
	closed    chan struct{}
	closeOnce sync.Once
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		in:     make(chan *api.RoomMessage, 16),
		sent:   make(chan *api.RoomMessage, 64),
		closed: make(chan struct{}),
	}
}

func (c *fakeConn) Send(msg *api.RoomMessage) error {
	select {
	case <-c.closed:
		return errConnClosed
	default:
	}
	c.sent <- msg
	return nil
}

func (c *fakeConn) Receive() (*api.RoomMessage, error) {
	select {
	case msg := <-c.in:
		return msg, nil
	case <-c.closed:
		return nil, io.EOF
	}
}

func (c *fakeConn) Close() error {
	c.closeOnce.Do(func() { close(c.closed) })
	return nil
}

func (c *fakeConn) isClosed() bool {
	select {
	case <-c.closed:
		return true
	default:
		return false
	}
}

func (c *fakeConn) expect(t *testing.T, typ api.RoomMessageType) *api.RoomMessage {
	t.Helper()
	select {
	case msg := <-c.sent:
		require.Equal(t, typ, msg.Type)
		return msg
	case <-time.After(2 * time.Second):
		t.Fatalf("no %s message sent", typ)
		return nil
	}
}

func (c *fakeConn) expectNothing(t *testing.T) {
	t.Helper()
	select {
	case msg := <-c.sent:
		t.Fatalf("unexpected %s message sent", msg.Type)
	case <-time.After(20 * time.Millisecond):
	}
}

type fakeTransport struct {
	dialed chan *fakeConn
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{dialed: make(chan *fakeConn, 4)}
}

func (f *fakeTransport) Dial(ctx context.Context, _ string) (Conn, error) {
	c := newFakeConn()
	select {
	case f.dialed <- c:
		return c, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (f *fakeTransport) next(t *testing.T) *fakeConn {
	t.Helper()
	select {
	case c := <-f.dialed:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("transport was not dialed")
		return nil
	}
}

func testSnapshot(epoch string, seq uint64, page int) *models.Snapshot {
	return &models.Snapshot{
		Epoch: epoch,
		Seq:   seq,
		Document: models.SharedDocument{
			Canvas:        map[string]models.StrokeDocument{},
			CurrentFileID: "file-1",
			CurrentPage:   page,
		},
	}
}

func newTestSession(tr Transport, role models.Role) *Session {
	return NewSession(tr, Options{
		RoomID:           "lecture",
		Role:             role,
		Presence:         models.Presence{UserID: "u-" + string(role), UserName: string(role), Color: "#00f"},
		HandshakeTimeout: time.Second,
		ReconnectInitial: 10 * time.Millisecond,
		ReconnectMax:     20 * time.Millisecond,
	}, testLogger())
}

// connect проводит рукопожатие и возвращает соединение
func connect(t *testing.T, s *Session, tr *fakeTransport, welcome *api.RoomMessage) *fakeConn {
	t.Helper()
	errCh := make(chan error, 1)
	go func() { errCh <- s.Connect(context.Background()) }()

	conn := tr.next(t)
	conn.expect(t, api.MsgJoin)
	welcome.Type = api.MsgWelcome
	conn.in <- welcome

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("connect did not return")
	}
	t.Cleanup(s.Leave)
	return conn
}

func TestSession_ConnectReceivesWelcome(t *testing.T) {
	tr := newFakeTransport()
	s := newTestSession(tr, models.RoleObserver)
	assert.Equal(t, StateUninitialized, s.State())

	errCh := make(chan error, 1)
	go func() { errCh <- s.Connect(context.Background()) }()

	conn := tr.next(t)
	join := conn.expect(t, api.MsgJoin)
	assert.Equal(t, models.RoleObserver, join.Role)
	require.NotNil(t, join.Presence)
	assert.Equal(t, "#00f", join.Presence.Color)
	assert.Equal(t, StateConnecting, s.State())

	owner := models.Presence{ConnectionID: "c-owner", UserID: "educator", UserName: "Dr. Smith"}
	conn.in <- &api.RoomMessage{
		Type:         api.MsgWelcome,
		ConnectionID: "c-me",
		Role:         models.RoleObserver,
		Snapshot:     testSnapshot("e1", 4, 2),
		Peers:        []models.Presence{owner},
	}
	require.NoError(t, <-errCh)
	t.Cleanup(s.Leave)

	assert.Equal(t, StateConnected, s.State())
	assert.Equal(t, "c-me", s.ConnectionID())
	assert.Equal(t, uint64(4), s.Snapshot().Seq)
	assert.Equal(t, 2, s.Storage().Get().Document.CurrentPage)

	peers := s.Presence().Get()
	require.Len(t, peers, 2)
	assert.Equal(t, "Dr. Smith", peers["c-owner"].UserName)
	assert.Equal(t, "c-me", peers["c-me"].ConnectionID)

	assert.ErrorIs(t, s.Connect(context.Background()), ErrAlreadyStarted)
}

func TestSession_ObserverMutateRejectedLocally(t *testing.T) {
	tr := newFakeTransport()
	s := newTestSession(tr, models.RoleObserver)
	conn := connect(t, s, tr, &api.RoomMessage{ConnectionID: "c1", Snapshot: testSnapshot("e1", 1, 0)})

	called := false
	err := s.Mutate(func(doc *models.SharedDocument) {
		called = true
		doc.CurrentPage = 9
	})

	var authErr *AuthorityError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, models.RoleObserver, authErr.Role)
	assert.False(t, called)
	conn.expectNothing(t)
	assert.Equal(t, 0, s.Snapshot().Document.CurrentPage)

	assert.ErrorAs(t, s.End(context.Background()), &authErr)
	_, err = s.CreatePoll("Q?", []string{"a", "b"})
	assert.ErrorAs(t, err, &authErr)
}

func TestSession_OwnerMutateReplicatesWholeDocument(t *testing.T) {
	tr := newFakeTransport()
	s := newTestSession(tr, models.RoleOwner)
	conn := connect(t, s, tr, &api.RoomMessage{ConnectionID: "c1", Snapshot: testSnapshot("e1", 1, 0)})

	require.NoError(t, s.Mutate(func(doc *models.SharedDocument) {
		doc.CurrentPage = 3
	}))
	require.NoError(t, s.Mutate(func(doc *models.SharedDocument) {
		doc.Canvas[models.PageKey("file-1", 3)] = models.StrokeDocument{Version: "5.3.0"}
	}))

	first := conn.expect(t, api.MsgStorageSet)
	require.NotNil(t, first.Document)
	assert.Equal(t, 3, first.Document.CurrentPage)

	// второе изменение строится поверх первого, не дожидаясь эха
	second := conn.expect(t, api.MsgStorageSet)
	assert.Equal(t, 3, second.Document.CurrentPage)
	assert.Contains(t, second.Document.Canvas, "file-1-3")
	assert.Equal(t, "file-1", second.Document.CurrentFileID)

	local := s.Snapshot()
	assert.Equal(t, uint64(1), local.Seq)
	assert.Equal(t, "c1", local.Origin)

	echo := testSnapshot("e1", 2, 3)
	conn.in <- &api.RoomMessage{Type: api.MsgStorage, Snapshot: echo}
	require.Eventually(t, func() bool { return s.Snapshot().Seq == 2 }, 2*time.Second, 5*time.Millisecond)
}

func TestSession_OwnerDraftSurvivesEarlierEcho(t *testing.T) {
	tr := newFakeTransport()
	s := newTestSession(tr, models.RoleOwner)
	conn := connect(t, s, tr, &api.RoomMessage{ConnectionID: "c1", Snapshot: testSnapshot("e1", 1, 0)})

	var mu sync.Mutex
	var seen []models.Snapshot
	dispose := s.Storage().Subscribe(func(snap models.Snapshot) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, snap)
	})
	defer dispose()

	require.NoError(t, s.Mutate(func(doc *models.SharedDocument) {
		doc.CurrentPage = 3
	}))
	require.NoError(t, s.Mutate(func(doc *models.SharedDocument) {
		doc.Canvas[models.PageKey("file-1", 3)] = models.StrokeDocument{Version: "5.3.0"}
	}))
	first := conn.expect(t, api.MsgStorageSet)
	second := conn.expect(t, api.MsgStorageSet)

	// эхо первой записи приходит после второй
	conn.in <- &api.RoomMessage{Type: api.MsgStorage, Snapshot: &models.Snapshot{
		Epoch: "e1", Seq: 2, Origin: "c1", Document: first.Document.Clone(),
	}}
	require.Eventually(t, func() bool { return s.Snapshot().Seq == 2 }, 2*time.Second, 5*time.Millisecond)
	assert.Contains(t, s.Snapshot().Document.Canvas, "file-1-3")

	require.NoError(t, s.Mutate(func(doc *models.SharedDocument) {
		doc.CurrentFileID = "file-2"
	}))
	third := conn.expect(t, api.MsgStorageSet)
	require.NotNil(t, third.Document)
	assert.Contains(t, third.Document.Canvas, "file-1-3")
	assert.Equal(t, 3, third.Document.CurrentPage)
	assert.Equal(t, "file-2", third.Document.CurrentFileID)

	conn.in <- &api.RoomMessage{Type: api.MsgStorage, Snapshot: &models.Snapshot{
		Epoch: "e1", Seq: 3, Origin: "c1", Document: second.Document.Clone(),
	}}
	conn.in <- &api.RoomMessage{Type: api.MsgStorage, Snapshot: &models.Snapshot{
		Epoch: "e1", Seq: 4, Origin: "c1", Document: third.Document.Clone(),
	}}
	require.Eventually(t, func() bool { return s.Snapshot().Seq == 4 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, "file-2", s.Snapshot().Document.CurrentFileID)

	// Снимок другого источника заменяет копию целиком
	conn.in <- &api.RoomMessage{Type: api.MsgStorage, Snapshot: &models.Snapshot{
		Epoch: "e1", Seq: 5, Origin: "server", Document: testSnapshot("e1", 5, 7).Document,
	}}
	require.Eventually(t, func() bool { return s.Snapshot().Seq == 5 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, 7, s.Snapshot().Document.CurrentPage)

	mu.Lock()
	defer mu.Unlock()
	require.GreaterOrEqual(t, len(seen), 3)
	for _, snap := range seen[2:] {
		if snap.Seq >= 5 {
			break
		}
		assert.Contains(t, snap.Document.Canvas, "file-1-3", "storage went backward at seq %d", snap.Seq)
	}
}

func TestSession_SnapshotOrdering(t *testing.T) {
	tr := newFakeTransport()
	s := newTestSession(tr, models.RoleObserver)
	conn := connect(t, s, tr, &api.RoomMessage{ConnectionID: "c1", Snapshot: testSnapshot("e1", 1, 0)})

	var mu sync.Mutex
	var pages []int
	dispose := s.Storage().Subscribe(func(snap models.Snapshot) {
		mu.Lock()
		defer mu.Unlock()
		pages = append(pages, snap.Document.CurrentPage)
	})
	defer dispose()

	conn.in <- &api.RoomMessage{Type: api.MsgStorage, Snapshot: testSnapshot("e1", 3, 3)}
	conn.in <- &api.RoomMessage{Type: api.MsgStorage, Snapshot: testSnapshot("e1", 2, 2)}  // устаревший
	conn.in <- &api.RoomMessage{Type: api.MsgStorage, Snapshot: testSnapshot("e1", 3, 30)} // дубликат
	conn.in <- &api.RoomMessage{Type: api.MsgStorage, Snapshot: testSnapshot("e2", 1, 1)}  // новая эпоха

	require.Eventually(t, func() bool { return s.Snapshot().Epoch == "e2" }, 2*time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{0, 3, 1}, pages)
}

func TestSession_PresenceTracking(t *testing.T) {
	tr := newFakeTransport()
	s := newTestSession(tr, models.RoleObserver)
	conn := connect(t, s, tr, &api.RoomMessage{
		ConnectionID: "c-me",
		Snapshot:     testSnapshot("e1", 0, 0),
		Peers:        []models.Presence{{ConnectionID: "c-owner", UserName: "Owner"}},
	})

	conn.in <- &api.RoomMessage{Type: api.MsgPresence, Presence: &models.Presence{ConnectionID: "c-new", UserName: "Sam"}}
	// собственное присутствие с сервера не перетирает локальное
	conn.in <- &api.RoomMessage{Type: api.MsgPresence, Presence: &models.Presence{ConnectionID: "c-me", UserName: "spoof"}}
	conn.in <- &api.RoomMessage{Type: api.MsgPeerLeft, ConnectionID: "c-owner"}

	require.Eventually(t, func() bool {
		peers := s.Presence().Get()
		_, hasOwner := peers["c-owner"]
		return len(peers) == 2 && !hasOwner
	}, 2*time.Second, 5*time.Millisecond)

	peers := s.Presence().Get()
	assert.Equal(t, "Sam", peers["c-new"].UserName)
	assert.Equal(t, "observer", peers["c-me"].UserName)

	require.NoError(t, s.MoveCursor(10, 20))
	msg := conn.expect(t, api.MsgPresence)
	require.NotNil(t, msg.Presence.Cursor)
	assert.Equal(t, models.Cursor{X: 10, Y: 20}, *msg.Presence.Cursor)
	assert.Equal(t, "c-me", msg.Presence.ConnectionID)
	assert.Equal(t, "#00f", msg.Presence.Color)

	require.NoError(t, s.LeaveSurface())
	msg = conn.expect(t, api.MsgPresence)
	assert.Nil(t, msg.Presence.Cursor)
	assert.Equal(t, "#00f", msg.Presence.Color)

	require.NoError(t, s.SetPage("file-2", 4))
	msg = conn.expect(t, api.MsgPresence)
	assert.Equal(t, "file-2", msg.Presence.CurrentFileID)
	assert.Equal(t, 4, msg.Presence.CurrentPage)

	require.NoError(t, s.SetDrawingMode(true))
	msg = conn.expect(t, api.MsgPresence)
	assert.True(t, msg.Presence.IsDrawingMode)
	assert.Equal(t, 4, msg.Presence.CurrentPage)
}

func TestSession_Events(t *testing.T) {
	tr := newFakeTransport()
	s := newTestSession(tr, models.RoleObserver)
	conn := connect(t, s, tr, &api.RoomMessage{ConnectionID: "c1", Snapshot: testSnapshot("e1", 0, 0)})

	got := make(chan models.RoomEvent, 1)
	s.Track(s.Events().Subscribe(func(ev models.RoomEvent) { got <- ev }))

	conn.in <- &api.RoomMessage{Type: api.MsgEvent, Event: &models.RoomEvent{Type: models.EventHandRaise, From: "c2"}}
	select {
	case ev := <-got:
		assert.Equal(t, models.EventHandRaise, ev.Type)
		assert.Equal(t, "c2", ev.From)
	case <-time.After(2 * time.Second):
		t.Fatal("event not delivered")
	}

	s.now = func() time.Time { return time.UnixMilli(777) }
	require.NoError(t, s.Broadcast(models.EventEmojiReaction, map[string]string{"emoji": "👍"}))
	msg := conn.expect(t, api.MsgEvent)
	assert.Equal(t, models.EventEmojiReaction, msg.Event.Type)
	assert.Equal(t, int64(777), msg.Event.Timestamp)
	assert.JSONEq(t, `{"emoji":"👍"}`, string(msg.Event.Payload))
}

func TestSession_NotConnected(t *testing.T) {
	s := newTestSession(newFakeTransport(), models.RoleOwner)

	assert.ErrorIs(t, s.Mutate(func(*models.SharedDocument) {}), ErrNotConnected)
	assert.ErrorIs(t, s.Broadcast(models.EventHandRaise, nil), ErrNotConnected)
	assert.ErrorIs(t, s.End(context.Background()), ErrNotConnected)
	// присутствие запоминается до подключения
	assert.NoError(t, s.SetPage("file-9", 1))
	assert.Equal(t, "file-9", s.Self().CurrentFileID)

	s.Leave()
	assert.ErrorIs(t, s.Mutate(func(*models.SharedDocument) {}), ErrSessionClosed)
	assert.ErrorIs(t, s.UpdatePresence(models.Presence{}), ErrSessionClosed)
}

func TestSession_HandshakeTimeout(t *testing.T) {
	tr := newFakeTransport()
	s := NewSession(tr, Options{
		RoomID:           "lecture",
		Role:             models.RoleObserver,
		HandshakeTimeout: 50 * time.Millisecond,
	}, testLogger())

	err := s.Connect(context.Background())
	assert.ErrorIs(t, err, ErrHandshakeTimeout)
	assert.Equal(t, StateClosed, s.State())
	assert.ErrorIs(t, s.Err(), ErrHandshakeTimeout)

	conn := tr.next(t)
	assert.True(t, conn.isClosed())
}

func TestSession_LeaveMidHandshake(t *testing.T) {
	tr := newFakeTransport()
	s := newTestSession(tr, models.RoleObserver)

	errCh := make(chan error, 1)
	go func() { errCh <- s.Connect(context.Background()) }()

	conn := tr.next(t)
	conn.expect(t, api.MsgJoin)
	s.Leave()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, ErrSessionClosed)
	case <-time.After(2 * time.Second):
		t.Fatal("connect did not return after leave")
	}

	// опоздавший welcome никуда не применяется
	conn.in <- &api.RoomMessage{Type: api.MsgWelcome, ConnectionID: "late", Snapshot: testSnapshot("e1", 5, 5)}
	assert.Equal(t, StateClosed, s.State())
	assert.Empty(t, s.ConnectionID())
	assert.NoError(t, s.Err())
	assert.True(t, conn.isClosed())
	<-s.Done()
}

func TestSession_JoinRejected(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		code    string
	}{
		{name: "room not found", code: api.CodeRoomNotFound, wantErr: ErrRoomNotFound},
		{name: "unauthorized", code: api.CodeUnauthorized, wantErr: ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := newFakeTransport()
			s := newTestSession(tr, models.RoleObserver)

			errCh := make(chan error, 1)
			go func() { errCh <- s.Connect(context.Background()) }()

			conn := tr.next(t)
			conn.expect(t, api.MsgJoin)
			conn.in <- &api.RoomMessage{Type: api.MsgError, Code: tt.code}

			assert.ErrorIs(t, <-errCh, tt.wantErr)
			assert.Equal(t, StateClosed, s.State())
		})
	}
}

func TestSession_ForbiddenOwnerJoin(t *testing.T) {
	tr := newFakeTransport()
	s := newTestSession(tr, models.RoleOwner)

	errCh := make(chan error, 1)
	go func() { errCh <- s.Connect(context.Background()) }()

	conn := tr.next(t)
	conn.expect(t, api.MsgJoin)
	conn.in <- &api.RoomMessage{Type: api.MsgError, Code: api.CodeForbidden}

	var authErr *AuthorityError
	assert.ErrorAs(t, <-errCh, &authErr)
}

func TestSession_DialUnauthorized(t *testing.T) {
	tr := &TransportMock{
		DialFunc: func(ctx context.Context, roomID string) (Conn, error) {
			return nil, ErrUnauthorized
		},
	}
	s := newTestSession(tr, models.RoleOwner)

	assert.ErrorIs(t, s.Connect(context.Background()), ErrUnauthorized)
	assert.ErrorIs(t, s.Err(), ErrUnauthorized)
	require.Len(t, tr.DialCalls(), 1)
	assert.Equal(t, "lecture", tr.DialCalls()[0].RoomID)
}

func TestSession_ReconnectReplacesState(t *testing.T) {
	tr := newFakeTransport()
	s := newTestSession(tr, models.RoleObserver)
	conn := connect(t, s, tr, &api.RoomMessage{
		ConnectionID: "c1",
		Snapshot:     testSnapshot("e1", 7, 7),
		Peers:        []models.Presence{{ConnectionID: "c-old"}},
	})

	var mu sync.Mutex
	var states []State
	s.Track(s.States().Subscribe(func(st State) {
		mu.Lock()
		defer mu.Unlock()
		states = append(states, st)
	}))

	// обрыв соединения со стороны сервера
	_ = conn.Close()

	conn2 := tr.next(t)
	join := conn2.expect(t, api.MsgJoin)
	assert.Equal(t, "u-observer", join.Presence.UserID)
	conn2.in <- &api.RoomMessage{
		Type:         api.MsgWelcome,
		ConnectionID: "c2",
		Snapshot:     testSnapshot("e1", 2, 2),
		Peers:        []models.Presence{{ConnectionID: "c-fresh"}},
	}

	require.Eventually(t, func() bool { return s.State() == StateConnected && s.ConnectionID() == "c2" },
		2*time.Second, 5*time.Millisecond)

	// состояние с сервера заменяет локальное целиком
	assert.Equal(t, uint64(2), s.Snapshot().Seq)
	peers := s.Presence().Get()
	assert.Len(t, peers, 2)
	assert.Contains(t, peers, "c-fresh")
	assert.Contains(t, peers, "c2")

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []State{StateConnected, StateReconnecting, StateConnected}, states)
}

func TestSession_ReconnectStopsOnTerminalError(t *testing.T) {
	tr := newFakeTransport()
	s := newTestSession(tr, models.RoleObserver)
	conn := connect(t, s, tr, &api.RoomMessage{ConnectionID: "c1", Snapshot: testSnapshot("e1", 1, 1)})

	_ = conn.Close()
	conn2 := tr.next(t)
	conn2.expect(t, api.MsgJoin)
	conn2.in <- &api.RoomMessage{Type: api.MsgError, Code: api.CodeRoomNotFound}

	select {
	case <-s.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("session did not close")
	}
	assert.ErrorIs(t, s.Err(), ErrRoomNotFound)
}

func TestSession_SessionEndedByOwner(t *testing.T) {
	tr := newFakeTransport()
	s := newTestSession(tr, models.RoleObserver)
	conn := connect(t, s, tr, &api.RoomMessage{ConnectionID: "c1", Snapshot: testSnapshot("e1", 1, 1)})

	disposed := make(chan struct{})
	s.Track(func() { close(disposed) })

	conn.in <- &api.RoomMessage{Type: api.MsgSessionEnded}

	select {
	case <-s.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("session did not close")
	}
	<-disposed
	assert.ErrorIs(t, s.Err(), ErrSessionEnded)
	assert.Equal(t, StateClosed, s.State())
	assert.True(t, conn.isClosed())
	assert.ErrorIs(t, s.Broadcast(models.EventHandRaise, nil), ErrSessionClosed)
}

func TestSession_OwnerEnd(t *testing.T) {
	tr := newFakeTransport()
	s := newTestSession(tr, models.RoleOwner)
	conn := connect(t, s, tr, &api.RoomMessage{ConnectionID: "c1", Snapshot: testSnapshot("e1", 1, 1)})

	go func() {
		conn.expect(t, api.MsgEnd)
		conn.in <- &api.RoomMessage{Type: api.MsgSessionEnded}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.End(ctx))
	assert.Equal(t, StateClosed, s.State())
}

func TestSession_ServerErrorKeepsSession(t *testing.T) {
	tr := newFakeTransport()
	s := newTestSession(tr, models.RoleOwner)
	conn := connect(t, s, tr, &api.RoomMessage{ConnectionID: "c1", Snapshot: testSnapshot("e1", 1, 1)})

	conn.in <- &api.RoomMessage{Type: api.MsgError, Code: api.CodeForbidden, Message: "only the owner may write"}
	conn.in <- &api.RoomMessage{Type: api.MsgStorage, Snapshot: testSnapshot("e1", 2, 2)}

	require.Eventually(t, func() bool { return s.Snapshot().Seq == 2 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, StateConnected, s.State())
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, isTerminal(ErrUnauthorized))
	assert.True(t, isTerminal(ErrRoomNotFound))
	assert.True(t, isTerminal(&AuthorityError{Role: models.RoleOwner, Op: "join"}))
	assert.False(t, isTerminal(ErrHandshakeTimeout))
	assert.False(t, isTerminal(errors.New("connection reset")))
}

func pollSnapshot() *models.Snapshot {
	snap := testSnapshot("e1", 1, 0)
	snap.Document.Polls = []models.Poll{{
		ID:       "p1",
		Question: "Ready?",
		IsActive: true,
		Options:  []models.PollOption{{Text: "yes", Votes: []string{}}, {Text: "no", Votes: []string{}}},
	}}
	return snap
}

func TestSession_OwnerFoldsObserverVotes(t *testing.T) {
	tr := newFakeTransport()
	s := newTestSession(tr, models.RoleOwner)
	conn := connect(t, s, tr, &api.RoomMessage{ConnectionID: "c1", Snapshot: pollSnapshot()})

	payload, err := json.Marshal(models.PollVote{PollID: "p1", UserID: "student-1", OptionIndex: 1})
	require.NoError(t, err)
	conn.in <- &api.RoomMessage{Type: api.MsgEvent, Event: &models.RoomEvent{Type: models.EventPollVote, From: "c2", Payload: payload}}

	msg := conn.expect(t, api.MsgStorageSet)
	assert.Equal(t, []string{"student-1"}, msg.Document.Polls[0].Options[1].Votes)

	// повторный голос ничего не меняет и не отправляется
	conn.in <- &api.RoomMessage{Type: api.MsgEvent, Event: &models.RoomEvent{Type: models.EventPollVote, From: "c2", Payload: payload}}
	conn.expectNothing(t)
}

func TestSession_ObserverVoteIsBroadcast(t *testing.T) {
	tr := newFakeTransport()
	s := newTestSession(tr, models.RoleObserver)
	conn := connect(t, s, tr, &api.RoomMessage{ConnectionID: "c2", Snapshot: pollSnapshot()})

	require.NoError(t, s.Vote("p1", 0))
	msg := conn.expect(t, api.MsgEvent)
	assert.Equal(t, models.EventPollVote, msg.Event.Type)

	var vote models.PollVote
	require.NoError(t, json.Unmarshal(msg.Event.Payload, &vote))
	assert.Equal(t, models.PollVote{PollID: "p1", UserID: "u-observer", OptionIndex: 0}, vote)

	assert.ErrorIs(t, s.Vote("missing", 0), ErrPollNotFound)
	assert.ErrorIs(t, s.Vote("p1", 5), ErrPollNotFound)
}

func TestSession_OwnerPollLifecycle(t *testing.T) {
	tr := newFakeTransport()
	s := newTestSession(tr, models.RoleOwner)
	conn := connect(t, s, tr, &api.RoomMessage{ConnectionID: "c1", Snapshot: testSnapshot("e1", 1, 0)})

	poll, err := s.CreatePoll("Which chapter?", []string{"one", "two"})
	require.NoError(t, err)
	assert.True(t, poll.IsActive)
	assert.Equal(t, "u-owner", poll.CreatedBy)

	set := conn.expect(t, api.MsgStorageSet)
	require.Len(t, set.Document.Polls, 1)
	created := conn.expect(t, api.MsgEvent)
	assert.Equal(t, models.EventPollCreated, created.Event.Type)

	require.NoError(t, s.Vote(poll.ID, 1))
	voted := conn.expect(t, api.MsgStorageSet)
	assert.Equal(t, []string{"u-owner"}, voted.Document.Polls[0].Options[1].Votes)

	require.NoError(t, s.ClosePoll(poll.ID))
	closed := conn.expect(t, api.MsgStorageSet)
	assert.False(t, closed.Document.Polls[0].IsActive)
	ended := conn.expect(t, api.MsgEvent)
	assert.Equal(t, models.EventPollEnded, ended.Event.Type)

	assert.ErrorIs(t, s.ClosePoll(poll.ID), ErrPollNotFound)
	_, err = s.CreatePoll("", nil)
	assert.Error(t, err)
}

func TestApplyVote(t *testing.T) {
	newDoc := func() models.SharedDocument {
		return pollSnapshot().Document
	}

	tests := []struct {
		name    string
		vote    models.PollVote
		prepare func(doc *models.SharedDocument)
		want    [][]string
		changed bool
	}{
		{
			name:    "first vote",
			vote:    models.PollVote{PollID: "p1", UserID: "u1", OptionIndex: 0},
			want:    [][]string{{"u1"}, {}},
			changed: true,
		},
		{
			name: "vote moves",
			vote: models.PollVote{PollID: "p1", UserID: "u1", OptionIndex: 1},
			prepare: func(doc *models.SharedDocument) {
				doc.Polls[0].Options[0].Votes = []string{"u1", "u2"}
			},
			want:    [][]string{{"u2"}, {"u1"}},
			changed: true,
		},
		{
			name: "same vote twice",
			vote: models.PollVote{PollID: "p1", UserID: "u1", OptionIndex: 0},
			prepare: func(doc *models.SharedDocument) {
				doc.Polls[0].Options[0].Votes = []string{"u1"}
			},
			want: [][]string{{"u1"}, {}},
		},
		{
			name: "closed poll",
			vote: models.PollVote{PollID: "p1", UserID: "u1", OptionIndex: 0},
			prepare: func(doc *models.SharedDocument) {
				doc.Polls[0].IsActive = false
			},
			want: [][]string{{}, {}},
		},
		{
			name: "option out of range",
			vote: models.PollVote{PollID: "p1", UserID: "u1", OptionIndex: 2},
			want: [][]string{{}, {}},
		},
		{
			name: "anonymous",
			vote: models.PollVote{PollID: "p1", OptionIndex: 0},
			want: [][]string{{}, {}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := newDoc()
			if tt.prepare != nil {
				tt.prepare(&doc)
			}
			assert.Equal(t, tt.changed, ApplyVote(&doc, tt.vote))
			for i, want := range tt.want {
				assert.ElementsMatch(t, want, doc.Polls[0].Options[i].Votes)
			}
		})
	}
}
