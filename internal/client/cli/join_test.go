package cli

import (
	"context"
	"log/slog"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/notesync/internal/client/collab"
	"github.com/iudanet/notesync/internal/models"
	"github.com/iudanet/notesync/internal/server"
	"github.com/iudanet/notesync/internal/server/handlers"
	"github.com/iudanet/notesync/internal/server/room"
	"github.com/iudanet/notesync/internal/server/storage/sqlite"
)

// relayEngine подключает сессии к настоящему relay-серверу
func relayEngine(t *testing.T) *EngineMock {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	s, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	hub := room.NewHub(room.NewMemoryStore(), logger)
	jwtCfg := handlers.JWTConfig{Secret: []byte("cli-secret"), AccessTokenTTL: time.Hour}
	srv := httptest.NewServer(server.NewRouter(server.Deps{Logger: logger, Storage: s, Hub: hub, JWT: jwtCfg}))
	t.Cleanup(func() {
		hub.Shutdown()
		srv.Close()
		_ = s.Close()
	})

	token, _, err := handlers.GenerateAccessToken(jwtCfg, "educator", "Educator")
	require.NoError(t, err)

	return &EngineMock{
		JoinRoomFunc: func(ctx context.Context, roomID string, role models.Role, presence models.Presence) (*collab.Session, error) {
			presence.UserID = "educator"
			session := collab.NewSession(collab.NewWSTransport(srv.URL, token, logger), collab.Options{
				RoomID:   roomID,
				Role:     role,
				Presence: presence,
			}, logger)
			if err := session.Connect(ctx); err != nil {
				return nil, err
			}
			return session, nil
		},
	}
}

func TestCli_JoinAsOwner(t *testing.T) {
	engine := relayEngine(t)
	io, out := newTestIO(false)
	c := newTestCli(io, nil, engine, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	err := c.Run(ctx, "join", []string{"lecture-1", "--role", "owner", "--file", "slides.pdf", "--page", "3", "--end"})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Joined lecture-1 as owner")
	assert.Contains(t, text, "peers online: 1")
	assert.Contains(t, text, "showing slides.pdf page 3")
	assert.Contains(t, text, "Session ended for everyone")

	call := engine.JoinRoomCalls()[0]
	assert.Equal(t, models.RoleOwner, call.Role)
	assert.Equal(t, "#4f46e5", call.Presence.Color)
}

func TestCli_JoinOwnerRaisesHandAndAsks(t *testing.T) {
	engine := relayEngine(t)
	io, out := newTestIO(false)
	c := newTestCli(io, nil, engine, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	err := c.Run(ctx, "join", []string{"lecture-3", "--role", "owner", "--hand", "--ask", "Any questions so far?"})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "hands raised: 1")
	assert.Contains(t, text, "questions: 1")
	assert.Contains(t, text, "Left lecture-3.")
}

func TestCli_JoinObserverWithoutRoom(t *testing.T) {
	engine := relayEngine(t)
	io, _ := newTestIO(false)
	c := newTestCli(io, nil, engine, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := c.Run(ctx, "join", []string{"lecture-2"})
	assert.ErrorContains(t, err, "not open")
}

func TestCli_JoinValidation(t *testing.T) {
	io, _ := newTestIO(false)
	c := newTestCli(io, nil, &EngineMock{}, nil)

	assert.Error(t, c.Run(context.Background(), "join", nil))
	assert.ErrorContains(t, c.Run(context.Background(), "join", []string{"r", "--role", "admin"}), "unknown role")
}
