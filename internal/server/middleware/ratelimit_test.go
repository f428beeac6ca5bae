package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/notesync/internal/server/handlers"
)

// manualClock управляет временем лимитера в тестах
type manualClock struct {
	t time.Time
}

func (c *manualClock) now() time.Time { return c.t }

func newTestLimiter(t *testing.T, rate int, window time.Duration) (*RateLimiter, *manualClock) {
	t.Helper()
	clock := &manualClock{t: time.Unix(1_700_000_000, 0)}
	rl := NewRateLimiter(rate, window, setupTestLogger())
	rl.now = clock.now
	t.Cleanup(rl.Stop)
	return rl, clock
}

func TestRateLimiter_Allow(t *testing.T) {
	rl, clock := newTestLimiter(t, 3, time.Minute)

	for i := 0; i < 3; i++ {
		ok, _ := rl.Allow("k")
		assert.True(t, ok, "request %d should pass", i+1)
	}

	ok, retry := rl.Allow("k")
	assert.False(t, ok)
	assert.Equal(t, time.Minute, retry)

	// Другие ключи независимы
	ok, _ = rl.Allow("other")
	assert.True(t, ok)

	clock.t = clock.t.Add(20 * time.Second)
	_, retry = rl.Allow("k")
	assert.Equal(t, 40*time.Second, retry)

	// Новое окно
	clock.t = clock.t.Add(40 * time.Second)
	ok, _ = rl.Allow("k")
	assert.True(t, ok)
}

func TestRateLimiter_CleanupOldBuckets(t *testing.T) {
	rl, clock := newTestLimiter(t, 1, time.Minute)
	rl.Allow("old")
	clock.t = clock.t.Add(90 * time.Second)
	rl.Allow("fresh")

	clock.t = clock.t.Add(40 * time.Second)
	rl.cleanupOldBuckets()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.buckets, "old")
	assert.Contains(t, rl.buckets, "fresh")
}

func TestRateLimiter_StopTwice(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute, setupTestLogger())
	rl.Stop()
	assert.NotPanics(t, rl.Stop)
}

func TestRateLimiter_Middleware(t *testing.T) {
	rl, _ := newTestLimiter(t, 1, time.Minute)
	handler := rl.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	serve := func(r *http.Request) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		return w
	}

	anon := httptest.NewRequest(http.MethodGet, "/api/v1/entities/note", nil)
	anon.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, http.StatusOK, serve(anon).Code)

	w := serve(anon)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "rate limit exceeded")

	// Аутентифицированный пользователь с того же адреса считается отдельно
	authed := anon.WithContext(handlers.WithUser(anon.Context(), "u1", "Ada"))
	assert.Equal(t, http.StatusOK, serve(authed).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(authed).Code)
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		headers    map[string]string
		name       string
		remoteAddr string
		want       string
	}{
		{name: "remote addr", remoteAddr: "192.168.1.1:12345", want: "192.168.1.1"},
		{name: "remote addr without port", remoteAddr: "192.168.1.1", want: "192.168.1.1"},
		{name: "x-forwarded-for", remoteAddr: "10.0.0.1:1", headers: map[string]string{"X-Forwarded-For": "203.0.113.1, 10.0.0.1"}, want: "203.0.113.1"},
		{name: "x-real-ip", remoteAddr: "10.0.0.1:1", headers: map[string]string{"X-Real-IP": "203.0.113.9"}, want: "203.0.113.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, getClientIP(req))
		})
	}
}
