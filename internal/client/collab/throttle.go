package collab

import (
	"log/slog"
	"sync"
	"time"

	"github.com/iudanet/notesync/pkg/api"
)

// DefaultPresenceInterval is the minimum gap between two presence writes.
const DefaultPresenceInterval = 16 * time.Millisecond

// throttle limits how often presence goes on the wire. Values arriving
// inside the interval replace each other; the last one is always sent
// when the interval expires.
type throttle struct {
	last     time.Time
	send     func(*api.RoomMessage) error
	pending  *api.RoomMessage
	timer    *time.Timer
	logger   *slog.Logger
	interval time.Duration
	mu       sync.Mutex
	stopped  bool
}

func newThrottle(interval time.Duration, send func(*api.RoomMessage) error, logger *slog.Logger) *throttle {
	return &throttle{interval: interval, send: send, logger: logger}
}

func (t *throttle) push(msg *api.RoomMessage) error {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return errConnClosed
	}

	now := time.Now()
	if t.timer == nil && now.Sub(t.last) >= t.interval {
		t.last = now
		t.mu.Unlock()
		return t.send(msg)
	}

	t.pending = msg
	if t.timer == nil {
		t.timer = time.AfterFunc(t.interval-now.Sub(t.last), t.flush)
	}
	t.mu.Unlock()
	return nil
}

func (t *throttle) flush() {
	t.mu.Lock()
	msg := t.pending
	t.pending = nil
	t.timer = nil
	t.last = time.Now()
	stopped := t.stopped
	t.mu.Unlock()

	if msg == nil || stopped {
		return
	}
	if err := t.send(msg); err != nil {
		t.logger.Debug("failed to send throttled presence", "error", err)
	}
}

// stop drops the pending value.
func (t *throttle) stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	t.pending = nil
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
