// Package connectivity tracks whether the remote is reachable.
package connectivity

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/iudanet/notesync/internal/client/api"
	"github.com/iudanet/notesync/internal/client/stream"
	apiv1 "github.com/iudanet/notesync/pkg/api"
)

// Monitor is the online/offline signal shared by the queue and the engine.
type Monitor struct {
	online *stream.Subject[bool]
}

// NewMonitor creates a monitor with the given initial state.
func NewMonitor(online bool) *Monitor {
	return &Monitor{online: stream.NewDistinctSubject(online)}
}

// Online reports the last known state.
func (m *Monitor) Online() bool {
	return m.online.Get()
}

// Set records a new state. Subscribers are notified only on change.
func (m *Monitor) Set(online bool) {
	m.online.Publish(online)
}

// Subscribe calls fn with the current state and on every change.
func (m *Monitor) Subscribe(fn func(online bool)) (dispose func()) {
	return m.online.Subscribe(fn)
}

// Pinger checks server health.
type Pinger interface {
	Health(ctx context.Context) (*apiv1.HealthResponse, error)
}

// Prober periodically pings the server and feeds the monitor.
type Prober struct {
	pinger   Pinger
	monitor  *Monitor
	logger   *slog.Logger
	interval time.Duration
}

// NewProber creates a prober. interval defaults to 10s.
func NewProber(pinger Pinger, monitor *Monitor, interval time.Duration, logger *slog.Logger) *Prober {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &Prober{pinger: pinger, monitor: monitor, interval: interval, logger: logger}
}

// Check pings once and updates the monitor.
// Only ErrOffline marks the monitor offline: a server answering with an
// error status is still reachable.
func (p *Prober) Check(ctx context.Context) bool {
	_, err := p.pinger.Health(ctx)
	switch {
	case err == nil:
		p.monitor.Set(true)
	case errors.Is(err, api.ErrOffline):
		if p.monitor.Online() {
			p.logger.Warn("server unreachable", "error", err)
		}
		p.monitor.Set(false)
	case ctx.Err() != nil:
		return p.monitor.Online()
	default:
		p.logger.Debug("health check returned error", "error", err)
		p.monitor.Set(true)
	}
	return p.monitor.Online()
}

// Run pings until ctx is done.
func (p *Prober) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Check(ctx)
		}
	}
}
