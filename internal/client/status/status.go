// Package status folds the queue and room sessions into one sync status.
package status

import (
	"errors"
	"fmt"
	"sync"

	"github.com/iudanet/notesync/internal/client/collab"
	"github.com/iudanet/notesync/internal/client/queue"
	"github.com/iudanet/notesync/internal/client/stream"
)

// Level is the overall sync state, ordered by priority.
type Level string

const (
	LevelSuccess Level = "success"
	LevelPending Level = "pending"
	LevelSyncing Level = "syncing"
	LevelError   Level = "error"
)

// Status is what the UI shows about synchronization.
type Status struct {
	Level           Level
	Message         string
	Pending         int
	InFlight        int
	Failed          int
	Conflicts       int
	ConnectingRooms int   // ConnectingRooms комнаты в состоянии connecting/reconnecting
	LastSyncAt      int64 // LastSyncAt epoch ms последнего цикла отправки
}

// QueueSource publishes queue summaries.
type QueueSource interface {
	Subscribe(fn func(queue.Stats)) (dispose func())
}

// SessionSource is the part of a room session the aggregator watches.
type SessionSource interface {
	States() stream.Observable[collab.State]
	Err() error
}

// Aggregator computes Status from its inputs.
type Aggregator struct {
	out       *stream.Subject[Status]
	rooms     map[SessionSource]collab.State
	authErr   error
	disposers stream.Disposers
	queue     queue.Stats
	mu        sync.Mutex
}

// NewAggregator creates an aggregator reporting success until told otherwise.
func NewAggregator() *Aggregator {
	return &Aggregator{
		out:   stream.NewDistinctSubject(Status{Level: LevelSuccess}),
		rooms: make(map[SessionSource]collab.State),
	}
}

// Status streams the aggregated status.
func (a *Aggregator) Status() stream.Observable[Status] { return a.out }

// Current returns the latest status.
func (a *Aggregator) Current() Status { return a.out.Get() }

// WatchQueue follows queue stats until Close.
func (a *Aggregator) WatchQueue(src QueueSource) {
	a.disposers.Add(src.Subscribe(func(s queue.Stats) {
		a.mu.Lock()
		a.queue = s
		a.mu.Unlock()
		a.recompute()
	}))
}

// WatchSession follows a room until it closes. A session closed with
// collab.ErrUnauthorized is reported as an auth failure.
func (a *Aggregator) WatchSession(s SessionSource) {
	a.disposers.Add(s.States().Subscribe(func(st collab.State) {
		a.mu.Lock()
		if st == collab.StateClosed {
			delete(a.rooms, s)
			if err := s.Err(); errors.Is(err, collab.ErrUnauthorized) {
				a.authErr = err
			}
		} else {
			a.rooms[s] = st
		}
		a.mu.Unlock()
		a.recompute()
	}))
}

// ReportAuthFailure records a credential problem that stays visible
// until Acknowledge.
func (a *Aggregator) ReportAuthFailure(err error) {
	if err == nil {
		return
	}
	a.mu.Lock()
	a.authErr = err
	a.mu.Unlock()
	a.recompute()
}

// Acknowledge clears a reported auth failure.
func (a *Aggregator) Acknowledge() {
	a.mu.Lock()
	a.authErr = nil
	a.mu.Unlock()
	a.recompute()
}

// Close stops watching all inputs.
func (a *Aggregator) Close() {
	a.disposers.Dispose()
	a.out.Close()
}

func (a *Aggregator) recompute() {
	a.out.Update(func(Status) Status {
		a.mu.Lock()
		defer a.mu.Unlock()
		return compute(a.queue, a.rooms, a.authErr)
	})
}

// compute applies the priority error > syncing > pending > success.
func compute(q queue.Stats, rooms map[SessionSource]collab.State, authErr error) Status {
	s := Status{
		Pending:    q.Pending,
		InFlight:   q.InFlight,
		Failed:     q.Failed,
		Conflicts:  q.Conflicts,
		LastSyncAt: q.LastDrainAt,
	}
	for _, st := range rooms {
		if st.Busy() {
			s.ConnectingRooms++
		}
	}

	switch {
	case q.Failed > 0:
		s.Level = LevelError
		s.Message = fmt.Sprintf("%d change(s) failed to sync", q.Failed)
	case authErr != nil:
		s.Level = LevelError
		s.Message = authErr.Error()
	case q.InFlight > 0 || q.Drainer == queue.DrainerSyncing || s.ConnectingRooms > 0:
		s.Level = LevelSyncing
	case q.Pending > 0:
		s.Level = LevelPending
		s.Message = q.LastError
	default:
		s.Level = LevelSuccess
	}
	return s
}
