// Package scheduler owns the set of live delayed-execution handles, one
// cancellable timer per reminder id. It knows nothing about reminder
// records; the fire callback is where the domain picks back up.
package scheduler

import (
	"log/slog"
	"sync"
	"time"
)

// FireFunc is invoked at most once when a scheduled timer expires.
type FireFunc func(id string)

// Scheduler maps ids to pending timers. All methods are safe for
// concurrent use.
type Scheduler struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
	fire   FireFunc
	now    func() time.Time
	logger *slog.Logger
}

// New creates a scheduler firing into the given callback. A nil now
// function defaults to time.Now.
func New(fire FireFunc, now func() time.Time, logger *slog.Logger) *Scheduler {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		timers: make(map[string]*time.Timer),
		fire:   fire,
		now:    now,
		logger: logger.With("component", "scheduler"),
	}
}

// Schedule arms a timer that fires at dueAt. A due time that is not in
// the future is logged and ignored; callers are expected to have
// checked. An existing timer for the same id is replaced.
func (s *Scheduler) Schedule(id string, dueAt time.Time) {
	delay := dueAt.Sub(s.now())
	if delay <= 0 {
		s.logger.Warn("due time already passed, not scheduling", "id", id, "due_at", dueAt)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.timers[id]; ok {
		old.Stop()
		delete(s.timers, id)
	}

	var t *time.Timer
	t = time.AfterFunc(delay, func() {
		// A cancel that won the race removed or replaced the map
		// entry; in that case this expiry must not fire.
		s.mu.Lock()
		cur, ok := s.timers[id]
		if !ok || cur != t {
			s.mu.Unlock()
			return
		}
		delete(s.timers, id)
		s.mu.Unlock()

		s.fire(id)
	})
	s.timers[id] = t
}

// Cancel stops and removes the live timer for id, if any. Cancelling an
// unknown id is a no-op.
func (s *Scheduler) Cancel(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}
}

// Reschedule is Cancel followed by Schedule.
func (s *Scheduler) Reschedule(id string, dueAt time.Time) {
	s.Cancel(id)
	s.Schedule(id, dueAt)
}

// CancelAll stops every live timer. Used at teardown.
func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}

// Pending reports whether a live timer exists for id.
func (s *Scheduler) Pending(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.timers[id]
	return ok
}

// Len reports the number of live timers.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}
