package reminder

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/lithammer/shortuuid/v4"

	"github.com/notexe/remind-bot/internal/scheduler"
)

// Resolver turns a natural-language time phrase plus "now" into an
// absolute future timestamp.
type Resolver func(phrase string, now time.Time) (time.Time, error)

// Service coordinates the store and the scheduler so the persisted
// record and the live timer for a reminder never diverge: every public
// mutation updates both under the service lock. Nothing else touches
// either collection.
type Service struct {
	mu      sync.Mutex
	store   *Store
	sched   *scheduler.Scheduler
	resolve Resolver
	deliver Deliverer
	now     func() time.Time
	logger  *slog.Logger
}

// Option tweaks service construction.
type Option func(*Service)

// WithNow overrides the service clock. Tests use this to pin "now".
func WithNow(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService wires a store, a phrase resolver and a delivery transport
// into a reminder service with its own task scheduler.
func NewService(store *Store, resolve Resolver, deliver Deliverer, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		store:   store,
		resolve: resolve,
		deliver: deliver,
		now:     time.Now,
		logger:  logger.With("component", "reminder"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.sched = scheduler.New(s.fire, s.now, logger)
	return s
}

// Create resolves the phrase, persists a new record and arms its timer.
// A leading 每天/每周/每月 in the phrase sets the recurrence when none
// was passed explicitly, matching how people type "每天晚上8点".
func (s *Service) Create(owner, target string, kind TargetKind, content, phrase string, rec Recurrence) (Record, error) {
	phrase = strings.TrimSpace(phrase)
	if rec == "" {
		rec = RepeatNone
	}
	if rec == RepeatNone {
		for _, candidate := range []Recurrence{RepeatDaily, RepeatWeekly, RepeatMonthly} {
			if strings.Contains(phrase, string(candidate)) {
				rec = candidate
				phrase = strings.TrimSpace(strings.ReplaceAll(phrase, string(candidate), ""))
				break
			}
		}
	}

	now := s.now()
	dueAt, err := s.resolve(phrase, now)
	if err != nil {
		return Record{}, fmt.Errorf("%q: %w", phrase, ErrTimeUnresolvable)
	}
	if !dueAt.After(now) {
		return Record{}, ErrTimeInPast
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record := Record{
		ID:         s.newID(owner, now),
		Owner:      owner,
		Target:     target,
		TargetKind: kind,
		Content:    content,
		DueAt:      dueAt,
		Recurrence: rec,
		Active:     true,
		CreatedAt:  now,
	}
	s.store.Put(record.ID, record)
	s.sched.Schedule(record.ID, dueAt)

	s.logger.Info("reminder created", "id", record.ID, "owner", owner, "due_at", dueAt, "repeat", rec)
	return record, nil
}

// newID builds `<owner>_<epoch-seconds>`; two creates in the same second
// for the same owner get a short random suffix instead of colliding.
func (s *Service) newID(owner string, now time.Time) string {
	id := fmt.Sprintf("%s_%d", owner, now.Unix())
	if _, exists := s.store.Get(id); exists {
		id = fmt.Sprintf("%s_%s", id, shortuuid.New()[:4])
	}
	return id
}

// List returns the owner's reminders ordered by due time, then id.
func (s *Service) List(owner string) []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	byID := s.store.ListByOwner(owner)
	out := make([]Record, 0, len(byID))
	for _, rec := range byID {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DueAt.Equal(out[j].DueAt) {
			return out[i].DueAt.Before(out[j].DueAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Delete cancels the live timer and removes the record. Only the owner
// may delete. The removed record is returned for confirmation text.
func (s *Service) Delete(id, requester string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.store.Get(id)
	if !ok {
		return Record{}, ErrNotFound
	}
	if rec.Owner != requester {
		return Record{}, ErrForbidden
	}

	s.sched.Cancel(id)
	s.store.Delete(id)
	s.logger.Info("reminder deleted", "id", id, "owner", requester)
	return rec, nil
}

// SetActive pauses (false) or resumes (true) a reminder. Resuming a
// reminder whose due time already passed succeeds but leaves it
// unscheduled; nothing fires retroactively.
func (s *Service) SetActive(id, requester string, active bool) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.store.Get(id)
	if !ok {
		return Record{}, ErrNotFound
	}
	if rec.Owner != requester {
		return Record{}, ErrForbidden
	}

	s.store.Patch(id, UpdateFields{Active: &active})
	rec.Active = active

	if active {
		if rec.DueAt.After(s.now()) {
			s.sched.Schedule(id, rec.DueAt)
		} else {
			s.logger.Warn("resumed reminder is already past due, leaving unscheduled", "id", id, "due_at", rec.DueAt)
		}
	} else {
		s.sched.Cancel(id)
	}
	return rec, nil
}

// Restore re-arms timers for every active, still-future record. Expired
// but active records are logged and skipped, never fired after the
// fact. Call once at startup, before any concurrent mutators exist.
func (s *Service) Restore() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	restored := 0
	for id, rec := range s.store.All() {
		if !rec.Active {
			continue
		}
		if rec.DueAt.After(s.now()) {
			s.sched.Schedule(id, rec.DueAt)
			restored++
		} else {
			s.logger.Info("skipping expired reminder", "id", id, "content", rec.Content, "due_at", rec.DueAt)
		}
	}
	s.logger.Info("restore complete", "restored", restored)
	return restored
}

// Close cancels every live timer. Records stay persisted.
func (s *Service) Close() {
	s.sched.CancelAll()
}

// fire runs when a timer expires. Delivery happens outside the service
// lock so a hung transport stalls only this one reminder.
func (s *Service) fire(id string) {
	s.mu.Lock()
	rec, ok := s.store.Get(id)
	s.mu.Unlock()
	if !ok {
		// Deleted while the timer was pending.
		return
	}

	text := DeliveryText(rec.Content, rec.DueAt)
	if err := s.deliver.Deliver(rec.Target, rec.TargetKind, text); err != nil {
		s.logger.Error("delivery failed", "id", id, "target", rec.Target, "error", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Re-read: the reminder may have been deleted or paused while the
	// delivery was in flight.
	cur, ok := s.store.Get(id)
	if !ok {
		return
	}

	if cur.Recurrence == RepeatNone {
		s.store.Delete(id)
		return
	}

	next, ok := NextOccurrence(cur.DueAt, cur.Recurrence)
	if !ok {
		s.logger.Warn("unknown recurrence, not rescheduling", "id", id, "repeat", cur.Recurrence)
		return
	}
	s.store.Patch(id, UpdateFields{DueAt: &next})
	if cur.Active {
		s.sched.Schedule(id, next)
	}
	s.logger.Info("recurring reminder advanced", "id", id, "next", next)
}
