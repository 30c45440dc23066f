package reminder

import (
	"encoding/json"
	"log/slog"
	"os"
	"sync"
	"time"
)

// Store keeps the full id→record mapping in memory and mirrors it to a
// single JSON file. The in-memory map is the authority for the lifetime
// of the process: a failed save is logged and the previous file content
// is left untouched, but the map keeps serving.
type Store struct {
	mu      sync.RWMutex
	path    string
	records map[string]Record
	logger  *slog.Logger
}

// NewStore creates a store backed by the JSON file at path. Call Load
// before first use to pick up existing records.
func NewStore(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		path:    path,
		records: make(map[string]Record),
		logger:  logger.With("component", "store"),
	}
}

// Load replaces the in-memory state with the persisted file. A missing
// file is a fresh start; a malformed file is logged and reset to an
// empty store. Load never fails the caller.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make(map[string]Record)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Error("failed to read data file", "path", s.path, "error", err)
		}
		return
	}

	if err := json.Unmarshal(data, &s.records); err != nil {
		s.logger.Error("failed to parse data file, starting empty", "path", s.path, "error", err)
		s.records = make(map[string]Record)
	}
}

// save writes the whole store to disk via a temp file and rename, so a
// failed write never clobbers the previous file. Callers hold s.mu.
func (s *Store) save() {
	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		s.logger.Error("failed to encode reminders", "error", err)
		return
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		s.logger.Error("failed to write data file", "path", tmp, "error", err)
		return
	}
	if err := os.Rename(tmp, s.path); err != nil {
		s.logger.Error("failed to replace data file", "path", s.path, "error", err)
	}
}

// Save forces a write of the current state.
func (s *Store) Save() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.save()
}

// Get returns the record with the given id.
func (s *Store) Get(id string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	return rec, ok
}

// Put inserts or fully replaces a record and writes through to disk.
func (s *Store) Put(id string, rec Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[id] = rec
	s.save()
}

// UpdateFields holds the optional fields of a partial update.
type UpdateFields struct {
	Content *string
	DueAt   *time.Time
	Active  *bool
}

// Patch merge-updates an existing record and writes through. It is a
// no-op returning false when the id is unknown.
func (s *Store) Patch(id string, fields UpdateFields) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return false
	}
	if fields.Content != nil {
		rec.Content = *fields.Content
	}
	if fields.DueAt != nil {
		rec.DueAt = *fields.DueAt
	}
	if fields.Active != nil {
		rec.Active = *fields.Active
	}
	s.records[id] = rec
	s.save()
	return true
}

// Delete removes a record and writes through. Unknown ids are ignored.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return
	}
	delete(s.records, id)
	s.save()
}

// ListByOwner returns a copy of every record whose owner matches.
func (s *Store) ListByOwner(owner string) map[string]Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]Record)
	for id, rec := range s.records {
		if rec.Owner == owner {
			out[id] = rec
		}
	}
	return out
}

// All returns a copy of the whole mapping.
func (s *Store) All() map[string]Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]Record, len(s.records))
	for id, rec := range s.records {
		out[id] = rec
	}
	return out
}

// Len reports the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
