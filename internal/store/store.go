// Package store persists the candidate profile behind one asynchronous
// contract, regardless of which backend holds the data.
package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/jonathan/resume-autofill/internal/profile"
)

// ProfileKey is the fixed logical key naming the serialized profile. Both
// backends read and write under this key; the store is process-wide and not
// partitioned per user.
const ProfileKey = "applicant_profile"

// Backend is one concrete persistence strategy. Implementations are chosen at
// construction via explicit configuration, never by ambient environment
// probing. Load reports absence as (nil, false, nil); an error means the
// profile could not be read, which is a different outcome.
type Backend interface {
	Load(ctx context.Context) (*profile.Data, bool, error)
	Save(ctx context.Context, d *profile.Data) error
	Clear(ctx context.Context) error
	Name() string
}

// StorageError wraps a backend-reported failure (quota, permission,
// unavailable). It surfaces through the store's error slot, never as a
// panic or a silent no-op.
type StorageError struct {
	Backend string
	Op      string
	Cause   error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s %s: %v", e.Backend, e.Op, e.Cause)
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}

// Store exposes load/save/clear over an injected backend plus observable
// state: the current profile mirror, an initial-loading flag, and a
// last-error slot. The mirror is updated only after the backend confirms
// success. Concurrent Save/Clear calls are not queued or ordered by the
// store; the only ordering guarantee is whatever the backend observes.
type Store struct {
	backend Backend

	mu      sync.Mutex
	current *profile.Data
	loading bool
	lastErr error
	loadErr error
}

// New constructs a store and performs the single load of its lifetime. An
// absent profile is not an error: the store starts with a nil mirror. A read
// failure is recorded in the error slot; the store is still usable for
// subsequent saves.
func New(ctx context.Context, backend Backend) *Store {
	s := &Store{backend: backend, loading: true}

	d, ok, err := backend.Load(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.loadErr = &StorageError{Backend: backend.Name(), Op: "load", Cause: err}
		s.lastErr = s.loadErr
		return s
	}
	if ok {
		s.current = d
	}
	return s
}

// Backend returns the injected backend.
func (s *Store) Backend() Backend {
	return s.backend
}

// Loading reports whether the initial load is still in flight. It is true
// only until the first load completes.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Current returns the profile mirror, or nil when no profile is stored. The
// returned pointer is stable until a confirmed save or clear replaces it, so
// callers may use reference identity to detect external changes.
func (s *Store) Current() *profile.Data {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Err returns the error recorded by the most recent operation, or nil. The
// slot is cleared at the start of every operation: success and failure are
// both explicit and mutually exclusive.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// LoadErr returns the initial-load failure, or nil when the profile loaded
// cleanly or was simply absent. Unlike Err it is not displaced by later
// operations; it clears once any operation confirms the backend is readable
// or writable again. A nil mirror with a nil LoadErr means "no profile",
// never "could not read".
func (s *Store) LoadErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// Save persists d through the backend. The mirror is replaced only after the
// backend confirms the write; on failure the mirror keeps its prior value and
// the error is recorded and returned.
func (s *Store) Save(ctx context.Context, d *profile.Data) error {
	s.mu.Lock()
	s.lastErr = nil
	s.mu.Unlock()

	// The backend call runs outside the lock: the store does not serialize
	// concurrent writers.
	saved := d.Clone()
	if err := s.backend.Save(ctx, saved); err != nil {
		werr := &StorageError{Backend: s.backend.Name(), Op: "save", Cause: err}
		s.mu.Lock()
		s.lastErr = werr
		s.mu.Unlock()
		return werr
	}

	s.mu.Lock()
	s.current = saved
	s.loadErr = nil
	s.mu.Unlock()
	return nil
}

// Clear removes the stored profile. The mirror is dropped only after the
// backend confirms.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.lastErr = nil
	s.mu.Unlock()

	if err := s.backend.Clear(ctx); err != nil {
		werr := &StorageError{Backend: s.backend.Name(), Op: "clear", Cause: err}
		s.mu.Lock()
		s.lastErr = werr
		s.mu.Unlock()
		return werr
	}

	s.mu.Lock()
	s.current = nil
	s.loadErr = nil
	s.mu.Unlock()
	return nil
}
