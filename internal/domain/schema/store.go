package schema

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Snapshot is one loaded registry generation.
type Snapshot struct {
	ID       uuid.UUID
	Source   string
	LoadedAt time.Time
	Registry *Registry
}

// Store publishes the current registry. Readers take a snapshot and use it
// for the whole of one operation; Swap replaces the registry atomically.
type Store struct {
	current atomic.Pointer[Snapshot]
}

// NewStore creates a store holding reg.
func NewStore(reg *Registry, source string) *Store {
	s := &Store{}
	s.Swap(reg, source)
	return s
}

// Current returns the current snapshot, or nil if nothing was loaded.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Swap publishes reg and returns its snapshot.
func (s *Store) Swap(reg *Registry, source string) *Snapshot {
	snap := &Snapshot{
		ID:       uuid.New(),
		Source:   source,
		LoadedAt: time.Now(),
		Registry: reg,
	}
	s.current.Store(snap)
	return snap
}
