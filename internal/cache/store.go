package cache

import (
	"sync"
	"time"

	"github.com/jonathan/company-profiler/internal/types"
)

// DefaultTTL is how long a completed research result stays servable.
const DefaultTTL = 24 * time.Hour

// Entry holds one completed research result plus enough raw state for a
// later "scan more" run to continue where this one stopped.
type Entry struct {
	Profile             *types.CompanyProfile
	RawContent          string
	RemainingCandidates []string
	CreatedAt           time.Time
}

// Store is a TTL-bounded in-memory result cache keyed by normalized URL.
// Reads and writes are safe under concurrent runs for different keys; runs
// for the same key are last-write-wins. The store is created once at process
// start and injected into the orchestrator.
type Store struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]*Entry
	now     func() time.Time
}

// NewStore creates a Store with the given TTL. A zero ttl uses DefaultTTL.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		ttl:     ttl,
		entries: make(map[string]*Entry),
		now:     time.Now,
	}
}

// Get returns the live entry for key, or nil when absent or expired.
// Expired entries are evicted lazily on access.
func (s *Store) Get(key string) *Entry {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil
	}

	if s.now().Sub(entry.CreatedAt) > s.ttl {
		s.mu.Lock()
		// Re-check under the write lock; a fresh entry may have landed.
		if current, ok := s.entries[key]; ok && s.now().Sub(current.CreatedAt) > s.ttl {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil
	}

	return entry
}

// Put stores entry under key, replacing any previous entry.
func (s *Store) Put(key string, entry *Entry) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now()
	}
	s.mu.Lock()
	s.entries[key] = entry
	s.mu.Unlock()
}

// Clear drops every entry and returns how many were removed.
func (s *Store) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := len(s.entries)
	s.entries = make(map[string]*Entry)
	return count
}
