package vizstore

import (
	"context"
	"sync"
	"time"

	"github.com/yanqian/lung-visualizer/internal/domain/lungviz"
	"github.com/yanqian/lung-visualizer/pkg/util"
)

type entry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStore keeps rendered illustrations in process memory.
type MemoryStore struct {
	mu         sync.RWMutex
	entries    map[string]entry
	maxEntries int
	now        util.Clock
}

// NewMemoryStore constructs a store holding at most maxEntries images;
// zero or less means unbounded.
func NewMemoryStore(maxEntries int) *MemoryStore {
	return &MemoryStore{
		entries:    make(map[string]entry),
		maxEntries: maxEntries,
		now:        util.NowUTC,
	}
}

// Get implements lungviz.Store.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	record, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if s.expired(record.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, false, nil
	}
	out := make([]byte, len(record.data))
	copy(out, record.data)
	return out, true, nil
}

// Put implements lungviz.Store.
func (s *MemoryStore) Put(_ context.Context, key string, data []byte, ttl time.Duration) error {
	exp := time.Time{}
	if ttl > 0 {
		exp = s.now().Add(ttl)
	}
	buf := make([]byte, len(data))
	copy(buf, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.entries[key]; !exists && s.maxEntries > 0 && len(s.entries) >= s.maxEntries {
		s.evictLocked()
	}
	s.entries[key] = entry{data: buf, expiresAt: exp}
	return nil
}

// Len reports the number of cached images, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// evictLocked drops expired entries, or the entry closest to expiry when
// nothing has expired yet.
func (s *MemoryStore) evictLocked() {
	var (
		victim string
		soon   time.Time
	)
	for key, record := range s.entries {
		if s.expired(record.expiresAt) {
			delete(s.entries, key)
			continue
		}
		if victim == "" || (!record.expiresAt.IsZero() && (soon.IsZero() || record.expiresAt.Before(soon))) {
			victim = key
			soon = record.expiresAt
		}
	}
	if len(s.entries) >= s.maxEntries && victim != "" {
		delete(s.entries, victim)
	}
}

func (s *MemoryStore) expired(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return ts.Before(s.now())
}

var _ lungviz.Store = (*MemoryStore)(nil)
