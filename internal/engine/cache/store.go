package cache

import (
	"container/list"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Cache sizing and TTL defaults.
const (
	// DefaultTTL is the default entry lifetime.
	DefaultTTL = time.Hour

	// DefaultMaxEntries is the default entry-count bound.
	DefaultMaxEntries = 256
)

// Common cache errors.
var (
	ErrCacheNotFound   = errors.New("cache entry not found")
	ErrCacheExpired    = errors.New("cache entry expired")
	ErrInvalidCacheKey = errors.New("cache key cannot be empty")
)

// Store provides a bounded in-memory cache with TTL expiration and
// least-recently-used eviction. Thread-safe for concurrent access.
type Store struct {
	mu sync.Mutex

	maxEntries int
	ttl        time.Duration

	// order tracks recency; front is most recently used. Element values
	// are *Entry.
	order   *list.List
	entries map[string]*list.Element

	// latest maps scenario ID to the key of its most recent entry.
	latest map[string]string
}

// New creates a cache store. Non-positive maxEntries or ttl fall back
// to the package defaults.
func New(maxEntries int, ttl time.Duration) *Store {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		maxEntries: maxEntries,
		ttl:        ttl,
		order:      list.New(),
		entries:    make(map[string]*list.Element),
		latest:     make(map[string]string),
	}
}

// Put stores a result for a scenario and returns the generated key.
// Each call produces a distinct key, so earlier results for the same
// scenario stay retrievable by key until evicted; lookups by scenario
// ID resolve to this newest entry.
func (s *Store) Put(scenarioID string, data json.RawMessage) (string, error) {
	if scenarioID == "" {
		return "", ErrInvalidCacheKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	key := fmt.Sprintf("%s_%d", scenarioID, now.UnixNano())
	entry := &Entry{
		Key:        key,
		ScenarioID: scenarioID,
		Data:       data,
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.ttl),
	}

	if elem, ok := s.entries[key]; ok {
		elem.Value = entry
		s.order.MoveToFront(elem)
	} else {
		s.entries[key] = s.order.PushFront(entry)
	}
	s.latest[scenarioID] = key

	for s.order.Len() > s.maxEntries {
		s.evictOldest()
	}
	return key, nil
}

// Get retrieves a cache entry by key and marks it recently used.
// Returns ErrCacheNotFound if the entry doesn't exist and
// ErrCacheExpired if it has expired (the entry is removed).
func (s *Store) Get(key string) (*Entry, error) {
	if key == "" {
		return nil, ErrInvalidCacheKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	elem, ok := s.entries[key]
	if !ok {
		return nil, ErrCacheNotFound
	}
	entry := elem.Value.(*Entry)
	if entry.IsExpired() {
		s.remove(elem)
		return nil, ErrCacheExpired
	}
	s.order.MoveToFront(elem)
	return entry, nil
}

// Latest retrieves the most recent entry for a scenario ID.
// Returns ErrCacheNotFound when the scenario has no live entry.
func (s *Store) Latest(scenarioID string) (*Entry, error) {
	if scenarioID == "" {
		return nil, ErrInvalidCacheKey
	}

	s.mu.Lock()
	key, ok := s.latest[scenarioID]
	s.mu.Unlock()
	if !ok {
		return nil, ErrCacheNotFound
	}
	return s.Get(key)
}

// Delete removes a cache entry by key. Returns nil if the entry
// doesn't exist (idempotent).
func (s *Store) Delete(key string) error {
	if key == "" {
		return ErrInvalidCacheKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if elem, ok := s.entries[key]; ok {
		s.remove(elem)
	}
	return nil
}

// Clear removes all cache entries.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.order.Init()
	s.entries = make(map[string]*list.Element)
	s.latest = make(map[string]string)
}

// CleanupExpired removes all expired entries and reports how many were
// dropped. Useful for periodic maintenance.
func (s *Store) CleanupExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for elem := s.order.Back(); elem != nil; {
		prev := elem.Prev()
		if elem.Value.(*Entry).IsExpired() {
			s.remove(elem)
			removed++
		}
		elem = prev
	}
	return removed
}

// Len returns the number of live entries (including expired ones not
// yet cleaned up).
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Len()
}

// Keys returns the cache keys ordered from most to least recently used.
func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, s.order.Len())
	for elem := s.order.Front(); elem != nil; elem = elem.Next() {
		keys = append(keys, elem.Value.(*Entry).Key)
	}
	return keys
}

// evictOldest drops the least-recently-used entry. Caller holds mu.
func (s *Store) evictOldest() {
	if back := s.order.Back(); back != nil {
		s.remove(back)
	}
}

// remove unlinks an element from all indexes. Caller holds mu. When the
// removed entry was the scenario's newest, the latest index is repointed
// at the next-newest live entry rather than dropped, so Latest keeps
// resolving while any entry for the scenario survives.
func (s *Store) remove(elem *list.Element) {
	entry := elem.Value.(*Entry)
	s.order.Remove(elem)
	delete(s.entries, entry.Key)
	if s.latest[entry.ScenarioID] == entry.Key {
		delete(s.latest, entry.ScenarioID)
		s.repointLatest(entry.ScenarioID)
	}
}

// repointLatest scans the live entries for the scenario's most recent
// one by creation time and restores the latest index. Caller holds mu.
func (s *Store) repointLatest(scenarioID string) {
	var best *Entry
	for _, elem := range s.entries {
		e := elem.Value.(*Entry)
		if e.ScenarioID != scenarioID {
			continue
		}
		if best == nil || e.CreatedAt.After(best.CreatedAt) ||
			(e.CreatedAt.Equal(best.CreatedAt) && e.Key > best.Key) {
			best = e
		}
	}
	if best != nil {
		s.latest[scenarioID] = best.Key
	}
}
