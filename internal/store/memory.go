package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/i474232898/weather-charts/internal/weather"
)

var (
	// ErrNotFound is returned when no fresh readings are cached for a location.
	ErrNotFound = errors.New("no cached readings for location")
)

// DefaultTTL is how long fetched readings stay fresh.
const DefaultTTL = time.Hour

func cacheKey(loc weather.Location, days int) string {
	return fmt.Sprintf("%s|%d", loc.Key(), days)
}

type entry struct {
	readings weather.HourlyReadings
	storedAt time.Time
}

// MemoryStore is a concurrency-safe in-memory readings cache.
type MemoryStore struct {
	mu sync.RWMutex

	// key: location key and forecast window
	data map[string]entry

	maxEntries int           // 0 = unlimited
	ttl        time.Duration // 0 = never expire

	now func() time.Time
}

// NewMemoryStore creates a new MemoryStore.
// If maxEntries is <= 0, it is treated as unlimited.
func NewMemoryStore(maxEntries int, ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string]entry),
		maxEntries: maxEntries,
		ttl:        ttl,
		now:        time.Now,
	}
}

// SaveReadings caches readings and evicts the oldest entry when full.
func (s *MemoryStore) SaveReadings(_ context.Context, loc weather.Location, days int, readings weather.HourlyReadings) error {
	key := cacheKey(loc, days)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = entry{readings: readings, storedAt: s.now()}
	s.evictLocked()
	return nil
}

// GetReadings returns the cached readings if they have not expired.
func (s *MemoryStore) GetReadings(_ context.Context, loc weather.Location, days int) (weather.HourlyReadings, error) {
	key := cacheKey(loc, days)

	s.mu.RLock()
	e, ok := s.data[key]
	s.mu.RUnlock()

	if !ok {
		return weather.HourlyReadings{}, ErrNotFound
	}
	if s.expired(e) {
		s.mu.Lock()
		if cur, ok := s.data[key]; ok && s.expired(cur) {
			delete(s.data, key)
		}
		s.mu.Unlock()
		return weather.HourlyReadings{}, ErrNotFound
	}
	return e.readings, nil
}

// Len reports the number of cached entries, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

func (s *MemoryStore) expired(e entry) bool {
	return s.ttl > 0 && s.now().Sub(e.storedAt) >= s.ttl
}

func (s *MemoryStore) evictLocked() {
	// Drop expired entries first.
	for k, e := range s.data {
		if s.expired(e) {
			delete(s.data, k)
		}
	}

	// Enforce retention by count.
	for s.maxEntries > 0 && len(s.data) > s.maxEntries {
		var oldestKey string
		var oldest time.Time
		for k, e := range s.data {
			if oldestKey == "" || e.storedAt.Before(oldest) {
				oldestKey, oldest = k, e.storedAt
			}
		}
		delete(s.data, oldestKey)
	}
}
