package cache

import (
	"sync"
	"time"

	"furniture-search-api/internal/models"
)

type entry struct {
	result    *models.SearchResult
	expiresAt time.Time
}

// Memory is the in-process Store. There is no background eviction:
// expiry is checked lazily on read and stale entries are overwritten by
// the next write for the same key.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (m *Memory) Get(key string) (*models.SearchResult, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[key]
	if !ok || m.now().After(e.expiresAt) {
		return nil, false
	}
	return e.result, true
}

func (m *Memory) Set(key string, result *models.SearchResult) {
	m.mu.Lock()
	m.entries[key] = entry{result: result, expiresAt: m.now().Add(m.ttl)}
	m.mu.Unlock()
}

func (m *Memory) Flush() error {
	m.mu.Lock()
	m.entries = make(map[string]entry)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Stats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	live := 0
	now := m.now()
	for _, e := range m.entries {
		if now.Before(e.expiresAt) {
			live++
		}
	}

	return map[string]interface{}{
		"backend":     "memory",
		"keys":        len(m.entries),
		"live_keys":   live,
		"ttl_seconds": int(m.ttl.Seconds()),
	}
}
