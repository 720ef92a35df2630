package cache

import (
	"context"
	"sync"
	"time"
)

type item struct {
	value      string
	expiration int64
}

func (i item) expired() bool {
	if i.expiration == 0 {
		return false
	}
	return time.Now().UnixNano() > i.expiration
}

// Memory is a thread-safe in-memory cache with expiration
type Memory struct {
	mu              sync.RWMutex
	items           map[string]item
	cleanupInterval time.Duration
}

// NewMemory creates an in-memory cache. A positive cleanupInterval starts a
// background sweep of expired entries.
func NewMemory(cleanupInterval time.Duration) *Memory {
	m := &Memory{
		items:           make(map[string]item),
		cleanupInterval: cleanupInterval,
	}
	if cleanupInterval > 0 {
		go m.cleanupLoop()
	}
	return m
}

// Get retrieves a value, reporting whether it was present and unexpired.
func (m *Memory) Get(_ context.Context, key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	it, found := m.items[key]
	if !found || it.expired() {
		return "", false
	}
	return it.value, true
}

// Set stores a value with the given TTL. A zero TTL means no expiry.
func (m *Memory) Set(_ context.Context, key, value string, ttl time.Duration) {
	var exp int64
	if ttl > 0 {
		exp = time.Now().Add(ttl).UnixNano()
	}

	m.mu.Lock()
	m.items[key] = item{value: value, expiration: exp}
	m.mu.Unlock()
}

// Delete removes a key.
func (m *Memory) Delete(_ context.Context, key string) {
	m.mu.Lock()
	delete(m.items, key)
	m.mu.Unlock()
}

func (m *Memory) cleanupLoop() {
	ticker := time.NewTicker(m.cleanupInterval)
	defer ticker.Stop()
	for range ticker.C {
		m.mu.Lock()
		for key, it := range m.items {
			if it.expired() {
				delete(m.items, key)
			}
		}
		m.mu.Unlock()
	}
}
