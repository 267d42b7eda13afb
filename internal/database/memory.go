package database

import (
	"context"
	"sync"

	"github.com/patrickmn/go-cache"
	"github.com/rowjay/link-batch-shortener/internal/constants"
)

type MemoryStore struct {
	mu    sync.Mutex
	items *cache.Cache
}

func NewMemoryStore() *MemoryStore {
	// No expiration and no janitor: entries live until removed.
	return &MemoryStore{items: cache.New(cache.NoExpiration, 0)}
}

func (m *MemoryStore) GetItem(_ context.Context, key string) (string, bool, error) {
	v, ok := m.items.Get(key)
	if !ok {
		return "", false, nil
	}
	return v.(string), true, nil
}

func (m *MemoryStore) RemoveItem(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items.Delete(key)
	return nil
}

func (m *MemoryStore) Update(_ context.Context, key string, fn UpdateFunc) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, found := "", false
	if v, ok := m.items.Get(key); ok {
		current, found = v.(string), true
	}
	next, err := fn(current, found)
	if err != nil {
		return err
	}
	m.items.Set(key, next, cache.NoExpiration)
	return nil
}

func (m *MemoryStore) Ping(context.Context) error { return nil }

func (m *MemoryStore) Close() error {
	m.items.Flush()
	return nil
}

func (m *MemoryStore) Driver() string { return constants.DriverMemory }
