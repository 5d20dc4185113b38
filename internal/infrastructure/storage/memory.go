package storage

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

// Object is a stored object held by MemoryObjectStore
type Object struct {
	Data        []byte
	ContentType string
}

// MemoryObjectStore keeps objects in process memory. Exports are lost on
// restart, so it is meant for development and tests.
type MemoryObjectStore struct {
	mu      sync.RWMutex
	objects map[string]Object
}

// NewMemoryObjectStore creates an empty store
func NewMemoryObjectStore() *MemoryObjectStore {
	return &MemoryObjectStore{objects: make(map[string]Object)}
}

// Upload stores a copy of data under key
func (m *MemoryObjectStore) Upload(_ context.Context, key string, data []byte, contentType string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = Object{Data: append([]byte(nil), data...), ContentType: contentType}
	return nil
}

// DownloadURL returns a memory:// URL; memory objects are not served over HTTP
func (m *MemoryObjectStore) DownloadURL(_ context.Context, key string) (string, time.Time, error) {
	if _, ok := m.Get(key); !ok {
		return "", time.Time{}, errors.New("object not found")
	}
	return "memory://" + key, time.Time{}, nil
}

// Get returns the object stored under key
func (m *MemoryObjectStore) Get(key string) (Object, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	return obj, ok
}

// Keys lists stored keys in order
func (m *MemoryObjectStore) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.objects))
	for k := range m.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
