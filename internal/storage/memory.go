package storage

import (
	"context"
	"sync"
)

// MemoryBackend keeps items in process memory. Items are lost on restart.
type MemoryBackend struct {
	mu    sync.RWMutex
	items map[string]map[string]string
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{items: map[string]map[string]string{}}
}

func (b *MemoryBackend) For(namespace string) LocalStorage {
	return &memoryStorage{b: b, ns: namespace}
}

type memoryStorage struct {
	b  *MemoryBackend
	ns string
}

func (s *memoryStorage) GetItem(_ context.Context, key string) (string, error) {
	s.b.mu.RLock()
	defer s.b.mu.RUnlock()
	v, ok := s.b.items[s.ns][key]
	if !ok {
		return "", ErrNoItem
	}
	return v, nil
}

func (s *memoryStorage) SetItem(_ context.Context, key, value string) error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	m, ok := s.b.items[s.ns]
	if !ok {
		m = map[string]string{}
		s.b.items[s.ns] = m
	}
	m[key] = value
	return nil
}

func (s *memoryStorage) RemoveItem(_ context.Context, key string) error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	delete(s.b.items[s.ns], key)
	if len(s.b.items[s.ns]) == 0 {
		delete(s.b.items, s.ns)
	}
	return nil
}
