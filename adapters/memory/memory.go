// Package memory provides an in-memory core.KeyValueStore. It is the
// default store and the one tests use; nothing survives a restart.
package memory

import (
	"context"
	"sync"

	"github.com/mandiconnect/mandi-go/core"
)

// Store implements core.KeyValueStore over a mutex-guarded map.
type Store struct {
	mu   sync.RWMutex
	data map[string]string
}

var _ core.KeyValueStore = (*Store)(nil)

func New() *Store {
	return &Store{data: make(map[string]string)}
}

func (s *Store) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[key]
	if !ok {
		return "", core.ErrKeyNotFound
	}
	return value, nil
}

func (s *Store) SetMany(_ context.Context, items map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range items {
		s.data[key] = value
	}
	return nil
}

func (s *Store) RemoveMany(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		delete(s.data, key)
	}
	return nil
}

// Len returns the number of stored keys.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
