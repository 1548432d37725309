// Package storage provides named record stores: each record is an opaque
// payload saved and loaded wholesale under a name.
package storage

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned by Load when no record has the given name.
var ErrNotFound = errors.New("record not found")

// RecordStore persists whole records by name.
type RecordStore interface {
	Load(ctx context.Context, name string) ([]byte, error)
	Save(ctx context.Context, name string, data []byte) error
	Close() error
}

// MemoryStore keeps records in process memory.
type MemoryStore struct {
	records map[string][]byte
	mu      sync.RWMutex
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string][]byte)}
}

func (s *MemoryStore) Load(_ context.Context, name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.records[name]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

func (s *MemoryStore) Save(_ context.Context, name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[name] = append([]byte(nil), data...)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
