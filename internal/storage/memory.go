package storage

import (
    "context"
    "sync"
)

// MemoryStore keeps values in process memory.  It is the default store for
// tests and single-process demos.
type MemoryStore struct {
    mu    sync.RWMutex
    table map[string][]byte
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
    return &MemoryStore{table: make(map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    v, ok := s.table[key]
    if !ok {
        return nil, ErrNotFound
    }
    return append([]byte(nil), v...), nil
}

func (s *MemoryStore) Put(_ context.Context, key string, value []byte) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    s.table[key] = append([]byte(nil), value...)
    return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    delete(s.table, key)
    return nil
}
