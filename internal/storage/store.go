// Package storage provides the durable key-value stores behind the mock
// backend.  Values are opaque byte slices; callers encode whole
// collections as JSON and read-modify-write them.
package storage

import (
    "context"
    "errors"
)

// ErrNotFound is returned by Get when the key does not exist.
var ErrNotFound = errors.New("storage: key not found")

// Store is a minimal key-value store.
type Store interface {
    Get(ctx context.Context, key string) ([]byte, error)
    Put(ctx context.Context, key string, value []byte) error
    Delete(ctx context.Context, key string) error
}
