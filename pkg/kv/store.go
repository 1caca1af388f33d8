package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a partition key has no stored value.
var ErrNotFound = errors.New("kv: key not found")

// Store is the partitioned key-value surface backing carts and the session
// record. Values are opaque blobs; callers own the encoding.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
