// Package metadata is the client's durable key/value store: one SQLite table
// of string keys and opaque byte values.
package metadata

import (
	"context"
)

// Repository reads and writes metadata entries. Get returns (nil, nil) for a
// missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
