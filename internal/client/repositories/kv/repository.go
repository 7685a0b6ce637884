// Package kv provides the raw byte-oriented key-value backends behind the
// preferences store: SQLite for the default on-disk file, Redis for shared
// deployments and an in-memory map for ephemeral runs.
package kv

import (
	"context"
)

// Repository stores opaque values under string keys within one namespace.
// Get returns (nil, nil) for a missing key; Delete of a missing key is not
// an error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
