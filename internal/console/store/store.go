// Package store provides the console's durable key-value storage, used for
// the persisted session token and other per-profile metadata.
package store

import "context"

// Store is a durable key-value capability. Get returns (nil, nil) for a
// missing key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
