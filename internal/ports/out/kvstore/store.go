package kvstore

import "context"

// Store is durable key-value storage backing the trip cache. Values are
// opaque blobs; each write replaces the whole value, so no transactions are
// needed.
type Store interface {
	// Get returns the value for key. ok is false when the key is absent;
	// err is reserved for backend failures.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set writes value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
}
