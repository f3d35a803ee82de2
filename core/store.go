package core

import "context"

// Store is a namespaced key-value store. Every key holds one whole JSON document;
// writes replace the previous value entirely (last writer wins).
type Store interface {
	// Get returns the value stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Close() error
}
