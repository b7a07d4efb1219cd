// Package kv provides the key-value persistence primitive the ledger and
// settings are built on: string keys, serialized string values, whole-value
// reads and writes. A Set or Delete either fully succeeds or fails; there are
// no partial writes.
package kv

import "context"

// Store is the durable key-value collaborator. Implementations must make
// Set atomic at the value level: readers observe either the previous value
// or the new one, never a torn write.
type Store interface {
	// Get returns the value stored under key, and whether one exists.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set replaces the value stored under key.
	Set(ctx context.Context, key, value string) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
