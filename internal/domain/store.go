package domain

import "context"

// SnapshotStore is the local key/value medium holding serialized documents.
type SnapshotStore interface {
	// Get returns the entry and whether it exists.
	Get(ctx context.Context, name string) ([]byte, bool, error)
	Put(ctx context.Context, name string, data []byte) error
	Delete(ctx context.Context, name string) error
}
