package domain

import "context"

// KVBackend is the port for the raw key-value document store behind the
// JSON storage adapter. Read reports found=false for a missing key.
type KVBackend interface {
	Read(ctx context.Context, key string) ([]byte, bool, error)
	Write(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
