// Package memory implements an in-memory key-value backend for development and testing.
package memory

import (
	"context"
	"sync"

	"nappu/internal/domain"
)

// KV implements domain.KVBackend in process memory.
type KV struct {
	mu   sync.Mutex
	docs map[string][]byte
}

var _ domain.KVBackend = (*KV)(nil)

// New creates an empty in-memory key-value backend.
func New() *KV {
	return &KV{docs: make(map[string][]byte)}
}

// Read returns a copy of the document at key.
func (kv *KV) Read(ctx context.Context, key string) ([]byte, bool, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	v, ok := kv.docs[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

// Write stores a copy of value at key.
func (kv *KV) Write(ctx context.Context, key string, value []byte) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	v := make([]byte, len(value))
	copy(v, value)
	kv.docs[key] = v
	return nil
}

// Delete removes key. Missing keys are ignored.
func (kv *KV) Delete(ctx context.Context, key string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	delete(kv.docs, key)
	return nil
}

// Len returns the number of stored documents.
func (kv *KV) Len() int {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	return len(kv.docs)
}
