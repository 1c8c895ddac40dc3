package app_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"nappu/internal/adapter/memory"
	"nappu/internal/app"
	"nappu/internal/storage"
)

var errDiskFull = errors.New("disk full")

// flakyBackend wraps the memory backend and fails writes to chosen keys.
type flakyBackend struct {
	*memory.KV

	mu        sync.Mutex
	failWrite map[string]bool
	writes    []string
}

func newFlakyBackend() *flakyBackend {
	return &flakyBackend{KV: memory.New(), failWrite: map[string]bool{}}
}

func (f *flakyBackend) fail(key string) {
	f.mu.Lock()
	f.failWrite[key] = true
	f.mu.Unlock()
}

func (f *flakyBackend) Write(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	fail := f.failWrite[key]
	f.writes = append(f.writes, key)
	f.mu.Unlock()
	if fail {
		return errDiskFull
	}
	return f.KV.Write(ctx, key, value)
}

func (f *flakyBackend) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	fail := f.failWrite[key]
	f.writes = append(f.writes, "-"+key)
	f.mu.Unlock()
	if fail {
		return errDiskFull
	}
	return f.KV.Delete(ctx, key)
}

func (f *flakyBackend) writeLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.writes))
	copy(out, f.writes)
	return out
}

var fixedNow = time.Date(2026, 2, 8, 9, 30, 0, 0, time.UTC)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestRepo(t *testing.T, backend *flakyBackend) *app.Repository {
	t.Helper()
	repo := app.NewRepository(storage.New(backend),
		app.WithClock(func() time.Time { return fixedNow }),
		app.WithIDGenerator(sequentialIDs()),
	)
	repo.Load(context.Background())
	return repo
}

func ptr[T any](v T) *T { return &v }
