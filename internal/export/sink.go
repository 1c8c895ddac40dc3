package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"nappu/internal/log"
)

// Sink stores a finished export and returns where it went.
type Sink interface {
	Put(ctx context.Context, name, contentType string, body []byte) (string, error)
}

// FileSink writes exports into a local directory.
type FileSink struct {
	Dir string
}

// Put writes body to Dir/name atomically via a temp file and rename.
func (s FileSink) Put(_ context.Context, name, _ string, body []byte) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(s.Dir, filepath.Base(name))
	tmp := path + ".tmp-" + uuid.NewString()
	if err := os.WriteFile(tmp, body, 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}

// Exporter encodes snapshots and hands them to a Sink.
type Exporter struct {
	sink   Sink
	now    func() time.Time
	logger *log.Logger
}

// NewExporter returns an Exporter writing to sink. A nil now uses time.Now.
func NewExporter(sink Sink, now func() time.Time, logger *log.Logger) *Exporter {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = log.Discard()
	}
	return &Exporter{sink: sink, now: now, logger: logger.WithComponent(log.ComponentExport)}
}

// Upload encodes d in format f and stores it, returning the sink location.
// The file name carries d.ExportedAt, or the exporter's clock when d is
// unstamped.
func (e *Exporter) Upload(ctx context.Context, d Data, f Format) (string, error) {
	body, err := Encode(d, f)
	if err != nil {
		return "", err
	}
	stamp := d.ExportedAt
	if stamp.IsZero() {
		stamp = e.now()
	}
	name := FileName(f, stamp)
	loc, err := e.sink.Put(ctx, name, f.ContentType(), body)
	if err != nil {
		e.logger.ErrorContext(ctx, "export upload failed", log.FieldKey, name, log.FieldError, err)
		return "", fmt.Errorf("upload export: %w", err)
	}
	e.logger.InfoContext(ctx, "export uploaded", log.FieldKey, name, "location", loc, "bytes", len(body))
	return loc, nil
}
