// Package filestore keeps the execution record in a small YAML document.
package filestore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"worktime_notifier/internal/domain/execution"

	"gopkg.in/yaml.v3"
)

// document is the on-disk shape of the record.
//
//	start-timestamp: 2026-10-19T08:45:12+09:00
//	end-timestamp: 2026-10-19T18:03:40+09:00
type document struct {
	StartTimestamp *time.Time `yaml:"start-timestamp,omitempty"`
	EndTimestamp   *time.Time `yaml:"end-timestamp,omitempty"`
}

// RecordRepository implements execution.Repository on a single file.
type RecordRepository struct {
	path string
}

func NewRecordRepository(path string) *RecordRepository {
	return &RecordRepository{path: path}
}

func (r *RecordRepository) Path() string { return r.path }

func (r *RecordRepository) Load(ctx context.Context) (execution.Record, error) {
	_ = ctx
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return execution.Record{}, execution.ErrRecordNotFound
		}
		return execution.Record{}, fmt.Errorf("read execution record: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return execution.Record{}, execution.ErrRecordNotFound
	}
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return execution.Record{}, fmt.Errorf("decode execution record %s: %w", r.path, err)
	}
	return execution.Record{Start: doc.StartTimestamp, End: doc.EndTimestamp}, nil
}

// Save rewrites the whole file through a temp file and rename. Parent
// directories are created as needed.
func (r *RecordRepository) Save(ctx context.Context, rec execution.Record) error {
	_ = ctx
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("create ledger directory: %w", err)
	}
	raw, err := yaml.Marshal(document{StartTimestamp: rec.Start, EndTimestamp: rec.End})
	if err != nil {
		return fmt.Errorf("encode execution record: %w", err)
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write execution record: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace execution record: %w", err)
	}
	return nil
}

func (r *RecordRepository) Close() error { return nil }
