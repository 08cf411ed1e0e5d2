// internal/infra/database/sqlite_execution_repository.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"worktime_notifier/internal/domain/execution"
)

// Timestamps are stored as unix nanoseconds so that the upsert guard can
// compare them numerically; the original offset is kept for display.
const sqliteSchema = `CREATE TABLE IF NOT EXISTS execution_records (
	kind           TEXT PRIMARY KEY,
	executed_at_ns INTEGER NOT NULL,
	utc_offset_s   INTEGER NOT NULL DEFAULT 0
)`

type SQLiteExecutionRepository struct {
	db *sql.DB
}

func NewSQLiteExecutionRepository(db *sql.DB) *SQLiteExecutionRepository {
	return &SQLiteExecutionRepository{db: db}
}

func (r *SQLiteExecutionRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("error creating execution_records table: %w", err)
	}
	return nil
}

func (r *SQLiteExecutionRepository) Load(ctx context.Context) (execution.Record, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT kind, executed_at_ns, utc_offset_s FROM execution_records`)
	if err != nil {
		return execution.Record{}, fmt.Errorf("error querying execution records: %w", err)
	}
	defer rows.Close()

	var rec execution.Record
	found := false
	for rows.Next() {
		var kind string
		var ns int64
		var offset int
		if err := rows.Scan(&kind, &ns, &offset); err != nil {
			return execution.Record{}, fmt.Errorf("error scanning execution record row: %w", err)
		}
		k, err := execution.ParseKind(kind)
		if err != nil {
			continue
		}
		at := time.Unix(0, ns).In(time.FixedZone("", offset))
		rec, _ = rec.With(k, at)
		found = true
	}
	if err := rows.Err(); err != nil {
		return execution.Record{}, fmt.Errorf("error iterating execution record rows: %w", err)
	}
	if !found {
		return execution.Record{}, execution.ErrRecordNotFound
	}
	return rec, nil
}

func (r *SQLiteExecutionRepository) Save(ctx context.Context, rec execution.Record) error {
	txn, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for execution record: %w", err)
	}
	defer txn.Rollback()

	for _, k := range execution.Kinds {
		at, ok := rec.Get(k)
		if !ok {
			continue
		}
		_, offset := at.Zone()
		_, err := txn.ExecContext(ctx, `INSERT INTO execution_records (kind, executed_at_ns, utc_offset_s)
               VALUES (?, ?, ?)
               ON CONFLICT (kind) DO UPDATE SET executed_at_ns = excluded.executed_at_ns, utc_offset_s = excluded.utc_offset_s
               WHERE execution_records.executed_at_ns < excluded.executed_at_ns`, string(k), at.UnixNano(), offset)
		if err != nil {
			return fmt.Errorf("error saving execution record for %s: %w", k, err)
		}
	}
	return txn.Commit()
}

func (r *SQLiteExecutionRepository) Close() error { return r.db.Close() }
