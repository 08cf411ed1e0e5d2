// internal/infra/database/postgres_execution_repository.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"worktime_notifier/internal/domain/execution"
)

const postgresSchema = `CREATE TABLE IF NOT EXISTS execution_records (
	kind        TEXT PRIMARY KEY,
	executed_at TIMESTAMPTZ NOT NULL
)`

type PostgresExecutionRepository struct {
	db *sql.DB
}

func NewPostgresExecutionRepository(db *sql.DB) *PostgresExecutionRepository {
	return &PostgresExecutionRepository{db: db}
}

// EnsureSchema creates the execution_records table if it does not exist.
func (r *PostgresExecutionRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, postgresSchema); err != nil {
		return fmt.Errorf("error creating execution_records table: %w", err)
	}
	return nil
}

func (r *PostgresExecutionRepository) Load(ctx context.Context) (execution.Record, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT kind, executed_at FROM execution_records`)
	if err != nil {
		return execution.Record{}, fmt.Errorf("error querying execution records: %w", err)
	}
	defer rows.Close()

	var rec execution.Record
	found := false
	for rows.Next() {
		var kind string
		var at time.Time
		if err := rows.Scan(&kind, &at); err != nil {
			return execution.Record{}, fmt.Errorf("error scanning execution record row: %w", err)
		}
		k, err := execution.ParseKind(kind)
		if err != nil {
			continue // Unknown kinds written by other tools are ignored
		}
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

// Save upserts every set kind. The WHERE clause keeps a stored timestamp from
// moving backwards even if two processes race.
func (r *PostgresExecutionRepository) Save(ctx context.Context, rec execution.Record) error {
	txn, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for execution record: %w", err)
	}
	defer txn.Rollback() // Rollback if not committed

	for _, k := range execution.Kinds {
		at, ok := rec.Get(k)
		if !ok {
			continue
		}
		_, err := txn.ExecContext(ctx, `INSERT INTO execution_records (kind, executed_at)
               VALUES ($1, $2)
               ON CONFLICT (kind) DO UPDATE SET executed_at = EXCLUDED.executed_at
               WHERE execution_records.executed_at < EXCLUDED.executed_at`, string(k), at)
		if err != nil {
			return fmt.Errorf("error saving execution record for %s: %w", k, err)
		}
	}
	return txn.Commit()
}

func (r *PostgresExecutionRepository) Close() error { return r.db.Close() }
