package database

import (
	"context"
	"fmt"

	"worktime_notifier/internal/domain/execution"
	"worktime_notifier/internal/infra/config"
	"worktime_notifier/internal/infra/filestore"
)

// OpenExecutionRepository returns the ledger backend selected by cfg.LedgerDriver.
func OpenExecutionRepository(ctx context.Context, cfg *config.AppConfig) (execution.Repository, error) {
	switch cfg.LedgerDriver {
	case config.LedgerFile, "":
		return filestore.NewRecordRepository(cfg.LedgerPath), nil
	case config.LedgerSQLite:
		db, err := NewSQLiteConnection(cfg.LedgerPath)
		if err != nil {
			return nil, err
		}
		repo := NewSQLiteExecutionRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, err
		}
		return repo, nil
	case config.LedgerPostgres:
		db, err := NewPostgresConnection(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		repo := NewPostgresExecutionRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, err
		}
		return repo, nil
	}
	return nil, fmt.Errorf("unknown ledger driver: %s", cfg.LedgerDriver)
}
