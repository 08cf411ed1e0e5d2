// internal/domain/execution/repository.go
package execution

import (
	"context"
	"errors"
)

// ErrRecordNotFound is returned by Load when nothing has been persisted yet.
var ErrRecordNotFound = errors.New("execution record not found")

// Repository persists the execution record.
type Repository interface {
	Load(ctx context.Context) (Record, error)
	// Save writes the full record.
	Save(ctx context.Context, rec Record) error
	Close() error
}
