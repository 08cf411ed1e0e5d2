// internal/app/ledger.go
package app

import (
	"context"
	"errors"
	"time"

	"worktime_notifier/internal/domain/execution"

	"github.com/sirupsen/logrus"
)

// LedgerLoadResult is the raw outcome of reading the repository.
// Err is set when the record was unreadable; Missing when nothing was stored yet.
type LedgerLoadResult struct {
	Record  execution.Record
	Missing bool
	Err     error
}

// ExecutionLedger tracks the last successful run per kind. Every read and
// write failure is logged and absorbed: a broken ledger means "never executed".
type ExecutionLedger struct {
	repo   execution.Repository
	loc    *time.Location
	logger logrus.FieldLogger

	record execution.Record
	loaded bool
}

func NewExecutionLedger(repo execution.Repository, loc *time.Location, logger logrus.FieldLogger) *ExecutionLedger {
	return &ExecutionLedger{
		repo:   repo,
		loc:    loc,
		logger: logger.WithField("component", "ledger"),
	}
}

func (l *ExecutionLedger) read(ctx context.Context) LedgerLoadResult {
	if l.repo == nil {
		return LedgerLoadResult{Missing: true}
	}
	rec, err := l.repo.Load(ctx)
	switch {
	case err == nil:
		return LedgerLoadResult{Record: rec}
	case errors.Is(err, execution.ErrRecordNotFound):
		return LedgerLoadResult{Missing: true}
	default:
		return LedgerLoadResult{Err: err}
	}
}

// Load reads the persisted record and caches it for the rest of the run.
func (l *ExecutionLedger) Load(ctx context.Context) execution.Record {
	res := l.read(ctx)
	switch {
	case res.Err != nil:
		l.logger.WithError(res.Err).Warn("Execution record unreadable, treating as never executed")
		l.record = execution.Record{}
	case res.Missing:
		l.logger.Info("No execution record yet, starting empty")
		l.record = execution.Record{}
	default:
		l.record = res.Record
		l.logger.Debugf("Execution record loaded: start=%s end=%s", formatStamp(res.Record.Start), formatStamp(res.Record.End))
	}
	l.loaded = true
	return l.record
}

// WasExecutedToday reports whether kind already succeeded on now's civil date
// in the reference timezone.
func (l *ExecutionLedger) WasExecutedToday(kind execution.Kind, now time.Time) bool {
	if !l.loaded {
		l.Load(context.Background())
	}
	last, ok := l.record.Get(kind)
	if !ok {
		return false
	}
	return execution.SameDay(last, now, l.loc)
}

// LastExecution returns the stored timestamp for kind in the reference timezone.
func (l *ExecutionLedger) LastExecution(kind execution.Kind) (time.Time, bool) {
	if !l.loaded {
		l.Load(context.Background())
	}
	last, ok := l.record.Get(kind)
	if !ok {
		return time.Time{}, false
	}
	return last.In(l.loc), true
}

// RecordExecution stores now as the last success of kind and persists the full record.
func (l *ExecutionLedger) RecordExecution(ctx context.Context, kind execution.Kind, now time.Time) {
	if !l.loaded {
		l.Load(ctx)
	}
	log := l.logger.WithField("kind", kind)
	next, advanced := l.record.With(kind, now.In(l.loc))
	if !advanced {
		prev, _ := l.record.Get(kind)
		log.Warnf("Not recording %s: stored execution %s is not earlier", now.In(l.loc).Format(time.RFC3339), prev.Format(time.RFC3339))
		return
	}
	l.record = next
	if l.repo == nil {
		return
	}
	if err := l.repo.Save(ctx, next); err != nil {
		log.WithError(err).Error("Failed to persist execution record; a duplicate send is possible on the next run")
		return
	}
	log.Infof("Execution recorded at %s", now.In(l.loc).Format(time.RFC3339))
}

func formatStamp(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(time.RFC3339)
}
