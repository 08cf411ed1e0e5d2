// internal/app/status_service.go
package app

import (
	"context"
	"time"

	"worktime_notifier/internal/domain/calendar"
	"worktime_notifier/internal/domain/execution"
	"worktime_notifier/internal/domain/notifier"
)

// StatusReport is the diagnostic snapshot printed by the status command.
type StatusReport struct {
	Now              time.Time
	IsHoliday        bool
	HolidayCount     int
	CalendarDegraded bool
	CalendarErr      error
	Windows          map[execution.Kind]execution.Window
	LastExecutions   map[execution.Kind]time.Time
	Connectivity     notifier.Connectivity
	ConnectivityErr  error
}

// StatusService gathers diagnostics without going through the admission gate.
type StatusService struct {
	calendar calendar.Result
	ledger   *ExecutionLedger
	notifier notifier.Notifier
	gateCfg  GateConfig
	now      func() time.Time
}

func NewStatusService(cal calendar.Result, ledger *ExecutionLedger, n notifier.Notifier, gateCfg GateConfig) *StatusService {
	if gateCfg.Location == nil {
		gateCfg.Location = time.UTC
	}
	return &StatusService{calendar: cal, ledger: ledger, notifier: n, gateCfg: gateCfg, now: time.Now}
}

// Report never fails as a whole; a connectivity problem is reported in ConnectivityErr.
func (s *StatusService) Report(ctx context.Context) StatusReport {
	now := s.now().In(s.gateCfg.Location)
	r := StatusReport{
		Now:              now,
		IsHoliday:        s.calendar.Store.IsHoliday(now),
		HolidayCount:     s.calendar.Store.Count(),
		CalendarDegraded: s.calendar.Degraded(),
		CalendarErr:      s.calendar.Err,
		Windows:          s.gateCfg.Windows,
		LastExecutions:   map[execution.Kind]time.Time{},
	}
	if s.ledger != nil {
		s.ledger.Load(ctx)
		for _, k := range execution.Kinds {
			if t, ok := s.ledger.LastExecution(k); ok {
				r.LastExecutions[k] = t
			}
		}
	}
	if s.notifier != nil {
		r.Connectivity, r.ConnectivityErr = s.notifier.CheckConnectivity(ctx)
	}
	return r
}
