// internal/app/admission.go
package app

import (
	"slices"
	"time"

	"worktime_notifier/internal/domain/calendar"
	"worktime_notifier/internal/domain/execution"

	"github.com/sirupsen/logrus"
)

// RejectReason names one failed admission check.
type RejectReason string

const (
	ReasonOutsideWindow RejectReason = "outside_window"
	ReasonHoliday       RejectReason = "holiday"
	ReasonClosedWeekday RejectReason = "closed_weekday"
	ReasonDuplicate     RejectReason = "duplicate"
)

// HolidayChecker is satisfied by *calendar.Store.
type HolidayChecker interface {
	IsHoliday(t time.Time) bool
}

// ExecutionChecker is satisfied by *ExecutionLedger.
type ExecutionChecker interface {
	WasExecutedToday(kind execution.Kind, now time.Time) bool
}

// GateConfig holds the admission rules.
type GateConfig struct {
	Location       *time.Location
	Windows        map[execution.Kind]execution.Window
	ClosedWeekdays []time.Weekday
}

// Decision is the result of one admission check. Allowed iff Reasons is empty.
type Decision struct {
	Kind    execution.Kind
	At      time.Time
	Reasons []RejectReason
}

func (d Decision) Allowed() bool { return len(d.Reasons) == 0 }

func (d Decision) Has(r RejectReason) bool { return slices.Contains(d.Reasons, r) }

// AdmissionGate decides whether a run may fire. It never mutates the ledger.
type AdmissionGate struct {
	cfg      GateConfig
	holidays HolidayChecker
	ledger   ExecutionChecker
	logger   logrus.FieldLogger
}

func NewAdmissionGate(cfg GateConfig, holidays HolidayChecker, ledger ExecutionChecker, logger logrus.FieldLogger) *AdmissionGate {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if holidays == nil {
		holidays = calendar.Degraded()
	}
	return &AdmissionGate{
		cfg:      cfg,
		holidays: holidays,
		ledger:   ledger,
		logger:   logger.WithField("component", "gate"),
	}
}

// ShouldExecute evaluates every check and logs each failure with its reason.
func (g *AdmissionGate) ShouldExecute(kind execution.Kind, now time.Time) Decision {
	local := now.In(g.cfg.Location)
	today := local.Format(calendar.DateLayout)
	d := Decision{Kind: kind, At: local}
	log := g.logger.WithFields(logrus.Fields{"kind": kind, "now": local.Format("2006-01-02 15:04:05 MST")})

	w, ok := g.cfg.Windows[kind]
	if !ok || !w.Contains(local, g.cfg.Location) {
		d.Reasons = append(d.Reasons, ReasonOutsideWindow)
		log.WithField("reason", ReasonOutsideWindow).Infof("Outside the %s window %s, skipping", kind, w)
	}

	if g.holidays.IsHoliday(local) {
		d.Reasons = append(d.Reasons, ReasonHoliday)
		log.WithField("reason", ReasonHoliday).Infof("Today (%s) is a holiday, skipping", today)
	}

	if slices.Contains(g.cfg.ClosedWeekdays, local.Weekday()) {
		d.Reasons = append(d.Reasons, ReasonClosedWeekday)
		log.WithField("reason", ReasonClosedWeekday).Infof("Today (%s, %s) is not a business day, skipping", today, local.Weekday())
	}

	if g.ledger != nil && g.ledger.WasExecutedToday(kind, local) {
		d.Reasons = append(d.Reasons, ReasonDuplicate)
		log.WithField("reason", ReasonDuplicate).Infof("The %s notification already ran today (%s), skipping", kind, today)
	}

	if d.Allowed() {
		log.Debug("Admission checks passed")
	}
	return d
}
