// internal/app/orchestrator.go
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"worktime_notifier/internal/domain/execution"
	"worktime_notifier/internal/domain/notifier"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// State is a step of a single run.
type State string

const (
	StateIdle      State = "idle"
	StateAdmitted  State = "admitted"
	StateDelayed   State = "delayed"
	StateNotifying State = "notifying"
	StateRecorded  State = "recorded"
	StateRejected  State = "rejected"
	StateFailed    State = "failed"
)

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == StateRecorded || s == StateRejected || s == StateFailed
}

// Messages are the per-kind default texts.
type Messages map[execution.Kind]string

// Resolve returns override when it is not blank, otherwise the default for kind.
func (m Messages) Resolve(kind execution.Kind, override string) string {
	if strings.TrimSpace(override) != "" {
		return override
	}
	return m[kind]
}

// RunObserver receives run telemetry. Implemented by the metrics package.
type RunObserver interface {
	ObserveDecision(kind string, reasons []string)
	ObserveOutcome(kind string, state string, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveDecision(string, []string)              {}
func (nopObserver) ObserveOutcome(string, string, time.Duration) {}

// Outcome summarizes a finished run.
type Outcome struct {
	RunID    string
	Kind     execution.Kind
	State    State
	Decision Decision
	Message  string
	Delay    time.Duration
}

// Orchestrator runs gate, jitter, notifier and ledger in sequence.
type Orchestrator struct {
	gate     *AdmissionGate
	jitter   Delayer
	notifier notifier.Notifier
	ledger   *ExecutionLedger
	messages Messages
	observer RunObserver
	logger   logrus.FieldLogger
	now      func() time.Time
}

func NewOrchestrator(
	gate *AdmissionGate,
	jitter Delayer,
	n notifier.Notifier,
	ledger *ExecutionLedger,
	messages Messages,
	observer RunObserver,
	logger logrus.FieldLogger,
) *Orchestrator {
	if observer == nil {
		observer = nopObserver{}
	}
	return &Orchestrator{
		gate:     gate,
		jitter:   jitter,
		notifier: n,
		ledger:   ledger,
		messages: messages,
		observer: observer,
		logger:   logger.WithField("component", "orchestrator"),
		now:      time.Now,
	}
}

// Run executes one invocation for kind. A rejected run returns a nil error;
// only a notifier failure or cancellation during the wait returns an error,
// and in both cases the ledger is left untouched.
func (o *Orchestrator) Run(ctx context.Context, kind execution.Kind, override string) (Outcome, error) {
	started := time.Now()
	out := Outcome{RunID: uuid.NewString(), Kind: kind, State: StateIdle}
	log := o.logger.WithFields(logrus.Fields{"run_id": out.RunID, "kind": kind})
	defer func() {
		o.observer.ObserveOutcome(kind.String(), string(out.State), time.Since(started))
	}()

	if !kind.Valid() {
		out.State = StateFailed
		return out, fmt.Errorf("unknown command kind %q", kind)
	}

	o.ledger.Load(ctx)
	out.Decision = o.gate.ShouldExecute(kind, o.now())
	o.observer.ObserveDecision(kind.String(), reasonStrings(out.Decision.Reasons))
	if !out.Decision.Allowed() {
		out.State = StateRejected
		log.WithField("reasons", out.Decision.Reasons).Info("Run rejected")
		return out, nil
	}
	out.State = StateAdmitted

	delay, err := o.jitter.Delay(ctx)
	out.Delay = delay
	if err != nil {
		out.State = StateFailed
		return out, fmt.Errorf("waiting before %s notification: %w", kind, err)
	}
	out.State = StateDelayed

	out.Message = o.messages.Resolve(kind, override)
	out.State = StateNotifying
	if err := o.notifier.Send(ctx, out.Message); err != nil {
		out.State = StateFailed
		log.WithError(err).Error("Failed to send notification")
		return out, fmt.Errorf("sending %s notification: %w", kind, err)
	}

	o.ledger.RecordExecution(ctx, kind, o.now())
	out.State = StateRecorded
	log.Infof("Work %s notification sent successfully", kind)
	return out, nil
}

func reasonStrings(rs []RejectReason) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, string(r))
	}
	return out
}

// IsCancelled reports whether err came from an interrupted wait.
func IsCancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
