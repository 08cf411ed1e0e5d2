package app

import (
	"context"
	"sync"
	"time"

	"worktime_notifier/internal/domain/execution"
	"worktime_notifier/internal/domain/notifier"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

var tokyo = mustLoad("Asia/Tokyo")

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// jstAt returns 2025-06-10 (a Tuesday, not a holiday) at hh:mm in Tokyo.
func jstAt(h, m int) time.Time {
	return time.Date(2025, 6, 10, h, m, 0, 0, tokyo)
}

func newTestLogger() (*logrus.Logger, *logtest.Hook) {
	l, hook := logtest.NewNullLogger()
	l.SetLevel(logrus.DebugLevel)
	return l, hook
}

type memRepo struct {
	mu      sync.Mutex
	rec     execution.Record
	has     bool
	loadErr error
	saveErr error
	saves   int
}

func (r *memRepo) Load(context.Context) (execution.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loadErr != nil {
		return execution.Record{}, r.loadErr
	}
	if !r.has {
		return execution.Record{}, execution.ErrRecordNotFound
	}
	return r.rec, nil
}

func (r *memRepo) Save(_ context.Context, rec execution.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.rec, r.has = rec, true
	r.saves++
	return nil
}

func (r *memRepo) Close() error { return nil }

func (r *memRepo) stored(k execution.Kind) (time.Time, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rec.Get(k)
}

type stubNotifier struct {
	mu      sync.Mutex
	sent    []string
	sendErr error
	conn    notifier.Connectivity
	connErr error
}

func (n *stubNotifier) Send(_ context.Context, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.sendErr != nil {
		return n.sendErr
	}
	n.sent = append(n.sent, text)
	return nil
}

func (n *stubNotifier) CheckConnectivity(context.Context) (notifier.Connectivity, error) {
	return n.conn, n.connErr
}

func (n *stubNotifier) calls() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.sent...)
}

type holidaySet map[string]bool

func (h holidaySet) IsHoliday(t time.Time) bool { return h[t.Format("2006-01-02")] }

type recordingObserver struct {
	decisions [][]string
	states    []string
}

func (o *recordingObserver) ObserveDecision(_ string, reasons []string) {
	o.decisions = append(o.decisions, reasons)
}

func (o *recordingObserver) ObserveOutcome(_ string, state string, _ time.Duration) {
	o.states = append(o.states, state)
}

func entriesWithReason(hook *logtest.Hook, reason RejectReason) int {
	n := 0
	for _, e := range hook.AllEntries() {
		if e.Data["reason"] == reason {
			n++
		}
	}
	return n
}
