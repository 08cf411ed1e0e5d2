package app

import (
	"testing"
	"time"

	"worktime_notifier/internal/domain/execution"

	"github.com/stretchr/testify/assert"
)

type executedSet map[execution.Kind]bool

func (e executedSet) WasExecutedToday(k execution.Kind, _ time.Time) bool { return e[k] }

func defaultGateConfig() GateConfig {
	return GateConfig{
		Location: tokyo,
		Windows: map[execution.Kind]execution.Window{
			execution.KindStart: execution.DefaultStartWindow,
			execution.KindEnd:   execution.DefaultEndWindow,
		},
	}
}

func TestAdmissionGate_Windows(t *testing.T) {
	logger, _ := newTestLogger()
	gate := NewAdmissionGate(defaultGateConfig(), holidaySet{}, executedSet{}, logger)

	tests := []struct {
		kind execution.Kind
		h, m int
		want bool
	}{
		{execution.KindStart, 8, 29, false},
		{execution.KindStart, 8, 30, true},
		{execution.KindStart, 9, 30, true},
		{execution.KindStart, 9, 31, false},
		{execution.KindEnd, 17, 59, false},
		{execution.KindEnd, 18, 0, true},
		{execution.KindEnd, 18, 59, true},
		{execution.KindEnd, 19, 0, false},
		{execution.KindEnd, 8, 45, false},
		{execution.KindStart, 18, 15, false},
	}
	for _, tt := range tests {
		d := gate.ShouldExecute(tt.kind, jstAt(tt.h, tt.m))
		assert.Equal(t, tt.want, d.Allowed(), "%s at %02d:%02d", tt.kind, tt.h, tt.m)
		if !tt.want {
			assert.Equal(t, []RejectReason{ReasonOutsideWindow}, d.Reasons)
		}
	}

	// Every minute of the 18:xx hour is admitted for End.
	for m := 0; m < 60; m++ {
		assert.True(t, gate.ShouldExecute(execution.KindEnd, jstAt(18, m)).Allowed(), "18:%02d", m)
	}
}

func TestAdmissionGate_ConvertsToReferenceZone(t *testing.T) {
	logger, _ := newTestLogger()
	gate := NewAdmissionGate(defaultGateConfig(), holidaySet{}, executedSet{}, logger)

	// 23:45 UTC on 06-09 is 08:45 JST on 06-10.
	d := gate.ShouldExecute(execution.KindStart, time.Date(2025, 6, 9, 23, 45, 0, 0, time.UTC))
	assert.True(t, d.Allowed())
	assert.Equal(t, tokyo, d.At.Location())
}

func TestAdmissionGate_Holiday(t *testing.T) {
	logger, hook := newTestLogger()
	gate := NewAdmissionGate(defaultGateConfig(), holidaySet{"2025-06-10": true}, executedSet{}, logger)

	d := gate.ShouldExecute(execution.KindStart, jstAt(8, 45))
	assert.False(t, d.Allowed())
	assert.Equal(t, []RejectReason{ReasonHoliday}, d.Reasons)
	assert.Equal(t, 1, entriesWithReason(hook, ReasonHoliday))

	assert.True(t, gate.ShouldExecute(execution.KindStart, jstAt(8, 45).AddDate(0, 0, 1)).Allowed())
}

func TestAdmissionGate_Duplicate(t *testing.T) {
	logger, hook := newTestLogger()
	gate := NewAdmissionGate(defaultGateConfig(), holidaySet{}, executedSet{execution.KindStart: true}, logger)

	d := gate.ShouldExecute(execution.KindStart, jstAt(8, 50))
	assert.Equal(t, []RejectReason{ReasonDuplicate}, d.Reasons)
	assert.Equal(t, 1, entriesWithReason(hook, ReasonDuplicate))

	assert.True(t, gate.ShouldExecute(execution.KindEnd, jstAt(18, 10)).Allowed(), "slots are per kind")
}

func TestAdmissionGate_ReportsEveryFailingCheck(t *testing.T) {
	logger, hook := newTestLogger()
	cfg := defaultGateConfig()
	cfg.ClosedWeekdays = []time.Weekday{time.Tuesday}
	gate := NewAdmissionGate(cfg, holidaySet{"2025-06-10": true}, executedSet{execution.KindStart: true}, logger)

	d := gate.ShouldExecute(execution.KindStart, jstAt(7, 0))
	assert.False(t, d.Allowed())
	assert.Equal(t, []RejectReason{ReasonOutsideWindow, ReasonHoliday, ReasonClosedWeekday, ReasonDuplicate}, d.Reasons)
	for _, r := range d.Reasons {
		assert.True(t, d.Has(r))
		assert.Equal(t, 1, entriesWithReason(hook, r), string(r))
	}
}

func TestAdmissionGate_ClosedWeekdays(t *testing.T) {
	logger, _ := newTestLogger()
	cfg := defaultGateConfig()
	cfg.ClosedWeekdays = []time.Weekday{time.Saturday, time.Sunday}
	gate := NewAdmissionGate(cfg, holidaySet{}, executedSet{}, logger)

	saturday := time.Date(2025, 6, 14, 8, 45, 0, 0, tokyo)
	assert.Equal(t, []RejectReason{ReasonClosedWeekday}, gate.ShouldExecute(execution.KindStart, saturday).Reasons)
	assert.True(t, gate.ShouldExecute(execution.KindStart, jstAt(8, 45)).Allowed())
}

func TestAdmissionGate_UnknownKindIsOutsideWindow(t *testing.T) {
	logger, _ := newTestLogger()
	gate := NewAdmissionGate(defaultGateConfig(), nil, nil, logger)
	d := gate.ShouldExecute(execution.Kind("lunch"), jstAt(12, 0))
	assert.True(t, d.Has(ReasonOutsideWindow))
}
