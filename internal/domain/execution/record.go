// internal/domain/execution/record.go
package execution

import "time"

// Record holds the last successful execution instant per kind.
// A nil field means the kind has never run.
type Record struct {
	Start *time.Time
	End   *time.Time
}

// Get returns the timestamp stored for kind.
func (r Record) Get(k Kind) (time.Time, bool) {
	var p *time.Time
	switch k {
	case KindStart:
		p = r.Start
	case KindEnd:
		p = r.End
	}
	if p == nil {
		return time.Time{}, false
	}
	return *p, true
}

// With returns a copy of r with kind set to at. The timestamp only moves
// forward: if at is not strictly later than the stored instant, r is returned
// unchanged and advanced is false.
func (r Record) With(k Kind, at time.Time) (out Record, advanced bool) {
	if prev, ok := r.Get(k); ok && !at.After(prev) {
		return r, false
	}
	out = r
	t := at
	switch k {
	case KindStart:
		out.Start = &t
	case KindEnd:
		out.End = &t
	default:
		return r, false
	}
	return out, true
}

// IsEmpty reports whether no kind has ever been recorded.
func (r Record) IsEmpty() bool {
	return r.Start == nil && r.End == nil
}

// SameDay reports whether a and b fall on the same civil date in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}
