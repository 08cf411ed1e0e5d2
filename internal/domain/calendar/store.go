// internal/domain/calendar/store.go
package calendar

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the canonical key format of a holiday date.
const DateLayout = "2006-01-02"

// Source supplies raw date-text entries, one per holiday, header already removed.
type Source interface {
	Entries(ctx context.Context) ([]string, error)
}

// Store is an immutable set of holiday dates.
// A degraded store (zero value included) never reports a holiday.
type Store struct {
	holidays map[string]struct{}
	skipped  int
	degraded bool
}

// New builds a store from raw entries. Entries that do not normalize to a
// real calendar date are skipped.
func New(entries []string) *Store {
	s := &Store{holidays: make(map[string]struct{}, len(entries))}
	for _, e := range entries {
		key, ok := Normalize(e)
		if !ok {
			s.skipped++
			continue
		}
		s.holidays[key] = struct{}{}
	}
	return s
}

// Degraded returns a store that answers false for every date.
func Degraded() *Store {
	return &Store{degraded: true}
}

// IsHoliday reports whether the civil date of t (in t's own location) is a holiday.
func (s *Store) IsHoliday(t time.Time) bool {
	if s == nil || s.degraded {
		return false
	}
	_, ok := s.holidays[t.Format(DateLayout)]
	return ok
}

// Count is the number of distinct holidays loaded.
func (s *Store) Count() int {
	if s == nil {
		return 0
	}
	return len(s.holidays)
}

// Skipped is the number of entries that failed to normalize.
func (s *Store) Skipped() int {
	if s == nil {
		return 0
	}
	return s.skipped
}

func (s *Store) Degraded() bool { return s == nil || s.degraded }

// Normalize turns "YYYY/M/D", "YYYY-M-D" and their zero-padded forms into
// "YYYY-MM-DD". Impossible dates such as 2024/2/30 are rejected.
func Normalize(raw string) (string, bool) {
	raw = strings.TrimSpace(strings.Trim(raw, "\ufeff\""))
	if raw == "" {
		return "", false
	}
	parts := strings.FieldsFunc(raw, func(r rune) bool { return r == '/' || r == '-' })
	if len(parts) != 3 {
		return "", false
	}
	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return "", false
		}
		nums[i] = n
	}
	y, m, d := nums[0], nums[1], nums[2]
	if y < 1 || m < 1 || m > 12 || d < 1 {
		return "", false
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Day() != d || int(t.Month()) != m {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d), true
}

// Result is the outcome of loading a store from a Source. Err is set when the
// source failed; Store is then degraded but still safe to use.
type Result struct {
	Store *Store
	Err   error
}

func (r Result) Degraded() bool { return r.Err != nil }

// Load fetches entries from src and builds a store, degrading on failure.
func Load(ctx context.Context, src Source) Result {
	if src == nil {
		return Result{Store: Degraded(), Err: fmt.Errorf("no holiday source configured")}
	}
	entries, err := src.Entries(ctx)
	if err != nil {
		return Result{Store: Degraded(), Err: err}
	}
	return Result{Store: New(entries)}
}
