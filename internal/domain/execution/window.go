// internal/domain/execution/window.go
package execution

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Clock is a time of day at minute granularity.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses "HH:MM".
func ParseClock(s string) (Clock, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return Clock{}, fmt.Errorf("invalid clock %q: want HH:MM", s)
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return Clock{}, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return Clock{}, fmt.Errorf("invalid minute in %q", s)
	}
	return Clock{Hour: hour, Minute: minute}, nil
}

func (c Clock) minutes() int { return c.Hour*60 + c.Minute }

func (c Clock) String() string { return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute) }

// Window is an admission window. Both First and Last are inclusive: the whole
// Last minute is still inside the window, so [18:00, 18:59] admits 18:59:59
// but not 19:00.
type Window struct {
	First Clock
	Last  Clock
}

// ParseWindow parses "HH:MM-HH:MM".
func ParseWindow(s string) (Window, error) {
	a, b, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return Window{}, fmt.Errorf("invalid window %q: want HH:MM-HH:MM", s)
	}
	first, err := ParseClock(a)
	if err != nil {
		return Window{}, fmt.Errorf("invalid window %q: %w", s, err)
	}
	last, err := ParseClock(b)
	if err != nil {
		return Window{}, fmt.Errorf("invalid window %q: %w", s, err)
	}
	if last.minutes() < first.minutes() {
		return Window{}, fmt.Errorf("invalid window %q: end before start", s)
	}
	return Window{First: first, Last: last}, nil
}

// Contains reports whether now, converted to loc, is inside the window.
func (w Window) Contains(now time.Time, loc *time.Location) bool {
	t := now.In(loc)
	m := t.Hour()*60 + t.Minute()
	return m >= w.First.minutes() && m <= w.Last.minutes()
}

func (w Window) String() string { return w.First.String() + "-" + w.Last.String() }

var (
	DefaultStartWindow = Window{First: Clock{8, 30}, Last: Clock{9, 30}}
	DefaultEndWindow   = Window{First: Clock{18, 0}, Last: Clock{18, 59}}
)
