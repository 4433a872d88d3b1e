package domain

import (
	"fmt"
	"time"
)

// DayHours is one weekday's opening interval, minutes from midnight. Close is
// assumed same-day and strictly after Open; businesses open past midnight are
// out of scope.
type DayHours struct {
	OpenMinute  int
	CloseMinute int
	Closed      bool
}

// BusinessHours maps weekdays to opening intervals. A missing weekday counts
// as closed.
type BusinessHours map[time.Weekday]DayHours

// For returns the hours for a date's weekday. ok is false when the weekday is
// absent or marked closed.
func (bh BusinessHours) For(date time.Time) (DayHours, bool) {
	dh, found := bh[date.Weekday()]
	if !found || dh.Closed {
		return DayHours{}, false
	}
	return dh, true
}

// OpenAt reports whether the business is inside its opening interval at t
// (in t's own location).
func (bh BusinessHours) OpenAt(t time.Time) bool {
	dh, ok := bh.For(t)
	if !ok {
		return false
	}
	minute := t.Hour()*60 + t.Minute()
	return minute >= dh.OpenMinute && minute < dh.CloseMinute
}

// ParseClock converts "HH:MM" to minutes from midnight.
func ParseClock(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("parse clock %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("parse clock %q: out of range", s)
	}
	return h*60 + m, nil
}
