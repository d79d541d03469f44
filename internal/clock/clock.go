// Package clock is the single authorized time source for the service.
// All calendar-day arithmetic lives here; nothing else in the codebase
// calls time.Now directly, so tamper-resistance and DST-safety hang off
// one abstraction.
package clock

import (
	"fmt"
	"time"
)

// DateLayout is the wire and storage format for calendar dates.
const DateLayout = "2006-01-02"

// Clock supplies the current instant. The production implementation is
// the server's own clock; tests inject a fixed one.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// System returns the real wall clock.
func System() Clock { return systemClock{} }

// Fixed returns a clock frozen at t.
func Fixed(t time.Time) Clock { return fixedClock{t} }

type fixedClock struct{ t time.Time }

func (f fixedClock) Now() time.Time { return f.t }

// Today returns the current calendar date in loc as YYYY-MM-DD.
func Today(c Clock, loc *time.Location) string {
	return c.Now().In(loc).Format(DateLayout)
}

// Yesterday returns Today minus one calendar day in loc.
func Yesterday(c Clock, loc *time.Location) string {
	return c.Now().In(loc).AddDate(0, 0, -1).Format(DateLayout)
}

// EpochDay converts a YYYY-MM-DD string to a whole number of days since
// the Unix epoch, anchored at UTC midnight. Differencing two epoch days
// is immune to daylight-saving discontinuities that local-time
// subtraction would introduce.
func EpochDay(date string) (int64, error) {
	t, err := time.ParseInLocation(DateLayout, date, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("invalid calendar date %q: %w", date, err)
	}
	return t.Unix() / 86400, nil
}

// DayDifference returns the integer number of calendar days from b to a
// (positive when a is later). It is antisymmetric:
// DayDifference(a, b) == -DayDifference(b, a).
func DayDifference(a, b string) (int, error) {
	da, err := EpochDay(a)
	if err != nil {
		return 0, err
	}
	db, err := EpochDay(b)
	if err != nil {
		return 0, err
	}
	return int(da - db), nil
}

// AddDays returns date shifted by n calendar days.
func AddDays(date string, n int) (string, error) {
	t, err := time.ParseInLocation(DateLayout, date, time.UTC)
	if err != nil {
		return "", fmt.Errorf("invalid calendar date %q: %w", date, err)
	}
	return t.AddDate(0, 0, n).Format(DateLayout), nil
}

// LoadLocation resolves an IANA zone name, falling back to UTC for an
// empty or unknown name.
func LoadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
