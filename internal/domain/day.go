package domain

import (
	"fmt"
	"time"
)

// DayLayout is the layout of a canonical day key.
const DayLayout = "2006-01-02"

// Day is a canonical calendar-date key (YYYY-MM-DD).
// Tasks are placed, compared and grouped by Day, never by raw time values.
// The zero value means "no date".
type Day string

// DayOf returns the day key of t in t's own location.
func DayOf(t time.Time) Day {
	return Day(t.Format(DayLayout))
}

// ParseDay validates s and returns it as a Day.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DayOf(t), nil
}

// MustParseDay is like ParseDay but panics on invalid input.
// Intended for constants and tests.
func MustParseDay(s string) Day {
	d, err := ParseDay(s)
	if err != nil {
		panic(err)
	}
	return d
}

// IsZero reports whether d carries no date.
func (d Day) IsZero() bool {
	return d == ""
}

// Valid reports whether d is a well-formed day key.
func (d Day) Valid() bool {
	_, err := time.Parse(DayLayout, string(d))
	return err == nil
}

// String returns the day key.
func (d Day) String() string {
	return string(d)
}

// utc returns midnight UTC of d. Day arithmetic runs in UTC so that DST
// transitions never shift a day. An invalid key yields the zero time.
func (d Day) utc() time.Time {
	t, _ := time.Parse(DayLayout, string(d))
	return t
}

// StartOf returns the start of d in loc.
func (d Day) StartOf(loc *time.Location) time.Time {
	u := d.utc()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, loc)
}

// AddDays returns the day n days after d (n may be negative).
func (d Day) AddDays(n int) Day {
	return DayOf(d.utc().AddDate(0, 0, n))
}

// DaysUntil returns the number of calendar days from d to other.
// It is negative when other is before d.
func (d Day) DaysUntil(other Day) int {
	return int(other.utc().Sub(d.utc()).Hours() / 24)
}

// Before reports whether d is strictly before other.
func (d Day) Before(other Day) bool {
	return d < other
}

// After reports whether d is strictly after other.
func (d Day) After(other Day) bool {
	return d > other
}

// Weekday returns the day of the week of d.
func (d Day) Weekday() time.Weekday {
	return d.utc().Weekday()
}

// WeekStart returns the Monday of the ISO week containing d.
func (d Day) WeekStart() Day {
	offset := (int(d.Weekday()) + 6) % 7 // Monday = 0
	return d.AddDays(-offset)
}
