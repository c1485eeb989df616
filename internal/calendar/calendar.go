// Package calendar does date arithmetic on canonical YYYY-MM-DD strings.
//
// Dates are parsed as naive calendar days pinned to UTC midnight so that
// adding days never crosses a DST transition and weekday lookups do not
// depend on the host timezone.
package calendar

import (
	"errors"
	"fmt"
	"time"
)

const layout = "2006-01-02"

var (
	ErrInvalidRange  = errors.New("invalid date range")
	ErrMalformedDate = errors.New("malformed date")
)

var dayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// FormatDate renders t's own calendar fields. It does not convert to UTC,
// so a local time just before midnight stays on its local day.
func FormatDate(t time.Time) string {
	y, m, d := t.Date()
	return fmt.Sprintf("%04d-%02d-%02d", y, int(m), d)
}

func Today(now time.Time) string {
	return FormatDate(now)
}

func ParseDate(s string) (time.Time, error) {
	if len(s) != len(layout) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, s)
	}
	t, err := time.ParseInLocation(layout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, s)
	}
	return t, nil
}

func AddDays(s string, n int) (string, error) {
	t, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return FormatDate(t.AddDate(0, 0, n)), nil
}

// DaysInRange lists every day from start to end inclusive, oldest first.
// An end before start is a caller bug and returns ErrInvalidRange.
func DaysInRange(start, end string) ([]string, error) {
	s, err := ParseDate(start)
	if err != nil {
		return nil, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return nil, err
	}
	if e.Before(s) {
		return nil, fmt.Errorf("%w: %s is before %s", ErrInvalidRange, end, start)
	}

	out := make([]string, 0, int(e.Sub(s).Hours()/24)+1)
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		out = append(out, FormatDate(d))
	}
	return out, nil
}

// DaysBetween is end minus start in whole days; negative when end is earlier.
func DaysBetween(start, end string) (int, error) {
	s, err := ParseDate(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return 0, err
	}
	return int(e.Sub(s).Hours() / 24), nil
}

// WeekdayIndex returns 0 for Sunday through 6 for Saturday.
func WeekdayIndex(s string) (int, error) {
	t, err := ParseDate(s)
	if err != nil {
		return 0, err
	}
	return int(t.Weekday()), nil
}

func DayName(i int) string {
	if i < 0 || i > 6 {
		return ""
	}
	return dayNames[i]
}

func DayShort(i int) string {
	name := DayName(i)
	if name == "" {
		return ""
	}
	return name[:3]
}
