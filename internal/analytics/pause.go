package analytics

import (
	"time"

	"github.com/brk3/flexhabits/internal/calendar"
	"github.com/brk3/flexhabits/pkg/habit"
)

// IsPausedOn reports whether date falls inside the schedule's pause window.
// The end date is inclusive for the whole day. A paused schedule with no end
// date is paused indefinitely.
func IsPausedOn(s habit.Schedule, date string) (bool, error) {
	target, err := calendar.ParseDate(date)
	if err != nil {
		return false, err
	}
	if s.Status != habit.Paused {
		return false, nil
	}
	if s.PauseEndDate == "" {
		return true, nil
	}
	end, err := calendar.ParseDate(s.PauseEndDate)
	if err != nil {
		return false, err
	}
	return !target.After(end), nil
}

// IsPauseExpired reports whether now is past the end of the pauseEndDate day,
// judged in now's own location. An empty end date counts as expired.
func IsPauseExpired(pauseEndDate string, now time.Time) (bool, error) {
	if pauseEndDate == "" {
		return true, nil
	}
	end, err := calendar.ParseDate(pauseEndDate)
	if err != nil {
		return false, err
	}
	today, err := calendar.ParseDate(calendar.Today(now))
	if err != nil {
		return false, err
	}
	return today.After(end), nil
}

// ResumeExpired returns copies of the paused habits whose pause has run out,
// flipped back to active. Open-ended pauses only end by an explicit resume.
// The input slice is left untouched.
func ResumeExpired(habits []habit.Habit, now time.Time) ([]habit.Habit, error) {
	var out []habit.Habit
	for _, h := range habits {
		if h.Status != habit.Paused || h.PauseEndDate == "" {
			continue
		}
		expired, err := IsPauseExpired(h.PauseEndDate, now)
		if err != nil {
			return nil, err
		}
		if !expired {
			continue
		}
		h.Status = habit.Active
		h.PauseEndDate = ""
		h.UpdatedAt = now.Unix()
		out = append(out, h)
	}
	return out, nil
}
