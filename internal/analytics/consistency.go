package analytics

import (
	"github.com/brk3/flexhabits/internal/calendar"
	"github.com/brk3/flexhabits/pkg/habit"
)

// ByDate indexes one habit's completion records by their date.
type ByDate map[string]habit.Completion

// Index builds a ByDate for the schedule, ignoring records that belong to
// other habits. Records with an empty habit ID are kept.
func Index(s habit.Schedule, completions []habit.Completion) ByDate {
	out := make(ByDate, len(completions))
	for _, c := range completions {
		if belongs(s, c) {
			out[c.Date] = c
		}
	}
	return out
}

func belongs(s habit.Schedule, c habit.Completion) bool {
	return s.ID == "" || c.HabitID == "" || c.HabitID == s.ID
}

// evaluable reports whether date counts toward consistency and streaks: the
// habit is due and neither the schedule nor the day's record marks it paused.
func evaluable(s habit.Schedule, byDate ByDate, date string) (bool, error) {
	due, err := IsDue(s.Frequency, s.CustomDays, date)
	if err != nil || !due {
		return false, err
	}
	paused, err := IsPausedOn(s, date)
	if err != nil || paused {
		return false, err
	}
	if c, ok := byDate[date]; ok && c.Status == habit.PausedRecord {
		return false, nil
	}
	return true, nil
}

// Consistency is the share of evaluable days in [start, end] that were
// completed, as a percentage rounded half up. No evaluable days yields 0.
func Consistency(s habit.Schedule, byDate ByDate, start, end string) (int, error) {
	days, err := calendar.DaysInRange(start, end)
	if err != nil {
		return 0, err
	}

	var due, done int
	for _, day := range days {
		ok, err := evaluable(s, byDate, day)
		if err != nil {
			return 0, err
		}
		if !ok {
			continue
		}
		due++
		if byDate[day].Status == habit.Completed {
			done++
		}
	}
	return percent(done, due), nil
}

// ConsistencyWindow runs Consistency over the windowDays days ending at ref.
func ConsistencyWindow(s habit.Schedule, byDate ByDate, windowDays int, ref string) (int, error) {
	if windowDays < 1 {
		if _, err := calendar.ParseDate(ref); err != nil {
			return 0, err
		}
		return 0, nil
	}
	start, err := calendar.AddDays(ref, -(windowDays - 1))
	if err != nil {
		return 0, err
	}
	return Consistency(s, byDate, start, ref)
}

func percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return (200*part + whole) / (2 * whole)
}
