package analytics

import (
	"github.com/brk3/flexhabits/internal/calendar"
	"github.com/brk3/flexhabits/pkg/habit"
)

const (
	// BaseHabitLimit is how many habits may be active at once.
	BaseHabitLimit = 3
	// UnlockedHabitLimit applies once SlotUnlocked holds.
	UnlockedHabitLimit = 4

	slotWindowDays   = 14
	slotUnlockTarget = 60
)

// SlotUnlocked reports whether the active habits, pooled together, reached
// 60% consistency over the 14 days ending at ref. Every evaluable day of
// every active habit counts once. No evaluable days means locked.
func SlotUnlocked(habits []habit.Habit, completions []habit.Completion, ref string) (bool, error) {
	start, err := calendar.AddDays(ref, -(slotWindowDays - 1))
	if err != nil {
		return false, err
	}
	days, err := calendar.DaysInRange(start, ref)
	if err != nil {
		return false, err
	}

	var due, done int
	for _, h := range habits {
		if h.Status != habit.Active {
			continue
		}
		byDate := Index(h.Schedule, completions)
		for _, day := range days {
			ok, err := evaluable(h.Schedule, byDate, day)
			if err != nil {
				return false, err
			}
			if !ok {
				continue
			}
			due++
			if byDate[day].Status == habit.Completed {
				done++
			}
		}
	}
	if due == 0 {
		return false, nil
	}
	return done*100 >= slotUnlockTarget*due, nil
}

// HabitLimit is the number of habits that may be active on ref.
func HabitLimit(habits []habit.Habit, completions []habit.Completion, ref string) (int, error) {
	unlocked, err := SlotUnlocked(habits, completions, ref)
	if err != nil {
		return 0, err
	}
	if unlocked {
		return UnlockedHabitLimit, nil
	}
	return BaseHabitLimit, nil
}
