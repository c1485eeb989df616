package analytics

import (
	"fmt"
	"slices"
	"strings"

	"github.com/brk3/flexhabits/internal/calendar"
	"github.com/brk3/flexhabits/pkg/habit"
)

// IsDue reports whether a habit with the given frequency rule is due on date.
// Unknown frequencies are treated like daily habits.
func IsDue(kind habit.Frequency, customDays []int, date string) (bool, error) {
	wd, err := calendar.WeekdayIndex(date)
	if err != nil {
		return false, err
	}

	switch kind {
	case habit.Daily, habit.Flexible:
		return true, nil
	case habit.Weekdays:
		return wd >= 1 && wd <= 5, nil
	case habit.Custom:
		return slices.Contains(customDays, wd), nil
	default:
		return true, nil
	}
}

// CanTrack reports whether a completion may be logged for s on date.
func CanTrack(s habit.Schedule, date string) (bool, error) {
	if s.Status == habit.Archived {
		return false, nil
	}
	due, err := IsDue(s.Frequency, s.CustomDays, date)
	if err != nil || !due {
		return false, err
	}
	paused, err := IsPausedOn(s, date)
	if err != nil {
		return false, err
	}
	return !paused, nil
}

func FrequencyLabel(s habit.Schedule) string {
	switch s.Frequency {
	case habit.Daily:
		return "Every day"
	case habit.Weekdays:
		return "Weekdays (Mon-Fri)"
	case habit.Custom:
		days := slices.Clone(s.CustomDays)
		if len(days) == 0 {
			return "Custom days"
		}
		slices.Sort(days)
		names := make([]string, 0, len(days))
		for _, d := range days {
			names = append(names, calendar.DayShort(d))
		}
		return strings.Join(names, ", ")
	case habit.Flexible:
		target := s.FlexibleTarget
		if target <= 0 {
			target = habit.DefaultTarget
		}
		return fmt.Sprintf("%d times per week", target)
	default:
		return "Every day"
	}
}
