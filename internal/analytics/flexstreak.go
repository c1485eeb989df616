package analytics

import (
	"github.com/brk3/flexhabits/internal/calendar"
	"github.com/brk3/flexhabits/pkg/habit"
)

// Trend compares the 7 days ending at ref with the 7 days before them.
func Trend(s habit.Schedule, byDate ByDate, ref string) (habit.Trend, int, int, error) {
	recent, err := ConsistencyWindow(s, byDate, 7, ref)
	if err != nil {
		return "", 0, 0, err
	}
	priorStart, err := calendar.AddDays(ref, -13)
	if err != nil {
		return "", 0, 0, err
	}
	priorEnd, err := calendar.AddDays(ref, -7)
	if err != nil {
		return "", 0, 0, err
	}
	prior, err := Consistency(s, byDate, priorStart, priorEnd)
	if err != nil {
		return "", 0, 0, err
	}
	return ClassifyTrend(recent, prior), recent, prior, nil
}

// Compute derives the full FlexStreak for one habit as of ref. Completion
// records for other habits are ignored.
func Compute(s habit.Schedule, completions []habit.Completion, ref string, opts ...StreakOption) (habit.FlexStreak, error) {
	byDate := Index(s, completions)

	trend, c7, _, err := Trend(s, byDate, ref)
	if err != nil {
		return habit.FlexStreak{}, err
	}
	c30, err := ConsistencyWindow(s, byDate, 30, ref)
	if err != nil {
		return habit.FlexStreak{}, err
	}
	c90, err := ConsistencyWindow(s, byDate, 90, ref)
	if err != nil {
		return habit.FlexStreak{}, err
	}
	streaks, err := Streaks(s, byDate, ref, opts...)
	if err != nil {
		return habit.FlexStreak{}, err
	}

	total := 0
	for _, c := range completions {
		if belongs(s, c) && c.Status == habit.Completed {
			total++
		}
	}

	return habit.FlexStreak{
		Consistency7:     c7,
		Consistency30:    c30,
		Consistency90:    c90,
		CurrentStreak:    streaks.Current,
		BestStreak:       streaks.Best,
		TotalCompletions: total,
		Trend:            trend,
		Strength:         StrengthLabel(c30),
		StrengthColor:    StrengthColor(c30),
	}, nil
}

// Summarize wraps Compute with the per-day view a caller shows for h on date.
func Summarize(h habit.Habit, completions []habit.Completion, date string, opts ...StreakOption) (habit.HabitSummary, error) {
	fs, err := Compute(h.Schedule, completions, date, opts...)
	if err != nil {
		return habit.HabitSummary{}, err
	}
	due, err := IsDue(h.Frequency, h.CustomDays, date)
	if err != nil {
		return habit.HabitSummary{}, err
	}
	completed := false
	for _, c := range completions {
		if belongs(h.Schedule, c) && c.Date == date && c.Status == habit.Completed {
			completed = true
			break
		}
	}
	return habit.HabitSummary{
		HabitID:        h.ID,
		Name:           h.Name,
		FrequencyLabel: FrequencyLabel(h.Schedule),
		Date:           date,
		DueToday:       due,
		CompletedToday: completed,
		FlexStreak:     fs,
	}, nil
}
