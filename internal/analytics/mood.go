package analytics

import (
	"cmp"
	"math"
	"slices"

	"github.com/brk3/flexhabits/pkg/habit"
)

const (
	// MoodWindowDays is how far back the mood correlation looks.
	MoodWindowDays = 30
	// MinMoodDays is the fewest rated days worth correlating.
	MinMoodDays = 5

	maxCorrelations = 5
)

// MoodCorrelations compares, for each active habit, the average mood on
// days it was completed with the average on the other rated days. Callers
// pass the moods and completions of the window they care about. Habits
// completed on every rated day, or on none, are left out. The result is
// ordered by difference, largest first, and holds at most five entries.
func MoodCorrelations(habits []habit.Habit, completions []habit.Completion, moods []habit.Mood) []habit.MoodCorrelation {
	out := []habit.MoodCorrelation{}

	byDate := make(map[string]int, len(moods))
	for _, m := range moods {
		byDate[m.Date] = m.Rating
	}
	if len(byDate) < MinMoodDays {
		return out
	}

	for _, h := range habits {
		if h.Status != habit.Active {
			continue
		}
		done := map[string]bool{}
		for _, c := range completions {
			if c.HabitID == h.ID && c.Status == habit.Completed {
				done[c.Date] = true
			}
		}

		var withTotal, withCount, withoutTotal, withoutCount int
		for date, rating := range byDate {
			if done[date] {
				withTotal += rating
				withCount++
			} else {
				withoutTotal += rating
				withoutCount++
			}
		}
		if withCount == 0 || withoutCount == 0 {
			continue
		}

		avgWith := float64(withTotal) / float64(withCount)
		avgWithout := float64(withoutTotal) / float64(withoutCount)
		out = append(out, habit.MoodCorrelation{
			HabitID:             h.ID,
			HabitName:           h.Name,
			AvgMoodWithHabit:    roundTenth(avgWith),
			AvgMoodWithoutHabit: roundTenth(avgWithout),
			Difference:          roundTenth(avgWith - avgWithout),
		})
	}

	slices.SortStableFunc(out, func(a, b habit.MoodCorrelation) int {
		return cmp.Compare(b.Difference, a.Difference)
	})
	if len(out) > maxCorrelations {
		out = out[:maxCorrelations]
	}
	return out
}

// roundTenth rounds half up to one decimal place, so -0.25 becomes -0.2.
func roundTenth(x float64) float64 {
	return math.Floor(x*10+0.5) / 10
}
