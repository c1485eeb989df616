package analytics

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/brk3/flexhabits/pkg/habit"
)

const maxTips = 5

type TipCategory string

const (
	TipMotivation  TipCategory = "motivation"
	TipStrategy    TipCategory = "strategy"
	TipInsight     TipCategory = "insight"
	TipCelebration TipCategory = "celebration"
)

type CoachingTip struct {
	ID       string      `json:"id"`
	Title    string      `json:"title"`
	Message  string      `json:"message"`
	Category TipCategory `json:"category"`
	Priority int         `json:"priority"`
}

// CoachingTips turns per-habit FlexStreaks into at most five rule-based
// prompts, highest priority (lowest number) first. streaks is keyed by habit ID.
func CoachingTips(habits []habit.Habit, streaks map[string]habit.FlexStreak, daysTracked int) []CoachingTip {
	var tips []CoachingTip

	if daysTracked < 7 {
		tips = append(tips, CoachingTip{
			ID:       "new-user",
			Title:    "Great start!",
			Message:  fmt.Sprintf("You've been tracking for %d days. It takes about 66 days to form a habit. You're on your way!", daysTracked),
			Category: TipMotivation,
			Priority: 1,
		})
	}

	var active []habit.Habit
	for _, h := range habits {
		if h.Status == habit.Active {
			active = append(active, h)
		}
	}

	weak := 0
	for _, h := range active {
		st, ok := streaks[h.ID]
		if !ok {
			continue
		}
		if st.Consistency30 < 40 {
			weak++
		}
		if st.Consistency30 >= 80 {
			tips = append(tips, CoachingTip{
				ID:       "strong-" + h.ID,
				Title:    h.Name + " is becoming automatic!",
				Message:  fmt.Sprintf("With %d%% consistency over 30 days, this habit is well on its way to becoming second nature.", st.Consistency30),
				Category: TipCelebration,
				Priority: 2,
			})
		}
		if st.Trend == habit.TrendDown && st.Consistency7 < 50 {
			tips = append(tips, CoachingTip{
				ID:       "declining-" + h.ID,
				Title:    h.Name + " needs attention",
				Message:  "Your consistency has been dropping. Try making it smaller, even a 2-minute version counts.",
				Category: TipStrategy,
				Priority: 1,
			})
		}
		if h.Cue == "" || h.Action == "" {
			tips = append(tips, CoachingTip{
				ID:       "intention-" + h.ID,
				Title:    "Double your success rate",
				Message:  fmt.Sprintf("Add an implementation intention to %q: \"After I [cue], I will [habit]\".", h.Name),
				Category: TipStrategy,
				Priority: 3,
			})
		}
		if st.CurrentStreak > 0 && st.CurrentStreak%7 == 6 {
			tips = append(tips, CoachingTip{
				ID:       "milestone-" + h.ID,
				Title:    "Almost at a milestone!",
				Message:  fmt.Sprintf("You're one day away from a %d-day streak for %s. Don't break the chain!", st.CurrentStreak+1, h.Name),
				Category: TipMotivation,
				Priority: 1,
			})
		}
	}

	if len(active) > 5 && weak > 2 {
		tips = append(tips, CoachingTip{
			ID:       "too-many",
			Title:    "Focus for better results",
			Message:  fmt.Sprintf("You have %d active habits but %d are below 40%% consistency. Consider pausing some to strengthen others.", len(active), weak),
			Category: TipStrategy,
			Priority: 1,
		})
	}

	switch {
	case daysTracked >= 66:
		tips = append(tips, CoachingTip{
			ID:       "sixty-six-days",
			Title:    "Automaticity milestone!",
			Message:  "66 days is the average time for a habit to become automatic. You've crossed that threshold!",
			Category: TipCelebration,
			Priority: 1,
		})
	case daysTracked >= 21 && daysTracked < 30:
		tips = append(tips, CoachingTip{
			ID:       "three-weeks",
			Title:    "3 weeks in!",
			Message:  fmt.Sprintf("You've been going for %d days. The real magic happens around day 66.", daysTracked),
			Category: TipInsight,
			Priority: 3,
		})
	}

	slices.SortStableFunc(tips, func(a, b CoachingTip) int {
		return cmp.Compare(a.Priority, b.Priority)
	})
	if len(tips) > maxTips {
		tips = tips[:maxTips]
	}
	return tips
}

// SuggestExperiment proposes a two-week timing experiment for a habit that
// sits between 30% and 80% consistency over 30 days.
func SuggestExperiment(h habit.Habit, st habit.FlexStreak) (habit.Experiment, bool) {
	if st.Consistency30 < 30 || st.Consistency30 > 80 {
		return habit.Experiment{}, false
	}
	return habit.Experiment{
		ID:           "exp-" + h.ID,
		HabitID:      h.ID,
		Title:        "Morning vs Evening",
		Description:  fmt.Sprintf("Try doing %q at a different time of day for 2 weeks and see if your consistency changes.", h.Name),
		DurationDays: 14,
		Variant:      "A",
	}, true
}
