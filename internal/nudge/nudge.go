package nudge

import (
	"context"
	"fmt"

	"github.com/brk3/flexhabits/internal/calendar"
	"github.com/brk3/flexhabits/internal/logger"
	"github.com/brk3/flexhabits/pkg/habit"
)

type Notifier interface {
	SendNudge(habits []AtRisk, date string) error
}

// AtRisk is a habit whose streak ends unless it is completed on Date.
type AtRisk struct {
	HabitID string
	Name    string
	Streak  int
}

// HabitsAtRisk returns the active habits that are due on date, not yet
// completed, and carried a streak of at least one through the day before.
func HabitsAtRisk(ctx context.Context, q Querier, date string) ([]AtRisk, error) {
	yesterday, err := calendar.AddDays(date, -1)
	if err != nil {
		return nil, err
	}
	habits, err := q.ListHabits(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing habits: %w", err)
	}

	var out []AtRisk
	for _, h := range habits {
		if h.Status != habit.Active {
			continue
		}
		today, err := q.GetHabitSummary(ctx, h.ID, date)
		if err != nil {
			return nil, fmt.Errorf("summary for %s: %w", h.ID, err)
		}
		if !today.DueToday || today.CompletedToday {
			continue
		}
		prev, err := q.GetHabitSummary(ctx, h.ID, yesterday)
		if err != nil {
			return nil, fmt.Errorf("summary for %s: %w", h.ID, err)
		}
		if prev.FlexStreak.CurrentStreak < 1 {
			continue
		}
		out = append(out, AtRisk{HabitID: h.ID, Name: h.Name, Streak: prev.FlexStreak.CurrentStreak})
	}
	return out, nil
}

// Nudge notifies about at-risk habits and reports how many there were.
// Nothing is sent when no habit is at risk.
func Nudge(ctx context.Context, q Querier, n Notifier, date string) (int, error) {
	atRisk, err := HabitsAtRisk(ctx, q, date)
	if err != nil {
		return 0, err
	}
	if len(atRisk) == 0 {
		logger.DebugContext(ctx, "No streaks at risk", "date", date)
		return 0, nil
	}
	logger.InfoContext(ctx, "Sending nudge", "date", date, "count", len(atRisk))
	if err := n.SendNudge(atRisk, date); err != nil {
		return 0, fmt.Errorf("sending nudge: %w", err)
	}
	return len(atRisk), nil
}
