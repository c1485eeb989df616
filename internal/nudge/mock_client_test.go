package nudge

import (
	"context"
	"fmt"

	"github.com/brk3/flexhabits/pkg/habit"
)

type mockClient struct {
	habits []habit.Habit
	// summary is keyed by habit id then date.
	summary map[string]map[string]*habit.HabitSummary
	err     error
}

func (f *mockClient) ListHabits(ctx context.Context) ([]habit.Habit, error) {
	return f.habits, f.err
}

func (f *mockClient) GetHabitSummary(ctx context.Context, id, date string) (*habit.HabitSummary, error) {
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.summary[id][date]
	if !ok {
		return nil, fmt.Errorf("no summary for %s on %s", id, date)
	}
	return s, nil
}
