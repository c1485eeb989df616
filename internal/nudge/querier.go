package nudge

import (
	"context"

	"github.com/brk3/flexhabits/internal/analytics"
	"github.com/brk3/flexhabits/internal/storage"
	"github.com/brk3/flexhabits/pkg/habit"
)

// Querier is satisfied by apiclient.Client for remote use and by
// StoreQuerier inside the server process.
type Querier interface {
	ListHabits(ctx context.Context) ([]habit.Habit, error)
	GetHabitSummary(ctx context.Context, id, date string) (*habit.HabitSummary, error)
}

type StoreQuerier struct {
	Store        storage.Store
	LookbackDays int
}

func (q *StoreQuerier) ListHabits(_ context.Context) ([]habit.Habit, error) {
	return q.Store.ListHabits()
}

func (q *StoreQuerier) GetHabitSummary(_ context.Context, id, date string) (*habit.HabitSummary, error) {
	h, err := q.Store.GetHabit(id)
	if err != nil {
		return nil, err
	}
	comps, err := q.Store.ListCompletions(id, "", date)
	if err != nil {
		return nil, err
	}
	s, err := analytics.Summarize(h, comps, date, analytics.WithLookback(q.LookbackDays))
	if err != nil {
		return nil, err
	}
	return &s, nil
}
