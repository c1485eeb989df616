package storage

import (
	"errors"

	"github.com/brk3/flexhabits/pkg/habit"
)

var ErrNotFound = errors.New("not found")

// Store persists habits, their completion records and daily moods. There is
// at most one completion per habit and date and one mood per date; the Put
// calls replace any existing record for the key and keep its ID.
//
// Empty start or end bounds in the List calls are open-ended. Results are
// ordered by date, oldest first.
type Store interface {
	PutHabit(h habit.Habit) error
	GetHabit(id string) (habit.Habit, error)
	ListHabits() ([]habit.Habit, error)
	DeleteHabit(id string) error

	PutCompletion(c habit.Completion) (habit.Completion, error)
	ListCompletions(habitID, start, end string) ([]habit.Completion, error)
	ListCompletionsInRange(start, end string) ([]habit.Completion, error)

	PutMood(m habit.Mood) (habit.Mood, error)
	ListMoods(start, end string) ([]habit.Mood, error)

	Close() error
}

// InRange reports whether date lies within the optional [start, end] bounds.
// Canonical dates order lexically.
func InRange(date, start, end string) bool {
	if start != "" && date < start {
		return false
	}
	if end != "" && date > end {
		return false
	}
	return true
}
