package server

import (
	"fmt"
	"sort"
	"sync"

	"github.com/brk3/flexhabits/internal/storage"
	"github.com/brk3/flexhabits/pkg/habit"
)

type memStore struct {
	mu     sync.RWMutex
	habits map[string]habit.Habit
	comps  map[string]map[string]habit.Completion
	moods  map[string]habit.Mood

	// failCompletions, when set, is returned by PutCompletion.
	failCompletions error
}

func newMemStore() *memStore {
	return &memStore{
		habits: map[string]habit.Habit{},
		comps:  map[string]map[string]habit.Completion{},
		moods:  map[string]habit.Mood{},
	}
}

func (m *memStore) PutHabit(h habit.Habit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.habits[h.ID] = h
	return nil
}

func (m *memStore) GetHabit(id string) (habit.Habit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	h, ok := m.habits[id]
	if !ok {
		return habit.Habit{}, fmt.Errorf("habit %q: %w", id, storage.ErrNotFound)
	}
	return h, nil
}

func (m *memStore) ListHabits() ([]habit.Habit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []habit.Habit{}
	for _, h := range m.habits {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt < out[j].CreatedAt
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *memStore) DeleteHabit(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.habits[id]; !ok {
		return fmt.Errorf("habit %q: %w", id, storage.ErrNotFound)
	}
	delete(m.habits, id)
	delete(m.comps, id)
	return nil
}

func (m *memStore) PutCompletion(c habit.Completion) (habit.Completion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failCompletions != nil {
		return c, m.failCompletions
	}
	if _, ok := m.habits[c.HabitID]; !ok {
		return c, fmt.Errorf("habit %q: %w", c.HabitID, storage.ErrNotFound)
	}
	byDate, ok := m.comps[c.HabitID]
	if !ok {
		byDate = map[string]habit.Completion{}
		m.comps[c.HabitID] = byDate
	}
	if prev, ok := byDate[c.Date]; ok {
		c.ID = prev.ID
	}
	byDate[c.Date] = c
	return c, nil
}

func (m *memStore) ListCompletions(habitID, start, end string) ([]habit.Completion, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.collect(start, end, m.comps[habitID]), nil
}

func (m *memStore) ListCompletionsInRange(start, end string) ([]habit.Completion, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var all []map[string]habit.Completion
	for _, byDate := range m.comps {
		all = append(all, byDate)
	}
	return m.collect(start, end, all...), nil
}

func (m *memStore) collect(start, end string, sets ...map[string]habit.Completion) []habit.Completion {
	out := []habit.Completion{}
	for _, byDate := range sets {
		for _, c := range byDate {
			if storage.InRange(c.Date, start, end) {
				out = append(out, c)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].HabitID < out[j].HabitID
	})
	return out
}

func (m *memStore) PutMood(mood habit.Mood) (habit.Mood, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if mood.Date == "" {
		return mood, fmt.Errorf("mood date is required")
	}
	if prev, ok := m.moods[mood.Date]; ok {
		mood.ID = prev.ID
		mood.CreatedAt = prev.CreatedAt
	}
	m.moods[mood.Date] = mood
	return mood, nil
}

func (m *memStore) ListMoods(start, end string) ([]habit.Mood, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []habit.Mood{}
	for _, mood := range m.moods {
		if storage.InRange(mood.Date, start, end) {
			out = append(out, mood)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (m *memStore) Close() error {
	return nil
}

var _ storage.Store = (*memStore)(nil)
