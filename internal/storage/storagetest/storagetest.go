// Package storagetest holds the behaviour every storage.Store must share.
package storagetest

import (
	"errors"
	"testing"

	"github.com/brk3/flexhabits/internal/storage"
	"github.com/brk3/flexhabits/pkg/habit"
)

// Run exercises a Store implementation. newStore must return an empty store.
func Run(t *testing.T, newStore func(t *testing.T) storage.Store) {
	t.Run("ListHabitsEmpty", func(t *testing.T) { testListHabitsEmpty(t, newStore(t)) })
	t.Run("HabitRoundTrip", func(t *testing.T) { testHabitRoundTrip(t, newStore(t)) })
	t.Run("GetHabitMissing", func(t *testing.T) { testGetHabitMissing(t, newStore(t)) })
	t.Run("CompletionUpsert", func(t *testing.T) { testCompletionUpsert(t, newStore(t)) })
	t.Run("CompletionUnknownHabit", func(t *testing.T) { testCompletionUnknownHabit(t, newStore(t)) })
	t.Run("CompletionRanges", func(t *testing.T) { testCompletionRanges(t, newStore(t)) })
	t.Run("DeleteCascades", func(t *testing.T) { testDeleteCascades(t, newStore(t)) })
	t.Run("MoodUpsert", func(t *testing.T) { testMoodUpsert(t, newStore(t)) })
	t.Run("MoodRanges", func(t *testing.T) { testMoodRanges(t, newStore(t)) })
}

func putHabit(t *testing.T, st storage.Store, id string, created int64) habit.Habit {
	t.Helper()
	h := habit.Habit{
		Schedule: habit.Schedule{
			ID:           id,
			Frequency:    habit.Custom,
			CustomDays:   []int{1, 3, 5},
			Status:       habit.Paused,
			PauseEndDate: "2026-02-20",
		},
		Name:      id,
		Cue:       "after coffee",
		Action:    "read a page",
		CreatedAt: created,
		UpdatedAt: created,
	}
	if err := st.PutHabit(h); err != nil {
		t.Fatalf("PutHabit failed: %v", err)
	}
	return h
}

func putCompletion(t *testing.T, st storage.Store, id, habitID, date string, status habit.CompletionStatus) habit.Completion {
	t.Helper()
	c, err := st.PutCompletion(habit.Completion{ID: id, HabitID: habitID, Date: date, Status: status})
	if err != nil {
		t.Fatalf("PutCompletion failed: %v", err)
	}
	return c
}

func testListHabitsEmpty(t *testing.T, st storage.Store) {
	habits, err := st.ListHabits()
	if err != nil {
		t.Fatalf("ListHabits failed: %v", err)
	}
	if len(habits) != 0 {
		t.Fatalf("expected empty list, got %d items", len(habits))
	}
}

func testHabitRoundTrip(t *testing.T, st storage.Store) {
	want := putHabit(t, st, "guitar", 200)
	putHabit(t, st, "exercise", 100)

	got, err := st.GetHabit("guitar")
	if err != nil {
		t.Fatalf("GetHabit failed: %v", err)
	}
	if got.Name != want.Name || got.Frequency != want.Frequency || got.Status != want.Status ||
		got.PauseEndDate != want.PauseEndDate || got.Cue != want.Cue || got.Action != want.Action {
		t.Fatalf("got %+v want %+v", got, want)
	}
	if len(got.CustomDays) != 3 || got.CustomDays[2] != 5 {
		t.Fatalf("custom days %v", got.CustomDays)
	}

	habits, err := st.ListHabits()
	if err != nil {
		t.Fatalf("ListHabits failed: %v", err)
	}
	if len(habits) != 2 || habits[0].ID != "exercise" || habits[1].ID != "guitar" {
		t.Fatalf("expected habits ordered by creation, got %+v", habits)
	}

	want.Status = habit.Active
	want.PauseEndDate = ""
	if err := st.PutHabit(want); err != nil {
		t.Fatalf("PutHabit update failed: %v", err)
	}
	got, _ = st.GetHabit("guitar")
	if got.Status != habit.Active || got.PauseEndDate != "" {
		t.Fatalf("update not applied: %+v", got)
	}
}

func testGetHabitMissing(t *testing.T, st storage.Store) {
	_, err := st.GetHabit("nope")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if err := st.DeleteHabit("nope"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("delete err = %v, want ErrNotFound", err)
	}
}

func testCompletionUpsert(t *testing.T, st storage.Store) {
	putHabit(t, st, "guitar", 1)
	first := putCompletion(t, st, "c1", "guitar", "2026-02-12", habit.Missed)
	second := putCompletion(t, st, "c2", "guitar", "2026-02-12", habit.Completed)

	if second.ID != first.ID {
		t.Fatalf("upsert changed id from %s to %s", first.ID, second.ID)
	}
	comps, err := st.ListCompletions("guitar", "", "")
	if err != nil {
		t.Fatalf("ListCompletions failed: %v", err)
	}
	if len(comps) != 1 || comps[0].Status != habit.Completed || comps[0].ID != "c1" {
		t.Fatalf("got %+v", comps)
	}
}

func testCompletionUnknownHabit(t *testing.T, st storage.Store) {
	_, err := st.PutCompletion(habit.Completion{ID: "c1", HabitID: "ghost", Date: "2026-02-12", Status: habit.Completed})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func testCompletionRanges(t *testing.T, st storage.Store) {
	putHabit(t, st, "guitar", 1)
	putHabit(t, st, "exercise", 2)
	putCompletion(t, st, "g1", "guitar", "2026-02-10", habit.Completed)
	putCompletion(t, st, "g2", "guitar", "2026-02-12", habit.Completed)
	putCompletion(t, st, "g3", "guitar", "2026-03-01", habit.Skipped)
	putCompletion(t, st, "e1", "exercise", "2026-02-11", habit.PausedRecord)

	comps, err := st.ListCompletions("guitar", "2026-02-11", "2026-02-28")
	if err != nil {
		t.Fatalf("ListCompletions failed: %v", err)
	}
	if len(comps) != 1 || comps[0].ID != "g2" {
		t.Fatalf("got %+v", comps)
	}

	comps, err = st.ListCompletions("guitar", "2026-02-12", "")
	if err != nil {
		t.Fatalf("ListCompletions failed: %v", err)
	}
	if len(comps) != 2 || comps[0].Date != "2026-02-12" || comps[1].Date != "2026-03-01" {
		t.Fatalf("got %+v", comps)
	}

	all, err := st.ListCompletionsInRange("2026-02-10", "2026-02-12")
	if err != nil {
		t.Fatalf("ListCompletionsInRange failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 completions, got %+v", all)
	}
	for i, want := range []string{"2026-02-10", "2026-02-11", "2026-02-12"} {
		if all[i].Date != want {
			t.Fatalf("completion %d date %s want %s", i, all[i].Date, want)
		}
	}

	none, err := st.ListCompletions("exercise", "2026-03-01", "")
	if err != nil {
		t.Fatalf("ListCompletions failed: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no completions, got %+v", none)
	}
}

func testDeleteCascades(t *testing.T, st storage.Store) {
	putHabit(t, st, "guitar", 1)
	putHabit(t, st, "exercise", 2)
	putCompletion(t, st, "g1", "guitar", "2026-02-10", habit.Completed)
	putCompletion(t, st, "e1", "exercise", "2026-02-10", habit.Completed)

	if err := st.DeleteHabit("guitar"); err != nil {
		t.Fatalf("DeleteHabit failed: %v", err)
	}
	if _, err := st.GetHabit("guitar"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	comps, err := st.ListCompletions("guitar", "", "")
	if err != nil {
		t.Fatalf("ListCompletions failed: %v", err)
	}
	if len(comps) != 0 {
		t.Fatalf("expected completions to be deleted, got %+v", comps)
	}
	all, _ := st.ListCompletionsInRange("", "")
	if len(all) != 1 || all[0].HabitID != "exercise" {
		t.Fatalf("other habit affected: %+v", all)
	}
}

func putMood(t *testing.T, st storage.Store, id, date string, rating int) habit.Mood {
	t.Helper()
	m, err := st.PutMood(habit.Mood{ID: id, Date: date, Rating: rating, CreatedAt: 100})
	if err != nil {
		t.Fatalf("PutMood failed: %v", err)
	}
	return m
}

func testMoodUpsert(t *testing.T, st storage.Store) {
	first := putMood(t, st, "m1", "2026-02-12", 2)
	second, err := st.PutMood(habit.Mood{ID: "m2", Date: "2026-02-12", Rating: 5, Note: "slept well", CreatedAt: 200})
	if err != nil {
		t.Fatalf("PutMood failed: %v", err)
	}
	if second.ID != first.ID || second.CreatedAt != 100 {
		t.Fatalf("upsert changed identity: %+v", second)
	}

	moods, err := st.ListMoods("", "")
	if err != nil {
		t.Fatalf("ListMoods failed: %v", err)
	}
	if len(moods) != 1 || moods[0].ID != "m1" || moods[0].Rating != 5 || moods[0].Note != "slept well" {
		t.Fatalf("got %+v", moods)
	}

	if _, err := st.PutMood(habit.Mood{ID: "m3", Rating: 3}); err == nil {
		t.Fatal("expected error for a mood without a date")
	}
}

func testMoodRanges(t *testing.T, st storage.Store) {
	putMood(t, st, "a", "2026-02-12", 4)
	putMood(t, st, "b", "2026-01-31", 3)
	putMood(t, st, "c", "2026-02-01", 1)

	moods, err := st.ListMoods("2026-02-01", "2026-02-12")
	if err != nil {
		t.Fatalf("ListMoods failed: %v", err)
	}
	if len(moods) != 2 || moods[0].Date != "2026-02-01" || moods[1].Date != "2026-02-12" {
		t.Fatalf("got %+v", moods)
	}

	moods, err = st.ListMoods("", "2026-01-31")
	if err != nil {
		t.Fatalf("ListMoods failed: %v", err)
	}
	if len(moods) != 1 || moods[0].ID != "b" {
		t.Fatalf("got %+v", moods)
	}
}
