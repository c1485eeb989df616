package analytics

import (
	"testing"

	"github.com/brk3/flexhabits/pkg/habit"
)

func withStatus(t *testing.T, habitID string, status habit.CompletionStatus, ago ...int) []habit.Completion {
	t.Helper()
	out := make([]habit.Completion, 0, len(ago))
	for _, n := range ago {
		out = append(out, habit.Completion{HabitID: habitID, Date: daysAgo(t, refDate, n), Status: status})
	}
	return out
}

func TestSlotUnlocked(t *testing.T) {
	paused := activeHabit("b")
	paused.Status = habit.Paused

	tests := []struct {
		name        string
		habits      []habit.Habit
		completions []habit.Completion
		want        bool
	}{
		{
			// 6 of 10 evaluable days.
			name:   "sixty percent unlocks",
			habits: []habit.Habit{activeHabit("a")},
			completions: append(withStatus(t, "a", habit.PausedRecord, span(0, 3)...),
				withStatus(t, "a", habit.Completed, span(4, 9)...)...),
			want: true,
		},
		{
			// 10 of 17 pooled evaluable days, 58.8%.
			name:   "just under sixty stays locked",
			habits: []habit.Habit{activeHabit("a"), activeHabit("b")},
			completions: append(withStatus(t, "a", habit.Completed, span(0, 9)...),
				withStatus(t, "b", habit.PausedRecord, span(0, 10)...)...),
			want: false,
		},
		{
			name:        "perfect fortnight",
			habits:      []habit.Habit{activeHabit("a")},
			completions: withStatus(t, "a", habit.Completed, span(0, 13)...),
			want:        true,
		},
		{
			name:        "only days before the window",
			habits:      []habit.Habit{activeHabit("a")},
			completions: withStatus(t, "a", habit.Completed, span(14, 27)...),
			want:        false,
		},
		{
			name:        "paused habits do not count",
			habits:      []habit.Habit{activeHabit("a"), paused},
			completions: append(withStatus(t, "a", habit.Completed, span(0, 7)...), withStatus(t, "b", habit.Completed, span(0, 13)...)...),
			want:        false,
		},
		{
			name:        "no active habits",
			habits:      []habit.Habit{paused},
			completions: withStatus(t, "b", habit.Completed, span(0, 13)...),
			want:        false,
		},
		{
			name:        "no evaluable days",
			habits:      []habit.Habit{activeHabit("a")},
			completions: withStatus(t, "a", habit.PausedRecord, span(0, 13)...),
			want:        false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SlotUnlocked(tt.habits, tt.completions, refDate)
			if err != nil {
				t.Fatalf("SlotUnlocked failed: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %v want %v", got, tt.want)
			}
		})
	}
}

func TestHabitLimit(t *testing.T) {
	habits := []habit.Habit{activeHabit("a")}

	limit, err := HabitLimit(habits, nil, refDate)
	if err != nil || limit != BaseHabitLimit {
		t.Fatalf("limit=%d err=%v want %d", limit, err, BaseHabitLimit)
	}
	limit, err = HabitLimit(habits, withStatus(t, "a", habit.Completed, span(0, 13)...), refDate)
	if err != nil || limit != UnlockedHabitLimit {
		t.Fatalf("limit=%d err=%v want %d", limit, err, UnlockedHabitLimit)
	}
	if _, err := HabitLimit(habits, nil, "2026-13-01"); err == nil {
		t.Fatal("expected error for malformed ref")
	}
}
