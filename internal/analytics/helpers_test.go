package analytics

import (
	"testing"

	"github.com/brk3/flexhabits/internal/calendar"
	"github.com/brk3/flexhabits/pkg/habit"
)

// refDate is a Thursday.
const refDate = "2026-02-12"

func daily() habit.Schedule {
	return habit.Schedule{ID: "h1", Frequency: habit.Daily, Status: habit.Active}
}

func daysAgo(t *testing.T, ref string, n int) string {
	t.Helper()
	d, err := calendar.AddDays(ref, -n)
	if err != nil {
		t.Fatalf("AddDays failed: %v", err)
	}
	return d
}

func records(t *testing.T, ref string, status habit.CompletionStatus, ago ...int) []habit.Completion {
	t.Helper()
	out := make([]habit.Completion, 0, len(ago))
	for _, n := range ago {
		out = append(out, habit.Completion{
			HabitID: "h1",
			Date:    daysAgo(t, ref, n),
			Status:  status,
		})
	}
	return out
}

func span(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}
