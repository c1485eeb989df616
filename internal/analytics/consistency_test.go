package analytics

import (
	"errors"
	"testing"

	"github.com/brk3/flexhabits/internal/calendar"
	"github.com/brk3/flexhabits/pkg/habit"
)

func TestConsistencyWindow(t *testing.T) {
	tests := []struct {
		name string
		done []int
		want int
	}{
		{"all completed", span(0, 6), 100},
		{"none completed", nil, 0},
		{"five of seven", []int{0, 1, 2, 4, 6}, 71},
		{"one of seven", []int{3}, 14},
	}
	for _, tt := range tests {
		byDate := Index(daily(), records(t, refDate, habit.Completed, tt.done...))
		got, err := ConsistencyWindow(daily(), byDate, 7, refDate)
		if err != nil {
			t.Fatalf("%s: ConsistencyWindow failed: %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("%s: got %d want %d", tt.name, got, tt.want)
		}
	}
}

func TestConsistency_RoundsHalfUp(t *testing.T) {
	// 1 of 8 is 12.5%.
	byDate := Index(daily(), records(t, refDate, habit.Completed, 0))
	got, err := ConsistencyWindow(daily(), byDate, 8, refDate)
	if err != nil {
		t.Fatalf("ConsistencyWindow failed: %v", err)
	}
	if got != 13 {
		t.Fatalf("got %d want 13", got)
	}

	// 2 of 3 is 66.67%.
	byDate = Index(daily(), records(t, refDate, habit.Completed, 0, 1))
	got, _ = ConsistencyWindow(daily(), byDate, 3, refDate)
	if got != 67 {
		t.Fatalf("got %d want 67", got)
	}
}

func TestConsistency_NoDueDays(t *testing.T) {
	s := habit.Schedule{Frequency: habit.Custom, CustomDays: []int{6}, Status: habit.Active}
	// Monday to Friday.
	got, err := Consistency(s, ByDate{}, "2026-02-09", "2026-02-13")
	if err != nil {
		t.Fatalf("Consistency failed: %v", err)
	}
	if got != 0 {
		t.Fatalf("got %d want 0", got)
	}

	empty := habit.Schedule{Frequency: habit.Custom, Status: habit.Active}
	got, _ = ConsistencyWindow(empty, ByDate{}, 30, refDate)
	if got != 0 {
		t.Fatalf("got %d want 0", got)
	}
}

func TestConsistency_PausedRecordsExcluded(t *testing.T) {
	comps := append(records(t, refDate, habit.Completed, 0, 1, 4), records(t, refDate, habit.PausedRecord, 2, 3)...)
	got, err := ConsistencyWindow(daily(), Index(daily(), comps), 7, refDate)
	if err != nil {
		t.Fatalf("ConsistencyWindow failed: %v", err)
	}
	// Days 0..6 minus two paused leaves five evaluable, three completed.
	if got != 60 {
		t.Fatalf("got %d want 60", got)
	}
}

func TestConsistency_SchedulePauseExcluded(t *testing.T) {
	s := daily()
	s.Status = habit.Paused
	s.PauseEndDate = daysAgo(t, refDate, 3)

	got, err := ConsistencyWindow(s, Index(s, records(t, refDate, habit.Completed, 0, 1)), 7, refDate)
	if err != nil {
		t.Fatalf("ConsistencyWindow failed: %v", err)
	}
	// Days 3..6 are paused; 2 of the remaining 3 are completed.
	if got != 67 {
		t.Fatalf("got %d want 67", got)
	}
}

func TestConsistency_MissedAndSkippedCountAsNotDone(t *testing.T) {
	comps := append(records(t, refDate, habit.Missed, 0), records(t, refDate, habit.Skipped, 1)...)
	comps = append(comps, records(t, refDate, habit.Completed, 2, 3)...)
	got, _ := ConsistencyWindow(daily(), Index(daily(), comps), 4, refDate)
	if got != 50 {
		t.Fatalf("got %d want 50", got)
	}
}

func TestConsistency_WeekdaysOnSaturday(t *testing.T) {
	s := habit.Schedule{Frequency: habit.Weekdays, Status: habit.Active}
	saturday := "2026-02-14"

	got, err := ConsistencyWindow(s, ByDate{}, 7, saturday)
	if err != nil {
		t.Fatalf("ConsistencyWindow failed: %v", err)
	}
	if got != 0 {
		t.Fatalf("got %d want 0", got)
	}

	// Mon, Tue, Wed of the five weekdays in Sun 8th..Sat 14th.
	byDate := Index(s, records(t, saturday, habit.Completed, 5, 4, 3, 0))
	got, _ = ConsistencyWindow(s, byDate, 7, saturday)
	if got != 60 {
		t.Fatalf("got %d want 60", got)
	}
}

func TestConsistency_OffsetRange(t *testing.T) {
	byDate := Index(daily(), records(t, refDate, habit.Completed, span(7, 13)...))
	got, err := Consistency(daily(), byDate, daysAgo(t, refDate, 13), daysAgo(t, refDate, 7))
	if err != nil {
		t.Fatalf("Consistency failed: %v", err)
	}
	if got != 100 {
		t.Fatalf("got %d want 100", got)
	}
}

func TestConsistency_Errors(t *testing.T) {
	if _, err := Consistency(daily(), ByDate{}, "2026-02-10", "2026-02-01"); !errors.Is(err, calendar.ErrInvalidRange) {
		t.Fatalf("err = %v, want ErrInvalidRange", err)
	}
	if _, err := ConsistencyWindow(daily(), ByDate{}, 7, "yesterday"); !errors.Is(err, calendar.ErrMalformedDate) {
		t.Fatalf("err = %v, want ErrMalformedDate", err)
	}
	if _, err := ConsistencyWindow(daily(), ByDate{}, 0, "yesterday"); !errors.Is(err, calendar.ErrMalformedDate) {
		t.Fatalf("err = %v, want ErrMalformedDate", err)
	}
}

func TestConsistencyWindow_EmptyWindow(t *testing.T) {
	got, err := ConsistencyWindow(daily(), ByDate{}, 0, refDate)
	if err != nil || got != 0 {
		t.Fatalf("got %d, %v want 0, nil", got, err)
	}
}

func TestIndex_IgnoresOtherHabits(t *testing.T) {
	comps := []habit.Completion{
		{HabitID: "h1", Date: refDate, Status: habit.Completed},
		{HabitID: "h2", Date: daysAgo(t, refDate, 1), Status: habit.Completed},
	}
	byDate := Index(daily(), comps)
	if len(byDate) != 1 {
		t.Fatalf("len=%d want 1", len(byDate))
	}
	if _, ok := byDate[refDate]; !ok {
		t.Fatal("expected h1 record to be indexed")
	}
}
