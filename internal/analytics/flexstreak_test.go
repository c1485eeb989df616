package analytics

import (
	"errors"
	"reflect"
	"slices"
	"testing"

	"github.com/brk3/flexhabits/internal/calendar"
	"github.com/brk3/flexhabits/pkg/habit"
)

func TestClassifyTrend(t *testing.T) {
	tests := []struct {
		recent, prior int
		want          habit.Trend
	}{
		{70, 65, habit.TrendStable},
		{71, 65, habit.TrendUp},
		{65, 70, habit.TrendStable},
		{65, 71, habit.TrendDown},
		{50, 50, habit.TrendStable},
		{100, 0, habit.TrendUp},
	}
	for _, tt := range tests {
		if got := ClassifyTrend(tt.recent, tt.prior); got != tt.want {
			t.Errorf("ClassifyTrend(%d, %d) = %s, want %s", tt.recent, tt.prior, got, tt.want)
		}
	}
}

func TestStrengthLabel(t *testing.T) {
	tests := map[int]string{
		100: "Outstanding",
		95:  "Outstanding",
		90:  "Outstanding",
		89:  "Strong",
		80:  "Strong",
		75:  "Strong",
		65:  "Building",
		60:  "Building",
		45:  "Developing",
		25:  "Starting",
		20:  "Starting",
		19:  "New",
		0:   "New",
	}
	for pct, want := range tests {
		if got := StrengthLabel(pct); got != want {
			t.Errorf("StrengthLabel(%d) = %q, want %q", pct, got, want)
		}
	}
}

func TestStrengthColor(t *testing.T) {
	if got := StrengthColor(80); got != "#22C55E" {
		t.Errorf("got %s want green", got)
	}
	if got := StrengthColor(50); got != "#0EA5E9" {
		t.Errorf("got %s want blue", got)
	}
	if got := StrengthColor(25); got != "#F59E0B" {
		t.Errorf("got %s want amber", got)
	}
	if got := StrengthColor(10); got != "#94A3B8" {
		t.Errorf("got %s want gray", got)
	}
}

func TestCompute_FiveOfSeven(t *testing.T) {
	got, err := Compute(daily(), records(t, refDate, habit.Completed, 0, 1, 2, 4, 6), refDate)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if got.Consistency7 != 71 {
		t.Fatalf("consistency7=%d want 71", got.Consistency7)
	}
	if got.CurrentStreak != 3 || got.BestStreak != 3 {
		t.Fatalf("streaks %d/%d want 3/3", got.CurrentStreak, got.BestStreak)
	}
	if got.TotalCompletions != 5 {
		t.Fatalf("total=%d want 5", got.TotalCompletions)
	}
}

func TestCompute_FullWeek(t *testing.T) {
	got, err := Compute(daily(), records(t, refDate, habit.Completed, span(0, 6)...), refDate)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	want := habit.FlexStreak{
		Consistency7:     100,
		Consistency30:    23, // 7 of 30
		Consistency90:    8,  // 7 of 90
		CurrentStreak:    7,
		BestStreak:       7,
		TotalCompletions: 7,
		Trend:            habit.TrendUp,
		Strength:         "Starting",
		StrengthColor:    "#94A3B8",
	}
	if got != want {
		t.Fatalf("got %+v\nwant %+v", got, want)
	}
}

func TestCompute_NewHabit(t *testing.T) {
	got, err := Compute(daily(), nil, refDate)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if got.Consistency7 != 0 || got.Consistency30 != 0 || got.Consistency90 != 0 {
		t.Fatalf("expected zero consistency, got %+v", got)
	}
	if got.CurrentStreak != 0 || got.BestStreak != 0 || got.TotalCompletions != 0 {
		t.Fatalf("expected zero streaks, got %+v", got)
	}
	if got.Trend != habit.TrendStable || got.Strength != "New" {
		t.Fatalf("got trend %s strength %s", got.Trend, got.Strength)
	}
}

func TestCompute_DownTrend(t *testing.T) {
	got, err := Compute(daily(), records(t, refDate, habit.Completed, span(7, 13)...), refDate)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if got.Trend != habit.TrendDown {
		t.Fatalf("trend=%s want down", got.Trend)
	}
}

func TestCompute_IgnoresOtherHabits(t *testing.T) {
	comps := records(t, refDate, habit.Completed, 0, 1)
	comps = append(comps, habit.Completion{HabitID: "other", Date: daysAgo(t, refDate, 2), Status: habit.Completed})

	got, err := Compute(daily(), comps, refDate)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if got.TotalCompletions != 2 || got.CurrentStreak != 2 {
		t.Fatalf("got %+v, other habit leaked in", got)
	}
}

func TestCompute_DoesNotMutateInput(t *testing.T) {
	s := habit.Schedule{ID: "h1", Frequency: habit.Custom, CustomDays: []int{5, 1}, Status: habit.Active}
	comps := records(t, refDate, habit.Completed, 0, 3, 5)
	before := slices.Clone(comps)

	if _, err := Compute(s, comps, refDate); err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if !reflect.DeepEqual(before, comps) {
		t.Fatal("completions were mutated")
	}
	if !reflect.DeepEqual(s.CustomDays, []int{5, 1}) {
		t.Fatal("custom days were mutated")
	}
}

func TestCompute_Deterministic(t *testing.T) {
	comps := records(t, refDate, habit.Completed, 0, 2, 3, 9, 20, 40)
	a, err := Compute(daily(), comps, refDate)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	b, err := Compute(daily(), comps, refDate)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if a != b {
		t.Fatalf("same inputs gave %+v and %+v", a, b)
	}
}

func TestCompute_MalformedRef(t *testing.T) {
	_, err := Compute(daily(), nil, "Feb 12")
	if !errors.Is(err, calendar.ErrMalformedDate) {
		t.Fatalf("err = %v, want ErrMalformedDate", err)
	}
}

func TestTrend_Windows(t *testing.T) {
	// Completing days 7..13 fills the prior window only.
	byDate := Index(daily(), records(t, refDate, habit.Completed, span(7, 13)...))
	trend, recent, prior, err := Trend(daily(), byDate, refDate)
	if err != nil {
		t.Fatalf("Trend failed: %v", err)
	}
	if recent != 0 || prior != 100 || trend != habit.TrendDown {
		t.Fatalf("got %s recent=%d prior=%d", trend, recent, prior)
	}
}

func TestSummarize(t *testing.T) {
	h := habit.Habit{Schedule: daily(), Name: "guitar"}
	comps := records(t, refDate, habit.Completed, 0, 1, 2, 4, 6)
	comps = append(comps, habit.Completion{HabitID: "other", Date: refDate, Status: habit.Completed})

	got, err := Summarize(h, comps, refDate)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if got.HabitID != "h1" || got.Name != "guitar" || got.FrequencyLabel != "Every day" {
		t.Fatalf("unexpected summary %+v", got)
	}
	if !got.DueToday || !got.CompletedToday {
		t.Fatalf("due=%v completed=%v want true/true", got.DueToday, got.CompletedToday)
	}
	if got.FlexStreak.Consistency7 != 71 || got.FlexStreak.TotalCompletions != 5 {
		t.Fatalf("unexpected flexstreak %+v", got.FlexStreak)
	}

	got, err = Summarize(h, comps, daysAgo(t, refDate, 3))
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if got.CompletedToday {
		t.Fatal("day 3 was not completed")
	}
}
