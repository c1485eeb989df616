package analytics

import (
	"fmt"

	"github.com/brk3/flexhabits/internal/calendar"
	"github.com/brk3/flexhabits/pkg/habit"
)

var encouragingMessages = []string{
	"You're building something great!",
	"Progress, not perfection.",
	"Every small step counts.",
	"Consistency beats intensity.",
	"You showed up, that's what matters.",
	"Building one habit at a time.",
	"Small wins lead to big changes.",
	"Trust the process. You've got this.",
}

// WeekRange returns the first and last day of the week containing ref.
// weekStartDay uses the same 0=Sunday numbering as WeekdayIndex.
func WeekRange(ref string, weekStartDay int) (string, string, error) {
	wd, err := calendar.WeekdayIndex(ref)
	if err != nil {
		return "", "", err
	}
	if weekStartDay < 0 || weekStartDay > 6 {
		weekStartDay = 1
	}
	offset := (wd - weekStartDay + 7) % 7
	start, err := calendar.AddDays(ref, -offset)
	if err != nil {
		return "", "", err
	}
	end, err := calendar.AddDays(start, 6)
	if err != nil {
		return "", "", err
	}
	return start, end, nil
}

type tally struct {
	due  int
	done int
}

func (t *tally) add(completed bool) {
	t.due++
	if completed {
		t.done++
	}
}

func (t tally) percent() int { return percent(t.done, t.due) }

// WeeklyInsight summarises the week containing ref across all active habits
// and compares it with the week before.
func WeeklyInsight(habits []habit.Habit, completions []habit.Completion, ref string, weekStartDay int) (habit.WeeklyInsight, error) {
	start, end, err := WeekRange(ref, weekStartDay)
	if err != nil {
		return habit.WeeklyInsight{}, err
	}
	days, err := calendar.DaysInRange(start, end)
	if err != nil {
		return habit.WeeklyInsight{}, err
	}
	prevStart, err := calendar.AddDays(start, -7)
	if err != nil {
		return habit.WeeklyInsight{}, err
	}
	prevEnd, err := calendar.AddDays(end, -7)
	if err != nil {
		return habit.WeeklyInsight{}, err
	}
	prevDays, err := calendar.DaysInRange(prevStart, prevEnd)
	if err != nil {
		return habit.WeeklyInsight{}, err
	}

	var active []habit.Habit
	for _, h := range habits {
		if h.Status == habit.Active {
			active = append(active, h)
		}
	}
	indexes := make([]ByDate, len(active))
	for i, h := range active {
		indexes[i] = Index(h.Schedule, completions)
	}

	var overall, previous tally
	var perDay [7]tally
	dayOrder := make([]int, 0, 7)
	strengths := make([]habit.HabitStrength, 0, len(active))

	perHabit := make([]tally, len(active))
	for _, day := range days {
		wd, err := calendar.WeekdayIndex(day)
		if err != nil {
			return habit.WeeklyInsight{}, err
		}
		dayOrder = append(dayOrder, wd)
		for i, h := range active {
			ok, err := evaluable(h.Schedule, indexes[i], day)
			if err != nil {
				return habit.WeeklyInsight{}, err
			}
			if !ok {
				continue
			}
			completed := indexes[i][day].Status == habit.Completed
			overall.add(completed)
			perDay[wd].add(completed)
			perHabit[i].add(completed)
		}
	}
	for _, day := range prevDays {
		for i, h := range active {
			ok, err := evaluable(h.Schedule, indexes[i], day)
			if err != nil {
				return habit.WeeklyInsight{}, err
			}
			if ok {
				previous.add(indexes[i][day].Status == habit.Completed)
			}
		}
	}
	for i, h := range active {
		strengths = append(strengths, habit.HabitStrength{
			HabitID:    h.ID,
			Name:       h.Name,
			Percentage: perHabit[i].percent(),
		})
	}

	// Ties go to the earliest day of the week; days with nothing due are skipped.
	bestDay, bestPct := 0, -1
	worstDay, worstPct := 0, 101
	for _, wd := range dayOrder {
		st := perDay[wd]
		if st.due == 0 {
			continue
		}
		pct := st.percent()
		if pct > bestPct {
			bestDay, bestPct = wd, pct
		}
		if pct < worstPct {
			worstDay, worstPct = wd, pct
		}
	}
	bestPct = max(bestPct, 0)
	worstPct = min(worstPct, 100)

	out := habit.WeeklyInsight{
		WeekStart:           start,
		WeekEnd:             end,
		OverallConsistency:  overall.percent(),
		PreviousConsistency: previous.percent(),
		BestDay:             calendar.DayName(bestDay),
		BestDayPercentage:   bestPct,
		WorstDay:            calendar.DayName(worstDay),
		WorstDayPercentage:  worstPct,
		HabitStrengths:      strengths,
		TotalCompletions:    overall.done,
	}
	out.Insights = weeklyMessages(out)
	return out, nil
}

func weeklyMessages(w habit.WeeklyInsight) []string {
	var msgs []string

	switch {
	case w.OverallConsistency > w.PreviousConsistency:
		msgs = append(msgs, fmt.Sprintf("Your consistency improved from %d%% to %d%% this week!",
			w.PreviousConsistency, w.OverallConsistency))
	case w.OverallConsistency < w.PreviousConsistency && w.PreviousConsistency > 0:
		pick := encouragingMessages[(w.PreviousConsistency-w.OverallConsistency)%len(encouragingMessages)]
		msgs = append(msgs, fmt.Sprintf("Your consistency dipped from %d%% to %d%%. %s",
			w.PreviousConsistency, w.OverallConsistency, pick))
	}

	if w.BestDayPercentage > 0 {
		msgs = append(msgs, fmt.Sprintf("%s is your strongest day at %d%% completion.", w.BestDay, w.BestDayPercentage))
	}

	for _, s := range w.HabitStrengths {
		if s.Percentage >= 80 {
			msgs = append(msgs, fmt.Sprintf("%s is your strongest habit this week at %d%%.", s.Name, s.Percentage))
			break
		}
	}
	for _, s := range w.HabitStrengths {
		if s.Percentage < 50 && s.Percentage > 0 {
			msgs = append(msgs, fmt.Sprintf("%s could use some attention. Try a smaller version of it.", s.Name))
			break
		}
	}

	if len(msgs) == 0 {
		msgs = append(msgs, "Start tracking your habits to see personalized insights here!")
	}
	return msgs
}
