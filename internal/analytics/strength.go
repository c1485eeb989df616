package analytics

import "github.com/brk3/flexhabits/pkg/habit"

// TrendThreshold is the percentage-point change needed to leave Stable.
const TrendThreshold = 5

var strengthLabels = []struct {
	min   int
	label string
}{
	{90, "Outstanding"},
	{75, "Strong"},
	{60, "Building"},
	{40, "Developing"},
	{20, "Starting"},
}

func StrengthLabel(pct int) string {
	for _, b := range strengthLabels {
		if pct >= b.min {
			return b.label
		}
	}
	return "New"
}

func StrengthColor(pct int) string {
	switch {
	case pct >= 75:
		return "#22C55E"
	case pct >= 50:
		return "#0EA5E9"
	case pct >= 25:
		return "#F59E0B"
	default:
		return "#94A3B8"
	}
}

func ClassifyTrend(recent, prior int) habit.Trend {
	switch {
	case recent-prior > TrendThreshold:
		return habit.TrendUp
	case prior-recent > TrendThreshold:
		return habit.TrendDown
	default:
		return habit.TrendStable
	}
}
