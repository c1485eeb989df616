package analytics

import (
	"iter"

	"github.com/brk3/flexhabits/internal/calendar"
	"github.com/brk3/flexhabits/pkg/habit"
)

// DefaultLookback bounds how far back streaks are searched.
const DefaultLookback = 365

type StreakResult struct {
	Current int `json:"current"`
	Best    int `json:"best"`
}

type streakConfig struct {
	lookback int
}

type StreakOption func(*streakConfig)

// WithLookback sets the number of days, counting ref, that Streaks walks.
// Values below 1 keep the default.
func WithLookback(days int) StreakOption {
	return func(c *streakConfig) {
		if days > 0 {
			c.lookback = days
		}
	}
}

// evaluableDays yields each evaluable day from ref backward, paired with
// whether it was completed. Iteration stops on the first error, which is
// written to errp.
func evaluableDays(s habit.Schedule, byDate ByDate, ref string, lookback int, errp *error) iter.Seq2[string, bool] {
	return func(yield func(string, bool) bool) {
		start, err := calendar.ParseDate(ref)
		if err != nil {
			*errp = err
			return
		}
		for i := range lookback {
			day := calendar.FormatDate(start.AddDate(0, 0, -i))
			ok, err := evaluable(s, byDate, day)
			if err != nil {
				*errp = err
				return
			}
			if !ok {
				continue
			}
			if !yield(day, byDate[day].Status == habit.Completed) {
				return
			}
		}
	}
}

type streakFold struct {
	running int
	current int
	best    int
	sawMiss bool
}

func (f streakFold) step(completed bool) streakFold {
	if completed {
		f.running++
		if !f.sawMiss {
			f.current = f.running
		}
		f.best = max(f.best, f.running)
		return f
	}
	f.sawMiss = true
	f.running = 0
	return f
}

// Streaks walks back from ref over evaluable days. The current streak is the
// run of completions ending at the most recent evaluable day; the best streak
// is the longest run seen within the lookback window.
func Streaks(s habit.Schedule, byDate ByDate, ref string, opts ...StreakOption) (StreakResult, error) {
	cfg := streakConfig{lookback: DefaultLookback}
	for _, opt := range opts {
		opt(&cfg)
	}

	var err error
	var f streakFold
	for _, completed := range evaluableDays(s, byDate, ref, cfg.lookback, &err) {
		f = f.step(completed)
	}
	if err != nil {
		return StreakResult{}, err
	}
	return StreakResult{Current: f.current, Best: f.best}, nil
}
