package cmd

import (
	"github.com/spf13/cobra"
)

var insightOpts struct {
	date      string
	weekStart int
	mood      bool
}

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Summarise the week across all habits",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if insightOpts.mood {
			return moodInsight(cmd)
		}
		w, err := newClient().WeeklyInsight(cmd.Context(), insightOpts.date, insightOpts.weekStart)
		if err != nil {
			return err
		}
		cmd.Printf("Week %s to %s\n", w.WeekStart, w.WeekEnd)
		cmd.Printf("  Consistency  %d%% (previous week %d%%)\n", w.OverallConsistency, w.PreviousConsistency)
		cmd.Printf("  Completions  %d\n", w.TotalCompletions)
		if w.BestDay != "" {
			cmd.Printf("  Best day     %s (%d%%)\n", w.BestDay, w.BestDayPercentage)
			cmd.Printf("  Worst day    %s (%d%%)\n", w.WorstDay, w.WorstDayPercentage)
		}
		for _, hs := range w.HabitStrengths {
			cmd.Printf("  %-12s %d%%\n", hs.Name, hs.Percentage)
		}
		for _, msg := range w.Insights {
			cmd.Printf("* %s\n", msg)
		}
		return nil
	},
}

func moodInsight(cmd *cobra.Command) error {
	resp, err := newClient().MoodInsight(cmd.Context(), insightOpts.date)
	if err != nil {
		return err
	}
	cmd.Printf("Mood %s to %s (%d rated days)\n", resp.Start, resp.End, resp.RatedDays)
	if len(resp.Correlations) == 0 {
		cmd.Println("  Not enough data yet. Rate your mood on at least 5 days.")
		return nil
	}
	for _, c := range resp.Correlations {
		cmd.Printf("  %-12s %+.1f (%.1f with, %.1f without)\n", c.HabitName, c.Difference, c.AvgMoodWithHabit, c.AvgMoodWithoutHabit)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(insightsCmd)
	insightsCmd.Flags().BoolVar(&insightOpts.mood, "mood", false, "show how each habit relates to your mood over 30 days")
	insightsCmd.Flags().StringVar(&insightOpts.date, "date", "", "any day in the week (YYYY-MM-DD, default today)")
	insightsCmd.Flags().IntVar(&insightOpts.weekStart, "week-start", -1, "first day of the week, 0=Sunday (default from server config)")
}
