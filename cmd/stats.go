package cmd

import (
	"encoding/json"

	"github.com/brk3/flexhabits/pkg/habit"
	"github.com/spf13/cobra"
)

var statsOpts struct {
	date string
	json bool
}

var statsCmd = &cobra.Command{
	Use:   "stats HABIT_ID",
	Short: "Show consistency, streaks and strength for a habit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newClient().GetHabitSummary(cmd.Context(), args[0], statsOpts.date)
		if err != nil {
			return err
		}
		if statsOpts.json {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(s)
		}
		printSummary(cmd, s)
		return nil
	},
}

var trendArrows = map[habit.Trend]string{
	habit.TrendUp:     "up",
	habit.TrendStable: "steady",
	habit.TrendDown:   "down",
}

func printSummary(cmd *cobra.Command, s *habit.HabitSummary) {
	fs := s.FlexStreak
	cmd.Printf("%s (%s) as of %s\n", s.Name, s.FrequencyLabel, s.Date)
	switch {
	case !s.DueToday:
		cmd.Println("  Not due today")
	case s.CompletedToday:
		cmd.Println("  Done today")
	default:
		cmd.Println("  Due today")
	}
	cmd.Printf("  Consistency  7d %d%%  30d %d%%  90d %d%%\n", fs.Consistency7, fs.Consistency30, fs.Consistency90)
	cmd.Printf("  Streak       current %d  best %d\n", fs.CurrentStreak, fs.BestStreak)
	cmd.Printf("  Completions  %d\n", fs.TotalCompletions)
	cmd.Printf("  Trend        %s\n", trendArrows[fs.Trend])
	cmd.Printf("  Strength     %s\n", fs.Strength)
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringVar(&statsOpts.date, "date", "", "reference date (YYYY-MM-DD, default today)")
	statsCmd.Flags().BoolVar(&statsOpts.json, "json", false, "print the raw summary as JSON")
}
