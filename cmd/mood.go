package cmd

import (
	"fmt"
	"strconv"

	"github.com/brk3/flexhabits/internal/server"
	"github.com/spf13/cobra"
)

var moodOpts struct {
	date string
	note string
}

var moodCmd = &cobra.Command{
	Use:   "mood RATING",
	Short: "Record how you felt today, from 1 (low) to 5 (great)",
	Long: `The "mood" command records one mood rating per day. Logging the same day
again replaces the earlier rating. "habits insights --mood" compares your mood
on days you did each habit with the days you did not.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rating, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("bad rating %q: want 1-5", args[0])
		}
		m, err := newClient().LogMood(cmd.Context(), server.LogMoodRequest{
			Date:   moodOpts.date,
			Rating: rating,
			Note:   moodOpts.note,
		})
		if err != nil {
			return err
		}
		cmd.Printf("Logged mood %d on %s\n", m.Rating, m.Date)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(moodCmd)
	moodCmd.Flags().StringVar(&moodOpts.date, "date", "", "date to log (YYYY-MM-DD, default today)")
	moodCmd.Flags().StringVar(&moodOpts.note, "note", "", "optional note")
}
