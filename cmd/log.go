package cmd

import (
	"github.com/brk3/flexhabits/internal/server"
	"github.com/brk3/flexhabits/pkg/habit"
	"github.com/spf13/cobra"
)

var logOpts struct {
	date   string
	status string
	tag    string
	note   string
}

var logCmd = &cobra.Command{
	Use:   "log HABIT_ID",
	Short: "Record a check-in for a habit",
	Long: `The "log" command records today's (or --date's) outcome for a habit.
Logging the same day again replaces the earlier record.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient().LogCompletion(cmd.Context(), args[0], server.LogCompletionRequest{
			Date:        logOpts.date,
			Status:      habit.CompletionStatus(logOpts.status),
			ContextTag:  logOpts.tag,
			ContextNote: logOpts.note,
		})
		if err != nil {
			return err
		}
		cmd.Printf("Logged %s as %s on %s\n", c.HabitID, c.Status, c.Date)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.Flags().StringVar(&logOpts.date, "date", "", "date to log (YYYY-MM-DD, default today)")
	logCmd.Flags().StringVar(&logOpts.status, "status", "completed", "completed, missed or skipped")
	logCmd.Flags().StringVar(&logOpts.tag, "tag", "", "context tag")
	logCmd.Flags().StringVar(&logOpts.note, "note", "", "context note")
}
