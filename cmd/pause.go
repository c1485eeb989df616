package cmd

import (
	"github.com/spf13/cobra"
)

var pauseUntil string

var pauseCmd = &cobra.Command{
	Use:   "pause HABIT_ID",
	Short: "Pause a habit without affecting its streaks",
	Long: `The "pause" command pauses a habit. Paused days are left out of
consistency and streaks. With --until the server resumes the habit
automatically once that date has passed; without it the pause lasts until
"habits resume".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := newClient().PauseHabit(cmd.Context(), args[0], pauseUntil)
		if err != nil {
			return err
		}
		if h.PauseEndDate == "" {
			cmd.Printf("Paused %s until resumed\n", h.Name)
		} else {
			cmd.Printf("Paused %s until %s\n", h.Name, h.PauseEndDate)
		}
		return nil
	},
}

var resumeCmd = &cobra.Command{
	Use:   "resume HABIT_ID",
	Short: "Resume a paused habit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := newClient().ResumeHabit(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		cmd.Printf("Resumed %s\n", h.Name)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete HABIT_ID",
	Short: "Delete a habit and its history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newClient().DeleteHabit(cmd.Context(), args[0]); err != nil {
			return err
		}
		cmd.Printf("Deleted %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pauseCmd, resumeCmd, deleteCmd)
	pauseCmd.Flags().StringVar(&pauseUntil, "until", "", "last paused day (YYYY-MM-DD)")
}
