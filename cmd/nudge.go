package cmd

import (
	"fmt"
	"time"

	"github.com/brk3/flexhabits/internal/calendar"
	"github.com/brk3/flexhabits/internal/nudge"
	"github.com/brk3/flexhabits/internal/nudge/resend"
	"github.com/spf13/cobra"
)

var nudgeOpts struct {
	date   string
	dryRun bool
}

var nudgeCmd = &cobra.Command{
	Use:   "nudge",
	Short: "Email a reminder for streaks that end today unless you check in",
	Long: `The "nudge" command finds habits that are due today, not yet done, and
carrying a streak, and emails them through Resend. Needs nudge.resend_api_key
and nudge.email (or HABITS_RESEND_API_KEY and HABITS_NOTIFY_EMAIL) unless
--dry-run is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		date := nudgeOpts.date
		if date == "" {
			date = calendar.Today(time.Now())
		}
		client := newClient()

		if nudgeOpts.dryRun {
			atRisk, err := nudge.HabitsAtRisk(cmd.Context(), client, date)
			if err != nil {
				return err
			}
			for _, h := range atRisk {
				cmd.Printf("%s: %d day streak at risk\n", h.Name, h.Streak)
			}
			cmd.Printf("%d habit(s) at risk on %s\n", len(atRisk), date)
			return nil
		}

		if cfg.Nudge.ResendAPIKey == "" || cfg.Nudge.Email == "" {
			return fmt.Errorf("nudge.resend_api_key and nudge.email must be set")
		}
		n := &resend.ResendNotifier{ApiKey: cfg.Nudge.ResendAPIKey, Email: cfg.Nudge.Email, From: cfg.Nudge.From}
		count, err := nudge.Nudge(cmd.Context(), client, n, date)
		if err != nil {
			return err
		}
		cmd.Printf("Nudged about %d habit(s)\n", count)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(nudgeCmd)
	nudgeCmd.Flags().StringVar(&nudgeOpts.date, "date", "", "date to check (YYYY-MM-DD, default today)")
	nudgeCmd.Flags().BoolVar(&nudgeOpts.dryRun, "dry-run", false, "print at-risk habits instead of sending email")
}
