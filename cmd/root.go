package cmd

import (
	"os"

	"github.com/brk3/flexhabits/internal/apiclient"
	"github.com/brk3/flexhabits/internal/config"
	"github.com/brk3/flexhabits/internal/logger"
	"github.com/spf13/cobra"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "habits",
	Short: "Track habits with flexible, forgiving streaks",
	Long: `
	Habits tracks recurring habits on daily, weekday, custom-day or flexible
	schedules. Instead of a single fragile streak it reports consistency over
	7, 30 and 90 days, a trend, and a strength label, and it lets you pause a
	habit without breaking anything.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadOrDefault()
		if err != nil {
			return err
		}
		return logger.Configure(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	},
}

func Execute() {
	rootCmd.SetOut(os.Stdout)
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func newClient() *apiclient.Client {
	return apiclient.New(cfg.APIBaseURL, cfg.AuthToken)
}
