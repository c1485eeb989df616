package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/brk3/flexhabits/internal/logger"
	"github.com/brk3/flexhabits/internal/nudge/resend"
	"github.com/brk3/flexhabits/internal/scheduler"
	"github.com/brk3/flexhabits/internal/server"
	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the local HTTP API and background jobs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return startServer(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}

func startServer(ctx context.Context) error {
	store, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer store.Close()

	srv, err := server.New(cfg, store)
	if err != nil {
		return err
	}

	if cfg.Scheduler.Enabled {
		var opts []scheduler.Option
		if cfg.Nudge.Enabled {
			n := &resend.ResendNotifier{ApiKey: cfg.Nudge.ResendAPIKey, Email: cfg.Nudge.Email, From: cfg.Nudge.From}
			opts = append(opts, scheduler.WithNudge(n, cfg.Scheduler.NudgeSpec, cfg.Analytics.LookbackDays))
		}
		sched := scheduler.New(store, cfg.Scheduler.ResumeInterval, opts...)
		if err := sched.Start(); err != nil {
			return err
		}
		defer sched.Stop()
	} else {
		logger.Info("Scheduler disabled")
	}

	return srv.ListenAndServe(ctx)
}
