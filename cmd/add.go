package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/brk3/flexhabits/internal/server"
	"github.com/brk3/flexhabits/pkg/habit"
	"github.com/spf13/cobra"
)

var addOpts struct {
	frequency string
	days      string
	target    int
	cue       string
	action    string
}

var addCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Create a habit",
	Long: `The "add" command creates a habit. Schedules are daily, weekdays,
custom (with --days, 0=Sunday through 6=Saturday) or flexible (with --target
times per week). --cue and --action record an implementation intention:
"After I <cue>, I will <action>".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := buildCreateRequest(args[0])
		if err != nil {
			return err
		}
		h, err := newClient().CreateHabit(cmd.Context(), req)
		if err != nil {
			return err
		}
		cmd.Printf("Created %s (%s)\n", h.Name, h.ID)
		return nil
	},
}

func buildCreateRequest(name string) (server.CreateHabitRequest, error) {
	req := server.CreateHabitRequest{
		Name:           name,
		Frequency:      habit.Frequency(addOpts.frequency),
		FlexibleTarget: addOpts.target,
		Cue:            addOpts.cue,
		Action:         addOpts.action,
	}
	if addOpts.days != "" {
		days, err := parseDays(addOpts.days)
		if err != nil {
			return req, err
		}
		req.CustomDays = days
	}
	return req, nil
}

// parseDays reads a comma separated list of weekday indexes.
func parseDays(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := strconv.Atoi(part)
		if err != nil || d < 0 || d > 6 {
			return nil, fmt.Errorf("bad day %q: want 0-6", part)
		}
		out = append(out, d)
	}
	return out, nil
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&addOpts.frequency, "frequency", "f", "daily", "daily, weekdays, custom or flexible")
	addCmd.Flags().StringVar(&addOpts.days, "days", "", "custom days, e.g. 1,3,5")
	addCmd.Flags().IntVar(&addOpts.target, "target", 0, "times per week for flexible habits")
	addCmd.Flags().StringVar(&addOpts.cue, "cue", "", "implementation intention cue")
	addCmd.Flags().StringVar(&addOpts.action, "action", "", "implementation intention action")
}
