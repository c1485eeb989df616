package cmd

import (
	"github.com/spf13/cobra"
)

var coachDate string

var coachCmd = &cobra.Command{
	Use:   "coach",
	Short: "Show coaching tips based on your recent consistency",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := newClient().Coaching(cmd.Context(), coachDate)
		if err != nil {
			return err
		}
		if len(resp.Tips) == 0 && len(resp.Experiments) == 0 {
			cmd.Println("Nothing to suggest right now. Keep going!")
			return nil
		}
		for _, tip := range resp.Tips {
			cmd.Printf("[%s] %s\n    %s\n", tip.Category, tip.Title, tip.Message)
		}
		for _, exp := range resp.Experiments {
			cmd.Printf("[experiment] %s (%d days)\n    %s\n", exp.Title, exp.DurationDays, exp.Description)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(coachCmd)
	coachCmd.Flags().StringVar(&coachDate, "date", "", "reference date (YYYY-MM-DD, default today)")
}
