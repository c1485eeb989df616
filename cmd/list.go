package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listDate string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List habits",
	Long:  `The "list" command lists your habits with their current consistency.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return list(cmd)
	},
}

func list(cmd *cobra.Command) error {
	client := newClient()
	habits, err := client.ListHabits(cmd.Context())
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		cmd.Println("No habits yet. Add one with \"habits add\".")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSCHEDULE\tSTATUS\t7D\t30D\tSTREAK\tSTRENGTH")
	for _, h := range habits {
		s, err := client.GetHabitSummary(cmd.Context(), h.ID, listDate)
		if err != nil {
			return err
		}
		fs := s.FlexStreak
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d%%\t%d%%\t%d\t%s\n",
			h.ID, h.Name, s.FrequencyLabel, h.Status, fs.Consistency7, fs.Consistency30, fs.CurrentStreak, fs.Strength)
	}
	return tw.Flush()
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listDate, "date", "", "reference date (YYYY-MM-DD, default today)")
}
