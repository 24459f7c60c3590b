package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func newSpendCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spend",
		Short: "Report completed spend of a user",
	}
	cmd.AddCommand(
		newSpendTotalCommand(rt),
		newSpendBreakdownCommand(rt),
	)
	return cmd
}

func newSpendTotalCommand(rt *runtime) *cobra.Command {
	var userID int64
	cmd := &cobra.Command{
		Use:   "total",
		Short: "Total completed spend",
		RunE: rt.run(func(cmd *cobra.Command, deps *Deps) error {
			total, err := deps.Service.TotalSpend(cmd.Context(), userID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Total spend for user %d: %s\n", userID, total.StringFixed(2))
			return nil
		}),
	}
	cmd.Flags().Int64VarP(&userID, "user", "u", 0, "User id")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func newSpendBreakdownCommand(rt *runtime) *cobra.Command {
	var userID int64
	cmd := &cobra.Command{
		Use:   "breakdown",
		Short: "Completed spend grouped by subscription name",
		RunE: rt.run(func(cmd *cobra.Command, deps *Deps) error {
			breakdown, err := deps.Service.SpendBySubscription(cmd.Context(), userID)
			if err != nil {
				return err
			}
			if len(breakdown) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No completed payments found.")
				return nil
			}
			names := make([]string, 0, len(breakdown))
			for name := range breakdown {
				names = append(names, name)
			}
			sort.Strings(names)
			rows := make([][]string, 0, len(names))
			for _, name := range names {
				rows = append(rows, []string{name, breakdown[name].StringFixed(2)})
			}
			return printTable(cmd.OutOrStdout(), []string{"SUBSCRIPTION", "SPEND"}, rows)
		}),
	}
	cmd.Flags().Int64VarP(&userID, "user", "u", 0, "User id")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
