package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newTemplateCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Browse the subscription template catalog",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List catalog templates with their numbers",
		RunE: rt.run(func(cmd *cobra.Command, deps *Deps) error {
			templates, err := deps.Service.ListTemplates(cmd.Context())
			if err != nil {
				return err
			}
			if len(templates) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Template catalog is empty.")
				return nil
			}
			rows := make([][]string, 0, len(templates))
			for i, t := range templates {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					t.Name,
					string(t.PlanType),
					t.Cost.StringFixed(2),
				})
			}
			return printTable(cmd.OutOrStdout(), []string{"#", "NAME", "PLAN", "COST"}, rows)
		}),
	})
	return cmd
}
