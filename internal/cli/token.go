package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTokenCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Operator tokens for the HTTP API",
	}

	var subject, role string
	issue := &cobra.Command{
		Use:   "issue",
		Short: "Issue a bearer token",
		RunE: rt.run(func(cmd *cobra.Command, deps *Deps) error {
			token, err := deps.Tokens.GenerateToken(subject, role)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		}),
	}
	issue.Flags().StringVarP(&subject, "subject", "s", "operator", "Token subject")
	issue.Flags().StringVarP(&role, "role", "r", "admin", "Operator role")

	cmd.AddCommand(issue)
	return cmd
}
