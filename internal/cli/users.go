package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

func newUserCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}
	cmd.AddCommand(
		newUserAddCommand(rt),
		newUserListCommand(rt),
		newUserDeleteCommand(rt),
	)
	return cmd
}

func newUserAddCommand(rt *runtime) *cobra.Command {
	var name, email string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a user",
		RunE: rt.run(func(cmd *cobra.Command, deps *Deps) error {
			user, err := deps.Service.CreateUser(cmd.Context(), name, email)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "User %q added with id %d\n", user.Name, user.ID)
			return nil
		}),
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "User name")
	cmd.Flags().StringVarP(&email, "email", "e", "", "User email")
	return cmd
}

func newUserListCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: rt.run(func(cmd *cobra.Command, deps *Deps) error {
			users, err := deps.Service.ListUsers(cmd.Context())
			if err != nil {
				return err
			}
			return printUsers(cmd, users)
		}),
	}
}

func printUsers(cmd *cobra.Command, users []*models.User) error {
	if len(users) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No users found.")
		return nil
	}
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{strconv.FormatInt(u.ID, 10), u.Name, u.Email})
	}
	return printTable(cmd.OutOrStdout(), []string{"ID", "NAME", "EMAIL"}, rows)
}

func newUserDeleteCommand(rt *runtime) *cobra.Command {
	var id int64
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a user without subscriptions",
		RunE: rt.run(func(cmd *cobra.Command, deps *Deps) error {
			if err := deps.Service.DeleteUser(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "User %d deleted\n", id)
			return nil
		}),
	}
	cmd.Flags().Int64Var(&id, "id", 0, "User id")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
