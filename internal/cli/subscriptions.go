package cli

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

func newSubscriptionCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subscription",
		Aliases: []string{"sub"},
		Short:   "Manage subscriptions",
	}
	cmd.AddCommand(
		newSubscriptionAddCommand(rt),
		newSubscriptionTemplateCommand(rt),
		newSubscriptionListCommand(rt),
	)
	return cmd
}

func newSubscriptionAddCommand(rt *runtime) *cobra.Command {
	var (
		userID           int64
		name, plan, cost string
		start, end       string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a custom subscription to a user",
		RunE: rt.run(func(cmd *cobra.Command, deps *Deps) error {
			amount, err := parseAmount("cost", cost)
			if err != nil {
				return err
			}
			sub, err := deps.Service.AddSubscription(cmd.Context(), userID, models.NewSubscription{
				Name:      name,
				PlanType:  models.PlanType(plan),
				Cost:      amount,
				StartDate: start,
				EndDate:   end,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Subscription %q added with id %d\n", sub.Name, sub.ID)
			return nil
		}),
	}
	cmd.Flags().Int64VarP(&userID, "user", "u", 0, "User id")
	cmd.Flags().StringVarP(&name, "name", "n", "", "Subscription name")
	cmd.Flags().StringVarP(&plan, "plan", "p", "", "Plan type (monthly, yearly)")
	cmd.Flags().StringVar(&cost, "cost", "", "Cost per period")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	for _, flag := range []string{"user", "name", "plan", "cost", "start", "end"} {
		_ = cmd.MarkFlagRequired(flag)
	}
	return cmd
}

func newSubscriptionTemplateCommand(rt *runtime) *cobra.Command {
	var (
		userID           int64
		index            int
		name, plan, cost string
		start, end       string
	)
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Add a subscription from the template catalog",
		Long: `Add a subscription from the template catalog, selected by --index (1-based) or --name.
An unknown --name together with --plan and --cost appends a new template to the catalog.`,
		RunE: rt.run(func(cmd *cobra.Command, deps *Deps) error {
			ref := models.TemplateRef{
				Name:     name,
				Index:    index,
				PlanType: models.PlanType(plan),
			}
			if cost != "" {
				amount, err := parseAmount("cost", cost)
				if err != nil {
					return err
				}
				ref.Cost = &amount
			}
			sub, err := deps.Service.AddFromTemplate(cmd.Context(), userID, ref, start, end)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Subscription %q added with id %d\n", sub.Name, sub.ID)
			return nil
		}),
	}
	cmd.Flags().Int64VarP(&userID, "user", "u", 0, "User id")
	cmd.Flags().IntVarP(&index, "index", "i", 0, "Template number as shown by 'template list'")
	cmd.Flags().StringVarP(&name, "name", "n", "", "Template name")
	cmd.Flags().StringVarP(&plan, "plan", "p", "", "Plan type for a new template")
	cmd.Flags().StringVar(&cost, "cost", "", "Cost for a new template")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("user")
	cmd.MarkFlagsMutuallyExclusive("index", "name")
	return cmd
}

func newSubscriptionListCommand(rt *runtime) *cobra.Command {
	var userID int64
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List subscriptions of a user",
		RunE: rt.run(func(cmd *cobra.Command, deps *Deps) error {
			subs, err := deps.Service.ListSubscriptionsForUser(cmd.Context(), userID)
			if err != nil {
				return err
			}
			if len(subs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No subscriptions found.")
				return nil
			}
			rows := make([][]string, 0, len(subs))
			for _, s := range subs {
				rows = append(rows, []string{
					strconv.FormatInt(s.ID, 10),
					s.Name,
					string(s.PlanType),
					s.Cost.StringFixed(2),
					s.StartDate.Format(models.DateLayout),
					s.EndDate.Format(models.DateLayout),
					string(s.Status),
				})
			}
			return printTable(cmd.OutOrStdout(),
				[]string{"ID", "NAME", "PLAN", "COST", "START", "END", "STATUS"}, rows)
		}),
	}
	cmd.Flags().Int64VarP(&userID, "user", "u", 0, "User id")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func parseAmount(flag, value string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid --%s %q: %w", flag, value, err)
	}
	return amount, nil
}
