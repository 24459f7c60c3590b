package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

func newPaymentCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payment",
		Short: "Record and list payments",
	}
	cmd.AddCommand(
		newPaymentAddCommand(rt),
		newPaymentListCommand(rt),
	)
	return cmd
}

func newPaymentAddCommand(rt *runtime) *cobra.Command {
	var (
		subscriptionID       int64
		amount, method, stat string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a payment for a subscription",
		RunE: rt.run(func(cmd *cobra.Command, deps *Deps) error {
			value, err := parseAmount("amount", amount)
			if err != nil {
				return err
			}
			p, err := deps.Service.AddPayment(cmd.Context(), models.NewPayment{
				SubscriptionID: subscriptionID,
				Amount:         value,
				Method:         models.PaymentMethod(method),
				Status:         models.PaymentStatus(stat),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Payment %d of %s recorded\n", p.ID, p.Amount.StringFixed(2))
			return nil
		}),
	}
	cmd.Flags().Int64VarP(&subscriptionID, "subscription", "s", 0, "Subscription id")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "Amount paid")
	cmd.Flags().StringVarP(&method, "method", "m", string(models.MethodCard), "Payment method (UPI, Card, PayPal, Other)")
	cmd.Flags().StringVar(&stat, "status", string(models.PaymentCompleted), "Payment status (Completed, Pending, Failed)")
	_ = cmd.MarkFlagRequired("subscription")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func newPaymentListCommand(rt *runtime) *cobra.Command {
	var subscriptionID int64
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List payments of a subscription",
		RunE: rt.run(func(cmd *cobra.Command, deps *Deps) error {
			payments, err := deps.Service.ListPaymentsForSubscription(cmd.Context(), subscriptionID)
			if err != nil {
				return err
			}
			if len(payments) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No payments found.")
				return nil
			}
			rows := make([][]string, 0, len(payments))
			for _, p := range payments {
				rows = append(rows, []string{
					strconv.FormatInt(p.ID, 10),
					p.Amount.StringFixed(2),
					string(p.Method),
					string(p.Status),
					p.PaymentDate.Format(time.DateTime),
				})
			}
			return printTable(cmd.OutOrStdout(),
				[]string{"ID", "AMOUNT", "METHOD", "STATUS", "DATE"}, rows)
		}),
	}
	cmd.Flags().Int64VarP(&subscriptionID, "subscription", "s", 0, "Subscription id")
	_ = cmd.MarkFlagRequired("subscription")
	return cmd
}
