package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/subscription-tracker/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
	"github.com/magabrotheeeer/subscription-tracker/internal/storage"
)

// AddPayment записывает платёж по существующей подписке.
func (s *Service) AddPayment(ctx context.Context, req models.NewPayment) (*models.Payment, error) {
	const op = "tracker.AddPayment"

	if err := validateMoney("amount", req.Amount); err != nil {
		return nil, err
	}
	if !req.Method.Valid() {
		return nil, validationError("payment method must be one of UPI, Card, PayPal, Other, got %q", req.Method)
	}
	if !req.Status.Valid() {
		return nil, validationError("payment status must be one of Completed, Pending, Failed, got %q", req.Status)
	}

	if _, err := s.repo.GetSubscription(ctx, req.SubscriptionID); err != nil {
		return nil, lookupError(op, fmt.Sprintf("subscription %d", req.SubscriptionID), err)
	}

	payment, err := s.repo.CreatePayment(ctx, req)
	if err != nil {
		if errors.Is(err, storage.ErrReferenced) {
			return nil, fmt.Errorf("%w: subscription %d", ErrNotFound, req.SubscriptionID)
		}
		return nil, writeError(op, err)
	}

	s.log.Info("payment recorded",
		slog.Int64("payment_id", payment.ID),
		slog.Int64("subscription_id", payment.SubscriptionID),
		slog.String("status", string(payment.Status)),
	)
	s.publish(ctx, rabbitmq.RoutingPaymentRecorded, payment)
	return payment, nil
}

// ListPaymentsForSubscription возвращает все платежи подписки.
func (s *Service) ListPaymentsForSubscription(ctx context.Context, subscriptionID int64) ([]*models.Payment, error) {
	const op = "tracker.ListPaymentsForSubscription"

	if _, err := s.repo.GetSubscription(ctx, subscriptionID); err != nil {
		return nil, lookupError(op, fmt.Sprintf("subscription %d", subscriptionID), err)
	}
	payments, err := s.repo.ListPaymentsBySubscription(ctx, subscriptionID)
	if err != nil {
		return nil, storeError(op, err)
	}
	return payments, nil
}
