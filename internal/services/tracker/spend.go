package tracker

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// TotalSpend возвращает сумму Completed платежей по всем подпискам пользователя.
// Без подписок или платежей результат равен нулю.
func (s *Service) TotalSpend(ctx context.Context, userID int64) (decimal.Decimal, error) {
	const op = "tracker.TotalSpend"

	_, payments, err := s.userPayments(ctx, op, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return sumCompleted(payments), nil
}

// SpendBySubscription возвращает суммы Completed платежей по названиям подписок.
// Подписки с одинаковым названием складываются в одну запись.
func (s *Service) SpendBySubscription(ctx context.Context, userID int64) (models.SpendBreakdown, error) {
	const op = "tracker.SpendBySubscription"

	subs, payments, err := s.userPayments(ctx, op, userID)
	if err != nil {
		return nil, err
	}

	names := make(map[int64]string, len(subs))
	for _, sub := range subs {
		names[sub.ID] = sub.Name
	}

	result := models.SpendBreakdown{}
	for _, p := range payments {
		if p.Status != models.PaymentCompleted {
			continue
		}
		name := names[p.SubscriptionID]
		result[name] = result[name].Add(p.Amount)
	}
	return result, nil
}

func (s *Service) userPayments(ctx context.Context, op string, userID int64) ([]*models.Subscription, []*models.Payment, error) {
	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		return nil, nil, lookupError(op, fmt.Sprintf("user %d", userID), err)
	}

	subs, err := s.repo.ListSubscriptionsByUser(ctx, userID)
	if err != nil {
		return nil, nil, storeError(op, err)
	}
	if len(subs) == 0 {
		return nil, nil, nil
	}

	ids := make([]int64, 0, len(subs))
	for _, sub := range subs {
		ids = append(ids, sub.ID)
	}
	payments, err := s.repo.ListPaymentsBySubscriptions(ctx, ids)
	if err != nil {
		return nil, nil, storeError(op, err)
	}
	return subs, payments, nil
}

func sumCompleted(payments []*models.Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		if p.Status == models.PaymentCompleted {
			total = total.Add(p.Amount)
		}
	}
	return total
}
