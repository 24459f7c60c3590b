package tracker

import (
	"context"

	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

const recentPaymentsLimit = 5

// Overview собирает сводку для дашборда: количество записей, выручку
// по Completed платежам, подписки по пользователям и последние платежи.
func (s *Service) Overview(ctx context.Context) (*models.Overview, error) {
	const op = "tracker.Overview"

	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, storeError(op, err)
	}
	subs, err := s.repo.ListSubscriptions(ctx)
	if err != nil {
		return nil, storeError(op, err)
	}
	payments, err := s.repo.ListPayments(ctx)
	if err != nil {
		return nil, storeError(op, err)
	}

	names := make(map[int64]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}
	byUser := make(map[string]int)
	for _, sub := range subs {
		byUser[names[sub.UserID]]++
	}

	recent := payments
	if len(recent) > recentPaymentsLimit {
		recent = recent[:recentPaymentsLimit]
	}

	return &models.Overview{
		Users:               len(users),
		Subscriptions:       len(subs),
		Payments:            len(payments),
		Revenue:             sumCompleted(payments),
		SubscriptionsByUser: byUser,
		RecentPayments:      recent,
	}, nil
}
