package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/subscription-tracker/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
	"github.com/magabrotheeeer/subscription-tracker/internal/storage"
)

// AddSubscription создаёт подписку пользователя. Статус всегда Active.
func (s *Service) AddSubscription(ctx context.Context, userID int64, req models.NewSubscription) (*models.Subscription, error) {
	const op = "tracker.AddSubscription"

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, validationError("subscription name is required")
	}
	if err := validatePlan(req.PlanType, req.Cost); err != nil {
		return nil, err
	}
	start, end, err := parsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		return nil, lookupError(op, fmt.Sprintf("user %d", userID), err)
	}

	return s.createSubscription(ctx, op, models.Subscription{
		UserID:    userID,
		Name:      name,
		PlanType:  req.PlanType,
		Cost:      req.Cost,
		StartDate: start,
		EndDate:   end,
		Status:    models.SubscriptionActive,
	})
}

// AddFromTemplate создаёт подписку пользователя из шаблона каталога.
// Если шаблона с именем ref.Name нет, но в ref заданы тип плана и стоимость,
// шаблон сначала добавляется в каталог, затем создаётся подписка. Тип плана и
// стоимость из ref проверяются только в этом случае.
func (s *Service) AddFromTemplate(ctx context.Context, userID int64, ref models.TemplateRef, startDate, endDate string) (*models.Subscription, error) {
	const op = "tracker.AddFromTemplate"

	ref.Name = strings.TrimSpace(ref.Name)
	if ref.Name == "" && ref.Index <= 0 {
		return nil, validationError("template name or index is required")
	}
	start, end, err := parsePeriod(startDate, endDate)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		return nil, lookupError(op, fmt.Sprintf("user %d", userID), err)
	}

	tpl, err := s.resolveTemplate(ctx, ref)
	if err != nil {
		return nil, err
	}

	return s.createSubscription(ctx, op, models.Subscription{
		UserID:    userID,
		Name:      tpl.Name,
		PlanType:  tpl.PlanType,
		Cost:      tpl.Cost,
		StartDate: start,
		EndDate:   end,
		Status:    models.SubscriptionActive,
	})
}

// ListSubscriptionsForUser возвращает подписки пользователя в порядке хранилища.
func (s *Service) ListSubscriptionsForUser(ctx context.Context, userID int64) ([]*models.Subscription, error) {
	const op = "tracker.ListSubscriptionsForUser"

	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		return nil, lookupError(op, fmt.Sprintf("user %d", userID), err)
	}
	subs, err := s.repo.ListSubscriptionsByUser(ctx, userID)
	if err != nil {
		return nil, storeError(op, err)
	}
	return subs, nil
}

// GetSubscription возвращает подписку по ID.
func (s *Service) GetSubscription(ctx context.Context, id int64) (*models.Subscription, error) {
	const op = "tracker.GetSubscription"
	sub, err := s.repo.GetSubscription(ctx, id)
	if err != nil {
		return nil, lookupError(op, fmt.Sprintf("subscription %d", id), err)
	}
	return sub, nil
}

func (s *Service) createSubscription(ctx context.Context, op string, sub models.Subscription) (*models.Subscription, error) {
	created, err := s.repo.CreateSubscription(ctx, sub)
	if err != nil {
		// пользователь удалён между проверкой и вставкой
		if errors.Is(err, storage.ErrReferenced) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, sub.UserID)
		}
		return nil, writeError(op, err)
	}

	s.log.Info("subscription created",
		slog.Int64("subscription_id", created.ID),
		slog.Int64("user_id", created.UserID),
	)
	s.publish(ctx, rabbitmq.RoutingSubscriptionCreated, created)
	return created, nil
}

func validatePlan(plan models.PlanType, cost decimal.Decimal) error {
	if !plan.Valid() {
		return validationError("plan type must be monthly or yearly, got %q", plan)
	}
	return validateMoney("cost", cost)
}

func parsePeriod(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := time.Parse(models.DateLayout, strings.TrimSpace(startDate))
	if err != nil {
		return time.Time{}, time.Time{}, validationError("invalid start date %q, expected YYYY-MM-DD", startDate)
	}
	end, err := time.Parse(models.DateLayout, strings.TrimSpace(endDate))
	if err != nil {
		return time.Time{}, time.Time{}, validationError("invalid end date %q, expected YYYY-MM-DD", endDate)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, validationError("end date must not be earlier than start date")
	}
	return start, end, nil
}
