package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/subscription-tracker/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
	"github.com/magabrotheeeer/subscription-tracker/internal/storage"
)

// CreateUser регистрирует пользователя. Email должен быть корректным и ещё не занятым.
func (s *Service) CreateUser(ctx context.Context, name, email string) (*models.User, error) {
	const op = "tracker.CreateUser"

	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return nil, validationError("name and email are required")
	}
	if !ValidateEmail(email) {
		return nil, validationError("invalid email address %q", email)
	}

	_, err := s.repo.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: email %q already registered", ErrConflict, email)
	case !errors.Is(err, storage.ErrNotFound):
		return nil, storeError(op, err)
	}

	user, err := s.repo.CreateUser(ctx, name, email)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, fmt.Errorf("%w: email %q already registered", ErrConflict, email)
		}
		return nil, storeError(op, err)
	}

	s.log.Info("user created", slog.Int64("user_id", user.ID))
	s.publish(ctx, rabbitmq.RoutingUserCreated, user)
	return user, nil
}

// DeleteUser удаляет пользователя, у которого нет ни одной подписки.
func (s *Service) DeleteUser(ctx context.Context, userID int64) error {
	const op = "tracker.DeleteUser"

	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		return lookupError(op, fmt.Sprintf("user %d", userID), err)
	}

	count, err := s.repo.CountSubscriptionsByUser(ctx, userID)
	if err != nil {
		return storeError(op, err)
	}
	if count > 0 {
		return fmt.Errorf("%w: user %d has %d subscription(s)", ErrConflict, userID, count)
	}

	deleted, err := s.repo.DeleteUser(ctx, userID)
	if err != nil {
		// подписка появилась между проверкой и удалением
		if errors.Is(err, storage.ErrReferenced) {
			return fmt.Errorf("%w: user %d has subscriptions", ErrConflict, userID)
		}
		return storeError(op, err)
	}
	if deleted == 0 {
		return fmt.Errorf("%w: user %d", ErrNotFound, userID)
	}

	s.log.Info("user deleted", slog.Int64("user_id", userID))
	s.publish(ctx, rabbitmq.RoutingUserDeleted, map[string]int64{"user_id": userID})
	return nil
}

// GetUser возвращает пользователя по ID.
func (s *Service) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	const op = "tracker.GetUser"
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, lookupError(op, fmt.Sprintf("user %d", userID), err)
	}
	return user, nil
}

// FindUserByEmail ищет пользователя по email.
func (s *Service) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "tracker.FindUserByEmail"
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, validationError("email is required")
	}
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, lookupError(op, fmt.Sprintf("user with email %q", email), err)
	}
	return user, nil
}

// ListUsers возвращает всех пользователей.
func (s *Service) ListUsers(ctx context.Context) ([]*models.User, error) {
	const op = "tracker.ListUsers"
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, storeError(op, err)
	}
	return users, nil
}
