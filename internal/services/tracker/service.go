// Package tracker содержит бизнес-логику трекера подписок: проверку входных
// данных и межсущностных инвариантов графа Пользователь → Подписка → Платёж
// перед обращением к хранилищу, а также агрегаты трат.
//
// Проверки существования и уникальности выполняются по схеме
// "проверить, затем записать" без транзакции. Гонки между параллельными
// вызовами закрываются ограничениями схемы (UNIQUE, внешние ключи), отказ
// которых переводится в ErrConflict или ErrNotFound.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/subscription-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

var (
	// ErrValidation некорректные входные данные.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound сущность, на которую ссылается запрос, не существует.
	ErrNotFound = errors.New("not found")
	// ErrConflict операция нарушила бы инвариант при текущем состоянии.
	ErrConflict = errors.New("conflict")
	// ErrStore ошибка хранилища. Не повторяется, возвращается вызывающему.
	ErrStore = errors.New("store failure")
)

// UserRepository методы хранилища для пользователей.
type UserRepository interface {
	CreateUser(ctx context.Context, name, email string) (*models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	DeleteUser(ctx context.Context, id int64) (int, error)
}

// SubscriptionRepository методы хранилища для подписок.
type SubscriptionRepository interface {
	CreateSubscription(ctx context.Context, sub models.Subscription) (*models.Subscription, error)
	GetSubscription(ctx context.Context, id int64) (*models.Subscription, error)
	ListSubscriptionsByUser(ctx context.Context, userID int64) ([]*models.Subscription, error)
	ListSubscriptions(ctx context.Context) ([]*models.Subscription, error)
	CountSubscriptionsByUser(ctx context.Context, userID int64) (int, error)
}

// PaymentRepository методы хранилища для платежей.
type PaymentRepository interface {
	CreatePayment(ctx context.Context, p models.NewPayment) (*models.Payment, error)
	ListPaymentsBySubscription(ctx context.Context, subscriptionID int64) ([]*models.Payment, error)
	ListPaymentsBySubscriptions(ctx context.Context, ids []int64) ([]*models.Payment, error)
	ListPayments(ctx context.Context) ([]*models.Payment, error)
}

// TemplateRepository методы хранилища для каталога шаблонов.
type TemplateRepository interface {
	ListTemplates(ctx context.Context) ([]*models.Template, error)
	GetTemplateByName(ctx context.Context, name string) (*models.Template, error)
	CreateTemplate(ctx context.Context, tpl models.Template) (*models.Template, error)
}

// Repository объединяет все методы хранилища, нужные сервису.
type Repository interface {
	UserRepository
	SubscriptionRepository
	PaymentRepository
	TemplateRepository
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// Publisher публикует доменные события после успешной записи.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// Service реализует операции трекера.
type Service struct {
	repo      Repository
	cache     Cache
	publisher Publisher
	log       *slog.Logger
}

// New создает сервис. cache и publisher могут быть nil: тогда кеширование
// каталога и публикация событий отключены.
func New(repo Repository, cache Cache, publisher Publisher, log *slog.Logger) *Service {
	if cache == nil {
		cache = noopCache{}
	}
	if publisher == nil {
		publisher = noopPublisher{}
	}
	return &Service{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		log:       log,
	}
}

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func storeError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStore, err)
}

// publish отправляет событие. Ошибка только логируется: запись в хранилище уже состоялась.
func (s *Service) publish(ctx context.Context, routingKey string, payload any) {
	if err := s.publisher.Publish(ctx, routingKey, payload); err != nil {
		s.log.Warn("failed to publish event", slog.String("routing_key", routingKey), sl.Err(err))
	}
}

type noopCache struct{}

func (noopCache) Get(string, any) (bool, error)        { return false, nil }
func (noopCache) Set(string, any, time.Duration) error { return nil }
func (noopCache) Invalidate(string) error              { return nil }

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, string, any) error { return nil }
