// Package cli консольный интерфейс трекера подписок на cobra.
//
// Команды работают через тот же сервис, что и HTTP API. Зависимости
// открываются на время выполнения каждой команды.
package cli

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// Service операции трекера, доступные из консоли.
type Service interface {
	CreateUser(ctx context.Context, name, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	DeleteUser(ctx context.Context, userID int64) error
	AddSubscription(ctx context.Context, userID int64, req models.NewSubscription) (*models.Subscription, error)
	AddFromTemplate(ctx context.Context, userID int64, ref models.TemplateRef, startDate, endDate string) (*models.Subscription, error)
	ListSubscriptionsForUser(ctx context.Context, userID int64) ([]*models.Subscription, error)
	AddPayment(ctx context.Context, req models.NewPayment) (*models.Payment, error)
	ListPaymentsForSubscription(ctx context.Context, subscriptionID int64) ([]*models.Payment, error)
	TotalSpend(ctx context.Context, userID int64) (decimal.Decimal, error)
	SpendBySubscription(ctx context.Context, userID int64) (models.SpendBreakdown, error)
	ListTemplates(ctx context.Context) ([]*models.Template, error)
}

// TokenIssuer выпускает токены оператора для HTTP API.
type TokenIssuer interface {
	GenerateToken(subject, role string) (string, error)
}

// Migrator применяет миграции схемы и возвращает итоговую версию.
type Migrator interface {
	Up() (uint, error)
}

// Deps открытые зависимости команд.
type Deps struct {
	Service  Service
	Tokens   TokenIssuer
	Migrator Migrator
	Close    func() error
}

// Loader открывает зависимости по пути к конфигу.
type Loader func(configPath string) (*Deps, error)

type runtime struct {
	load       Loader
	configPath string
}

// run открывает зависимости для одной команды и закрывает их после неё,
// в том числе при ошибке.
func (r *runtime) run(fn func(cmd *cobra.Command, deps *Deps) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) (err error) {
		deps, err := r.load(r.configPath)
		if err != nil {
			return fmt.Errorf("failed to open tracker: %w", err)
		}
		if deps.Close != nil {
			defer func() {
				if cerr := deps.Close(); cerr != nil && err == nil {
					err = cerr
				}
			}()
		}
		return fn(cmd, deps)
	}
}

// NewRootCommand собирает дерево команд tracker-cli.
func NewRootCommand(load Loader) *cobra.Command {
	rt := &runtime{load: load}

	cmd := &cobra.Command{
		Use:          "tracker-cli",
		Short:        "Subscription tracker console",
		Long:         `Manage users, their subscriptions and payments, and report spend from the command line.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&rt.configPath, "config", "c", "", "Path to config file (default: $CONFIG_PATH)")

	cmd.AddCommand(
		newUserCommand(rt),
		newSubscriptionCommand(rt),
		newPaymentCommand(rt),
		newSpendCommand(rt),
		newTemplateCommand(rt),
		newTokenCommand(rt),
		newMigrateCommand(rt),
	)

	return cmd
}
