package storage

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

const paymentColumns = `id, subscription_id, amount, method, status, payment_date`

func scanPayment(row scanner) (*models.Payment, error) {
	var p models.Payment
	if err := row.Scan(&p.ID, &p.SubscriptionID, &p.Amount, &p.Method, &p.Status, &p.PaymentDate); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePayment вставляет платёж. Дату платежа проставляет база.
func (s *Storage) CreatePayment(ctx context.Context, p models.NewPayment) (*models.Payment, error) {
	const op = "storage.CreatePayment"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `INSERT INTO payments (subscription_id, amount, method, status)
			  VALUES ($1, $2, $3, $4)
			  RETURNING ` + paymentColumns
	res, err := scanPayment(s.DB.QueryRowContext(ctx, query,
		p.SubscriptionID, p.Amount, string(p.Method), string(p.Status)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, classify(err))
	}
	return res, nil
}

// ListPaymentsBySubscription возвращает все платежи подписки.
func (s *Storage) ListPaymentsBySubscription(ctx context.Context, subscriptionID int64) ([]*models.Payment, error) {
	const op = "storage.ListPaymentsBySubscription"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT ` + paymentColumns + ` FROM payments WHERE subscription_id = $1`
	return s.queryPayments(ctx, op, query, subscriptionID)
}

// ListPaymentsBySubscriptions возвращает платежи, чей subscription_id входит в набор ids.
func (s *Storage) ListPaymentsBySubscriptions(ctx context.Context, ids []int64) ([]*models.Payment, error) {
	const op = "storage.ListPaymentsBySubscriptions"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT ` + paymentColumns + ` FROM payments WHERE subscription_id = ANY($1)`
	return s.queryPayments(ctx, op, query, ids)
}

// ListPayments возвращает все платежи, начиная с самых свежих.
func (s *Storage) ListPayments(ctx context.Context) ([]*models.Payment, error) {
	const op = "storage.ListPayments"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT ` + paymentColumns + ` FROM payments ORDER BY payment_date DESC, id DESC`
	return s.queryPayments(ctx, op, query)
}

func (s *Storage) queryPayments(ctx context.Context, op, query string, args ...any) ([]*models.Payment, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
