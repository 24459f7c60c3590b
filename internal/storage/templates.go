package storage

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// ListTemplates возвращает каталог шаблонов подписок в порядке добавления.
func (s *Storage) ListTemplates(ctx context.Context) ([]*models.Template, error) {
	const op = "storage.ListTemplates"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT id, name, plan_type, cost FROM default_subscriptions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Template
	for rows.Next() {
		var tpl models.Template
		if err := rows.Scan(&tpl.ID, &tpl.Name, &tpl.PlanType, &tpl.Cost); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &tpl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetTemplateByName возвращает шаблон по точному имени.
func (s *Storage) GetTemplateByName(ctx context.Context, name string) (*models.Template, error) {
	const op = "storage.GetTemplateByName"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	var tpl models.Template
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, name, plan_type, cost FROM default_subscriptions WHERE name = $1`, name).
		Scan(&tpl.ID, &tpl.Name, &tpl.PlanType, &tpl.Cost)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, classify(err))
	}
	return &tpl, nil
}

// CreateTemplate добавляет шаблон в каталог.
func (s *Storage) CreateTemplate(ctx context.Context, tpl models.Template) (*models.Template, error) {
	const op = "storage.CreateTemplate"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `INSERT INTO default_subscriptions (name, plan_type, cost)
			  VALUES ($1, $2, $3)
			  RETURNING id, name, plan_type, cost`
	var res models.Template
	err := s.DB.QueryRowContext(ctx, query, tpl.Name, string(tpl.PlanType), tpl.Cost).
		Scan(&res.ID, &res.Name, &res.PlanType, &res.Cost)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, classify(err))
	}
	return &res, nil
}
