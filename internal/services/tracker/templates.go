package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/subscription-tracker/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
	"github.com/magabrotheeeer/subscription-tracker/internal/storage"
)

const (
	templatesCacheKey = "templates:all"
	templatesCacheTTL = 5 * time.Minute
)

// ListTemplates возвращает каталог шаблонов, по возможности из кеша.
func (s *Service) ListTemplates(ctx context.Context) ([]*models.Template, error) {
	const op = "tracker.ListTemplates"

	var cached []*models.Template
	found, err := s.cache.Get(templatesCacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read templates from cache", sl.Err(err))
	}
	if found {
		return cached, nil
	}

	templates, err := s.repo.ListTemplates(ctx)
	if err != nil {
		return nil, storeError(op, err)
	}
	if err := s.cache.Set(templatesCacheKey, templates, templatesCacheTTL); err != nil {
		s.log.Warn("failed to cache templates", sl.Err(err))
	}
	return templates, nil
}

// resolveTemplate находит шаблон по ссылке. Шаблон из каталога имеет приоритет
// над данными в ref, даже если они отличаются.
func (s *Service) resolveTemplate(ctx context.Context, ref models.TemplateRef) (*models.Template, error) {
	const op = "tracker.resolveTemplate"

	if ref.Name == "" {
		templates, err := s.repo.ListTemplates(ctx)
		if err != nil {
			return nil, storeError(op, err)
		}
		if ref.Index > len(templates) {
			return nil, fmt.Errorf("%w: template #%d", ErrNotFound, ref.Index)
		}
		return templates[ref.Index-1], nil
	}

	tpl, err := s.repo.GetTemplateByName(ctx, ref.Name)
	switch {
	case err == nil:
		return tpl, nil
	case !errors.Is(err, storage.ErrNotFound):
		return nil, storeError(op, err)
	case !ref.Custom():
		return nil, fmt.Errorf("%w: template %q", ErrNotFound, ref.Name)
	}
	if err := validatePlan(ref.PlanType, *ref.Cost); err != nil {
		return nil, err
	}

	return s.appendTemplate(ctx, models.Template{
		Name:     ref.Name,
		PlanType: ref.PlanType,
		Cost:     *ref.Cost,
	})
}

// appendTemplate добавляет шаблон в каталог и сбрасывает кеш каталога.
func (s *Service) appendTemplate(ctx context.Context, tpl models.Template) (*models.Template, error) {
	const op = "tracker.appendTemplate"

	created, err := s.repo.CreateTemplate(ctx, tpl)
	if err != nil {
		if !errors.Is(err, storage.ErrAlreadyExists) {
			return nil, writeError(op, err)
		}
		// шаблон с таким именем добавили параллельно
		created, err = s.repo.GetTemplateByName(ctx, tpl.Name)
		if err != nil {
			return nil, storeError(op, err)
		}
		return created, nil
	}

	if err := s.cache.Invalidate(templatesCacheKey); err != nil {
		s.log.Warn("failed to invalidate templates cache", sl.Err(err))
	}
	s.log.Info("template added to catalog", slog.String("name", created.Name))
	s.publish(ctx, rabbitmq.RoutingTemplateCreated, created)
	return created, nil
}
