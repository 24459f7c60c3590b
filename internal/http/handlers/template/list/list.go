// Package list реализует HTTP-обработчик каталога шаблонов подписок.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/subscription-tracker/internal/http/response"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// Handler возвращает каталог шаблонов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики каталога.
type Service interface {
	ListTemplates(ctx context.Context) ([]*models.Template, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Каталог шаблонов
// @Description Номер шаблона для подписки из шаблона равен его позиции в списке, начиная с единицы.
// @Tags Templates
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 500 {object} response.ErrorResponse
// @Router /templates [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.template.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	templates, err := h.service.ListTemplates(r.Context())
	if err != nil {
		log.Error("failed to list templates", sl.Err(err))
		status, resp := response.FromServiceError(err, "could not list templates")
		render.Status(r, status)
		render.JSON(w, r, resp)
		return
	}
	if templates == nil {
		templates = []*models.Template{}
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"templates": templates,
	}))
}
