package tracker

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/subscription-tracker/internal/config"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/health"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/overview"
	paymentcreate "github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/payment/create"
	paymentlist "github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/payment/list"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/spend/breakdown"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/spend/total"
	subscriptioncreate "github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/subscription/create"
	subscriptionlist "github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/subscription/list"
	subscriptiontemplate "github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/subscription/template"
	templatelist "github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/template/list"
	usercreate "github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/user/create"
	userlist "github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/user/list"
	userread "github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/user/read"
	userremove "github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/user/remove"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/middlewarectx"
	trackerservice "github.com/magabrotheeeer/subscription-tracker/internal/services/tracker"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(
	r chi.Router,
	logger *slog.Logger,
	cfg config.RateLimit,
	service *trackerservice.Service,
	tokens middlewarectx.TokenParser,
	db health.Pinger,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		middlewarectx.MetricsMiddleware,
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", health.New(logger, db).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(logger, cfg.RequestsPerSecond, cfg.Burst))
			r.Use(middlewarectx.JWTMiddleware(tokens, logger))

			r.Post("/users", usercreate.New(logger, service).ServeHTTP)
			r.Get("/users", userlist.New(logger, service).ServeHTTP)
			r.Get("/users/{id}", userread.New(logger, service).ServeHTTP)
			r.Delete("/users/{id}", userremove.New(logger, service).ServeHTTP)

			r.Post("/users/{id}/subscriptions", subscriptioncreate.New(logger, service).ServeHTTP)
			r.Post("/users/{id}/subscriptions/template", subscriptiontemplate.New(logger, service).ServeHTTP)
			r.Get("/users/{id}/subscriptions", subscriptionlist.New(logger, service).ServeHTTP)

			r.Get("/users/{id}/spend", total.New(logger, service).ServeHTTP)
			r.Get("/users/{id}/spend/breakdown", breakdown.New(logger, service).ServeHTTP)

			r.Post("/payments", paymentcreate.New(logger, service).ServeHTTP)
			r.Get("/subscriptions/{id}/payments", paymentlist.New(logger, service).ServeHTTP)

			r.Get("/templates", templatelist.New(logger, service).ServeHTTP)
			r.Get("/overview", overview.New(logger, service).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
