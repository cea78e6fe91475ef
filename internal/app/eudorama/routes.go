// Package eudorama предоставляет маршруты основного приложения.
package eudorama

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/http/handlers/access/evaluate"
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/http/handlers/auth/login"
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/http/handlers/auth/register"
	clientlist "github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/http/handlers/client/list"
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/http/handlers/client/preferences"
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/http/handlers/client/purge"
	clientremove "github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/http/handlers/client/remove"
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/http/handlers/client/restore"
	clientsave "github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/http/handlers/client/save"
	credclients "github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/http/handlers/credential/clients"
	credlist "github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/http/handlers/credential/list"
	credremove "github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/http/handlers/credential/remove"
	credsave "github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/http/handlers/credential/save"
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/http/handlers/credential/usage"
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/http/handlers/health"
	revenuereport "github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/http/handlers/revenue/report"
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/http/middlewarectx"
	accesssvc "github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/services/access"
	authsvc "github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/services/auth"
	clientsvc "github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/services/client"
	credsvc "github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/services/credential"
	reportsvc "github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/services/report"
)

// RegisterRoutes регистрирует все маршруты приложения.
//
// Клиентские конечные точки (выдача доступа, настройки) открыты: клиент
// идентифицируется номером телефона. Административные операции закрыты
// JWT и ролью admin.
func RegisterRoutes(r chi.Router, logger *slog.Logger, tokenParser middlewarectx.TokenParser,
	authService *authsvc.AuthService,
	clientService *clientsvc.ClientService,
	credentialService *credsvc.CredentialService,
	accessService *accesssvc.AccessService,
	reportService *reportsvc.ReportService,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.RateLimitMiddleware(logger),
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Get("/health", health.New(logger).ServeHTTP)
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)
		r.Get("/clients/{phone}/access", evaluate.New(logger, accessService).ServeHTTP)
		r.Patch("/clients/{phone}/preferences", preferences.New(logger, clientService).ServeHTTP)

		// Группа административных операций
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(tokenParser, logger))
			r.Use(middlewarectx.AdminOnlyMiddleware(logger))
			r.Post("/clients", clientsave.New(logger, clientService).ServeHTTP)
			r.Get("/clients", clientlist.New(logger, clientService).ServeHTTP)
			r.Delete("/clients/{phone}", clientremove.New(logger, clientService).ServeHTTP)
			r.Post("/clients/{phone}/restore", restore.New(logger, clientService).ServeHTTP)
			r.Delete("/clients/{phone}/purge", purge.New(logger, clientService).ServeHTTP)
			r.Post("/credentials", credsave.New(logger, credentialService).ServeHTTP)
			r.Get("/credentials", credlist.New(logger, credentialService).ServeHTTP)
			r.Get("/credentials/usage", usage.New(logger, accessService).ServeHTTP)
			r.Delete("/credentials/{id}", credremove.New(logger, credentialService).ServeHTTP)
			r.Get("/credentials/{id}/clients", credclients.New(logger, accessService).ServeHTTP)
			r.Get("/revenue", revenuereport.New(logger, reportService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
