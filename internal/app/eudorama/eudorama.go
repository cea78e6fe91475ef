// Package eudorama собирает основное HTTP-приложение: хранилище,
// кеш, миграции, сервисы и маршруты.
package eudorama

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/cache"
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/config"
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/lib/jwt"
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/migrations"
	accesssvc "github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/services/access"
	authsvc "github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/services/auth"
	clientsvc "github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/services/client"
	credsvc "github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/services/credential"
	reportsvc "github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/services/report"
	"github.com/orionmagalhaes-dotcom/eudorama.com-v1/internal/storage/repository"
)

// App — основное приложение выдачи доступа и администрирования.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

// New инициализирует хранилище, кеш, сервисы и HTTP-сервер.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	accessService := accesssvc.NewAccessService(db, cacheRedis, logger,
		cfg.Allocation.CapacityLimits, cfg.Allocation.SnapshotTTL)
	clientService := clientsvc.NewClientService(db, accessService, logger)
	credentialService := credsvc.NewCredentialService(db, accessService, logger)
	reportService := reportsvc.NewReportService(db, logger,
		cfg.Allocation.Prices, cfg.Allocation.AnalysisDays, cfg.Allocation.ProjectionDays)
	authService := authsvc.NewAuthService(db, jwtMaker)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, jwtMaker,
		authService, clientService, credentialService, accessService, reportService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		return err
	}
}
