// Package nutriede собирает сайт: хранилище, кэш сессий, SMTP-транспорт,
// сервисы, шаблоны и HTTP-сервер.
package nutriede

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/nutriede/internal/cache"
	"github.com/magabrotheeeer/nutriede/internal/config"
	"github.com/magabrotheeeer/nutriede/internal/http/handlers/health"
	"github.com/magabrotheeeer/nutriede/internal/lib/jwt"
	"github.com/magabrotheeeer/nutriede/internal/lib/sl"
	"github.com/magabrotheeeer/nutriede/internal/lib/smtp"
	"github.com/magabrotheeeer/nutriede/internal/migrations"
	authservice "github.com/magabrotheeeer/nutriede/internal/services/auth"
	contactservice "github.com/magabrotheeeer/nutriede/internal/services/contact"
	senderservice "github.com/magabrotheeeer/nutriede/internal/services/sender"
	"github.com/magabrotheeeer/nutriede/internal/storage/repository"
	"github.com/magabrotheeeer/nutriede/internal/view"
)

const shutdownTimeout = 15 * time.Second

// App HTTP-сервер сайта и ресурсы, которые нужно закрыть при остановке.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

// New подключается к зависимостям, применяет миграции и настраивает маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.New"

	if err := os.MkdirAll(cfg.UploadFolder, 0o755); err != nil {
		return nil, fmt.Errorf("%s: upload folder: %w", op, err)
	}

	db, err := repository.New(ctx, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	version, err := migrations.Run(db.DB, cfg.MigrationsPath)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	logger.Info("database schema is up to date", slog.Uint64("version", uint64(version)))

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	pages, err := view.New(logger)
	if err != nil {
		_ = db.Close()
		_ = cacheRedis.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	jwtMaker := jwt.NewJWTMaker(cfg.SecretKey, cfg.TokenTTL)
	authService := authservice.NewAuthService(db, cacheRedis, jwtMaker, cfg.Access)

	transport := smtp.NewTransport(cfg.Mail, logger)
	senderService := senderservice.NewSenderService(logger, transport)
	contactService := contactservice.New(logger, senderService, cfg.Mail)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, pages, authService, contactService, map[string]health.Pinger{
		"postgres": db,
		"redis":    cacheRedis,
	})

	srv := &http.Server{
		Addr:         cfg.Address(),
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

// Run обслуживает запросы до отмены ctx, затем корректно останавливает сервер.
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

	var err error
	select {
	case err = <-errCh:
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err = a.server.Shutdown(timeoutCtx)
	}

	if cerr := a.db.Close(); cerr != nil {
		a.logger.Error("failed to close database", sl.Err(cerr))
	}
	if cerr := a.cache.Close(); cerr != nil {
		a.logger.Error("failed to close redis", sl.Err(cerr))
	}
	return err
}
