// Package main Nutriêde Website
//
// @title           Nutriêde Website
// @version         1.0
// @description     Формы обратной связи и вход во внутренний раздел сайта Nutriêde.

// @contact.name   Nutriêde
// @contact.email  nutriede@nutriede.com.br

// @BasePath  /
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/magabrotheeeer/nutriede/internal/app/nutriede"
	"github.com/magabrotheeeer/nutriede/internal/config"
	"github.com/magabrotheeeer/nutriede/internal/lib/sl"
)

func main() {
	cfg := config.MustLoad()
	logger := sl.SetupLogger(cfg.Env)

	logger.Info("starting nutriede", slog.String("env", cfg.Env))
	logger.Debug("configuration loaded", slog.String("config", cfg.String()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := nutriede.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize app", sl.Err(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("app stopped with error", sl.Err(err))
		os.Exit(1)
	}

	logger.Info("nutriede stopped gracefully")
}
