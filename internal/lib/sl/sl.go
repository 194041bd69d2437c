// Package sl содержит вспомогательные функции для работы с логгером slog:
// настройку логгера под окружение и единообразные атрибуты для ошибок.
package sl

import (
	"io"
	"log/slog"
	"os"
)

const (
	envLocal = "local"
	envTest  = "test"
)

// SetupLogger возвращает логгер для окружения env.
//
// Локально пишет текст с уровнем Debug, в остальных окружениях JSON с уровнем Info,
// который разбирает Cloud Logging.
func SetupLogger(env string) *slog.Logger {
	return newLogger(env, os.Stdout)
}

func newLogger(env string, w io.Writer) *slog.Logger {
	switch env {
	case envLocal, envTest:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
}

// Err возвращает slog.Attr с ключом "error" и значением текста ошибки.
//
// Пример:
//
//	log.Error("failed to send email", sl.Err(err))
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{Key: "error", Value: slog.StringValue("<nil>")}
	}
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
