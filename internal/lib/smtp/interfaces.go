// Package smtp предоставляет транспорт до SMTP-релея и интерфейсы для работы с ним.
package smtp

import (
	"context"
	"errors"
	"io"
)

// Ошибки подключения, по которым отправитель различает причину сбоя.
var (
	// ErrConnect релей недоступен по сети.
	ErrConnect = errors.New("smtp: connection failed")
	// ErrTLS не удалось установить TLS.
	ErrTLS = errors.New("smtp: tls negotiation failed")
	// ErrAuth релей отверг учётные данные, что обычно означает ошибку конфигурации.
	ErrAuth = errors.New("smtp: authentication failed")
)

// Причины сбоя отправки для логов и метрик.
const (
	CauseNetwork  = "network"
	CauseTLS      = "tls"
	CauseAuth     = "auth"
	CauseProtocol = "protocol"
)

// Client интерфейс для SMTP клиента.
type Client interface {
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}

// TransportInterface интерфейс для SMTP транспорта.
type TransportInterface interface {
	Connect(ctx context.Context) (Client, error)
	GetSMTPUser() string
}

// Cause классифицирует ошибку отправки. Всё, что произошло после успешного
// подключения (MAIL, RCPT, DATA), считается ошибкой протокола.
func Cause(err error) string {
	switch {
	case errors.Is(err, ErrAuth):
		return CauseAuth
	case errors.Is(err, ErrTLS):
		return CauseTLS
	case errors.Is(err, ErrConnect), errors.Is(err, context.DeadlineExceeded):
		return CauseNetwork
	default:
		return CauseProtocol
	}
}
