package smtp

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/smtp"

	"github.com/magabrotheeeer/nutriede/internal/config"
	"github.com/magabrotheeeer/nutriede/internal/lib/sl"
)

// Transport реализует SMTP транспорт для отправки писем.
type Transport struct {
	cfg config.Mail
	log *slog.Logger
}

// smtpClientWrapper обертка для *smtp.Client, реализующая интерфейс Client.
type smtpClientWrapper struct {
	client *smtp.Client
}

func (w *smtpClientWrapper) Mail(from string) error {
	return w.client.Mail(from)
}

func (w *smtpClientWrapper) Rcpt(to string) error {
	return w.client.Rcpt(to)
}

func (w *smtpClientWrapper) Data() (io.WriteCloser, error) {
	return w.client.Data()
}

func (w *smtpClientWrapper) Quit() error {
	return w.client.Quit()
}

func (w *smtpClientWrapper) Close() error {
	return w.client.Close()
}

// NewTransport создает новый экземпляр Transport.
func NewTransport(cfg config.Mail, log *slog.Logger) *Transport {
	return &Transport{cfg: cfg, log: log}
}

// Connect устанавливает соединение с SMTP сервером.
//
// MAIL_USE_SSL включает TLS сразу при подключении (порт 465), MAIL_USE_TLS требует
// STARTTLS. Аутентификация выполняется, только если задан MAIL_USERNAME.
func (t *Transport) Connect(ctx context.Context) (Client, error) {
	addr := net.JoinHostPort(t.cfg.SMTPHost, t.cfg.SMTPPort)

	dialer := &net.Dialer{Timeout: t.cfg.MailDialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		t.log.Error("failed to dial SMTP server", slog.String("addr", addr), sl.Err(err))
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	tlsConfig := &tls.Config{
		ServerName: t.cfg.SMTPHost,
		MinVersion: tls.VersionTLS12,
	}

	if t.cfg.UseSSL {
		tlsConn := tls.Client(conn, tlsConfig)
		if err = tlsConn.HandshakeContext(ctx); err != nil {
			t.log.Error("failed TLS handshake", sl.Err(err))
			t.closeConn(conn)
			return nil, fmt.Errorf("%w: %w", ErrTLS, err)
		}
		conn = tlsConn
	}

	client, err := smtp.NewClient(conn, t.cfg.SMTPHost)
	if err != nil {
		t.log.Error("failed to create SMTP client", sl.Err(err))
		t.closeConn(conn)
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}

	if t.cfg.UseTLS {
		if ok, _ := client.Extension("STARTTLS"); !ok {
			t.log.Error("SMTP server does not support STARTTLS")
			t.closeClient(client)
			return nil, fmt.Errorf("%w: server does not support STARTTLS", ErrTLS)
		}
		if err = client.StartTLS(tlsConfig); err != nil {
			t.log.Error("failed to start TLS", sl.Err(err))
			t.closeClient(client)
			return nil, fmt.Errorf("%w: %w", ErrTLS, err)
		}
	}

	if t.cfg.SMTPUser != "" {
		auth := smtp.PlainAuth("", t.cfg.SMTPUser, t.cfg.SMTPPass, t.cfg.SMTPHost)
		if err = client.Auth(auth); err != nil {
			t.log.Error("smtp auth failed", sl.Err(err))
			t.closeClient(client)
			return nil, fmt.Errorf("%w: %w", ErrAuth, err)
		}
	}

	return &smtpClientWrapper{client: client}, nil
}

// GetSMTPUser возвращает имя пользователя SMTP, оно же адрес отправителя.
func (t *Transport) GetSMTPUser() string {
	return t.cfg.SMTPUser
}

func (t *Transport) closeConn(conn net.Conn) {
	if closeErr := conn.Close(); closeErr != nil {
		t.log.Error("failed to close connection", sl.Err(closeErr))
	}
}

func (t *Transport) closeClient(client *smtp.Client) {
	if closeErr := client.Close(); closeErr != nil {
		t.log.Error("failed to close client", sl.Err(closeErr))
	}
}
