// Package sender доставляет собранные письма через SMTP-релей.
package sender

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/nutriede/internal/lib/mail"
	"github.com/magabrotheeeer/nutriede/internal/lib/sl"
	"github.com/magabrotheeeer/nutriede/internal/lib/smtp"
	"github.com/magabrotheeeer/nutriede/internal/metrics"
)

// SenderService проводит один SMTP-диалог на каждое письмо. Повторов нет.
type SenderService struct {
	transport smtp.TransportInterface
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(log *slog.Logger, transport smtp.TransportInterface) *SenderService {
	return &SenderService{
		transport: transport,
		log:       log,
	}
}

// Send отправляет письмо. Причина сбоя пишется в лог и в метрики,
// наружу возвращается обёрнутая ошибка.
func (s *SenderService) Send(ctx context.Context, msg mail.Message) (err error) {
	const op = "sender.Send"
	log := s.log.With(slog.String("op", op))

	defer func() {
		if err != nil {
			cause := smtp.Cause(err)
			metrics.ObserveSendFailure(cause)
			log.Error("failed to send email", slog.String("cause", cause), sl.Err(err))
			err = fmt.Errorf("%s: %w", op, err)
		}
	}()

	data, err := msg.Bytes()
	if err != nil {
		return err
	}

	client, err := s.transport.Connect(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	from := s.transport.GetSMTPUser()
	if from == "" {
		from = msg.From.Address
	}
	if err := client.Mail(from); err != nil {
		return fmt.Errorf("MAIL FROM %s: %w", from, err)
	}

	for _, addr := range msg.To {
		if err := client.Rcpt(addr); err != nil {
			return fmt.Errorf("RCPT TO %s: %w", addr, err)
		}
	}

	wc, err := client.Data()
	if err != nil {
		return fmt.Errorf("DATA: %w", err)
	}
	if _, err := wc.Write(data); err != nil {
		_ = wc.Close()
		return fmt.Errorf("write body: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("close body: %w", err)
	}

	// после DATA релей уже принял письмо, сбой QUIT не делает отправку неудачной
	if err := client.Quit(); err != nil {
		log.Warn("QUIT failed after message was accepted", sl.Err(err))
	}

	log.Info("email sent successfully", slog.Any("to", msg.To), slog.Int("size", len(data)))
	return nil
}
