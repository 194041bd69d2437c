// Package contact обрабатывает заявки из контактных форм сайта: проверяет
// обязательные поля, собирает письмо и отправляет его на адрес компании.
package contact

import (
	"context"
	"errors"
	"log/slog"
	netmail "net/mail"
	"time"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/nutriede/internal/config"
	"github.com/magabrotheeeer/nutriede/internal/lib/mail"
	"github.com/magabrotheeeer/nutriede/internal/lib/sl"
	"github.com/magabrotheeeer/nutriede/internal/metrics"
	"github.com/magabrotheeeer/nutriede/internal/models"
)

// Outcome итог обработки одной заявки.
type Outcome string

// Возможные итоги обработки заявки.
const (
	OutcomeSent             Outcome = "sent"
	OutcomeValidationFailed Outcome = "validation_failed"
	OutcomeUnknownFormType  Outcome = "unknown_form_type"
	OutcomeSendFailed       Outcome = "send_failed"
)

// Sender доставляет готовое письмо.
type Sender interface {
	Send(ctx context.Context, msg mail.Message) error
}

// Service собирает письма из заявок и передаёт их Sender.
type Service struct {
	log       *slog.Logger
	sender    Sender
	validate  *validator.Validate
	from      netmail.Address
	recipient string
	now       func() time.Time
}

// New создаёт сервис. Отправитель письма всегда учётная запись релея,
// получатель всегда один адрес компании.
func New(log *slog.Logger, sender Sender, cfg config.Mail) *Service {
	return &Service{
		log:       log,
		sender:    sender,
		validate:  validator.New(),
		from:      netmail.Address{Name: cfg.SenderName, Address: cfg.SMTPUser},
		recipient: cfg.Recipient,
		now:       time.Now,
	}
}

// Submit проверяет заявку и отправляет ровно одно письмо, если она корректна.
func (s *Service) Submit(ctx context.Context, sub models.Submission) Outcome {
	const op = "contact.Submit"
	log := s.log.With(slog.String("op", op), slog.String("form_type", sub.FormType))

	outcome := s.submit(ctx, log, sub)
	metrics.ObserveContact(sub.FormType, string(outcome))
	return outcome
}

func (s *Service) submit(ctx context.Context, log *slog.Logger, sub models.Submission) Outcome {
	f, ok := parseForm(sub)
	if !ok {
		log.Warn("unknown form type")
		return OutcomeUnknownFormType
	}

	if err := s.validate.Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fe.Namespace())
			}
			log.Info("submission rejected", slog.Any("fields", fields))
		} else {
			log.Error("failed to validate submission", sl.Err(err))
		}
		return OutcomeValidationFailed
	}

	msg := mail.Message{
		From:    s.from,
		To:      []string{s.recipient},
		Subject: f.subject(),
		Body:    f.body(),
		Date:    s.now(),
	}
	if a := f.attachment(); a != nil {
		msg.Attachments = []mail.Attachment{{
			Filename:    a.Filename,
			ContentType: a.ContentType,
			Data:        a.Data,
		}}
	}

	if err := s.sender.Send(ctx, msg); err != nil {
		log.Error("failed to dispatch submission", sl.Err(err))
		return OutcomeSendFailed
	}

	log.Info("submission dispatched", slog.String("subject", msg.Subject))
	return OutcomeSent
}
