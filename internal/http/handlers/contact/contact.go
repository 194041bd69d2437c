// Package contact реализует единый обработчик контактных форм сайта.
//
// Обработчик разбирает тело запроса (urlencoded или multipart), собирает
// models.Submission и передаёт её сервису. Итог сообщается посетителю
// уведомлением, после чего браузер возвращается к разделу #contato.
package contact

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/nutriede/internal/http/flash"
	"github.com/magabrotheeeer/nutriede/internal/http/paths"
	"github.com/magabrotheeeer/nutriede/internal/lib/sl"
	"github.com/magabrotheeeer/nutriede/internal/metrics"
	"github.com/magabrotheeeer/nutriede/internal/models"
	contactsvc "github.com/magabrotheeeer/nutriede/internal/services/contact"
)

const resumeField = "curriculo"

// Service описывает интерфейс обработки заявки.
type Service interface {
	Submit(ctx context.Context, sub models.Submission) contactsvc.Outcome
}

// Handler обрабатывает POST /enviar-contato.
type Handler struct {
	log     *slog.Logger
	svc     Service
	maxBody int64
}

// New создает обработчик. maxBody ограничивает размер тела запроса вместе с вложением.
func New(log *slog.Logger, svc Service, maxBody int64) *Handler {
	return &Handler{
		log:     log,
		svc:     svc,
		maxBody: maxBody,
	}
}

// ServeHTTP godoc
// @Summary Отправка контактной формы
// @Description Принимает одну из трёх форм сайта (orcamento, fornecedor, trabalhe_conosco) и пересылает её по e-mail.
// @Description Результат показывается уведомлением на главной странице.
// @Tags Contact
// @Accept  x-www-form-urlencoded
// @Accept  mpfd
// @Param form_type formData string true "Тип формы" Enums(orcamento, fornecedor, trabalhe_conosco)
// @Param nome formData string false "Имя (orcamento)"
// @Param empresa formData string false "Компания (orcamento)"
// @Param cnpj formData string false "CNPJ (orcamento)"
// @Param qtd_refeicoes formData string false "Количество блюд в день (orcamento)"
// @Param email formData string false "E-mail (orcamento)"
// @Param mensagem formData string false "Сообщение (orcamento)"
// @Param fornecedor_empresa formData string false "Компания (fornecedor)"
// @Param fornecedor_contato formData string false "Контактное лицо (fornecedor)"
// @Param fornecedor_email formData string false "E-mail (fornecedor)"
// @Param fornecedor_produto formData string false "Продукт или услуга (fornecedor)"
// @Param candidato_nome formData string false "Полное имя (trabalhe_conosco)"
// @Param candidato_email formData string false "E-mail (trabalhe_conosco)"
// @Param candidato_telefone formData string false "Телефон (trabalhe_conosco)"
// @Param curriculo formData file false "Резюме (trabalhe_conosco)"
// @Success 302 "Редирект на /#contato с уведомлением"
// @Success 303 "Слишком много запросов: редирект на /#contato с уведомлением"
// @Router /enviar-contato [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.contact"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	sub, err := h.parse(w, r)
	if err != nil {
		log.Info("failed to parse submission", sl.Err(err))
		metrics.ObserveContact(r.PostFormValue("form_type"), string(contactsvc.OutcomeValidationFailed))
		flash.Add(w, r, flash.Warning, flash.MsgContactInvalid)
		http.Redirect(w, r, paths.Contact, http.StatusFound)
		return
	}

	outcome := h.svc.Submit(r.Context(), sub)
	log.Info("submission processed",
		slog.String("form_type", sub.FormType),
		slog.String("outcome", string(outcome)),
	)

	switch outcome {
	case contactsvc.OutcomeSent:
		flash.Add(w, r, flash.Success, flash.MsgContactSent)
	case contactsvc.OutcomeUnknownFormType:
		flash.Add(w, r, flash.Warning, flash.MsgUnknownForm)
	case contactsvc.OutcomeValidationFailed:
		flash.Add(w, r, flash.Warning, flash.MsgContactInvalid)
	default:
		flash.Add(w, r, flash.Danger, flash.MsgContactFailed)
	}
	http.Redirect(w, r, paths.Contact, http.StatusFound)
}

// parse читает поля формы и необязательное вложение curriculo.
func (h *Handler) parse(w http.ResponseWriter, r *http.Request) (models.Submission, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)

	err := r.ParseMultipartForm(h.maxBody)
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return models.Submission{}, err
	}
	if r.MultipartForm != nil {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	}

	sub := models.Submission{
		FormType: r.PostFormValue("form_type"),
		Fields:   make(map[string]string, len(r.PostForm)),
	}
	for key, values := range r.PostForm {
		if key == "form_type" || len(values) == 0 {
			continue
		}
		sub.Fields[key] = values[0]
	}

	if r.MultipartForm == nil {
		return sub, nil
	}
	file, header, err := r.FormFile(resumeField)
	if errors.Is(err, http.ErrMissingFile) {
		return sub, nil
	}
	if err != nil {
		return models.Submission{}, err
	}
	defer file.Close()

	if header.Filename == "" {
		return sub, nil
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return models.Submission{}, err
	}
	sub.Attachment = &models.Attachment{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}
	return sub, nil
}
