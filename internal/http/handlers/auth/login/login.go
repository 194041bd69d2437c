// Package login реализует страницу входа во внутренний раздел.
//
// GET отрисовывает форму (или сразу отправляет вошедшего пользователя в дашборд),
// POST проверяет e-mail и пароль, ставит cookie сессии и перенаправляет
// на безопасный локальный адрес из параметра next либо в дашборд.
package login

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/nutriede/internal/config"
	"github.com/magabrotheeeer/nutriede/internal/http/flash"
	"github.com/magabrotheeeer/nutriede/internal/http/middlewarectx"
	"github.com/magabrotheeeer/nutriede/internal/http/paths"
	"github.com/magabrotheeeer/nutriede/internal/lib/sl"
	"github.com/magabrotheeeer/nutriede/internal/metrics"
	"github.com/magabrotheeeer/nutriede/internal/services/auth"
	"github.com/magabrotheeeer/nutriede/internal/view"
)

// Handler обрабатывает HTTP-запросы для авторизации.
type Handler struct {
	log     *slog.Logger   // Логгер для записи операций и ошибок
	svc     Service        // Сервис аутентификации
	view    Renderer       // Отрисовка страницы входа
	cookies config.Session // Параметры cookie сессии
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, svc Service, v Renderer, cookies config.Session) *Handler {
	return &Handler{
		log:     log,
		svc:     svc,
		view:    v,
		cookies: cookies,
	}
}

// ServeHTTP godoc
// @Summary Вход во внутренний раздел
// @Description GET отдаёт форму входа. POST проверяет учётные данные, ставит cookie сессии
// @Description и перенаправляет на next (только локальный путь) или в дашборд.
// @Tags Auth
// @Accept  x-www-form-urlencoded
// @Produce  html
// @Param next query string false "Локальный путь для возврата после входа"
// @Param email formData string false "E-mail пользователя (POST)"
// @Param password formData string false "Пароль (POST)"
// @Success 200 "Форма входа, при неудаче с уведомлением"
// @Success 302 "Вход выполнен"
// @Failure 500 "Внутренняя ошибка"
// @Router /sistema/login [get]
// @Router /sistema/login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if p, ok := middlewarectx.PrincipalFrom(r.Context()); ok && h.svc.Allows(p.Role) {
		http.Redirect(w, r, paths.Dashboard, http.StatusFound)
		return
	}

	next := paths.SafeNext(r.URL.Query().Get("next"))
	if r.Method != http.MethodPost {
		h.view.Render(w, r, http.StatusOK, view.PageLogin, view.Data{Next: next})
		return
	}

	if err := r.ParseForm(); err != nil {
		log.Info("failed to parse login form", sl.Err(err))
	}
	email := r.PostFormValue("email")

	session, err := h.svc.Login(r.Context(), email, r.PostFormValue("password"))
	if err != nil {
		data := view.Data{Next: next, Email: email}
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			log.Info("invalid credentials")
			metrics.ObserveLogin(metrics.LoginInvalid)
			data.Flashes = []flash.Message{{Category: flash.Danger, Text: flash.MsgInvalidLogin}}
			h.view.Render(w, r, http.StatusOK, view.PageLogin, data)
		case errors.Is(err, auth.ErrRoleDenied):
			log.Warn("role denied by access policy")
			metrics.ObserveLogin(metrics.LoginRoleDenied)
			data.Flashes = []flash.Message{{Category: flash.Danger, Text: flash.MsgRoleDenied}}
			h.view.Render(w, r, http.StatusOK, view.PageLogin, data)
		default:
			log.Error("login failed", sl.Err(err))
			metrics.ObserveLogin(metrics.LoginStoreFailed)
			data.Flashes = []flash.Message{{Category: flash.Danger, Text: flash.MsgInternalError}}
			h.view.Render(w, r, http.StatusInternalServerError, view.PageLogin, data)
		}
		return
	}

	middlewarectx.SetSessionCookie(w, h.cookies, session.Token, session.ExpiresAt)
	metrics.ObserveLogin(metrics.LoginSuccess)
	log.Info("login success", slog.String("username", session.Principal.Username))

	target := paths.Dashboard
	if next != "" {
		target = next
	}
	http.Redirect(w, r, target, http.StatusFound)
}
