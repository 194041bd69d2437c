// Package logout завершает сессию пользователя.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/nutriede/internal/config"
	"github.com/magabrotheeeer/nutriede/internal/http/flash"
	"github.com/magabrotheeeer/nutriede/internal/http/middlewarectx"
	"github.com/magabrotheeeer/nutriede/internal/http/paths"
	"github.com/magabrotheeeer/nutriede/internal/lib/sl"
)

// Service отзывает сессию по токену.
type Service interface {
	Logout(ctx context.Context, token string) error
}

// Handler обрабатывает GET /sistema/logout.
type Handler struct {
	log     *slog.Logger
	svc     Service
	cookies config.Session
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, svc Service, cookies config.Session) *Handler {
	return &Handler{log: log, svc: svc, cookies: cookies}
}

// ServeHTTP godoc
// @Summary Выход из внутреннего раздела
// @Description Отзывает сессию, удаляет cookie и перенаправляет на главную страницу.
// @Tags Auth
// @Success 302 "Редирект на главную"
// @Router /sistema/logout [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := h.svc.Logout(r.Context(), middlewarectx.SessionToken(r, h.cookies)); err != nil {
		// cookie всё равно удаляется, запись в Redis истечёт вместе с токеном
		log.Error("failed to revoke session", sl.Err(err))
	}
	if p, ok := middlewarectx.PrincipalFrom(r.Context()); ok {
		log.Info("logout", slog.String("username", p.Username))
	}

	middlewarectx.ClearSessionCookie(w, h.cookies)
	flash.Add(w, r, flash.Success, flash.MsgLoggedOut)
	http.Redirect(w, r, paths.Home, http.StatusFound)
}
