// Package middlewarectx содержит HTTP middleware сайта.
//
// LoadSession восстанавливает пользователя из cookie сессии и кладёт его
// в контекст запроса. RequireSession пропускает к внутреннему разделу только
// вошедших пользователей, роль которых проходит политику доступа; остальных
// отправляет на страницу входа с параметром next.
package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/nutriede/internal/config"
	"github.com/magabrotheeeer/nutriede/internal/http/flash"
	"github.com/magabrotheeeer/nutriede/internal/http/paths"
	"github.com/magabrotheeeer/nutriede/internal/lib/sl"
	"github.com/magabrotheeeer/nutriede/internal/services/auth"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// User ключ для пользователя сессии в контексте.
const User Key = "user"

// WithPrincipal возвращает контекст с пользователем сессии.
func WithPrincipal(ctx context.Context, p *auth.Principal) context.Context {
	return context.WithValue(ctx, User, p)
}

// PrincipalFrom достаёт пользователя сессии из контекста.
func PrincipalFrom(ctx context.Context) (*auth.Principal, bool) {
	p, ok := ctx.Value(User).(*auth.Principal)
	return p, ok && p != nil
}

// LoadSession проверяет cookie сессии. Недействительная cookie удаляется,
// запрос продолжается анонимно.
func LoadSession(svc Service, cookies config.Session, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.LoadSession"

			token := SessionToken(r, cookies)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			principal, err := svc.Authenticate(r.Context(), token)
			if err != nil {
				if errors.Is(err, auth.ErrSessionInvalid) {
					log.Debug("dropping invalid session cookie",
						slog.String("op", op),
						slog.String("request_id", middleware.GetReqID(r.Context())),
						sl.Err(err),
					)
					ClearSessionCookie(w, cookies)
				} else {
					log.Error("failed to check session",
						slog.String("op", op),
						slog.String("request_id", middleware.GetReqID(r.Context())),
						sl.Err(err),
					)
				}
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		})
	}
}

// RequireSession пускает дальше только пользователя, прошедшего LoadSession
// и политику доступа.
func RequireSession(svc Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RequireSession"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			principal, ok := PrincipalFrom(r.Context())
			if !ok {
				log.Info("anonymous access to protected page", slog.String("path", r.URL.Path))
				flash.Add(w, r, flash.Info, flash.MsgLoginRequired)
				http.Redirect(w, r, paths.LoginWithNext(r.URL.RequestURI()), http.StatusFound)
				return
			}

			if !svc.Allows(principal.Role) {
				log.Warn("role denied by access policy",
					slog.String("username", principal.Username),
					slog.String("role", principal.Role),
				)
				flash.Add(w, r, flash.Danger, flash.MsgRoleDenied)
				http.Redirect(w, r, paths.Login, http.StatusFound)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
