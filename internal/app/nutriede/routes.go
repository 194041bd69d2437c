package nutriede

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	// Регистрация описания API для /docs.
	_ "github.com/magabrotheeeer/nutriede/docs"

	"github.com/magabrotheeeer/nutriede/internal/config"
	"github.com/magabrotheeeer/nutriede/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/nutriede/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/nutriede/internal/http/handlers/contact"
	"github.com/magabrotheeeer/nutriede/internal/http/handlers/dashboard"
	"github.com/magabrotheeeer/nutriede/internal/http/handlers/health"
	"github.com/magabrotheeeer/nutriede/internal/http/handlers/pages"
	"github.com/magabrotheeeer/nutriede/internal/http/middlewarectx"
	"github.com/magabrotheeeer/nutriede/internal/http/paths"
	authservice "github.com/magabrotheeeer/nutriede/internal/services/auth"
	contactservice "github.com/magabrotheeeer/nutriede/internal/services/contact"
	"github.com/magabrotheeeer/nutriede/internal/view"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(
	r chi.Router,
	logger *slog.Logger,
	cfg *config.Config,
	v *view.View,
	authService *authservice.AuthService,
	contactService *contactservice.Service,
	deps map[string]health.Pinger,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		middlewarectx.LoadSession(authService, cfg.Session, logger),
	)

	// у форм контакта и входа раздельные лимиты на каждого клиента
	contactLimit := middlewarectx.RateLimitMiddleware(logger, middlewarectx.NewClientLimiter(cfg.RateLimit),
		func(*http.Request) string { return paths.Contact })
	loginLimit := middlewarectx.RateLimitMiddleware(logger, middlewarectx.NewClientLimiter(cfg.RateLimit),
		func(r *http.Request) string { return r.URL.RequestURI() })

	// Публичные страницы
	r.Get("/", pages.New(v, view.PageIndex).ServeHTTP)
	r.Get("/empresa", pages.New(v, view.PageEmpresa).ServeHTTP)
	r.Get("/estrutura", pages.New(v, view.PageEstrutura).ServeHTTP)
	r.Get("/servicos", pages.New(v, view.PageServicos).ServeHTTP)
	r.With(contactLimit).Post("/enviar-contato", contact.New(logger, contactService, cfg.MaxUploadSize).ServeHTTP)

	// Внутренний раздел
	r.Route("/sistema", func(r chi.Router) {
		loginHandler := login.New(logger, authService, v, cfg.Session)
		r.Get("/login", loginHandler.ServeHTTP)
		r.With(loginLimit).Post("/login", loginHandler.ServeHTTP)
		r.Get("/logout", logout.New(logger, authService, cfg.Session).ServeHTTP)

		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RequireSession(authService, logger))
			r.Get("/dashboard", dashboard.New(v).ServeHTTP)
		})
	})

	// Старые адреса без префикса /sistema
	r.Handle("/login", legacyRedirect(paths.Login))
	r.Handle("/logout", legacyRedirect(paths.Logout))
	r.Handle("/dashboard", legacyRedirect(paths.Dashboard))

	r.Get("/healthz", health.New(logger, deps).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}

// legacyRedirect сохраняет метод и строку запроса (в том числе next).
func legacyRedirect(target string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		to := target
		if r.URL.RawQuery != "" {
			to += "?" + r.URL.RawQuery
		}
		http.Redirect(w, r, to, http.StatusPermanentRedirect)
	}
}
