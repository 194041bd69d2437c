// Package dashboard отдаёт страницу внутреннего раздела.
// Доступ проверяет middlewarectx.RequireSession.
package dashboard

import (
	"net/http"

	"github.com/magabrotheeeer/nutriede/internal/view"
)

// Renderer отрисовывает страницу по имени.
type Renderer interface {
	Render(w http.ResponseWriter, r *http.Request, status int, name string, data view.Data)
}

// Handler обрабатывает GET /sistema/dashboard.
type Handler struct {
	view Renderer
}

// New создает новый экземпляр Handler.
func New(v Renderer) *Handler {
	return &Handler{view: v}
}

// ServeHTTP godoc
// @Summary Дашборд
// @Description Доступен только вошедшим пользователям, прошедшим политику доступа.
// @Description Иначе редирект на /sistema/login?next=/sistema/dashboard.
// @Tags Auth
// @Produce  html
// @Success 200 "Страница дашборда"
// @Success 302 "Нужен вход"
// @Router /sistema/dashboard [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.view.Render(w, r, http.StatusOK, view.PageDashboard, view.Data{})
}
