// Package pages отдаёт статические страницы сайта.
package pages

import (
	"net/http"

	"github.com/magabrotheeeer/nutriede/internal/view"
)

// Renderer отрисовывает страницу по имени.
type Renderer interface {
	Render(w http.ResponseWriter, r *http.Request, status int, name string, data view.Data)
}

// Handler отрисовывает одну фиксированную страницу.
type Handler struct {
	view Renderer
	name string
}

// New создает обработчик страницы name.
func New(v Renderer, name string) *Handler {
	return &Handler{view: v, name: name}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.view.Render(w, r, http.StatusOK, h.name, view.Data{})
}
