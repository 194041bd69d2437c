package login

import (
	"context"
	"net/http"

	"github.com/magabrotheeeer/nutriede/internal/services/auth"
	"github.com/magabrotheeeer/nutriede/internal/view"
)

// Service описывает интерфейс бизнес-логики входа.
type Service interface {
	Login(ctx context.Context, email, password string) (*auth.Session, error)
	Allows(role string) bool
}

// Renderer отрисовывает страницу входа.
type Renderer interface {
	Render(w http.ResponseWriter, r *http.Request, status int, name string, data view.Data)
}
