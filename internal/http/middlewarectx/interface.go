package middlewarectx

import (
	"context"

	"github.com/magabrotheeeer/nutriede/internal/services/auth"
)

// Service описывает проверку сессии и политику доступа.
type Service interface {
	Authenticate(ctx context.Context, token string) (*auth.Principal, error)
	Allows(role string) bool
}
