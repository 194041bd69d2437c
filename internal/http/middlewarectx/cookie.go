package middlewarectx

import (
	"net/http"
	"time"

	"github.com/magabrotheeeer/nutriede/internal/config"
)

// SetSessionCookie кладёт токен сессии в HttpOnly cookie до момента expires.
func SetSessionCookie(w http.ResponseWriter, cfg config.Session, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie удаляет cookie сессии.
func ClearSessionCookie(w http.ResponseWriter, cfg config.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// SessionToken возвращает токен из cookie запроса или пустую строку.
func SessionToken(r *http.Request, cfg config.Session) string {
	c, err := r.Cookie(cfg.CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}
