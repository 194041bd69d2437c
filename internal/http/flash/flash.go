// Package flash хранит короткие уведомления для пользователя в cookie
// до следующей отрисованной страницы.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

// CookieName имя cookie с ожидающими уведомлениями.
const CookieName = "nutriede_flash"

// Категории уведомлений, совпадают с классами alert в шаблонах.
const (
	Success = "success"
	Info    = "info"
	Warning = "warning"
	Danger  = "danger"
)

// Message одно уведомление.
type Message struct {
	Category string `json:"c"`
	Text     string `json:"m"`
}

// Add добавляет уведомление к ещё не показанным. Вызывается не больше
// одного раза на ответ: повторный вызов перезапишет cookie.
func Add(w http.ResponseWriter, r *http.Request, category, text string) {
	pending := read(r)
	pending = append(pending, Message{Category: category, Text: text})
	write(w, pending)
}

// Pop возвращает накопленные уведомления и удаляет cookie.
func Pop(w http.ResponseWriter, r *http.Request) []Message {
	pending := read(r)
	if len(pending) == 0 {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return pending
}

func read(r *http.Request) []Message {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}
	var msgs []Message
	if err := json.Unmarshal(raw, &msgs); err != nil {
		return nil
	}
	return msgs
}

func write(w http.ResponseWriter, msgs []Message) {
	raw, err := json.Marshal(msgs)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
