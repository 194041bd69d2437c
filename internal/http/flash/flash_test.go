package flash

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// carry переносит cookie из ответа в следующий запрос, как это делает браузер.
func carry(rec *httptest.ResponseRecorder, next *http.Request) {
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 {
			continue
		}
		next.AddCookie(c)
	}
}

func TestAddThenPop(t *testing.T) {
	rec := httptest.NewRecorder()
	Add(rec, httptest.NewRequest(http.MethodPost, "/enviar-contato", nil), Success, "Sua mensagem foi enviada!")

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	carry(rec, next)
	rec2 := httptest.NewRecorder()
	msgs := Pop(rec2, next)

	require.Len(t, msgs, 1)
	assert.Equal(t, Message{Category: Success, Text: "Sua mensagem foi enviada!"}, msgs[0])

	cookies := rec2.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestAdd_KeepsPending(t *testing.T) {
	rec := httptest.NewRecorder()
	Add(rec, httptest.NewRequest(http.MethodGet, "/", nil), Info, "primeira")

	second := httptest.NewRequest(http.MethodGet, "/sistema/logout", nil)
	carry(rec, second)
	rec2 := httptest.NewRecorder()
	Add(rec2, second, Success, "segunda")

	third := httptest.NewRequest(http.MethodGet, "/", nil)
	carry(rec2, third)
	msgs := Pop(httptest.NewRecorder(), third)

	require.Len(t, msgs, 2)
	assert.Equal(t, "primeira", msgs[0].Text)
	assert.Equal(t, "segunda", msgs[1].Text)
}

func TestPop_EmptyOrGarbage(t *testing.T) {
	rec := httptest.NewRecorder()
	assert.Nil(t, Pop(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
	assert.Empty(t, rec.Result().Cookies())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "%%%not-base64"})
	assert.Nil(t, Pop(httptest.NewRecorder(), req))
}
