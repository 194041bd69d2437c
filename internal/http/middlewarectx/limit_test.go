package middlewarectx

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/nutriede/internal/config"
	"github.com/magabrotheeeer/nutriede/internal/http/flash"
)

func backToContact(*http.Request) string { return "/#contato" }

func post(h http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/enviar-contato", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimitMiddleware_ThrottlesEachClientSeparately(t *testing.T) {
	limiter := NewClientLimiter(config.RateLimit{RPS: 0.001, Burst: 2})
	h := RateLimitMiddleware(newNoopLogger(), limiter, backToContact)(echoUser)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		codes = append(codes, post(h, "203.0.113.9:40000").Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusSeeOther}, codes)

	// другой посетитель не страдает от чужих запросов
	assert.Equal(t, http.StatusOK, post(h, "198.51.100.7:51000").Code)
	// порт не отличает клиента
	assert.Equal(t, http.StatusSeeOther, post(h, "203.0.113.9:40001").Code)
	// после middleware.RealIP адрес приходит без порта
	assert.Equal(t, http.StatusOK, post(h, "192.0.2.1").Code)
}

func TestRateLimitMiddleware_RedirectsWithNotice(t *testing.T) {
	limiter := NewClientLimiter(config.RateLimit{RPS: 0.001, Burst: 1})
	h := RateLimitMiddleware(newNoopLogger(), limiter, backToContact)(echoUser)

	require.Equal(t, http.StatusOK, post(h, "203.0.113.9:40000").Code)
	rec := post(h, "203.0.113.9:40000")

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/#contato", rec.Header().Get("Location"))
	assert.NotContains(t, rec.Header().Get("Content-Type"), "application/json")

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		next.AddCookie(c)
	}
	msgs := flash.Pop(httptest.NewRecorder(), next)
	require.Len(t, msgs, 1)
	assert.Equal(t, flash.Warning, msgs[0].Category)
	assert.Equal(t, flash.MsgTooManyRequests, msgs[0].Text)
}

func TestClientLimiter_ForgetsIdleClients(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	limiter := NewClientLimiter(config.RateLimit{RPS: 0.001, Burst: 1})
	limiter.now = func() time.Time { return now }

	assert.True(t, limiter.Allow("203.0.113.9"))
	assert.False(t, limiter.Allow("203.0.113.9"))
	assert.True(t, limiter.Allow("198.51.100.7"))
	assert.Equal(t, 2, limiter.size())

	now = now.Add(clientIdleTTL + time.Second)
	assert.True(t, limiter.Allow("192.0.2.1"))
	assert.Equal(t, 1, limiter.size())
	assert.True(t, limiter.Allow("203.0.113.9"), "forgotten client starts with a full bucket")
}
