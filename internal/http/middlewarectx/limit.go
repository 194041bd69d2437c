package middlewarectx

import (
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/middleware"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/nutriede/internal/config"
	"github.com/magabrotheeeer/nutriede/internal/http/flash"
)

// clientIdleTTL через столько без запросов лимитер клиента забывается.
const clientIdleTTL = 10 * time.Minute

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ClientLimiter держит отдельное ведро токенов на каждый адрес клиента.
type ClientLimiter struct {
	mu        sync.Mutex
	clients   map[string]*clientBucket
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// NewClientLimiter создаёт лимитер с параметрами из конфига.
func NewClientLimiter(cfg config.RateLimit) *ClientLimiter {
	return &ClientLimiter{
		clients: make(map[string]*clientBucket),
		limit:   rate.Limit(cfg.RPS),
		burst:   cfg.Burst,
		idleTTL: clientIdleTTL,
		now:     time.Now,
	}
}

// Allow расходует токен клиента key.
func (l *ClientLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.idleTTL {
		l.sweep(now)
	}

	b, ok := l.clients[key]
	if !ok {
		b = &clientBucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1)
}

// sweep удаляет клиентов, не приходивших дольше idleTTL. Вызывается под mu.
func (l *ClientLimiter) sweep(now time.Time) {
	for key, b := range l.clients {
		if now.Sub(b.lastSeen) >= l.idleTTL {
			delete(l.clients, key)
		}
	}
	l.lastSweep = now
}

func (l *ClientLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// clientKey адрес клиента. После middleware.RealIP в RemoteAddr лежит IP без порта.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimitMiddleware ограничивает частоту запросов каждого клиента.
// Превысивший лимит посетитель получает уведомление и редирект на адрес,
// который вернёт redirectTo.
func RateLimitMiddleware(log *slog.Logger, limiter *ClientLimiter, redirectTo func(r *http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := clientKey(r)
			if !limiter.Allow(client) {
				log.Warn("too many requests",
					slog.String("path", r.URL.Path),
					slog.String("client", client),
					slog.String("request_id", middleware.GetReqID(r.Context())),
				)
				flash.Add(w, r, flash.Warning, flash.MsgTooManyRequests)
				http.Redirect(w, r, redirectTo(r), http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
