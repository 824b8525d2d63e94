package api

import (
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/BTreeMap/NeuroSoma/internal/models"
)

const (
	maxTrackedClients = 10000
	clientIdleTTL     = 10 * time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipRateLimiter keeps one token bucket per client address. A nil limiter
// allows everything.
type ipRateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	limit   rate.Limit
	burst   int
	now     func() time.Time
}

func newIPRateLimiter(perMin int) *ipRateLimiter {
	if perMin <= 0 {
		return nil
	}
	return &ipRateLimiter{
		clients: make(map[string]*clientLimiter),
		limit:   rate.Every(time.Minute / time.Duration(perMin)),
		burst:   perMin,
		now:     time.Now,
	}
}

// allow reports whether the client may make another request now.
func (l *ipRateLimiter) allow(client string) bool {
	if l == nil {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	c, ok := l.clients[client]
	if !ok {
		if len(l.clients) >= maxTrackedClients {
			l.evictIdle(now)
		}
		c = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[client] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

// evictIdle drops clients not seen within clientIdleTTL. Caller holds mu.
func (l *ipRateLimiter) evictIdle(now time.Time) {
	for k, c := range l.clients {
		if now.Sub(c.lastSeen) > clientIdleTTL {
			delete(l.clients, k)
		}
	}
}

func (l *ipRateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client := clientAddr(r)
		if !l.allow(client) {
			slog.Warn("Server.rateLimit: request rejected", "client", client, "path", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeJSONResponse(w, http.StatusTooManyRequests, models.RetryableError("Too many requests. Please wait a minute and try again."))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientAddr returns the request's remote host without the port.
func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
