package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"studiosite/internal/config"
	handlers "studiosite/internal/handler"
)

// clientState is the fixed window of one client
type clientState struct {
	windowStart  time.Time
	requestCount int
}

// RateLimiter counts requests per client IP in fixed windows.
type RateLimiter struct {
	maxRequests int
	window      time.Duration
	now         func() time.Time

	mu      sync.Mutex
	clients map[string]*clientState
}

const (
	defaultWindow      = 15 * time.Minute
	defaultMaxRequests = 100
)

func NewRateLimiter(cfg config.RateLimit) *RateLimiter {
	if cfg.Window <= 0 {
		cfg.Window = defaultWindow
	}
	if cfg.MaxRequests <= 0 {
		cfg.MaxRequests = defaultMaxRequests
	}

	return &RateLimiter{
		maxRequests: cfg.MaxRequests,
		window:      cfg.Window,
		now:         time.Now,
		clients:     make(map[string]*clientState),
	}
}

// Allow records a request from ip and reports whether it fits in the current window,
// plus the time left until the window resets.
func (l *RateLimiter) Allow(ip string) (bool, time.Duration) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	state, exists := l.clients[ip]
	if !exists || now.Sub(state.windowStart) >= l.window {
		state = &clientState{windowStart: now}
		l.clients[ip] = state
	}

	state.requestCount++
	return state.requestCount <= l.maxRequests, state.windowStart.Add(l.window).Sub(now)
}

func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, resetIn := l.Allow(clientIP(r))
		if !allowed {
			w.Header().Set("Retry-After", strconv.Itoa(int(resetIn.Round(time.Second).Seconds())))
			handlers.WriteError(w, "Too many requests from this IP, please try again later.", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ForPrefix limits only requests whose path starts with prefix, matched or not.
func (l *RateLimiter) ForPrefix(prefix string) Middleware {
	return func(next http.Handler) http.Handler {
		limited := l.Middleware(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasPrefix(r.URL.Path, prefix) {
				next.ServeHTTP(w, r)
				return
			}
			limited.ServeHTTP(w, r)
		})
	}
}

// Cleanup drops expired windows every window until ctx is done.
func (l *RateLimiter) Cleanup(ctx context.Context) {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.evictExpired()
		}
	}
}

func (l *RateLimiter) evictExpired() {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	for ip, state := range l.clients {
		if now.Sub(state.windowStart) >= l.window {
			delete(l.clients, ip)
		}
	}
}

func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
