package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"dataprotection/internal/transport/http/api"
	"dataprotection/internal/transport/http/shared"
)

const (
	maxPeekBytes = 16 * 1024
	// windows are swept once the table grows past this many keys
	sweepThreshold = 4096
)

type RateLimitKeyFunc func(r *http.Request) string

type RateLimitOption func(*fixedWindow)

func WithKeyFunc(fn RateLimitKeyFunc) RateLimitOption {
	return func(fw *fixedWindow) {
		if fn != nil {
			fw.keyFn = fn
		}
	}
}

type windowState struct {
	hits    int
	resetAt time.Time
}

// fixedWindow counts hits per key inside a window that restarts on the first
// hit after it expires.
type fixedWindow struct {
	mu     sync.Mutex
	limit  int
	period time.Duration
	keyFn  RateLimitKeyFunc
	state  map[string]*windowState
	now    func() time.Time
}

func newFixedWindow(limit int, period time.Duration, keyFn RateLimitKeyFunc) *fixedWindow {
	if keyFn == nil {
		keyFn = actorOrIPKey
	}
	return &fixedWindow{
		limit:  limit,
		period: period,
		keyFn:  keyFn,
		state:  map[string]*windowState{},
		now:    time.Now,
	}
}

// RateLimit throttles every request by operator, or by client address before login.
func RateLimit(limit int, period time.Duration, opts ...RateLimitOption) func(http.Handler) http.Handler {
	fw := newFixedWindow(limit, period, actorOrIPKey)
	for _, opt := range opts {
		opt(fw)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if fw.allow(w, r) {
				next.ServeHTTP(w, r)
			}
		})
	}
}

// SensitiveMutationRateLimit applies tighter budgets to login attempts and to
// data subject request submissions. Login is limited by address and by the
// submitted email so one account cannot be guessed from many addresses.
func SensitiveMutationRateLimit(baseLimit int, period time.Duration) func(http.Handler) http.Handler {
	loginByIP := newFixedWindow(max(baseLimit/4, 1), period, clientIPKey)
	loginByEmail := newFixedWindow(max(baseLimit/4, 1), period, loginEmailKey)
	submissions := newFixedWindow(max(baseLimit/2, 1), period, actorOrIPKey)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch sensitiveRateScope(r) {
			case sensitiveScopeAuth:
				if !loginByIP.allow(w, r) || !loginByEmail.allow(w, r) {
					return
				}
			case sensitiveScopeActor:
				if !submissions.allow(w, r) {
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (fw *fixedWindow) allow(w http.ResponseWriter, r *http.Request) bool {
	if fw.limit <= 0 {
		return true
	}
	key := fw.keyFn(r)
	if key == "" {
		key = clientIPKey(r)
	}

	hits, resetIn := fw.hit(key)
	headers := w.Header()
	headers.Set("X-RateLimit-Limit", strconv.Itoa(fw.limit))
	headers.Set("X-RateLimit-Remaining", strconv.Itoa(max(fw.limit-hits, 0)))
	headers.Set("X-RateLimit-Reset", strconv.Itoa(ceilSeconds(resetIn)))
	if hits <= fw.limit {
		return true
	}

	headers.Set("Retry-After", strconv.Itoa(max(ceilSeconds(resetIn), 1)))
	slog.Warn("rate limit exceeded",
		"key", key,
		"method", r.Method,
		"path", r.URL.Path,
		"limit", fw.limit,
		"windowSec", int(fw.period.Seconds()),
	)
	api.Fail(w, http.StatusTooManyRequests, "rate_limited", "too many requests", GetRequestID(r.Context()))
	return false
}

func (fw *fixedWindow) hit(key string) (int, time.Duration) {
	now := fw.now()

	fw.mu.Lock()
	defer fw.mu.Unlock()

	if len(fw.state) >= sweepThreshold {
		for k, st := range fw.state {
			if now.After(st.resetAt) {
				delete(fw.state, k)
			}
		}
	}
	st, ok := fw.state[key]
	if !ok || now.After(st.resetAt) {
		st = &windowState{resetAt: now.Add(fw.period)}
		fw.state[key] = st
	}
	st.hits++
	return st.hits, st.resetAt.Sub(now)
}

func ceilSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}

func actorOrIPKey(r *http.Request) string {
	if user, ok := GetUser(r.Context()); ok && user.OperatorID != "" {
		return "operator:" + user.OperatorID
	}
	return clientIPKey(r)
}

func clientIPKey(r *http.Request) string {
	return "ip:" + shared.ClientIP(r)
}

// loginEmailKey peeks at a JSON login body and restores it for the handler.
func loginEmailKey(r *http.Request) string {
	if r.Body == nil || !strings.Contains(strings.ToLower(r.Header.Get("Content-Type")), "application/json") {
		return clientIPKey(r)
	}
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxPeekBytes))
	if err != nil {
		return clientIPKey(r)
	}
	r.Body = io.NopCloser(io.MultiReader(bytes.NewReader(raw), r.Body))

	var payload struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return clientIPKey(r)
	}
	email := strings.ToLower(strings.TrimSpace(payload.Email))
	if email == "" {
		return clientIPKey(r)
	}
	return "email:" + email
}

type sensitiveScope string

const (
	sensitiveScopeNone  sensitiveScope = ""
	sensitiveScopeAuth  sensitiveScope = "auth"
	sensitiveScopeActor sensitiveScope = "actor"
)

func sensitiveRateScope(r *http.Request) sensitiveScope {
	if r == nil || r.Method != http.MethodPost {
		return sensitiveScopeNone
	}
	path := strings.TrimPrefix(strings.TrimSpace(r.URL.Path), "/api/v1")
	switch {
	case path == "/auth/login":
		return sensitiveScopeAuth
	case path == "/dsr", path == "/dsr/", strings.HasPrefix(path, "/dsr/"):
		return sensitiveScopeActor
	}
	return sensitiveScopeNone
}
