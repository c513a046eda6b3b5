package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/corsgate/corsgate/internal/api/types"
	appErr "github.com/corsgate/corsgate/pkg/errors"
	"github.com/corsgate/corsgate/pkg/logger"
)

const visitorTTL = 10 * time.Minute

type limiterEntry struct {
	limiter *rate.Limiter
	last    time.Time
}

// visitors is a per-IP token bucket set. Entries idle for longer than
// visitorTTL are dropped lazily on insert.
type visitors struct {
	mu      sync.Mutex
	rps     rate.Limit
	burst   int
	entries map[string]*limiterEntry
	lastGC  time.Time
}

func (v *visitors) allow(ip string, now time.Time) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	le, ok := v.entries[ip]
	if !ok {
		if now.Sub(v.lastGC) > visitorTTL {
			for k, e := range v.entries {
				if now.Sub(e.last) > visitorTTL {
					delete(v.entries, k)
				}
			}
			v.lastGC = now
		}
		le = &limiterEntry{limiter: rate.NewLimiter(v.rps, v.burst)}
		v.entries[ip] = le
	}
	le.last = now
	return le.limiter.AllowN(now, 1)
}

// getIP returns the client address. X-Forwarded-For is client controlled, so
// it is only consulted when trustProxy is set, and then only its last hop,
// which is the one appended by the proxy in front of us.
func getIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			hops := strings.Split(fwd, ",")
			if ip := strings.TrimSpace(hops[len(hops)-1]); ip != "" {
				return ip
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimit applies a simple IP-based token bucket limiter.
func RateLimit(rps float64, burst int, trustProxy bool) func(http.Handler) http.Handler {
	v := &visitors{
		rps:     rate.Limit(rps),
		burst:   burst,
		entries: map[string]*limiterEntry{},
		lastGC:  time.Now(),
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := getIP(r, trustProxy)
			if !v.allow(ip, time.Now()) {
				id := GetRequestID(r.Context())
				logger.L().Warn("rate limited", zap.String("id", id), zap.String("ip", ip))
				types.WriteError(w, appErr.New(appErr.CodeRateLimited, "too many requests"), id)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
