package api

import (
	"net"
	"net/http"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/a-bouts/nav-calculator/api/model"
)

// a client idle for that long gets a fresh bucket on its next request
const idleTimeout = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter gives each client address its own token bucket
type IPRateLimiter struct {
	// TrustProxy keys clients on X-REAL-IP / X-FORWARDED-FOR, only set it
	// when a reverse proxy in front of the server rewrites these headers
	TrustProxy bool

	ips       map[string]*visitor
	mu        sync.Mutex
	r         rate.Limit
	b         int
	lastSweep time.Time
	now       func() time.Time
}

// NewIPRateLimiter allows perMinute requests per client, with bursts of b
func NewIPRateLimiter(perMinute float64, b int) *IPRateLimiter {
	return &IPRateLimiter{
		ips: make(map[string]*visitor),
		r:   rate.Limit(perMinute / 60),
		b:   b,
		now: time.Now,
	}
}

func (l *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > idleTimeout {
		for k, v := range l.ips {
			if now.Sub(v.lastSeen) > idleTimeout {
				delete(l.ips, k)
			}
		}
		l.lastSweep = now
	}

	v, exists := l.ips[ip]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(l.r, l.b)}
		l.ips[ip] = v
	}
	v.lastSeen = now

	return v.limiter
}

func (l *IPRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.ips)
}

func (l *IPRateLimiter) clientIp(r *http.Request) string {
	if l.TrustProxy {
		if ip, err := getIp(r); err == nil {
			return ip
		}
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := l.clientIp(r)
		if !l.GetLimiter(ip).Allow() {
			log.WithField("IP", ip).Warn("Rate limit exceeded")
			writeJSON(w, http.StatusTooManyRequests, model.Errors{Errors: []string{"Too many requests"}})
			return
		}
		next.ServeHTTP(w, r)
	})
}
