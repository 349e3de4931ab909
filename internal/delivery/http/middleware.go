package http

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sallamerger/backend/internal/domain"
	"golang.org/x/time/rate"
)

// CORSMiddleware handles CORS for the desktop app and local front-ends
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		// Check if origin is allowed
		if isAllowedOrigin(origin, allowedOrigins) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
			c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")
			c.Writer.Header().Set("Access-Control-Max-Age", "3600")
		}

		// Handle preflight requests
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// isAllowedOrigin checks if the origin is in the allowed list
func isAllowedOrigin(origin string, allowedOrigins []string) bool {
	if origin == "" {
		return false
	}
	for _, allowed := range allowedOrigins {
		// Support wildcard suffix matching such as http://localhost:*
		if strings.HasSuffix(allowed, "*") {
			prefix := strings.TrimSuffix(allowed, "*")
			if strings.HasPrefix(origin, prefix) {
				return true
			}
		} else if origin == allowed {
			return true
		}
	}
	return false
}

// limiterIdleTimeout is how long a client may stay quiet before its bucket is dropped.
// A bucket refills completely within a minute, so a dropped bucket and a fresh one behave the same.
const limiterIdleTimeout = 3 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter hands out one token bucket per client IP
type IPRateLimiter struct {
	limiters    map[string]*clientLimiter
	mutex       sync.Mutex
	limit       rate.Limit
	burst       int
	idleTimeout time.Duration
	lastSweep   time.Time
	now         func() time.Time
}

// NewIPRateLimiter allows perMinute requests per minute per IP, with bursts of the same size
func NewIPRateLimiter(perMinute int) *IPRateLimiter {
	return &IPRateLimiter{
		limiters:    make(map[string]*clientLimiter),
		limit:       rate.Every(time.Minute / time.Duration(perMinute)),
		burst:       perMinute,
		idleTimeout: limiterIdleTimeout,
		lastSweep:   time.Now(),
		now:         time.Now,
	}
}

// Allow reports whether a request from ip may proceed now
func (l *IPRateLimiter) Allow(ip string) bool {
	l.mutex.Lock()
	now := l.now()
	if now.Sub(l.lastSweep) >= l.idleTimeout {
		l.sweep(now)
	}

	client, ok := l.limiters[ip]
	if !ok {
		client = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[ip] = client
	}
	client.lastSeen = now
	l.mutex.Unlock()

	return client.limiter.AllowN(now, 1)
}

// Len returns the number of clients currently tracked
func (l *IPRateLimiter) Len() int {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return len(l.limiters)
}

// sweep drops clients idle for longer than idleTimeout. Callers hold the mutex.
func (l *IPRateLimiter) sweep(now time.Time) {
	for ip, client := range l.limiters {
		if now.Sub(client.lastSeen) > l.idleTimeout {
			delete(l.limiters, ip)
		}
	}
	l.lastSweep = now
}

// RateLimitMiddleware rejects requests beyond the per-IP budget with 429
func RateLimitMiddleware(limiter *IPRateLimiter, language string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   domain.Message(domain.ErrRateLimited, language),
			})
			return
		}
		c.Next()
	}
}

// LoggerMiddleware logs requests (simple version for now)
func LoggerMiddleware() gin.HandlerFunc {
	return gin.Logger()
}

// RecoveryMiddleware recovers from panics
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.Recovery()
}
