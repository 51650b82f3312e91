package middleware

import (
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Process-wide limiter tiers, built once by InitRateLimiters before the
// router starts serving. Handlers only ever read them.
var (
	GeneralLimiter *IPRateLimiter
	SearchLimiter  *IPRateLimiter
	BookingLimiter *IPRateLimiter
)

// IPRateLimiter keeps one token bucket per client IP.
type IPRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
	message  string
}

func NewIPRateLimiter(requests int, window time.Duration, message string) *IPRateLimiter {
	return &IPRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(float64(requests) / window.Seconds()),
		burst:    requests,
		message:  message,
	}
}

func (l *IPRateLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.limiters[ip]
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.limiters[ip] = lim
	}
	return lim
}

// Allow reports whether the client may make another request now.
func (l *IPRateLimiter) Allow(ip string) bool {
	return l.get(ip).Allow()
}

// InitRateLimiters builds the three tiers: a general limit across the API,
// a tighter one for availability searches and the tightest for bookings.
// The general window and volume can be tuned via environment variables.
func InitRateLimiters() {
	windowMs := envInt("RATE_LIMIT_WINDOW_MS", 15*60*1000)
	maxRequests := envInt("RATE_LIMIT_MAX_REQUESTS", 100)

	GeneralLimiter = NewIPRateLimiter(maxRequests, time.Duration(windowMs)*time.Millisecond,
		"Too many requests from this IP, please try again later.")
	SearchLimiter = NewIPRateLimiter(30, time.Minute,
		"Too many search requests from this IP, please try again later.")
	BookingLimiter = NewIPRateLimiter(10, 5*time.Minute,
		"Too many booking requests from this IP, please try again later.")
}

// RateLimit rejects requests over the tier's budget with 429.
func RateLimit(l *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": l.message,
			})
			return
		}
		c.Next()
	}
}

func envInt(key string, defaultValue int) int {
	if v, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}
