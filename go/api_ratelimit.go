package houseplansserver

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	apierrors "github.com/cedrichouse/houseplans-api/internal/shared/errors"
)

const (
	limiterIdleTTL       = 10 * time.Minute
	limiterSweepInterval = time.Minute
)

// SubmissionLimiter throttles public write endpoints per client IP with a token bucket.
type SubmissionLimiter struct {
	limit rate.Limit
	burst int
	now   func() time.Time

	mu        sync.Mutex
	clients   map[string]*clientLimiter
	lastSweep time.Time
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewSubmissionLimiter allows perMinute requests per client with the given burst.
// It returns nil when perMinute is not positive, which disables throttling.
func NewSubmissionLimiter(perMinute, burst int) *SubmissionLimiter {
	if perMinute <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}
	return &SubmissionLimiter{
		limit:   rate.Limit(float64(perMinute) / 60),
		burst:   burst,
		now:     time.Now,
		clients: make(map[string]*clientLimiter),
	}
}

// Middleware rejects requests over the limit with a 429 problem and a Retry-After hint.
func (l *SubmissionLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if l == nil {
			c.Next()
			return
		}
		lim := l.forClient(c.ClientIP())
		if lim.Allow() {
			c.Next()
			return
		}
		retry := time.Duration(float64(time.Second) / float64(l.limit))
		c.Header("Retry-After", strconv.Itoa(int(retry.Seconds()+0.5)))
		respondProblem(c, apierrors.ErrTooManyRequests.WithMessage("Too many requests, please try again shortly"))
		c.Abort()
	}
}

func (l *SubmissionLimiter) forClient(ip string) *rate.Limiter {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()
	if now.Sub(l.lastSweep) >= limiterSweepInterval {
		for key, cl := range l.clients {
			if now.Sub(cl.lastSeen) > limiterIdleTTL {
				delete(l.clients, key)
			}
		}
		l.lastSweep = now
	}
	cl, ok := l.clients[ip]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = cl
	}
	cl.lastSeen = now
	return cl.limiter
}
