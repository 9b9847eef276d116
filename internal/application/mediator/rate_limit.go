package mediator

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	"github.com/gmcclure382/DragaliaAPI/internal/domain/shared"
)

// PlayerRateLimiter hands out one token bucket per player
type PlayerRateLimiter struct {
	mu       sync.Mutex
	limiters map[int]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// NewPlayerRateLimiter allows requestsPerSecond sustained with burst per player
func NewPlayerRateLimiter(requestsPerSecond float64, burst int) *PlayerRateLimiter {
	return &PlayerRateLimiter{
		limiters: make(map[int]*rate.Limiter),
		limit:    rate.Limit(requestsPerSecond),
		burst:    burst,
	}
}

func (l *PlayerRateLimiter) limiterFor(playerID int) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, exists := l.limiters[playerID]
	if !exists {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[playerID] = limiter
	}
	return limiter
}

// Allow reports whether the player may issue another request now
func (l *PlayerRateLimiter) Allow(playerID int) bool {
	return l.limiterFor(playerID).Allow()
}

// RateLimitMiddleware rejects player-scoped requests once the player's bucket is empty.
// Requests that are not PlayerScoped pass through.
func RateLimitMiddleware(limiter *PlayerRateLimiter) Middleware {
	return func(ctx context.Context, request Request, next HandlerFunc) (Response, error) {
		scoped, ok := request.(PlayerScoped)
		if !ok || limiter == nil {
			return next(ctx, request)
		}

		if !limiter.Allow(scoped.ScopePlayerID()) {
			return nil, shared.NewDomainError(shared.ResultCodeCommonRequestLimit, "too many requests")
		}
		return next(ctx, request)
	}
}
