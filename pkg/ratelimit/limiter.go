package ratelimit

import (
	"context"
	"time"
)

// Limiter decides whether a request identified by key may proceed.
// When it may not, retryAfter reports how long the caller should wait.
type Limiter interface {
	Allow(ctx context.Context, key string, now time.Time) (allowed bool, retryAfter time.Duration, err error)
}
