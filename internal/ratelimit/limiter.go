package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultWindow      = 60 * time.Second
	defaultMaxRequests = 10
)

// Result is the only outcome a caller ever sees. Store connectivity
// problems are swallowed and logged, never surfaced.
type Result struct {
	Allowed           bool
	RetryAfterSeconds int
}

// SharedStore is the counter protocol a distributed backend has to offer:
// INCR, EXPIRE and TTL semantics over some request/response transport.
type SharedStore interface {
	Incr(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
	TTL(ctx context.Context, key string) (time.Duration, error)
}

// FixedWindowLimiter admits up to maxRequests calls per key within a fixed
// window. With a shared store configured it coordinates across instances;
// without one (or when the store is unreachable) it degrades to best-effort
// local limiting.
type FixedWindowLimiter struct {
	window      time.Duration
	maxRequests int
	shared      SharedStore
	local       *memoryStore
	now         func() time.Time
	logger      zerolog.Logger
}

type Option func(*FixedWindowLimiter)

func WithSharedStore(store SharedStore) Option {
	return func(l *FixedWindowLimiter) {
		l.shared = store
	}
}

func WithClock(now func() time.Time) Option {
	return func(l *FixedWindowLimiter) {
		l.now = now
	}
}

func WithLimits(maxRequests int, window time.Duration) Option {
	return func(l *FixedWindowLimiter) {
		l.maxRequests = maxRequests
		l.window = window
	}
}

func NewFixedWindowLimiter(logger zerolog.Logger, opts ...Option) *FixedWindowLimiter {
	l := &FixedWindowLimiter{
		window:      defaultWindow,
		maxRequests: defaultMaxRequests,
		local:       newMemoryStore(),
		now:         time.Now,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Consume records one call for key and reports whether it is admitted.
// It never returns an error.
func (l *FixedWindowLimiter) Consume(ctx context.Context, key string) Result {
	if l.shared != nil {
		result, err := l.consumeShared(ctx, key)
		if err == nil {
			return result
		}
		l.logger.Error().Err(err).Str("key", key).
			Msg("shared rate limit store unavailable, using in-memory fallback")
	}
	return l.local.consume(key, l.now(), l.maxRequests, l.window)
}

func (l *FixedWindowLimiter) consumeShared(ctx context.Context, key string) (Result, error) {
	now := l.now()
	windowIndex := now.UnixMilli() / l.window.Milliseconds()
	bucketKey := fmt.Sprintf("%s:%d", key, windowIndex)

	count, err := l.shared.Incr(ctx, bucketKey)
	if err != nil {
		return Result{}, err
	}

	if count == 1 {
		if err := l.shared.Expire(ctx, bucketKey, l.window); err != nil {
			return Result{}, err
		}
	}

	if count > int64(l.maxRequests) {
		retryAfter := 1
		if ttl, err := l.shared.TTL(ctx, bucketKey); err == nil {
			if seconds := int(ttl / time.Second); seconds > retryAfter {
				retryAfter = seconds
			}
		}
		return Result{Allowed: false, RetryAfterSeconds: retryAfter}, nil
	}

	return Result{Allowed: true}, nil
}
