package banklink

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jkaczmarek/FinFlow/internal/audit"
	"github.com/jkaczmarek/FinFlow/internal/ratelimit"
)

type RateLimiter interface {
	Consume(ctx context.Context, key string) ratelimit.Result
}

type AuditRecorder interface {
	Record(ctx context.Context, event audit.Event)
}

// RateLimitedError reports how long the caller should wait before retrying.
type RateLimitedError struct {
	RetryAfterSeconds int
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limit exceeded, retry after %d seconds", e.RetryAfterSeconds)
}

type Service struct {
	limiter       RateLimiter
	client        AggregatorClient
	auditRecorder AuditRecorder
	logger        zerolog.Logger
}

func NewService(limiter RateLimiter, client AggregatorClient, auditRecorder AuditRecorder, logger zerolog.Logger) *Service {
	return &Service{
		limiter:       limiter,
		client:        client,
		auditRecorder: auditRecorder,
		logger:        logger,
	}
}

// CreateLinkToken issues one aggregator link token. The limiter key combines
// user and client address so one user cannot burn the quota from many
// addresses, and one address cannot burn it across users.
func (s *Service) CreateLinkToken(ctx context.Context, userID, clientIP string) (*LinkToken, error) {
	key := fmt.Sprintf("bank-link:%s:%s", userID, clientIP)
	result := s.limiter.Consume(ctx, key)
	if !result.Allowed {
		s.logger.Warn().Str("userID", userID).Str("clientIP", clientIP).Msg("link token request rate limited")
		return nil, &RateLimitedError{RetryAfterSeconds: result.RetryAfterSeconds}
	}

	token, err := s.client.CreateLinkToken(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.auditRecorder.Record(ctx, audit.Event{
		ActorUserID:  userID,
		TargetUserID: userID,
		Action:       "BANK_LINK_TOKEN_CREATE",
		Resource:     "bank_links",
		Metadata:     map[string]interface{}{"clientIp": clientIP},
	})
	return token, nil
}
