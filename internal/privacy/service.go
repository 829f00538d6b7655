package privacy

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jkaczmarek/FinFlow/internal/audit"
)

const listLimit = 50

// deleteGracePeriod is how long a delete request sits PENDING before the
// scheduler picks it up, giving the user a window to change their mind.
const deleteGracePeriod = 72 * time.Hour

type AuditRecorder interface {
	Record(ctx context.Context, event audit.Event)
}

type Service struct {
	repo          Repository
	auditRecorder AuditRecorder
	logger        zerolog.Logger
	now           func() time.Time
}

func NewService(repo Repository, auditRecorder AuditRecorder, logger zerolog.Logger) *Service {
	return &Service{
		repo:          repo,
		auditRecorder: auditRecorder,
		logger:        logger,
		now:           time.Now,
	}
}

func (s *Service) CreateRequest(ctx context.Context, userID string, requestType RequestType, details string) (*Request, error) {
	now := s.now()
	request := Request{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      requestType,
		Status:    StatusPending,
		Details:   strings.TrimSpace(details),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := request.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, request); err != nil {
		return nil, err
	}

	s.auditRecorder.Record(ctx, audit.Event{
		ActorUserID:  userID,
		TargetUserID: userID,
		Action:       "DSR_CREATE",
		Resource:     "data_subject_requests",
		Metadata: map[string]interface{}{
			"requestId":   request.ID,
			"requestType": string(request.Type),
		},
	})
	return &request, nil
}

// ListRequests returns the user's most recent requests, newest first.
func (s *Service) ListRequests(ctx context.Context, userID string) ([]Request, error) {
	return s.repo.FindByUser(ctx, userID, listLimit)
}

// SweepDueDeletes moves delete requests past their grace period into
// IN_PROGRESS. Run from the scheduler.
func (s *Service) SweepDueDeletes(ctx context.Context) {
	count, err := s.repo.MarkDueDeletes(ctx, s.now().Add(-deleteGracePeriod))
	if err != nil {
		s.logger.Error().Err(err).Msg("data subject request sweep failed")
		return
	}
	if count > 0 {
		s.logger.Info().Int64("count", count).Msg("delete requests moved to in-progress")
	}
}
