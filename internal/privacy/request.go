// Package privacy handles data subject requests: users asking to access,
// export or delete their personal data. Requests are recorded and worked
// asynchronously; delete requests past their grace period are picked up by
// the scheduler.
package privacy

import (
	"context"
	"time"

	financeErrors "github.com/jkaczmarek/FinFlow/internal/finance/errors"
)

type RequestType string

const (
	RequestAccess RequestType = "ACCESS"
	RequestExport RequestType = "EXPORT"
	RequestDelete RequestType = "DELETE"
)

func (t RequestType) Valid() bool {
	return t == RequestAccess || t == RequestExport || t == RequestDelete
}

type RequestStatus string

const (
	StatusPending    RequestStatus = "PENDING"
	StatusInProgress RequestStatus = "IN_PROGRESS"
	StatusResolved   RequestStatus = "RESOLVED"
	StatusRejected   RequestStatus = "REJECTED"
)

const maxDetailsLength = 2000

type Request struct {
	ID         string        `json:"id"`
	UserID     string        `json:"-"`
	Type       RequestType   `json:"type"`
	Status     RequestStatus `json:"status"`
	Details    string        `json:"details"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
	ResolvedAt *time.Time    `json:"resolvedAt"`
}

func (r *Request) Validate() error {
	if !r.Type.Valid() {
		return financeErrors.NewValidationError("Type must be 'ACCESS', 'EXPORT' or 'DELETE'")
	}
	if len(r.Details) > maxDetailsLength {
		return financeErrors.NewValidationError("Details must be of length less than 2000")
	}
	return nil
}

type Repository interface {
	Save(ctx context.Context, request Request) error
	FindByUser(ctx context.Context, userID string, limit int) ([]Request, error)
	// MarkDueDeletes flips PENDING delete requests older than the cutoff to
	// IN_PROGRESS and returns how many were picked up.
	MarkDueDeletes(ctx context.Context, cutoff time.Time) (int64, error)
}
