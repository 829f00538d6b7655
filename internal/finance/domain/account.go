package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Account struct {
	ID     string
	UserID string
	Name   string
	// CurrentBalance is the authoritative balance after all recorded
	// transactions, nil when the account has never been synced.
	CurrentBalance *decimal.Decimal
	Currency       string
	CreatedAt      time.Time
	DeletedAt      *time.Time
}

type AccountRepository interface {
	FindByUser(ctx context.Context, userID string) ([]Account, error)
	ExistsForUser(ctx context.Context, accountID, userID string) (bool, error)
}
