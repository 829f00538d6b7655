package domain

import (
	"context"
	"time"

	"github.com/jkaczmarek/FinFlow/internal/finance/errors"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TypeIncome   TransactionType = "INCOME"
	TypeExpense  TransactionType = "EXPENSE"
	TypeTransfer TransactionType = "TRANSFER"
)

func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense || t == TypeTransfer
}

type TransactionRepository interface {
	Save(ctx context.Context, transaction Transaction) error
	FindByID(ctx context.Context, transactionID, userID string) (*Transaction, error)
	Update(ctx context.Context, transaction Transaction) error
	SoftDelete(ctx context.Context, transactionID, userID string) error
	SoftDeleteMany(ctx context.Context, transactionIDs []string, userID string) (int64, error)
	Restore(ctx context.Context, transactionID, userID string) error
	PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type Transaction struct {
	ID            string
	UserID        string // user UUID from the auth provider
	AccountID     string
	CategoryID    string
	Type          TransactionType
	Amount        decimal.Decimal
	Currency      string
	Description   string
	TransactionAt time.Time
	CreatedAt     time.Time
	DeletedAt     *time.Time
}

// SignedAmount is the balance delta this transaction applies to its
// account: income adds, expense subtracts, transfers are neutral here
// because both legs live on separate accounts.
func (t *Transaction) SignedAmount() decimal.Decimal {
	switch t.Type {
	case TypeIncome:
		return t.Amount
	case TypeExpense:
		return t.Amount.Neg()
	default:
		return decimal.Zero
	}
}

func (t *Transaction) Validate() error {
	if !t.Type.Valid() {
		return errors.NewValidationError("Type must be 'INCOME', 'EXPENSE' or 'TRANSFER'")
	}
	if !t.Amount.IsPositive() {
		return errors.NewValidationError("Amount must be greater than zero")
	}
	if len(t.Description) > 255 {
		return errors.NewValidationError("Description must be of length less than 255")
	}
	if len(t.Currency) != 3 {
		return errors.NewValidationError("Currency must be a 3-letter code")
	}
	if t.AccountID == "" {
		return errors.NewValidationError("Account ID must be provided")
	}
	if t.CategoryID == "" {
		return errors.NewValidationError("Category ID must be provided")
	}
	return nil
}
