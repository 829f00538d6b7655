package domain

import (
	"context"
	"time"

	"github.com/jkaczmarek/FinFlow/internal/finance/errors"
	"github.com/shopspring/decimal"
)

type BudgetPeriod string

const (
	BudgetWeekly  BudgetPeriod = "WEEKLY"
	BudgetMonthly BudgetPeriod = "MONTHLY"
	BudgetCustom  BudgetPeriod = "CUSTOM"
)

type Budget struct {
	ID          string
	UserID      string
	Name        string
	Period      BudgetPeriod
	PeriodStart time.Time
	PeriodEnd   time.Time
	LimitAmount decimal.Decimal
	CategoryID  *string
	Currency    string
	IsActive    bool
	CreatedAt   time.Time
}

func (b *Budget) Validate() error {
	if b.Name == "" || len(b.Name) > 120 {
		return errors.NewValidationError("Name must be between 1 and 120 characters")
	}
	if b.Period != BudgetWeekly && b.Period != BudgetMonthly && b.Period != BudgetCustom {
		return errors.NewValidationError("Period must be 'WEEKLY', 'MONTHLY' or 'CUSTOM'")
	}
	if !b.PeriodEnd.After(b.PeriodStart) {
		return errors.NewValidationError("periodEnd must be greater than periodStart")
	}
	if !b.LimitAmount.IsPositive() {
		return errors.NewValidationError("Limit amount must be greater than zero")
	}
	if len(b.Currency) != 3 {
		return errors.NewValidationError("Currency must be a 3-letter code")
	}
	return nil
}

type BudgetRepository interface {
	Save(ctx context.Context, budget Budget) error
	FindByUser(ctx context.Context, userID string) ([]Budget, error)
}
