package domain

import (
	"context"

	"github.com/jkaczmarek/FinFlow/internal/finance/errors"
)

type CategoryType string

const (
	CategoryIncome  CategoryType = "INCOME"
	CategoryExpense CategoryType = "EXPENSE"
)

type Category struct {
	ID       string
	UserID   string
	Name     string
	Type     CategoryType
	IsSystem bool
}

type CategoryUpdate struct {
	Name     *string       `json:"name"`
	Type     *CategoryType `json:"type"`
	IsSystem *bool         `json:"isSystem"`
}

func (u CategoryUpdate) Validate() error {
	if u.Name == nil && u.Type == nil && u.IsSystem == nil {
		return errors.NewValidationError("Provide at least one field to update")
	}
	if u.Name != nil && (*u.Name == "" || len(*u.Name) > 100) {
		return errors.NewValidationError("Name must be between 1 and 100 characters")
	}
	if u.Type != nil && *u.Type != CategoryIncome && *u.Type != CategoryExpense {
		return errors.NewValidationError("Type must be 'INCOME' or 'EXPENSE'")
	}
	return nil
}

type CategoryRepository interface {
	FindByUser(ctx context.Context, userID string) ([]Category, error)
	ExistsForUser(ctx context.Context, categoryID, userID string) (bool, error)
	Update(ctx context.Context, categoryID, userID string, update CategoryUpdate) (int64, error)
}
