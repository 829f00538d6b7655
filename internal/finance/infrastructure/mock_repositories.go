package infrastructure

import (
	"context"

	"github.com/jkaczmarek/FinFlow/internal/finance/domain"
)

type MockAccountRepository struct {
	Accounts []domain.Account
}

func (m *MockAccountRepository) FindByUser(_ context.Context, userID string) ([]domain.Account, error) {
	var accounts []domain.Account
	for _, account := range m.Accounts {
		if account.UserID == userID {
			accounts = append(accounts, account)
		}
	}
	return accounts, nil
}

func (m *MockAccountRepository) ExistsForUser(_ context.Context, accountID, userID string) (bool, error) {
	for _, account := range m.Accounts {
		if account.ID == accountID && account.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

type MockCategoryRepository struct {
	Categories  []domain.Category
	UpdatedRows int64
}

func (m *MockCategoryRepository) FindByUser(_ context.Context, userID string) ([]domain.Category, error) {
	var categories []domain.Category
	for _, category := range m.Categories {
		if category.UserID == userID {
			categories = append(categories, category)
		}
	}
	return categories, nil
}

func (m *MockCategoryRepository) ExistsForUser(_ context.Context, categoryID, userID string) (bool, error) {
	for _, category := range m.Categories {
		if category.ID == categoryID && category.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockCategoryRepository) Update(_ context.Context, _, _ string, _ domain.CategoryUpdate) (int64, error) {
	return m.UpdatedRows, nil
}

type MockBudgetRepository struct {
	Budgets []domain.Budget
	SaveErr error
}

func (m *MockBudgetRepository) Save(_ context.Context, budget domain.Budget) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Budgets = append(m.Budgets, budget)
	return nil
}

func (m *MockBudgetRepository) FindByUser(_ context.Context, userID string) ([]domain.Budget, error) {
	var budgets []domain.Budget
	for _, budget := range m.Budgets {
		if budget.UserID == userID {
			budgets = append(budgets, budget)
		}
	}
	return budgets, nil
}
