package application

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jkaczmarek/FinFlow/internal/audit"
	"github.com/jkaczmarek/FinFlow/internal/finance/domain"
	financeErrors "github.com/jkaczmarek/FinFlow/internal/finance/errors"
)

type BudgetService struct {
	repo            domain.BudgetRepository
	categoryService CategoryServiceInterface
	auditRecorder   AuditRecorder
}

func NewBudgetService(repo domain.BudgetRepository, categoryService CategoryServiceInterface, auditRecorder AuditRecorder) *BudgetService {
	return &BudgetService{repo: repo, categoryService: categoryService, auditRecorder: auditRecorder}
}

func (s *BudgetService) CreateBudget(ctx context.Context, budget *domain.Budget) error {
	budget.ID = uuid.NewString()
	budget.Name = strings.TrimSpace(budget.Name)
	budget.Currency = normalizeCurrency(budget.Currency)
	if err := budget.Validate(); err != nil {
		return err
	}

	if budget.CategoryID != nil {
		exists, err := s.categoryService.DoesCategoryExist(ctx, *budget.CategoryID, budget.UserID)
		if err != nil {
			return err
		}
		if !exists {
			return financeErrors.ErrInvalidCategory
		}
	}

	if err := s.repo.Save(ctx, *budget); err != nil {
		return err
	}

	s.auditRecorder.Record(ctx, audit.Event{
		ActorUserID:  budget.UserID,
		TargetUserID: budget.UserID,
		Action:       "BUDGET_CREATE",
		Resource:     "budgets",
		Metadata:     map[string]interface{}{"budgetId": budget.ID},
	})
	return nil
}

func (s *BudgetService) GetUserBudgets(ctx context.Context, userID string) ([]domain.Budget, error) {
	return s.repo.FindByUser(ctx, userID)
}
