package application

import (
	"context"

	"github.com/jkaczmarek/FinFlow/internal/audit"
	"github.com/jkaczmarek/FinFlow/internal/finance/domain"
	financeErrors "github.com/jkaczmarek/FinFlow/internal/finance/errors"
)

type CategoryService struct {
	repo          domain.CategoryRepository
	auditRecorder AuditRecorder
}

func NewCategoryService(repo domain.CategoryRepository, auditRecorder AuditRecorder) *CategoryService {
	return &CategoryService{repo: repo, auditRecorder: auditRecorder}
}

func (s *CategoryService) GetUserCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	return s.repo.FindByUser(ctx, userID)
}

func (s *CategoryService) DoesCategoryExist(ctx context.Context, categoryID, userID string) (bool, error) {
	return s.repo.ExistsForUser(ctx, categoryID, userID)
}

func (s *CategoryService) UpdateCategory(ctx context.Context, categoryID, userID string, update domain.CategoryUpdate) error {
	if err := update.Validate(); err != nil {
		return err
	}

	updated, err := s.repo.Update(ctx, categoryID, userID, update)
	if err != nil {
		return err
	}
	if updated == 0 {
		return financeErrors.ErrCategoryNotFound
	}

	s.auditRecorder.Record(ctx, audit.Event{
		ActorUserID:  userID,
		TargetUserID: userID,
		Action:       "CATEGORY_UPDATE",
		Resource:     "categories",
		Metadata:     map[string]interface{}{"categoryId": categoryID},
	})
	return nil
}
