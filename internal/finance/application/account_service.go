package application

import (
	"context"

	"github.com/jkaczmarek/FinFlow/internal/finance/domain"
)

type AccountService struct {
	repo domain.AccountRepository
}

func NewAccountService(repo domain.AccountRepository) *AccountService {
	return &AccountService{repo: repo}
}

func (s *AccountService) GetUserAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	return s.repo.FindByUser(ctx, userID)
}

func (s *AccountService) DoesAccountExist(ctx context.Context, accountID, userID string) (bool, error) {
	return s.repo.ExistsForUser(ctx, accountID, userID)
}
