package application

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jkaczmarek/FinFlow/internal/audit"
	"github.com/jkaczmarek/FinFlow/internal/finance/domain"
	financeErrors "github.com/jkaczmarek/FinFlow/internal/finance/errors"
)

const defaultCurrency = "CAD"

// AuditRecorder is the fire-and-forget audit sink; failures never surface.
type AuditRecorder interface {
	Record(ctx context.Context, event audit.Event)
}

type AccountServiceInterface interface {
	DoesAccountExist(ctx context.Context, accountID, userID string) (bool, error)
}

type CategoryServiceInterface interface {
	DoesCategoryExist(ctx context.Context, categoryID, userID string) (bool, error)
	GetUserCategories(ctx context.Context, userID string) ([]domain.Category, error)
}

type TransactionService struct {
	repo            domain.TransactionRepository
	accountService  AccountServiceInterface
	categoryService CategoryServiceInterface
	auditRecorder   AuditRecorder
}

func NewTransactionService(
	repo domain.TransactionRepository,
	accountService AccountServiceInterface,
	categoryService CategoryServiceInterface,
	auditRecorder AuditRecorder,
) *TransactionService {
	return &TransactionService{
		repo:            repo,
		accountService:  accountService,
		categoryService: categoryService,
		auditRecorder:   auditRecorder,
	}
}

func normalizeCurrency(currency string) string {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		return defaultCurrency
	}
	if len(currency) > 3 {
		currency = currency[:3]
	}
	return currency
}

func (s *TransactionService) CreateTransaction(ctx context.Context, transaction *domain.Transaction) error {
	transaction.ID = uuid.NewString()
	transaction.Currency = normalizeCurrency(transaction.Currency)
	transaction.Description = strings.TrimSpace(transaction.Description)
	if err := transaction.Validate(); err != nil {
		return err
	}

	exists, err := s.accountService.DoesAccountExist(ctx, transaction.AccountID, transaction.UserID)
	if err != nil {
		return err
	}
	if !exists {
		return financeErrors.ErrInvalidAccount
	}

	exists, err = s.categoryService.DoesCategoryExist(ctx, transaction.CategoryID, transaction.UserID)
	if err != nil {
		return err
	}
	if !exists {
		return financeErrors.ErrInvalidCategory
	}

	if err := s.repo.Save(ctx, *transaction); err != nil {
		return err
	}

	s.auditRecorder.Record(ctx, audit.Event{
		ActorUserID:  transaction.UserID,
		TargetUserID: transaction.UserID,
		Action:       "TRANSACTION_CREATE",
		Resource:     "transactions",
		Metadata:     map[string]interface{}{"transactionId": transaction.ID},
	})
	return nil
}

func (s *TransactionService) UpdateTransaction(ctx context.Context, transaction domain.Transaction) error {
	transaction.Currency = normalizeCurrency(transaction.Currency)
	transaction.Description = strings.TrimSpace(transaction.Description)
	if err := transaction.Validate(); err != nil {
		return err
	}

	exists, err := s.accountService.DoesAccountExist(ctx, transaction.AccountID, transaction.UserID)
	if err != nil {
		return err
	}
	if !exists {
		return financeErrors.ErrInvalidAccount
	}

	exists, err = s.categoryService.DoesCategoryExist(ctx, transaction.CategoryID, transaction.UserID)
	if err != nil {
		return err
	}
	if !exists {
		return financeErrors.ErrInvalidCategory
	}

	if err := s.repo.Update(ctx, transaction); err != nil {
		return err
	}

	s.auditRecorder.Record(ctx, audit.Event{
		ActorUserID:  transaction.UserID,
		TargetUserID: transaction.UserID,
		Action:       "TRANSACTION_UPDATE",
		Resource:     "transactions",
		Metadata:     map[string]interface{}{"transactionId": transaction.ID},
	})
	return nil
}

func (s *TransactionService) DeleteTransaction(ctx context.Context, transactionID, userID string) error {
	if err := s.repo.SoftDelete(ctx, transactionID, userID); err != nil {
		return err
	}
	s.auditRecorder.Record(ctx, audit.Event{
		ActorUserID:  userID,
		TargetUserID: userID,
		Action:       "TRANSACTION_DELETE",
		Resource:     "transactions",
		Metadata:     map[string]interface{}{"transactionId": transactionID},
	})
	return nil
}

// RestoreTransaction reverses a recent soft delete, backing the dashboard's
// undo affordance.
func (s *TransactionService) RestoreTransaction(ctx context.Context, transactionID, userID string) error {
	if err := s.repo.Restore(ctx, transactionID, userID); err != nil {
		return err
	}
	s.auditRecorder.Record(ctx, audit.Event{
		ActorUserID:  userID,
		TargetUserID: userID,
		Action:       "TRANSACTION_RESTORE",
		Resource:     "transactions",
		Metadata:     map[string]interface{}{"transactionId": transactionID},
	})
	return nil
}

func (s *TransactionService) BulkDeleteTransactions(ctx context.Context, transactionIDs []string, userID string) (int64, error) {
	if len(transactionIDs) == 0 {
		return 0, financeErrors.NewValidationError("No transaction ids provided")
	}
	count, err := s.repo.SoftDeleteMany(ctx, transactionIDs, userID)
	if err != nil {
		return 0, err
	}
	s.auditRecorder.Record(ctx, audit.Event{
		ActorUserID:  userID,
		TargetUserID: userID,
		Action:       "TRANSACTION_BULK_DELETE",
		Resource:     "transactions",
		Metadata:     map[string]interface{}{"count": count},
	})
	return count, nil
}

// PurgeDeleted permanently removes soft-deleted rows older than the
// retention window. Run from the scheduler, not request paths.
func (s *TransactionService) PurgeDeleted(ctx context.Context, retention time.Duration) (int64, error) {
	return s.repo.PurgeDeletedBefore(ctx, time.Now().Add(-retention))
}
