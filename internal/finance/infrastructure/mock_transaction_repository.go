package infrastructure

import (
	"context"
	"time"

	"github.com/jkaczmarek/FinFlow/internal/finance/domain"
	financeErrors "github.com/jkaczmarek/FinFlow/internal/finance/errors"
	"github.com/jkaczmarek/FinFlow/internal/finance/view"
)

// MockTransactionRepository is an in-memory stand-in for service tests.
type MockTransactionRepository struct {
	Transactions []domain.Transaction
	Items        []view.Item

	SaveErr    error
	DeletedIDs []string
	RestoredID string
	PurgedRows int64
}

func (m *MockTransactionRepository) Save(_ context.Context, transaction domain.Transaction) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Transactions = append(m.Transactions, transaction)
	return nil
}

func (m *MockTransactionRepository) FindByID(_ context.Context, transactionID, userID string) (*domain.Transaction, error) {
	for i := range m.Transactions {
		if m.Transactions[i].ID == transactionID && m.Transactions[i].UserID == userID {
			return &m.Transactions[i], nil
		}
	}
	return nil, financeErrors.ErrTransactionNotFound
}

func (m *MockTransactionRepository) Update(_ context.Context, transaction domain.Transaction) error {
	for i := range m.Transactions {
		if m.Transactions[i].ID == transaction.ID && m.Transactions[i].UserID == transaction.UserID {
			m.Transactions[i] = transaction
			return nil
		}
	}
	return financeErrors.ErrTransactionNotFound
}

func (m *MockTransactionRepository) SoftDelete(_ context.Context, transactionID, userID string) error {
	for i := range m.Transactions {
		if m.Transactions[i].ID == transactionID && m.Transactions[i].UserID == userID {
			m.DeletedIDs = append(m.DeletedIDs, transactionID)
			return nil
		}
	}
	return financeErrors.ErrTransactionNotFound
}

func (m *MockTransactionRepository) SoftDeleteMany(_ context.Context, transactionIDs []string, userID string) (int64, error) {
	var count int64
	for _, id := range transactionIDs {
		for i := range m.Transactions {
			if m.Transactions[i].ID == id && m.Transactions[i].UserID == userID {
				m.DeletedIDs = append(m.DeletedIDs, id)
				count++
			}
		}
	}
	return count, nil
}

func (m *MockTransactionRepository) Restore(_ context.Context, transactionID, userID string) error {
	for i := range m.Transactions {
		if m.Transactions[i].ID == transactionID && m.Transactions[i].UserID == userID {
			m.RestoredID = transactionID
			return nil
		}
	}
	return financeErrors.ErrTransactionNotFound
}

func (m *MockTransactionRepository) PurgeDeletedBefore(_ context.Context, _ time.Time) (int64, error) {
	return m.PurgedRows, nil
}

func (m *MockTransactionRepository) ListViewItems(_ context.Context, _ string) ([]view.Item, error) {
	return m.Items, nil
}
