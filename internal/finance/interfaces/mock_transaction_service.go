package interfaces

import (
	"context"

	"github.com/jkaczmarek/FinFlow/internal/finance/domain"
)

type MockTransactionService struct {
	CreateErr     error
	UpdateErr     error
	DeleteErr     error
	RestoreErr    error
	BulkDeleteErr error

	Created       []domain.Transaction
	DeletedID     string
	RestoredID    string
	BulkDeleted   []string
	BulkDeleteRet int64
}

func (m *MockTransactionService) CreateTransaction(_ context.Context, transaction *domain.Transaction) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	transaction.ID = "txn-created"
	m.Created = append(m.Created, *transaction)
	return nil
}

func (m *MockTransactionService) UpdateTransaction(_ context.Context, _ domain.Transaction) error {
	return m.UpdateErr
}

func (m *MockTransactionService) DeleteTransaction(_ context.Context, transactionID, _ string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.DeletedID = transactionID
	return nil
}

func (m *MockTransactionService) RestoreTransaction(_ context.Context, transactionID, _ string) error {
	if m.RestoreErr != nil {
		return m.RestoreErr
	}
	m.RestoredID = transactionID
	return nil
}

func (m *MockTransactionService) BulkDeleteTransactions(_ context.Context, transactionIDs []string, _ string) (int64, error) {
	if m.BulkDeleteErr != nil {
		return 0, m.BulkDeleteErr
	}
	m.BulkDeleted = transactionIDs
	return m.BulkDeleteRet, nil
}
