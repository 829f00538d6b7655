package interfaces

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jkaczmarek/FinFlow/internal/auth"
	financeErrors "github.com/jkaczmarek/FinFlow/internal/finance/errors"
)

func authenticatedRequest(method, target string, body []byte) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewBuffer(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set("Content-Type", "application/json")
	ctx := context.WithValue(req.Context(), auth.UserIDContextKey, "user-1")
	return req.WithContext(ctx)
}

func TestCreateTransaction_Success(t *testing.T) {
	service := &MockTransactionService{}
	handler := NewTransactionHandler(service, respondJSON, respondError)

	body, err := json.Marshal(map[string]interface{}{
		"accountId":     "acc-1",
		"categoryId":    "cat-1",
		"type":          "EXPENSE",
		"amount":        "42.50",
		"currency":      "CAD",
		"description":   "Groceries",
		"transactionAt": "2025-06-01T12:00:00Z",
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	handler.CreateTransaction(w, authenticatedRequest(http.MethodPost, "/api/finance/transactions", body))

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusCreated, res.StatusCode)
	require.Len(t, service.Created, 1)
	assert.Equal(t, "user-1", service.Created[0].UserID)
	assert.Equal(t, "acc-1", service.Created[0].AccountID)
}

func TestCreateTransaction_Unauthorized(t *testing.T) {
	handler := NewTransactionHandler(&MockTransactionService{}, respondJSON, respondError)

	req := httptest.NewRequest(http.MethodPost, "/api/finance/transactions", bytes.NewBufferString("{}"))
	w := httptest.NewRecorder()
	handler.CreateTransaction(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Result().StatusCode)
}

func TestCreateTransaction_InvalidBody(t *testing.T) {
	handler := NewTransactionHandler(&MockTransactionService{}, respondJSON, respondError)

	w := httptest.NewRecorder()
	handler.CreateTransaction(w, authenticatedRequest(http.MethodPost, "/api/finance/transactions", []byte("not json")))

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	assert.Equal(t, "error", response["status"])
	assert.Equal(t, "Invalid request body", response["message"])
}

func TestCreateTransaction_ValidationError(t *testing.T) {
	service := &MockTransactionService{CreateErr: financeErrors.NewValidationError("Amount must be greater than zero")}
	handler := NewTransactionHandler(service, respondJSON, respondError)

	w := httptest.NewRecorder()
	handler.CreateTransaction(w, authenticatedRequest(http.MethodPost, "/api/finance/transactions", []byte("{}")))

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	assert.Equal(t, "Amount must be greater than zero", response["message"])
}

func TestCreateTransaction_UnknownAccount(t *testing.T) {
	service := &MockTransactionService{CreateErr: financeErrors.ErrInvalidAccount}
	handler := NewTransactionHandler(service, respondJSON, respondError)

	w := httptest.NewRecorder()
	handler.CreateTransaction(w, authenticatedRequest(http.MethodPost, "/api/finance/transactions", []byte("{}")))

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestDeleteTransaction_NotFound(t *testing.T) {
	service := &MockTransactionService{DeleteErr: financeErrors.ErrTransactionNotFound}
	handler := NewTransactionHandler(service, respondJSON, respondError)

	req := authenticatedRequest(http.MethodDelete, "/api/finance/transactions/txn-1", nil)
	req.SetPathValue("transactionID", "txn-1")
	w := httptest.NewRecorder()
	handler.DeleteTransaction(w, req)

	assert.Equal(t, http.StatusNotFound, w.Result().StatusCode)
}

func TestDeleteTransaction_Success(t *testing.T) {
	service := &MockTransactionService{}
	handler := NewTransactionHandler(service, respondJSON, respondError)

	req := authenticatedRequest(http.MethodDelete, "/api/finance/transactions/txn-1", nil)
	req.SetPathValue("transactionID", "txn-1")
	w := httptest.NewRecorder()
	handler.DeleteTransaction(w, req)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
	assert.Equal(t, "txn-1", service.DeletedID)
}

func TestRestoreTransaction_Success(t *testing.T) {
	service := &MockTransactionService{}
	handler := NewTransactionHandler(service, respondJSON, respondError)

	req := authenticatedRequest(http.MethodPost, "/api/finance/transactions/txn-1/restore", nil)
	req.SetPathValue("transactionID", "txn-1")
	w := httptest.NewRecorder()
	handler.RestoreTransaction(w, req)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
	assert.Equal(t, "txn-1", service.RestoredID)
}

func TestBulkDeleteTransactions_Success(t *testing.T) {
	service := &MockTransactionService{BulkDeleteRet: 2}
	handler := NewTransactionHandler(service, respondJSON, respondError)

	body, err := json.Marshal(map[string]interface{}{"transactionIds": []string{"txn-1", "txn-2"}})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	handler.BulkDeleteTransactions(w, authenticatedRequest(http.MethodPost, "/api/finance/transactions/bulk-delete", body))

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, []string{"txn-1", "txn-2"}, service.BulkDeleted)

	var response struct {
		Data map[string]int64 `json:"data"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	assert.Equal(t, int64(2), response.Data["deleted"])
}

func TestBulkDeleteTransactions_EmptyIDs(t *testing.T) {
	service := &MockTransactionService{BulkDeleteErr: financeErrors.NewValidationError("No transaction ids provided")}
	handler := NewTransactionHandler(service, respondJSON, respondError)

	w := httptest.NewRecorder()
	handler.BulkDeleteTransactions(w, authenticatedRequest(http.MethodPost, "/api/finance/transactions/bulk-delete", []byte(`{"transactionIds":[]}`)))

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}
