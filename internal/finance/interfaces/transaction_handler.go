package interfaces

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jkaczmarek/FinFlow/internal/auth"
	"github.com/jkaczmarek/FinFlow/internal/finance/domain"
	financeErrors "github.com/jkaczmarek/FinFlow/internal/finance/errors"
)

type TransactionServiceInterface interface {
	CreateTransaction(ctx context.Context, transaction *domain.Transaction) error
	UpdateTransaction(ctx context.Context, transaction domain.Transaction) error
	DeleteTransaction(ctx context.Context, transactionID, userID string) error
	RestoreTransaction(ctx context.Context, transactionID, userID string) error
	BulkDeleteTransactions(ctx context.Context, transactionIDs []string, userID string) (int64, error)
}

type TransactionHandler struct {
	service      TransactionServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewTransactionHandler(
	service TransactionServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *TransactionHandler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	return &TransactionHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

type transactionRequest struct {
	AccountID     string          `json:"accountId"`
	CategoryID    string          `json:"categoryId"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Description   string          `json:"description"`
	TransactionAt time.Time       `json:"transactionAt"`
}

type transactionResponse struct {
	ID            string          `json:"id"`
	AccountID     string          `json:"accountId"`
	CategoryID    string          `json:"categoryId"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Description   string          `json:"description"`
	TransactionAt time.Time       `json:"transactionAt"`
}

func toTransactionResponse(transaction domain.Transaction) transactionResponse {
	return transactionResponse{
		ID:            transaction.ID,
		AccountID:     transaction.AccountID,
		CategoryID:    transaction.CategoryID,
		Type:          string(transaction.Type),
		Amount:        transaction.Amount,
		Currency:      transaction.Currency,
		Description:   transaction.Description,
		TransactionAt: transaction.TransactionAt,
	}
}

func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	transaction := domain.Transaction{
		UserID:        userID,
		AccountID:     req.AccountID,
		CategoryID:    req.CategoryID,
		Type:          domain.TransactionType(req.Type),
		Amount:        req.Amount,
		Currency:      req.Currency,
		Description:   req.Description,
		TransactionAt: req.TransactionAt,
	}
	if err := h.service.CreateTransaction(r.Context(), &transaction); err != nil {
		h.handleServiceError(w, err, "Failed to create transaction")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Transaction successfully created.",
		"data":    toTransactionResponse(transaction),
	})
}

func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	transactionID := r.PathValue("transactionID")
	if transactionID == "" {
		h.respondError(w, http.StatusBadRequest, "Transaction ID must be provided")
		return
	}
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	transaction := domain.Transaction{
		ID:            transactionID,
		UserID:        userID,
		AccountID:     req.AccountID,
		CategoryID:    req.CategoryID,
		Type:          domain.TransactionType(req.Type),
		Amount:        req.Amount,
		Currency:      req.Currency,
		Description:   req.Description,
		TransactionAt: req.TransactionAt,
	}
	if err := h.service.UpdateTransaction(r.Context(), transaction); err != nil {
		h.handleServiceError(w, err, "Failed to update transaction")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Transaction successfully updated.",
		"data":    toTransactionResponse(transaction),
	})
}

func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	transactionID := r.PathValue("transactionID")
	if transactionID == "" {
		h.respondError(w, http.StatusBadRequest, "Transaction ID must be provided")
		return
	}

	if err := h.service.DeleteTransaction(r.Context(), transactionID, userID); err != nil {
		h.handleServiceError(w, err, "Failed to delete transaction")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Transaction successfully deleted.",
	})
}

// RestoreTransaction undoes a soft delete while the row is still retained.
func (h *TransactionHandler) RestoreTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	transactionID := r.PathValue("transactionID")
	if transactionID == "" {
		h.respondError(w, http.StatusBadRequest, "Transaction ID must be provided")
		return
	}

	if err := h.service.RestoreTransaction(r.Context(), transactionID, userID); err != nil {
		h.handleServiceError(w, err, "Failed to restore transaction")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Transaction successfully restored.",
	})
}

func (h *TransactionHandler) BulkDeleteTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req struct {
		TransactionIDs []string `json:"transactionIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	count, err := h.service.BulkDeleteTransactions(r.Context(), req.TransactionIDs, userID)
	if err != nil {
		h.handleServiceError(w, err, "Failed to delete transactions")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Transactions successfully deleted.",
		"data":    map[string]int64{"deleted": count},
	})
}

func (h *TransactionHandler) handleServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case financeErrors.IsValidationError(err):
		h.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, financeErrors.ErrInvalidAccount), errors.Is(err, financeErrors.ErrInvalidCategory):
		h.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, financeErrors.ErrTransactionNotFound):
		h.respondError(w, http.StatusNotFound, err.Error())
	default:
		log.Println("Transaction handler error:", err.Error())
		h.respondError(w, http.StatusInternalServerError, fallback)
	}
}
