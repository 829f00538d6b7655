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

type BudgetServiceInterface interface {
	CreateBudget(ctx context.Context, budget *domain.Budget) error
	GetUserBudgets(ctx context.Context, userID string) ([]domain.Budget, error)
}

type BudgetHandler struct {
	service      BudgetServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewBudgetHandler(
	service BudgetServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *BudgetHandler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	return &BudgetHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

type budgetRequest struct {
	Name        string          `json:"name"`
	Period      string          `json:"period"`
	PeriodStart time.Time       `json:"periodStart"`
	PeriodEnd   time.Time       `json:"periodEnd"`
	LimitAmount decimal.Decimal `json:"limitAmount"`
	CategoryID  *string         `json:"categoryId"`
	Currency    string          `json:"currency"`
}

type budgetResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Period      string          `json:"period"`
	PeriodStart time.Time       `json:"periodStart"`
	PeriodEnd   time.Time       `json:"periodEnd"`
	LimitAmount decimal.Decimal `json:"limitAmount"`
	CategoryID  *string         `json:"categoryId"`
	Currency    string          `json:"currency"`
	IsActive    bool            `json:"isActive"`
}

func toBudgetResponse(budget domain.Budget) budgetResponse {
	return budgetResponse{
		ID:          budget.ID,
		Name:        budget.Name,
		Period:      string(budget.Period),
		PeriodStart: budget.PeriodStart,
		PeriodEnd:   budget.PeriodEnd,
		LimitAmount: budget.LimitAmount,
		CategoryID:  budget.CategoryID,
		Currency:    budget.Currency,
		IsActive:    budget.IsActive,
	}
}

func (h *BudgetHandler) CreateBudget(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req budgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	budget := domain.Budget{
		UserID:      userID,
		Name:        req.Name,
		Period:      domain.BudgetPeriod(req.Period),
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
		LimitAmount: req.LimitAmount,
		CategoryID:  req.CategoryID,
		Currency:    req.Currency,
		IsActive:    true,
	}
	if err := h.service.CreateBudget(r.Context(), &budget); err != nil {
		switch {
		case financeErrors.IsValidationError(err):
			h.respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, financeErrors.ErrInvalidCategory):
			h.respondError(w, http.StatusBadRequest, err.Error())
		default:
			log.Println("Budget handler error:", err.Error())
			h.respondError(w, http.StatusInternalServerError, "Failed to create budget")
		}
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Budget successfully created.",
		"data":    toBudgetResponse(budget),
	})
}

func (h *BudgetHandler) GetUserBudgets(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	budgets, err := h.service.GetUserBudgets(r.Context(), userID)
	if err != nil {
		log.Println("Budget handler error:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to load budgets")
		return
	}

	payload := make([]budgetResponse, 0, len(budgets))
	for _, budget := range budgets {
		payload = append(payload, toBudgetResponse(budget))
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   payload,
	})
}
