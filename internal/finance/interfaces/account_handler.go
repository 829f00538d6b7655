package interfaces

import (
	"context"
	"log"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/jkaczmarek/FinFlow/internal/auth"
	"github.com/jkaczmarek/FinFlow/internal/finance/domain"
)

type AccountServiceInterface interface {
	GetUserAccounts(ctx context.Context, userID string) ([]domain.Account, error)
}

type AccountHandler struct {
	service      AccountServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewAccountHandler(
	service AccountServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *AccountHandler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	return &AccountHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

type accountResponse struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	CurrentBalance *decimal.Decimal `json:"currentBalance"`
	Currency       string           `json:"currency"`
}

func (h *AccountHandler) GetUserAccounts(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	accounts, err := h.service.GetUserAccounts(r.Context(), userID)
	if err != nil {
		log.Println("Account handler error:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to load accounts")
		return
	}

	payload := make([]accountResponse, 0, len(accounts))
	for _, account := range accounts {
		payload = append(payload, accountResponse{
			ID:             account.ID,
			Name:           account.Name,
			CurrentBalance: account.CurrentBalance,
			Currency:       account.Currency,
		})
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   payload,
	})
}
