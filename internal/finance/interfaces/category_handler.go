package interfaces

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/jkaczmarek/FinFlow/internal/auth"
	"github.com/jkaczmarek/FinFlow/internal/finance/domain"
	financeErrors "github.com/jkaczmarek/FinFlow/internal/finance/errors"
)

type CategoryServiceInterface interface {
	GetUserCategories(ctx context.Context, userID string) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, categoryID, userID string, update domain.CategoryUpdate) error
}

type CategoryHandler struct {
	service      CategoryServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewCategoryHandler(
	service CategoryServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *CategoryHandler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	return &CategoryHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

type categoryResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	IsSystem bool   `json:"isSystem"`
}

func (h *CategoryHandler) GetUserCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	categories, err := h.service.GetUserCategories(r.Context(), userID)
	if err != nil {
		log.Println("Category handler error:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to load categories")
		return
	}

	payload := make([]categoryResponse, 0, len(categories))
	for _, category := range categories {
		payload = append(payload, categoryResponse{
			ID:       category.ID,
			Name:     category.Name,
			Type:     string(category.Type),
			IsSystem: category.IsSystem,
		})
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   payload,
	})
}

func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	categoryID := r.PathValue("categoryID")
	if categoryID == "" {
		h.respondError(w, http.StatusBadRequest, "Category ID must be provided")
		return
	}

	var update domain.CategoryUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.UpdateCategory(r.Context(), categoryID, userID, update); err != nil {
		switch {
		case financeErrors.IsValidationError(err):
			h.respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, financeErrors.ErrCategoryNotFound):
			h.respondError(w, http.StatusNotFound, err.Error())
		default:
			log.Println("Category handler error:", err.Error())
			h.respondError(w, http.StatusInternalServerError, "Failed to update category")
		}
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Category successfully updated.",
	})
}
