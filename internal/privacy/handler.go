package privacy

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/jkaczmarek/FinFlow/internal/auth"
	financeErrors "github.com/jkaczmarek/FinFlow/internal/finance/errors"
)

type Handler struct {
	service      *Service
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewHandler(
	service *Service,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *Handler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	return &Handler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *Handler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req struct {
		Type    string `json:"type"`
		Details string `json:"details"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	request, err := h.service.CreateRequest(r.Context(), userID, RequestType(req.Type), req.Details)
	if err != nil {
		if financeErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Println("Privacy handler error:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to create request")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Request successfully submitted.",
		"data":    request,
	})
}

func (h *Handler) ListRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	requests, err := h.service.ListRequests(r.Context(), userID)
	if err != nil {
		log.Println("Privacy handler error:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to load requests")
		return
	}
	if requests == nil {
		requests = []Request{}
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   requests,
	})
}
