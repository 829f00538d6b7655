package banklink

import (
	"errors"
	"log"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/jkaczmarek/FinFlow/internal/auth"
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

// clientIP resolves the caller's address. Behind the load balancer the first
// X-Forwarded-For hop is the client; locally RemoteAddr is.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first := strings.TrimSpace(strings.Split(forwarded, ",")[0])
		if first != "" {
			return first
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil || host == "" {
		return "unknown"
	}
	return host
}

func (h *Handler) CreateLinkToken(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	token, err := h.service.CreateLinkToken(r.Context(), userID, clientIP(r))
	if err != nil {
		var rateLimited *RateLimitedError
		if errors.As(err, &rateLimited) {
			w.Header().Set("Retry-After", strconv.Itoa(rateLimited.RetryAfterSeconds))
			h.respondError(w, http.StatusTooManyRequests, "Too many link attempts, please try again later")
			return
		}
		log.Println("Bank link handler error:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to create link token")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   token,
	})
}
