package banklink

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jkaczmarek/FinFlow/internal/auth"
	"github.com/jkaczmarek/FinFlow/internal/ratelimit"
)

func testRespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func testRespondError(w http.ResponseWriter, status int, message string, _ ...[]string) {
	testRespondJSON(w, status, map[string]interface{}{"status": "error", "message": message, "code": status})
}

func newHandlerFixture(limiter *mockLimiter, client *mockAggregatorClient) *Handler {
	service := NewService(limiter, client, &recordingAuditRecorder{}, zerolog.Nop())
	return NewHandler(service, testRespondJSON, testRespondError)
}

func linkRequest(t *testing.T, remoteAddr, forwardedFor string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/bank-link/token", nil)
	if remoteAddr != "" {
		req.RemoteAddr = remoteAddr
	}
	if forwardedFor != "" {
		req.Header.Set("X-Forwarded-For", forwardedFor)
	}
	ctx := context.WithValue(req.Context(), auth.UserIDContextKey, "user-1")
	return req.WithContext(ctx)
}

func TestCreateLinkTokenHandler_Success(t *testing.T) {
	limiter := &mockLimiter{Result: ratelimit.Result{Allowed: true}}
	client := &mockAggregatorClient{Token: &LinkToken{Token: "link-abc", Expiration: time.Now().Add(time.Hour)}}
	handler := newHandlerFixture(limiter, client)

	w := httptest.NewRecorder()
	handler.CreateLinkToken(w, linkRequest(t, "198.51.100.7:54321", ""))

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "bank-link:user-1:198.51.100.7", limiter.LastKey)

	var response struct {
		Data LinkToken `json:"data"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	assert.Equal(t, "link-abc", response.Data.Token)
}

func TestCreateLinkTokenHandler_UsesForwardedFor(t *testing.T) {
	limiter := &mockLimiter{Result: ratelimit.Result{Allowed: true}}
	client := &mockAggregatorClient{Token: &LinkToken{Token: "link-abc"}}
	handler := newHandlerFixture(limiter, client)

	w := httptest.NewRecorder()
	handler.CreateLinkToken(w, linkRequest(t, "10.0.0.1:80", "203.0.113.9, 10.0.0.1"))

	assert.Equal(t, "bank-link:user-1:203.0.113.9", limiter.LastKey)
}

func TestCreateLinkTokenHandler_RateLimited(t *testing.T) {
	limiter := &mockLimiter{Result: ratelimit.Result{Allowed: false, RetryAfterSeconds: 30}}
	handler := newHandlerFixture(limiter, &mockAggregatorClient{})

	w := httptest.NewRecorder()
	handler.CreateLinkToken(w, linkRequest(t, "198.51.100.7:54321", ""))

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, res.StatusCode)
	assert.Equal(t, "30", res.Header.Get("Retry-After"))
}

func TestCreateLinkTokenHandler_Unauthorized(t *testing.T) {
	handler := newHandlerFixture(&mockLimiter{}, &mockAggregatorClient{})

	req := httptest.NewRequest(http.MethodPost, "/api/bank-link/token", nil)
	w := httptest.NewRecorder()
	handler.CreateLinkToken(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Result().StatusCode)
}

func TestClientIP_Fallbacks(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.RemoteAddr = "bad-address"
	assert.Equal(t, "unknown", clientIP(req))

	req.RemoteAddr = "192.0.2.4:1234"
	assert.Equal(t, "192.0.2.4", clientIP(req))
}
