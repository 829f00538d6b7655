package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAccessToken_RoundTrip(t *testing.T) {
	manager := NewJWTManager("test-secret")

	token, err := manager.GenerateAccessJWT("user-1", time.Hour)
	require.NoError(t, err)

	userID, err := manager.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestValidateAccessToken_Expired(t *testing.T) {
	manager := NewJWTManager("test-secret")

	token, err := manager.GenerateAccessJWT("user-1", -time.Minute)
	require.NoError(t, err)

	_, err = manager.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrExpiredJWTToken)
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	manager := NewJWTManager("test-secret")
	other := NewJWTManager("other-secret")

	token, err := other.GenerateAccessJWT("user-1", time.Hour)
	require.NoError(t, err)

	_, err = manager.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestAccessTokenMiddleware(t *testing.T) {
	manager := NewJWTManager("test-secret")
	middleware := manager.AccessTokenMiddleware()

	var seenUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFromContext(r.Context())
		require.True(t, ok)
		seenUserID = userID
		w.WriteHeader(http.StatusOK)
	})

	token, err := manager.GenerateAccessJWT("user-1", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/protected/finance/transactions/view", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	middleware(next).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
	assert.Equal(t, "user-1", seenUserID)
}

func TestAccessTokenMiddleware_MissingHeader(t *testing.T) {
	manager := NewJWTManager("test-secret")
	middleware := manager.AccessTokenMiddleware()

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatal("handler should not be reached")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/protected/finance/transactions/view", nil)
	w := httptest.NewRecorder()
	middleware(next).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Result().StatusCode)
}

func TestAccessTokenMiddleware_BadFormat(t *testing.T) {
	manager := NewJWTManager("test-secret")
	middleware := manager.AccessTokenMiddleware()

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatal("handler should not be reached")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/protected/finance/transactions/view", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	middleware(next).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Result().StatusCode)
}
