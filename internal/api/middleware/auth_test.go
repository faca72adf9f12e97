package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var authTestSecret = []byte("middleware-test-secret")

func signedToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID.String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(authTestSecret)
	require.NoError(t, err)
	return signed
}

func authChain(t *testing.T, wantUser uuid.UUID) http.Handler {
	t.Helper()
	return Auth(authTestSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, wantUser, GetUserID(r.Context()))
		w.WriteHeader(http.StatusOK)
	}))
}

func TestAuthRejectsMissingAndBadTokens(t *testing.T) {
	h := Auth(authTestSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a valid token")
	}))

	for name, header := range map[string]string{
		"missing":      "",
		"not bearer":   "Basic abc",
		"garbage":      "Bearer not-a-jwt",
		"wrong secret": "Bearer " + mustSign(t, []byte("other-secret")),
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, name)
	}
}

func mustSign(t *testing.T, secret []byte) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": uuid.NewString(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(secret)
	require.NoError(t, err)
	return signed
}

func TestAuthAcceptsBearerHeader(t *testing.T) {
	userID := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, userID))
	rr := httptest.NewRecorder()
	authChain(t, userID).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestQueryTokenFeedsAuth(t *testing.T) {
	userID := uuid.New()
	h := QueryToken(authChain(t, userID))

	// A websocket upgrade cannot carry Authorization; the token query
	// parameter must authenticate instead.
	req := httptest.NewRequest(http.MethodGet, "/subscribe?token="+signedToken(t, userID), nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestQueryTokenPrefersExistingHeader(t *testing.T) {
	userID := uuid.New()
	h := QueryToken(authChain(t, userID))

	req := httptest.NewRequest(http.MethodGet, "/subscribe?token=stale-garbage", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, userID))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}
