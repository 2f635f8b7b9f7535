package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ray-remotestate/padipos/models"
	"github.com/ray-remotestate/padipos/sandbox/utils"
)

var secret = []byte("mw-secret")

func ok(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func tokenFor(t *testing.T, role models.Role) string {
	t.Helper()
	tok, err := utils.GenerateAccessToken(secret, models.User{ID: "u1", Username: "x", Role: role}, time.Now())
	require.NoError(t, err)
	return tok
}

func serve(h http.Handler, token string) int {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestAuthAndRoles(t *testing.T) {
	adminOnly := AuthMiddleware(secret)(RoleBasedMiddleware(models.RoleAdmin)(http.HandlerFunc(ok)))

	assert.Equal(t, http.StatusUnauthorized, serve(adminOnly, ""))
	assert.Equal(t, http.StatusUnauthorized, serve(adminOnly, "garbage"))
	assert.Equal(t, http.StatusForbidden, serve(adminOnly, tokenFor(t, models.RoleCashier)))
	assert.Equal(t, http.StatusNoContent, serve(adminOnly, tokenFor(t, models.RoleAdmin)))
}

func TestAuthStoresClaims(t *testing.T) {
	var got *utils.Claims
	h := AuthMiddleware(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := GetAuthenticatedUser(r)
		require.NoError(t, err)
		got = claims
	}))

	serve(h, tokenFor(t, models.RoleCashier))
	require.NotNil(t, got)
	assert.Equal(t, "u1", got.UserID)
}

func TestRateLimiterPerClient(t *testing.T) {
	h := NewRateLimiter(1, 1).Handler(http.HandlerFunc(ok))

	call := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, call("10.0.0.1:1111"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:2222"))
	assert.Equal(t, http.StatusNoContent, call("10.0.0.2:1111"))
}
