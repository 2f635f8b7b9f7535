// Package middlewares holds the sandbox's HTTP middleware: bearer auth, role
// gating, rate limiting and request metrics.
package middlewares

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/ray-remotestate/padipos/models"
	"github.com/ray-remotestate/padipos/sandbox/utils"
)

type ContextKey string

const userContextKey ContextKey = "user"

// AuthMiddleware rejects requests without a valid bearer token and stores
// the token claims in the request context.
func AuthMiddleware(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, err := extractBearerToken(r)
			if err != nil {
				utils.RespondError(w, http.StatusUnauthorized, "Unauthorized: missing token")
				return
			}

			claims, err := utils.ParseAccessToken(secret, tokenStr)
			if err != nil {
				utils.RespondError(w, http.StatusUnauthorized, "Unauthorized: invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetAuthenticatedUser(r *http.Request) (*utils.Claims, error) {
	claims, ok := r.Context().Value(userContextKey).(*utils.Claims)
	if !ok {
		return nil, errors.New("no user in context")
	}
	return claims, nil
}

func extractBearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("authorization header missing")
	}
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", errors.New("invalid authorization format")
	}
	return parts[1], nil
}

func RoleBasedMiddleware(allowedRoles ...models.Role) func(http.Handler) http.Handler {
	allowed := make(map[models.Role]bool)
	for _, role := range allowedRoles {
		allowed[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := GetAuthenticatedUser(r)
			if err != nil {
				utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			for _, userRole := range claims.Roles {
				if allowed[models.Role(strings.ToLower(userRole))] {
					next.ServeHTTP(w, r)
					return
				}
			}

			utils.RespondError(w, http.StatusForbidden, "Forbidden: insufficient role")
		})
	}
}
