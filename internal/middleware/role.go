package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/probationsupervision/appointments-api/internal/auth"
	"go.uber.org/zap"
)

// TokenAuthorizer validates a bearer token and checks it grants a role
type TokenAuthorizer interface {
	Authorize(tokenString, role string) (*auth.Principal, error)
}

// RoleMiddleware validates the bearer token and requires it to grant requiredRole
func RoleMiddleware(authorizer TokenAuthorizer, requiredRole string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				writeJSONError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			principal, err := authorizer.Authorize(token, requiredRole)
			if err != nil {
				if errors.Is(err, auth.ErrMissingRole) {
					logger.Info("caller lacks required role",
						zap.String("request_id", GetRequestID(r.Context())),
						zap.String("role", requiredRole),
					)
					writeJSONError(w, http.StatusForbidden, "insufficient permissions")
					return
				}
				writeJSONError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetPrincipal retrieves the authenticated caller from context
func GetPrincipal(ctx context.Context) (*auth.Principal, bool) {
	principal, ok := ctx.Value(principalKey).(*auth.Principal)
	return principal, ok
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header
func bearerToken(r *http.Request) string {
	parts := strings.Split(r.Header.Get("Authorization"), " ")
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}
