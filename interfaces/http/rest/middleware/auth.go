package middleware

import (
	"net/http"
	"strings"

	"forzeit/application/ports"
	"forzeit/pkg/auth"

	"go.uber.org/zap"
)

// TokenValidator validates bearer tokens
type TokenValidator interface {
	ValidateToken(token string) (*auth.Claims, error)
}

// Authenticate resolves the caller from a bearer token. It never rejects a
// request: the user context is attached only when the token is valid and
// its subject is a known user. Handlers decide whether a principal is required.
func Authenticate(validator TokenValidator, users ports.UserRepository, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.Debug("Ignoring invalid token",
					zap.Error(err),
					zap.String("path", r.URL.Path),
				)
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.GetUserByID(r.Context(), claims.UserID)
			if err != nil {
				logger.Debug("Token subject is not a known user",
					zap.String("user_id", claims.UserID),
					zap.Error(err),
				)
				next.ServeHTTP(w, r)
				return
			}

			ctx := auth.SetUserInContext(r.Context(), &auth.UserContext{
				UserID: user.ID,
				Email:  user.Email,
				Name:   user.Name,
			})

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken reads the bearer token from the Authorization header
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
