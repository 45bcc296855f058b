package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/adfinis/poweradmin-api/internal/api/response"
	"github.com/adfinis/poweradmin-api/internal/core"
)

type contextKey string

const claimsKey contextKey = "claims"

// Auth returns middleware that validates the Bearer token and injects the
// acting user's claims into the request context.
func Auth(authService *core.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearer(r)
			if token == "" {
				response.WriteError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := authService.ValidateToken(token)
			if err != nil {
				response.WriteError(w, http.StatusUnauthorized, err.Error())
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			zerolog.Ctx(ctx).UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Int64("user_id", claims.UserID)
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearer(r *http.Request) string {
	h := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(h, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

// GetClaims extracts the token claims from the request context.
func GetClaims(ctx context.Context) *core.Claims {
	claims, _ := ctx.Value(claimsKey).(*core.Claims)
	return claims
}

// GetUserID returns the acting user, 0 when the request is unauthenticated.
func GetUserID(ctx context.Context) int64 {
	if c := GetClaims(ctx); c != nil {
		return c.UserID
	}
	return 0
}

// WithClaims returns a context carrying claims, as Auth would set it.
func WithClaims(ctx context.Context, claims *core.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}
