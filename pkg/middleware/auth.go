package middleware

import (
	"net/http"
	"strings"

	"movie-review/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenParser verifies a bearer token and returns the caller it names.
type TokenParser interface {
	Parse(token string) (uuid.UUID, string, error)
}

// Auth rejects requests without a valid bearer token and stores the caller
// id and email in the request context.
func Auth(tokens TokenParser, logger *zap.Logger) func(http.Handler) http.Handler {
	logger = logger.With(zap.String("middleware", "auth"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			scheme, token, ok := strings.Cut(authHeader, " ")
			token = strings.TrimSpace(token)
			if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			userID, email, err := tokens.Parse(token)
			if err != nil {
				logger.Debug("Rejected token",
					zap.String("path", r.URL.Path),
					zap.Error(err),
				)
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			ctx := utils.SetUserContext(r.Context(), userID, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
