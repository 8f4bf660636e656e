package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/taskman-api/internal/api/shared"
	"github.com/phrazzld/taskman-api/internal/platform/logger"
	"github.com/phrazzld/taskman-api/internal/redact"
	"github.com/phrazzld/taskman-api/internal/service/auth"
	"github.com/phrazzld/taskman-api/internal/store"
)

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
	users      store.UserStore
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService, users store.UserStore) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		users:      users,
	}
}

// Authenticate validates the bearer token in the Authorization header,
// confirms the user it names still exists and adds the user's ID and name to
// the request context. Any failure ends the request with 401.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		scheme, token, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" || strings.Contains(token, " ") {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
			case errors.Is(err, auth.ErrInvalidToken),
				errors.Is(err, auth.ErrTokenNotYetValid),
				errors.Is(err, auth.ErrWrongTokenType):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			default:
				log.Error("failed to validate token", slog.String("error", redact.Error(err)))
				shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			}
			return
		}

		user, err := m.users.GetByID(r.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				log.Warn("token for unknown user", slog.String("user_id", claims.UserID.String()))
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
				return
			}
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Authentication error", err)
			return
		}

		ctx := shared.WithUser(r.Context(), user.ID, user.Username)
		ctx = logger.WithLogger(ctx, log.With(slog.String("user_id", user.ID.String())))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
