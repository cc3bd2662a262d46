package middleware

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/top4/calldrivers/internal/models"
	"github.com/top4/calldrivers/internal/service"
)

type contextKey string

const userContextKey contextKey = "auth_user"

type AuthMiddleware struct {
	sessions *service.SessionService
	logger   *logrus.Logger
}

func NewAuthMiddleware(sessions *service.SessionService, logger *logrus.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		sessions: sessions,
		logger:   logger,
	}
}

// RequireAuth rejects requests without a valid session cookie.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := m.sessions.CurrentUser(r)
		if user == nil {
			m.respondUnauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserFromContext returns the authenticated user set by RequireAuth,
// or nil on unauthenticated routes.
func UserFromContext(ctx context.Context) *models.AuthUser {
	user, _ := ctx.Value(userContextKey).(*models.AuthUser)
	return user
}

func (m *AuthMiddleware) respondUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"status":"error","message":"authentication required"}`))
}
