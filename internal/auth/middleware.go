package auth

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/cadencia/cadencia-api/internal/domain"
)

// Middleware handles authentication for HTTP requests
type Middleware struct {
	manager    *Manager
	cookieName string
	logger     *zap.Logger
}

// NewMiddleware creates a new authentication middleware
func NewMiddleware(manager *Manager, cookieName string, logger *zap.Logger) *Middleware {
	return &Middleware{
		manager:    manager,
		cookieName: cookieName,
		logger:     logger,
	}
}

// Authenticate resolves the session from the cookie or an Authorization
// bearer header and stores the user context on the request
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := m.extractToken(r)
		if token == "" {
			http.Error(w, "Unauthorized: missing session", http.StatusUnauthorized)
			return
		}

		claims, err := m.manager.Parse(token)
		if err != nil {
			m.logger.Warn("session validation failed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("remote_addr", r.RemoteAddr),
				zap.Error(err),
			)
			http.Error(w, "Unauthorized: invalid session", http.StatusUnauthorized)
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			http.Error(w, "Unauthorized: invalid session", http.StatusUnauthorized)
			return
		}

		role := domain.UserRole(claims.Role)
		if !role.IsValid() {
			role = domain.RoleSeller
		}

		userCtx := &UserContext{
			UserID: userID,
			Name:   claims.Name,
			Email:  claims.Email,
			Role:   role,
		}

		ctx := WithUserContext(r.Context(), userCtx)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireTeamAccess gates routes to leaders and admins
func (m *Middleware) RequireTeamAccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := FromContext(r.Context())
		if !ok || !user.CanViewTeam() {
			http.Error(w, "Forbidden: requires team access", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin gates routes to admins
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := FromContext(r.Context())
		if !ok || !user.CanManageUsers() {
			http.Error(w, "Forbidden: requires admin access", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) extractToken(r *http.Request) string {
	if cookie, err := r.Cookie(m.cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
