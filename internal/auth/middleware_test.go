package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cadencia/cadencia-api/internal/auth"
	"github.com/cadencia/cadencia-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testCookie = "cadencia_session"

func testMiddleware() (*auth.Middleware, *auth.Manager) {
	m := testManager()
	return auth.NewMiddleware(m, testCookie, zap.NewNop()), m
}

func capturingHandler(captured **auth.UserContext) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, ok := auth.FromContext(r.Context()); ok {
			*captured = user
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddleware_Authenticate(t *testing.T) {
	mw, manager := testMiddleware()
	user := testUser()
	token, err := manager.NewSessionToken(user)
	require.NoError(t, err)

	t.Run("session cookie", func(t *testing.T) {
		var captured *auth.UserContext
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: testCookie, Value: token})
		rec := httptest.NewRecorder()

		mw.Authenticate(capturingHandler(&captured)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, captured)
		assert.Equal(t, user.ID, captured.UserID)
		assert.Equal(t, domain.RoleLeader, captured.Role)
	})

	t.Run("bearer header", func(t *testing.T) {
		var captured *auth.UserContext
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		mw.Authenticate(capturingHandler(&captured)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, captured)
		assert.Equal(t, user.Email, captured.Email)
	})

	t.Run("missing session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		rec := httptest.NewRecorder()

		var captured *auth.UserContext
		mw.Authenticate(capturingHandler(&captured)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Nil(t, captured)
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer bogus")
		rec := httptest.NewRecorder()

		var captured *auth.UserContext
		mw.Authenticate(capturingHandler(&captured)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := &auth.Manager{Secret: manager.Secret, SessionTTL: -time.Minute}
		staleToken, err := expired.NewSessionToken(user)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+staleToken)
		rec := httptest.NewRecorder()

		var captured *auth.UserContext
		mw.Authenticate(capturingHandler(&captured)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestMiddleware_RoleGates(t *testing.T) {
	mw, manager := testMiddleware()

	serve := func(t *testing.T, gate func(http.Handler) http.Handler, role domain.UserRole) int {
		t.Helper()
		user := testUser()
		user.Role = role
		token, err := manager.NewSessionToken(user)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/gated", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		mw.Authenticate(gate(ok)).ServeHTTP(rec, req)
		return rec.Code
	}

	t.Run("team access", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, serve(t, mw.RequireTeamAccess, domain.RoleSeller))
		assert.Equal(t, http.StatusOK, serve(t, mw.RequireTeamAccess, domain.RoleLeader))
		assert.Equal(t, http.StatusOK, serve(t, mw.RequireTeamAccess, domain.RoleAdmin))
	})

	t.Run("admin access", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, serve(t, mw.RequireAdmin, domain.RoleSeller))
		assert.Equal(t, http.StatusForbidden, serve(t, mw.RequireAdmin, domain.RoleLeader))
		assert.Equal(t, http.StatusOK, serve(t, mw.RequireAdmin, domain.RoleAdmin))
	})
}
