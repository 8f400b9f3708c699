package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/cadencia/cadencia-api/internal/auth"
	"github.com/cadencia/cadencia-api/internal/config"
	"github.com/cadencia/cadencia-api/internal/domain"
	"github.com/cadencia/cadencia-api/internal/service"
)

// AuthHandler handles account registration and session management
type AuthHandler struct {
	userService *service.UserService
	cfg         *config.AuthConfig
	logger      *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userService *service.UserService, cfg *config.AuthConfig, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		cfg:         cfg,
		logger:      logger,
	}
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Register godoc
// @Summary Register
// @Description Create a seller account and open a session for it
// @Tags Auth
// @Accept json
// @Produce json
// @Param account body domain.RegisterRequest true "Account data"
// @Success 201 {object} domain.UserDTO
// @Failure 409 {object} domain.APIError
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	user, token, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	h.setSessionCookie(w, token, h.cfg.SessionTTL)
	respondJSON(w, http.StatusCreated, user)
}

// Login godoc
// @Summary Login
// @Description Verify credentials and open a session
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body domain.LoginRequest true "Credentials"
// @Success 200 {object} domain.UserDTO
// @Failure 401 {object} domain.APIError
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	user, token, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	h.setSessionCookie(w, token, h.cfg.SessionTTL)
	respondJSON(w, http.StatusOK, user)
}

// Logout godoc
// @Summary Logout
// @Description Clear the session cookie
// @Tags Auth
// @Success 204
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.setSessionCookie(w, "", -1)
	w.WriteHeader(http.StatusNoContent)
}

// Me godoc
// @Summary Current user
// @Description Get the authenticated user's account
// @Tags Auth
// @Produce json
// @Success 200 {object} domain.UserDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userCtx := auth.MustFromContext(r.Context())

	user, err := h.userService.Me(r.Context(), userCtx.UserID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}
