package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cadencia/cadencia-api/internal/auth"
	"github.com/cadencia/cadencia-api/internal/domain"
	"github.com/cadencia/cadencia-api/internal/service"
)

// GamificationHandler handles HTTP requests for gamification
type GamificationHandler struct {
	gamificationService *service.GamificationService
	logger              *zap.Logger
}

// NewGamificationHandler creates a new GamificationHandler
func NewGamificationHandler(gamificationService *service.GamificationService, logger *zap.Logger) *GamificationHandler {
	return &GamificationHandler{
		gamificationService: gamificationService,
		logger:              logger,
	}
}

// GetGamification godoc
// @Summary Get gamification profile
// @Description Get the caller's profile, creating it with the mission batch on first access. Settles any pending inactivity penalty.
// @Tags Gamification
// @Produce json
// @Success 200 {object} domain.GamificationDTO
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /gamificacao [get]
func (h *GamificationHandler) GetGamification(w http.ResponseWriter, r *http.Request) {
	user := auth.MustFromContext(r.Context())

	profile, err := h.gamificationService.Get(r.Context(), user.UserID)
	if err != nil {
		h.logger.Error("failed to get gamification profile", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

// UpdateGamification godoc
// @Summary Update gamification profile
// @Description Overwrite whitelisted profile fields. Setting pontosMes re-derives the level.
// @Tags Gamification
// @Accept json
// @Produce json
// @Param profile body domain.UpdateGamificationRequest true "Fields to update"
// @Success 200 {object} domain.GamificationDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /gamificacao [put]
func (h *GamificationHandler) UpdateGamification(w http.ResponseWriter, r *http.Request) {
	user := auth.MustFromContext(r.Context())

	var req domain.UpdateGamificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	profile, err := h.gamificationService.Update(r.Context(), user.UserID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

// AddPoints godoc
// @Summary Add points
// @Description Credit between 1 and 50 points to all counters. Creates the profile when missing.
// @Tags Gamification
// @Accept json
// @Produce json
// @Param points body domain.AddPointsRequest true "Points to add"
// @Success 200 {object} domain.GamificationDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /gamificacao/pontos [post]
func (h *GamificationHandler) AddPoints(w http.ResponseWriter, r *http.Request) {
	user := auth.MustFromContext(r.Context())

	// Decode into raw JSON first so fractional values are rejected
	// instead of silently truncated
	var raw struct {
		Pontos json.Number `json:"pontos"`
	}
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&raw); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	points, err := raw.Pontos.Int64()
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "pontos must be an integer between 1 and 50")
		return
	}

	profile, err := h.gamificationService.AddPoints(r.Context(), user.UserID, int(points))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

// CompleteMission godoc
// @Summary Complete mission
// @Description Mark a mission done and credit its points. Completing the last open mission grants the batch bonus. Already completed missions are returned unchanged.
// @Tags Gamification
// @Produce json
// @Param id path string true "Mission ID"
// @Success 200 {object} domain.GamificationDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /gamificacao/missoes/{id} [put]
func (h *GamificationHandler) CompleteMission(w http.ResponseWriter, r *http.Request) {
	user := auth.MustFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid mission ID")
		return
	}

	profile, err := h.gamificationService.CompleteMission(r.Context(), user.UserID, id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, profile)
}
