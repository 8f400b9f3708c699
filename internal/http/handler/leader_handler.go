package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cadencia/cadencia-api/internal/auth"
	"github.com/cadencia/cadencia-api/internal/service"
)

// LeaderHandler handles the team views for leaders and admins
type LeaderHandler struct {
	teamService *service.TeamService
	logger      *zap.Logger
}

// NewLeaderHandler creates a new LeaderHandler
func NewLeaderHandler(teamService *service.TeamService, logger *zap.Logger) *LeaderHandler {
	return &LeaderHandler{
		teamService: teamService,
		logger:      logger,
	}
}

// Team godoc
// @Summary Team roster
// @Description List the sellers visible to the caller. Leaders see their direct reports, admins see every seller.
// @Tags Leader
// @Produce json
// @Success 200 {array} domain.TeamMemberDTO
// @Failure 403 {object} domain.APIError
// @Security BearerAuth
// @Router /leader/team [get]
func (h *LeaderHandler) Team(w http.ResponseWriter, r *http.Request) {
	viewer := auth.MustFromContext(r.Context())

	team, err := h.teamService.Team(r.Context(), viewer)
	if err != nil {
		h.logger.Error("failed to list team", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, team)
}

// Summary godoc
// @Summary Team summary
// @Description Aggregate lead counts and values across the caller's team, optionally restricted to an entry date window
// @Tags Leader
// @Produce json
// @Param startDate query string false "Window start (ISO 8601)"
// @Param endDate query string false "Window end (ISO 8601)"
// @Success 200 {object} domain.TeamSummaryDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /leader/summary [get]
func (h *LeaderHandler) Summary(w http.ResponseWriter, r *http.Request) {
	viewer := auth.MustFromContext(r.Context())

	var start, end *time.Time
	if raw := r.URL.Query().Get("startDate"); raw != "" {
		parsed, err := parseISODate(raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid startDate")
			return
		}
		start = &parsed
	}
	if raw := r.URL.Query().Get("endDate"); raw != "" {
		parsed, err := parseISODate(raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid endDate")
			return
		}
		end = &parsed
	}

	summary, err := h.teamService.Summary(r.Context(), viewer, start, end)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// SellerDetail godoc
// @Summary Seller drill-down
// @Description Full detail of one seller on the caller's team: metrics, leads, timeline, and recent activity
// @Tags Leader
// @Produce json
// @Param sellerId path string true "Seller ID"
// @Success 200 {object} domain.SellerDetailDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /leader/seller/{sellerId} [get]
func (h *LeaderHandler) SellerDetail(w http.ResponseWriter, r *http.Request) {
	viewer := auth.MustFromContext(r.Context())

	sellerID, err := uuid.Parse(chi.URLParam(r, "sellerId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid seller ID")
		return
	}

	detail, err := h.teamService.SellerDetail(r.Context(), viewer, sellerID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, detail)
}

func parseISODate(raw string) (time.Time, error) {
	layouts := []string{time.RFC3339, "2006-01-02"}
	var lastErr error
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, raw)
		if err == nil {
			return parsed, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
