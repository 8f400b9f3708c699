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

// BriefingHandler handles HTTP requests for briefings
type BriefingHandler struct {
	briefingService *service.BriefingService
	logger          *zap.Logger
}

// NewBriefingHandler creates a new BriefingHandler
func NewBriefingHandler(briefingService *service.BriefingService, logger *zap.Logger) *BriefingHandler {
	return &BriefingHandler{
		briefingService: briefingService,
		logger:          logger,
	}
}

// CreateBriefing godoc
// @Summary Create briefing
// @Description Record a structured debrief of a contact. Also appends a history entry and updates the lead temperature, all in one transaction.
// @Tags Briefings
// @Accept json
// @Produce json
// @Param briefing body domain.CreateBriefingRequest true "Briefing data"
// @Success 201 {object} domain.BriefingDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /briefings [post]
func (h *BriefingHandler) CreateBriefing(w http.ResponseWriter, r *http.Request) {
	user := auth.MustFromContext(r.Context())

	var req domain.CreateBriefingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	briefing, err := h.briefingService.Create(r.Context(), user.UserID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, briefing)
}

// ListBriefingsByLead godoc
// @Summary List briefings of a lead
// @Description Get a lead's briefings, newest first
// @Tags Briefings
// @Produce json
// @Param leadId path string true "Lead ID"
// @Success 200 {array} domain.BriefingDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /briefings/lead/{leadId} [get]
func (h *BriefingHandler) ListBriefingsByLead(w http.ResponseWriter, r *http.Request) {
	user := auth.MustFromContext(r.Context())

	leadID, err := uuid.Parse(chi.URLParam(r, "leadId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid lead ID")
		return
	}

	briefings, err := h.briefingService.ListByLead(r.Context(), user.UserID, leadID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, briefings)
}
