package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/cadencia/cadencia-api/internal/auth"
	"github.com/cadencia/cadencia-api/internal/domain"
	"github.com/cadencia/cadencia-api/internal/service"
)

// MetricsHandler handles HTTP requests for daily metrics
type MetricsHandler struct {
	metricsService *service.MetricsService
	logger         *zap.Logger
}

// NewMetricsHandler creates a new MetricsHandler
func NewMetricsHandler(metricsService *service.MetricsService, logger *zap.Logger) *MetricsHandler {
	return &MetricsHandler{
		metricsService: metricsService,
		logger:         logger,
	}
}

// GetMetrics godoc
// @Summary Get today's metrics
// @Description Get the caller's counters for today, creating a zeroed row when absent
// @Tags Metrics
// @Produce json
// @Success 200 {object} domain.MetricsDTO
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /metricas [get]
func (h *MetricsHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	user := auth.MustFromContext(r.Context())

	metrics, err := h.metricsService.GetToday(r.Context(), user.UserID)
	if err != nil {
		h.logger.Error("failed to get metrics", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, metrics)
}

// UpdateMetrics godoc
// @Summary Update today's metrics
// @Description Overwrite whitelisted counters on today's row
// @Tags Metrics
// @Accept json
// @Produce json
// @Param metrics body domain.UpdateMetricsRequest true "Counters to set"
// @Success 200 {object} domain.MetricsDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /metricas [put]
func (h *MetricsHandler) UpdateMetrics(w http.ResponseWriter, r *http.Request) {
	user := auth.MustFromContext(r.Context())

	var req domain.UpdateMetricsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	metrics, err := h.metricsService.UpdateToday(r.Context(), user.UserID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, metrics)
}

// IncrementMetrics godoc
// @Summary Increment today's counters
// @Description Add positive whole values to today's counters. Invalid entries are ignored.
// @Tags Metrics
// @Accept json
// @Produce json
// @Param increments body domain.IncrementMetricsRequest true "Counter increments"
// @Success 200 {object} domain.MetricsDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /metricas/increment [post]
func (h *MetricsHandler) IncrementMetrics(w http.ResponseWriter, r *http.Request) {
	user := auth.MustFromContext(r.Context())

	var req domain.IncrementMetricsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	metrics, err := h.metricsService.IncrementToday(r.Context(), user.UserID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, metrics)
}
