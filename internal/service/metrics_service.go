package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cadencia/cadencia-api/internal/domain"
	"github.com/cadencia/cadencia-api/internal/mapper"
	"github.com/cadencia/cadencia-api/internal/repository"
)

type MetricsService struct {
	repo   *repository.MetricsRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewMetricsService(repo *repository.MetricsRepository, logger *zap.Logger) *MetricsService {
	return &MetricsService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock overrides the time source, used by tests
func (s *MetricsService) WithClock(now func() time.Time) *MetricsService {
	s.now = now
	return s
}

func (s *MetricsService) today() time.Time {
	return domain.StartOfDay(s.now())
}

// GetToday returns today's counters, creating a zeroed row when absent
func (s *MetricsService) GetToday(ctx context.Context, userID uuid.UUID) (*domain.MetricsDTO, error) {
	metrics, err := s.repo.GetOrCreate(ctx, userID, s.today())
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics: %w", err)
	}

	dto := mapper.ToMetricsDTO(metrics)
	return &dto, nil
}

// UpdateToday overwrites whitelisted counters on today's row
func (s *MetricsService) UpdateToday(ctx context.Context, userID uuid.UUID, req *domain.UpdateMetricsRequest) (*domain.MetricsDTO, error) {
	metrics, err := s.repo.GetOrCreate(ctx, userID, s.today())
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics: %w", err)
	}

	updates := map[string]interface{}{}
	if req.ContatosFeitos != nil {
		updates["contacts_made"] = *req.ContatosFeitos
	}
	if req.AtrasosResolvidos != nil {
		updates["overdue_resolved"] = *req.AtrasosResolvidos
	}
	if req.NovosLeads != nil {
		updates["new_leads"] = *req.NovosLeads
	}
	if req.LeadsQuentesTrabalhados != nil {
		updates["hot_leads_worked"] = *req.LeadsQuentesTrabalhados
	}
	if req.TaxaRitmo != nil {
		updates["pace_rate"] = *req.TaxaRitmo
	}

	if len(updates) > 0 {
		metrics, err = s.repo.ApplyUpdates(ctx, metrics.ID, updates)
		if err != nil {
			return nil, fmt.Errorf("failed to update metrics: %w", err)
		}
	}

	dto := mapper.ToMetricsDTO(metrics)
	return &dto, nil
}

// IncrementToday adds to today's counters. Only positive whole values
// are applied; anything else is silently skipped.
func (s *MetricsService) IncrementToday(ctx context.Context, userID uuid.UUID, req *domain.IncrementMetricsRequest) (*domain.MetricsDTO, error) {
	increments := map[string]int{}
	add := func(column string, value *int) {
		if value != nil && *value > 0 {
			increments[column] = *value
		}
	}
	add("contacts_made", req.ContatosFeitos)
	add("overdue_resolved", req.AtrasosResolvidos)
	add("new_leads", req.NovosLeads)
	add("hot_leads_worked", req.LeadsQuentesTrabalhados)

	metrics, err := s.repo.Increment(ctx, userID, s.today(), increments)
	if err != nil {
		return nil, fmt.Errorf("failed to increment metrics: %w", err)
	}

	dto := mapper.ToMetricsDTO(metrics)
	return &dto, nil
}
