package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cadencia/cadencia-api/internal/domain"
	"github.com/cadencia/cadencia-api/internal/mapper"
	"github.com/cadencia/cadencia-api/internal/repository"
)

type BriefingService struct {
	briefingRepo *repository.BriefingRepository
	leadRepo     *repository.LeadRepository
	logger       *zap.Logger
	now          func() time.Time
}

func NewBriefingService(briefingRepo *repository.BriefingRepository, leadRepo *repository.LeadRepository, logger *zap.Logger) *BriefingService {
	return &BriefingService{
		briefingRepo: briefingRepo,
		leadRepo:     leadRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// WithClock overrides the time source, used by tests
func (s *BriefingService) WithClock(now func() time.Time) *BriefingService {
	s.now = now
	return s
}

// Create records a briefing for a lead the user owns. Ownership is
// checked before anything is written; the briefing, the history entry,
// and the lead temperature update are committed atomically.
func (s *BriefingService) Create(ctx context.Context, userID uuid.UUID, req *domain.CreateBriefingRequest) (*domain.BriefingDTO, error) {
	contactType := mapper.ContactTypeCode(req.TipoContato)
	if !contactType.IsValid() {
		return nil, ErrInvalidInput
	}
	if !req.TemperaturaAtualizada.IsValid() {
		return nil, ErrInvalidInput
	}

	lead, err := s.leadRepo.GetByID(ctx, req.LeadID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}

	now := s.now()
	briefing := &domain.Briefing{
		LeadID:             lead.ID,
		Date:               now,
		ContactType:        contactType,
		Objective:          req.Objetivo,
		Conversation:       req.Conversa,
		Result:             req.Resultado,
		InterestShown:      req.InteresseDemonstrado,
		Objections:         req.Objecoes,
		NextStep:           req.ProximoPasso,
		NextFollowUp:       req.ProximoFollowUp,
		UpdatedTemperature: req.TemperaturaAtualizada,
	}
	entry := &domain.ContactHistory{
		LeadID:      lead.ID,
		Date:        now,
		Type:        contactType,
		Temperature: req.TemperaturaAtualizada,
		Status:      lead.Status,
		Summary:     req.Conversa,
		NextStep:    req.ProximoPasso,
		Responsible: "Usuário",
	}
	leadUpdates := map[string]interface{}{
		"temperature":  req.TemperaturaAtualizada,
		"last_contact": now,
	}

	if err := s.briefingRepo.CreateWithContact(ctx, briefing, entry, leadUpdates); err != nil {
		return nil, fmt.Errorf("failed to create briefing: %w", err)
	}

	s.logger.Info("briefing created",
		zap.String("briefing_id", briefing.ID.String()),
		zap.String("lead_id", lead.ID.String()),
	)

	dto := mapper.ToBriefingDTO(briefing)
	return &dto, nil
}

// ListByLead returns a lead's briefings after verifying ownership
func (s *BriefingService) ListByLead(ctx context.Context, userID, leadID uuid.UUID) ([]domain.BriefingDTO, error) {
	if _, err := s.leadRepo.GetByID(ctx, leadID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}

	briefings, err := s.briefingRepo.ListByLead(ctx, leadID)
	if err != nil {
		return nil, fmt.Errorf("failed to list briefings: %w", err)
	}

	dtos := make([]domain.BriefingDTO, 0, len(briefings))
	for i := range briefings {
		dtos = append(dtos, mapper.ToBriefingDTO(&briefings[i]))
	}
	return dtos, nil
}
