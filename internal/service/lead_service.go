package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cadencia/cadencia-api/internal/domain"
	"github.com/cadencia/cadencia-api/internal/mapper"
	"github.com/cadencia/cadencia-api/internal/repository"
)

type LeadService struct {
	leadRepo *repository.LeadRepository
	logger   *zap.Logger
	now      func() time.Time
}

func NewLeadService(leadRepo *repository.LeadRepository, logger *zap.Logger) *LeadService {
	return &LeadService{
		leadRepo: leadRepo,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock overrides the time source, used by tests
func (s *LeadService) WithClock(now func() time.Time) *LeadService {
	s.now = now
	return s
}

func (s *LeadService) List(ctx context.Context, userID uuid.UUID) ([]domain.LeadDTO, error) {
	leads, err := s.leadRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}

	dtos := make([]domain.LeadDTO, 0, len(leads))
	for i := range leads {
		dtos = append(dtos, mapper.ToLeadDTO(&leads[i]))
	}
	return dtos, nil
}

func (s *LeadService) Get(ctx context.Context, userID, id uuid.UUID) (*domain.LeadDTO, error) {
	lead, err := s.leadRepo.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}

	dto := mapper.ToLeadDTO(lead)
	return &dto, nil
}

func (s *LeadService) Create(ctx context.Context, userID uuid.UUID, req *domain.CreateLeadRequest) (*domain.LeadDTO, error) {
	if !req.Cadencia.IsValid() {
		return nil, ErrInvalidInput
	}
	origin := mapper.OriginCode(req.Origem)
	if !origin.IsValid() {
		return nil, ErrInvalidInput
	}

	temperature := req.Temperatura
	if temperature == "" {
		temperature = domain.TemperatureCold
	}
	if !temperature.IsValid() {
		return nil, ErrInvalidInput
	}

	now := s.now()
	entryDate := now
	if req.DataEntrada != nil {
		entryDate = *req.DataEntrada
	}

	lead := &domain.Lead{
		UserID:      userID,
		Name:        req.Nome,
		City:        req.Cidade,
		Origin:      origin,
		Phone:       req.Telefone,
		Code:        req.Codigo,
		Cadence:     req.Cadencia,
		LastContact: req.UltimoContato,
		Temperature: temperature,
		Note:        req.Observacao,
		EntryDate:   entryDate,
		Currency:    "BRL",
	}
	if req.ValorEstimado != nil {
		cents := toCents(*req.ValorEstimado)
		lead.EstimatedValueCents = &cents
	}
	domain.Recalculate(lead, now)

	if err := s.leadRepo.Create(ctx, lead); err != nil {
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}

	s.logger.Info("lead created",
		zap.String("lead_id", lead.ID.String()),
		zap.String("user_id", userID.String()),
	)

	dto := mapper.ToLeadDTO(lead)
	return &dto, nil
}

func (s *LeadService) Update(ctx context.Context, userID, id uuid.UUID, req *domain.UpdateLeadRequest) (*domain.LeadDTO, error) {
	lead, err := s.leadRepo.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}

	if req.Nome != nil {
		lead.Name = *req.Nome
	}
	if req.Cidade != nil {
		lead.City = *req.Cidade
	}
	if req.Origem != nil {
		origin := mapper.OriginCode(*req.Origem)
		if !origin.IsValid() {
			return nil, ErrInvalidInput
		}
		lead.Origin = origin
	}
	if req.Telefone != nil {
		lead.Phone = *req.Telefone
	}
	if req.Codigo != nil {
		lead.Code = *req.Codigo
	}
	if req.Temperatura != nil {
		if !req.Temperatura.IsValid() {
			return nil, ErrInvalidInput
		}
		lead.Temperature = *req.Temperatura
	}
	if req.Observacao != nil {
		lead.Note = *req.Observacao
	}
	if req.DataEntrada != nil {
		lead.EntryDate = *req.DataEntrada
	}
	if req.DataConversao != nil {
		lead.ConversionDate = req.DataConversao
	}
	if req.ValorEstimado != nil {
		cents := toCents(*req.ValorEstimado)
		lead.EstimatedValueCents = &cents
	}
	if req.ValorFechado != nil {
		cents := toCents(*req.ValorFechado)
		lead.StatedValueCents = &cents
	}
	if req.Cadencia != nil {
		if !req.Cadencia.IsValid() {
			return nil, ErrInvalidInput
		}
		lead.Cadence = *req.Cadencia
	}
	if req.UltimoContato != nil {
		lead.LastContact = req.UltimoContato
	}
	if req.Status != nil {
		status := mapper.StatusCode(*req.Status)
		if !status.IsValid() {
			return nil, ErrInvalidInput
		}
		lead.Status = status
	}

	domain.Recalculate(lead, s.now())

	if err := s.leadRepo.Update(ctx, lead); err != nil {
		return nil, fmt.Errorf("failed to update lead: %w", err)
	}

	dto := mapper.ToLeadDTO(lead)
	return &dto, nil
}

func (s *LeadService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.leadRepo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete lead: %w", err)
	}
	return nil
}

// RegisterContact records a contact made now: it appends an immutable
// history entry and reschedules the lead from today
func (s *LeadService) RegisterContact(ctx context.Context, userID, id uuid.UUID, req *domain.RegisterContactRequest) (*domain.LeadDTO, error) {
	lead, err := s.leadRepo.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}

	now := s.now()
	contactType := domain.ContactCall
	summary := "Contato registrado"
	nextStep := ""
	if req != nil && req.Briefing != nil {
		if req.Briefing.TipoContato != "" {
			parsed := mapper.ContactTypeCode(req.Briefing.TipoContato)
			if !parsed.IsValid() {
				return nil, ErrInvalidInput
			}
			contactType = parsed
		}
		if req.Briefing.Conversa != "" {
			summary = req.Briefing.Conversa
		}
		nextStep = req.Briefing.ProximoPasso
	}

	// Snapshot temperature and status before rescheduling
	entry := &domain.ContactHistory{
		LeadID:      lead.ID,
		Date:        now,
		Type:        contactType,
		Temperature: lead.Temperature,
		Status:      lead.Status,
		Summary:     summary,
		NextStep:    nextStep,
		Responsible: "Usuário",
	}

	lead.LastContact = &now
	domain.Recalculate(lead, now)

	if err := s.leadRepo.RegisterContact(ctx, lead, entry); err != nil {
		return nil, fmt.Errorf("failed to register contact: %w", err)
	}

	reloaded, err := s.leadRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload lead: %w", err)
	}

	dto := mapper.ToLeadDTO(reloaded)
	return &dto, nil
}

// toCents converts a currency amount to integer cents, rounding half away
// from zero so values like 10.15 do not lose a cent to float truncation.
func toCents(value float64) int64 {
	return int64(math.Round(value * 100))
}
