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

type GamificationService struct {
	repo   *repository.GamificationRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewGamificationService(repo *repository.GamificationRepository, logger *zap.Logger) *GamificationService {
	return &GamificationService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock overrides the time source, used by tests
func (s *GamificationService) WithClock(now func() time.Time) *GamificationService {
	s.now = now
	return s
}

func (s *GamificationService) getOrCreate(ctx context.Context, userID uuid.UUID) (*domain.GamificationProfile, error) {
	profile, err := s.repo.GetByUser(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to get gamification profile: %w", err)
	}

	profile = &domain.GamificationProfile{
		UserID:       userID,
		Level:        domain.LevelBeginner,
		Achievements: []string{},
	}
	if err := s.repo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to create gamification profile: %w", err)
	}

	s.logger.Info("gamification profile created",
		zap.String("user_id", userID.String()),
	)
	return profile, nil
}

// Get returns the profile for a user, creating it with its mission
// batch on first access. The inactivity penalty is settled lazily here.
func (s *GamificationService) Get(ctx context.Context, userID uuid.UUID) (*domain.GamificationDTO, error) {
	profile, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if domain.ApplyInactivityPenalty(profile, s.now()) {
		if err := s.repo.Save(ctx, profile); err != nil {
			return nil, fmt.Errorf("failed to apply inactivity penalty: %w", err)
		}
	}

	dto := mapper.ToGamificationDTO(profile)
	return &dto, nil
}

// Update overwrites whitelisted fields. Setting monthly points also
// re-derives the stored level.
func (s *GamificationService) Update(ctx context.Context, userID uuid.UUID, req *domain.UpdateGamificationRequest) (*domain.GamificationDTO, error) {
	profile, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.PontosHoje != nil {
		profile.PointsToday = *req.PontosHoje
	}
	if req.PontosSemana != nil {
		profile.PointsWeek = *req.PontosSemana
	}
	if req.PontosMes != nil {
		profile.PointsMonth = *req.PontosMes
		profile.Level = domain.LevelForPoints(*req.PontosMes)
	}
	if req.Conquistas != nil {
		profile.Achievements = *req.Conquistas
	}
	if req.ProgressoDiario != nil {
		profile.DailyProgress = *req.ProgressoDiario
	}

	if err := s.repo.Save(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update gamification profile: %w", err)
	}

	dto := mapper.ToGamificationDTO(profile)
	return &dto, nil
}

// AddPoints credits points to all counters. Only whole awards between
// 1 and 50 are accepted. A profile is created on the fly when missing.
func (s *GamificationService) AddPoints(ctx context.Context, userID uuid.UUID, points int) (*domain.GamificationDTO, error) {
	if points < domain.MinPointAward || points > domain.MaxPointAward {
		return nil, ErrInvalidPoints
	}

	now := s.now()
	updated, err := s.repo.AddPoints(ctx, userID, points, now)
	if err != nil {
		return nil, fmt.Errorf("failed to add points: %w", err)
	}

	if !updated {
		profile := &domain.GamificationProfile{
			UserID:       userID,
			PointsToday:  points,
			PointsWeek:   points,
			PointsMonth:  points,
			Level:        domain.LevelForPoints(points),
			Achievements: []string{},
			LastActivity: &now,
		}
		if err := s.repo.Create(ctx, profile); err != nil {
			return nil, fmt.Errorf("failed to create gamification profile: %w", err)
		}
		dto := mapper.ToGamificationDTO(profile)
		return &dto, nil
	}

	return s.reloadWithLevel(ctx, userID)
}

// CompleteMission marks a mission done and credits its points. Completing
// the last open mission also grants the batch bonus. A mission already
// completed is returned unchanged so points are never double counted.
func (s *GamificationService) CompleteMission(ctx context.Context, userID, missionID uuid.UUID) (*domain.GamificationDTO, error) {
	mission, err := s.repo.GetMission(ctx, missionID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get mission: %w", err)
	}

	if mission.Completed {
		return s.reloadWithLevel(ctx, userID)
	}

	openOthers, err := s.repo.CountOpenMissions(ctx, mission.ProfileID, mission.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count open missions: %w", err)
	}
	bonus := 0
	if openOthers == 0 {
		bonus = domain.AllMissionsBonus
	}

	if err := s.repo.CompleteMission(ctx, mission, bonus, s.now()); err != nil {
		return nil, fmt.Errorf("failed to complete mission: %w", err)
	}

	s.logger.Info("mission completed",
		zap.String("mission_id", mission.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Int("bonus", bonus),
	)

	return s.reloadWithLevel(ctx, userID)
}

// reloadWithLevel fetches the profile and persists a level change when
// the stored name no longer matches the monthly points
func (s *GamificationService) reloadWithLevel(ctx context.Context, userID uuid.UUID) (*domain.GamificationDTO, error) {
	profile, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload gamification profile: %w", err)
	}

	level := domain.LevelForPoints(profile.PointsMonth)
	if level != profile.Level {
		if err := s.repo.UpdateLevel(ctx, profile.ID, level); err != nil {
			return nil, fmt.Errorf("failed to update level: %w", err)
		}
		profile.Level = level
	}

	dto := mapper.ToGamificationDTO(profile)
	return &dto, nil
}
