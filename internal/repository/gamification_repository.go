package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cadencia/cadencia-api/internal/database"
	"github.com/cadencia/cadencia-api/internal/domain"
)

type GamificationRepository struct {
	db    *gorm.DB
	retry *database.Retryer
}

func NewGamificationRepository(db *gorm.DB, retry *database.Retryer) *GamificationRepository {
	return &GamificationRepository{db: db, retry: retry}
}

// GetByUser loads a profile with its missions
func (r *GamificationRepository) GetByUser(ctx context.Context, userID uuid.UUID) (*domain.GamificationProfile, error) {
	var profile domain.GamificationProfile
	err := r.retry.Do(ctx, func() error {
		return r.db.WithContext(ctx).
			Preload("Missions", func(db *gorm.DB) *gorm.DB {
				return db.Order("created_at")
			}).
			Where("user_id = ?", userID).
			First(&profile).Error
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Create inserts a profile together with its mission batch
func (r *GamificationRepository) Create(ctx context.Context, profile *domain.GamificationProfile) error {
	return r.retry.Do(ctx, func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Omit("Missions").Create(profile).Error; err != nil {
				return err
			}
			missions := domain.DefaultMissions(profile.ID)
			if err := tx.Create(&missions).Error; err != nil {
				return err
			}
			profile.Missions = missions
			return nil
		})
	})
}

// Save persists profile fields without touching missions
func (r *GamificationRepository) Save(ctx context.Context, profile *domain.GamificationProfile) error {
	return r.retry.Do(ctx, func() error {
		return r.db.WithContext(ctx).Omit("Missions").Save(profile).Error
	})
}

// AddPoints increments all point counters and stamps the activity time.
// Returns false when no profile exists for the user yet.
func (r *GamificationRepository) AddPoints(ctx context.Context, userID uuid.UUID, points int, now time.Time) (bool, error) {
	var updated bool
	err := r.retry.Do(ctx, func() error {
		result := r.db.WithContext(ctx).
			Model(&domain.GamificationProfile{}).
			Where("user_id = ?", userID).
			Updates(map[string]interface{}{
				"points_today":  gorm.Expr("points_today + ?", points),
				"points_week":   gorm.Expr("points_week + ?", points),
				"points_month":  gorm.Expr("points_month + ?", points),
				"last_activity": now,
			})
		if result.Error != nil {
			return result.Error
		}
		updated = result.RowsAffected > 0
		return nil
	})
	return updated, err
}

// UpdateLevel sets the stored level name
func (r *GamificationRepository) UpdateLevel(ctx context.Context, profileID uuid.UUID, level string) error {
	return r.retry.Do(ctx, func() error {
		return r.db.WithContext(ctx).
			Model(&domain.GamificationProfile{}).
			Where("id = ?", profileID).
			Update("level", level).Error
	})
}

// GetMission loads a mission only when its profile belongs to the user
func (r *GamificationRepository) GetMission(ctx context.Context, missionID, userID uuid.UUID) (*domain.DailyMission, error) {
	var mission domain.DailyMission
	err := r.retry.Do(ctx, func() error {
		return r.db.WithContext(ctx).
			Joins("JOIN gamification_profiles gp ON gp.id = daily_missions.profile_id").
			Where("daily_missions.id = ? AND gp.user_id = ?", missionID, userID).
			First(&mission).Error
	})
	if err != nil {
		return nil, err
	}
	return &mission, nil
}

// CountOpenMissions counts missions of a profile still incomplete,
// excluding one mission id
func (r *GamificationRepository) CountOpenMissions(ctx context.Context, profileID, excludeID uuid.UUID) (int64, error) {
	var count int64
	err := r.retry.Do(ctx, func() error {
		return r.db.WithContext(ctx).
			Model(&domain.DailyMission{}).
			Where("profile_id = ? AND id <> ? AND completed = ?", profileID, excludeID, false).
			Count(&count).Error
	})
	return count, err
}

// CompleteMission marks the mission done and credits its points plus any
// bonus to the profile in one transaction
func (r *GamificationRepository) CompleteMission(ctx context.Context, mission *domain.DailyMission, bonus int, now time.Time) error {
	return r.retry.Do(ctx, func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&domain.DailyMission{}).
				Where("id = ?", mission.ID).
				Updates(map[string]interface{}{
					"completed": true,
					"progress":  mission.Target,
				}).Error; err != nil {
				return err
			}
			total := mission.Points + bonus
			return tx.Model(&domain.GamificationProfile{}).
				Where("id = ?", mission.ProfileID).
				Updates(map[string]interface{}{
					"points_today":  gorm.Expr("points_today + ?", total),
					"points_week":   gorm.Expr("points_week + ?", total),
					"points_month":  gorm.Expr("points_month + ?", total),
					"last_activity": now,
				}).Error
		})
	})
}
