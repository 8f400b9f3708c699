package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cadencia/cadencia-api/internal/database"
	"github.com/cadencia/cadencia-api/internal/domain"
)

type BriefingRepository struct {
	db    *gorm.DB
	retry *database.Retryer
}

func NewBriefingRepository(db *gorm.DB, retry *database.Retryer) *BriefingRepository {
	return &BriefingRepository{db: db, retry: retry}
}

// CreateWithContact persists the briefing, its history entry, and the
// lead temperature update atomically. Either all three land or none do.
func (r *BriefingRepository) CreateWithContact(ctx context.Context, briefing *domain.Briefing, entry *domain.ContactHistory, leadUpdates map[string]interface{}) error {
	return r.retry.Do(ctx, func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(briefing).Error; err != nil {
				return err
			}
			if err := tx.Create(entry).Error; err != nil {
				return err
			}
			return tx.Model(&domain.Lead{}).
				Where("id = ?", briefing.LeadID).
				Updates(leadUpdates).Error
		})
	})
}

// ListByLead returns a lead's briefings, newest first
func (r *BriefingRepository) ListByLead(ctx context.Context, leadID uuid.UUID) ([]domain.Briefing, error) {
	var briefings []domain.Briefing
	err := r.retry.Do(ctx, func() error {
		return r.db.WithContext(ctx).
			Where("lead_id = ?", leadID).
			Order("date DESC").
			Find(&briefings).Error
	})
	return briefings, err
}
