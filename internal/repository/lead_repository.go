package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cadencia/cadencia-api/internal/database"
	"github.com/cadencia/cadencia-api/internal/domain"
)

type LeadRepository struct {
	db    *gorm.DB
	retry *database.Retryer
}

func NewLeadRepository(db *gorm.DB, retry *database.Retryer) *LeadRepository {
	return &LeadRepository{db: db, retry: retry}
}

func preloadLeadRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("date DESC")
		}).
		Preload("Briefings", func(db *gorm.DB) *gorm.DB {
			return db.Order("date DESC")
		})
}

// ListByUser returns all leads owned by a user, newest first
func (r *LeadRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Lead, error) {
	var leads []domain.Lead
	err := r.retry.Do(ctx, func() error {
		return preloadLeadRelations(r.db.WithContext(ctx)).
			Where("user_id = ?", userID).
			Order("created_at DESC").
			Find(&leads).Error
	})
	return leads, err
}

// GetByID returns a lead only when it belongs to the given user
func (r *LeadRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Lead, error) {
	var lead domain.Lead
	err := r.retry.Do(ctx, func() error {
		return preloadLeadRelations(r.db.WithContext(ctx)).
			Where("id = ? AND user_id = ?", id, userID).
			First(&lead).Error
	})
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *LeadRepository) Create(ctx context.Context, lead *domain.Lead) error {
	return r.retry.Do(ctx, func() error {
		return r.db.WithContext(ctx).Create(lead).Error
	})
}

func (r *LeadRepository) Update(ctx context.Context, lead *domain.Lead) error {
	return r.retry.Do(ctx, func() error {
		return r.db.WithContext(ctx).
			Omit("History", "Briefings").
			Save(lead).Error
	})
}

func (r *LeadRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	return r.retry.Do(ctx, func() error {
		result := r.db.WithContext(ctx).
			Where("id = ? AND user_id = ?", id, userID).
			Delete(&domain.Lead{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// SellerLeadStats is one aggregated row of the team summary query
type SellerLeadStats struct {
	UserID              uuid.UUID
	LeadsCount          int
	ConvertedCount      int
	StatedValueCents    int64
	EstimatedValueCents int64
}

// StatsBySellers aggregates lead counts and values per seller, optionally
// restricted to an entry date window
func (r *LeadRepository) StatsBySellers(ctx context.Context, sellerIDs []uuid.UUID, start, end *time.Time) ([]SellerLeadStats, error) {
	var rows []SellerLeadStats
	err := r.retry.Do(ctx, func() error {
		query := r.db.WithContext(ctx).
			Model(&domain.Lead{}).
			Select(`user_id,
				COUNT(*) AS leads_count,
				SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS converted_count,
				COALESCE(SUM(stated_value_cents), 0) AS stated_value_cents,
				COALESCE(SUM(estimated_value_cents), 0) AS estimated_value_cents`,
				domain.StatusConverted).
			Where("user_id IN ?", sellerIDs).
			Group("user_id")
		if start != nil {
			query = query.Where("entry_date >= ?", *start)
		}
		if end != nil {
			query = query.Where("entry_date <= ?", *end)
		}
		return query.Scan(&rows).Error
	})
	return rows, err
}

// RegisterContact appends a history entry and persists the rescheduled
// lead in a single transaction
func (r *LeadRepository) RegisterContact(ctx context.Context, lead *domain.Lead, entry *domain.ContactHistory) error {
	return r.retry.Do(ctx, func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(entry).Error; err != nil {
				return err
			}
			return tx.Omit("History", "Briefings").Save(lead).Error
		})
	})
}
