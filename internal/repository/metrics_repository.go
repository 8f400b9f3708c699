package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cadencia/cadencia-api/internal/database"
	"github.com/cadencia/cadencia-api/internal/domain"
)

type MetricsRepository struct {
	db    *gorm.DB
	retry *database.Retryer
}

func NewMetricsRepository(db *gorm.DB, retry *database.Retryer) *MetricsRepository {
	return &MetricsRepository{db: db, retry: retry}
}

// GetOrCreate returns the metrics row for a user and day, creating a
// zeroed one when absent
func (r *MetricsRepository) GetOrCreate(ctx context.Context, userID uuid.UUID, day time.Time) (*domain.DailyMetrics, error) {
	var metrics domain.DailyMetrics
	err := r.retry.Do(ctx, func() error {
		return r.db.WithContext(ctx).
			Where("user_id = ? AND date = ?", userID, day).
			First(&metrics).Error
	})
	if err == nil {
		return &metrics, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	metrics = domain.DailyMetrics{UserID: userID, Date: day}
	err = r.retry.Do(ctx, func() error {
		return r.db.WithContext(ctx).Create(&metrics).Error
	})
	if err != nil {
		return nil, err
	}
	return &metrics, nil
}

// ApplyUpdates overwrites whitelisted counters on the row
func (r *MetricsRepository) ApplyUpdates(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*domain.DailyMetrics, error) {
	var metrics domain.DailyMetrics
	err := r.retry.Do(ctx, func() error {
		if err := r.db.WithContext(ctx).
			Model(&domain.DailyMetrics{}).
			Where("id = ?", id).
			Updates(updates).Error; err != nil {
			return err
		}
		return r.db.WithContext(ctx).First(&metrics, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &metrics, nil
}

// Increment adds to the given counters for a user and day, creating the
// row when absent
func (r *MetricsRepository) Increment(ctx context.Context, userID uuid.UUID, day time.Time, increments map[string]int) (*domain.DailyMetrics, error) {
	var metrics domain.DailyMetrics
	err := r.retry.Do(ctx, func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			err := tx.Where("user_id = ? AND date = ?", userID, day).First(&metrics).Error
			if err == gorm.ErrRecordNotFound {
				metrics = domain.DailyMetrics{UserID: userID, Date: day}
				if err := tx.Create(&metrics).Error; err != nil {
					return err
				}
			} else if err != nil {
				return err
			}

			if len(increments) == 0 {
				return nil
			}
			exprs := make(map[string]interface{}, len(increments))
			for column, delta := range increments {
				exprs[column] = gorm.Expr(column+" + ?", delta)
			}
			if err := tx.Model(&domain.DailyMetrics{}).
				Where("id = ?", metrics.ID).
				Updates(exprs).Error; err != nil {
				return err
			}
			return tx.First(&metrics, "id = ?", metrics.ID).Error
		})
	})
	if err != nil {
		return nil, err
	}
	return &metrics, nil
}
