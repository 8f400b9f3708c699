package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cadencia/cadencia-api/internal/database"
	"github.com/cadencia/cadencia-api/internal/domain"
)

type UserRepository struct {
	db    *gorm.DB
	retry *database.Retryer
}

func NewUserRepository(db *gorm.DB, retry *database.Retryer) *UserRepository {
	return &UserRepository{db: db, retry: retry}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	return r.retry.Do(ctx, func() error {
		return r.db.WithContext(ctx).Create(user).Error
	})
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	err := r.retry.Do(ctx, func() error {
		return r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.retry.Do(ctx, func() error {
		return r.db.WithContext(ctx).
			Where("LOWER(email) = LOWER(?)", email).
			First(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := r.retry.Do(ctx, func() error {
		return r.db.WithContext(ctx).Order("created_at").Find(&users).Error
	})
	return users, err
}

// ListSellers returns every account with the seller role
func (r *UserRepository) ListSellers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := r.retry.Do(ctx, func() error {
		return r.db.WithContext(ctx).
			Where("role = ?", domain.RoleSeller).
			Order("name").
			Find(&users).Error
	})
	return users, err
}

// ListByManager returns the direct reports of a leader
func (r *UserRepository) ListByManager(ctx context.Context, managerID uuid.UUID) ([]domain.User, error) {
	var users []domain.User
	err := r.retry.Do(ctx, func() error {
		return r.db.WithContext(ctx).
			Where("manager_id = ?", managerID).
			Order("name").
			Find(&users).Error
	})
	return users, err
}

// UpdateRole sets the role and manager assignment of a user
func (r *UserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role domain.UserRole, managerID *uuid.UUID) error {
	return r.retry.Do(ctx, func() error {
		return r.db.WithContext(ctx).
			Model(&domain.User{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"role":       role,
				"manager_id": managerID,
			}).Error
	})
}
