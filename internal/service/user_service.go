package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cadencia/cadencia-api/internal/auth"
	"github.com/cadencia/cadencia-api/internal/domain"
	"github.com/cadencia/cadencia-api/internal/mapper"
	"github.com/cadencia/cadencia-api/internal/repository"
)

type UserService struct {
	userRepo *repository.UserRepository
	sessions *auth.Manager
	logger   *zap.Logger
}

func NewUserService(userRepo *repository.UserRepository, sessions *auth.Manager, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		sessions: sessions,
		logger:   logger,
	}
}

// Register creates a seller account and opens a session for it
func (s *UserService) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.UserDTO, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, "", ErrConflict
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Name:         req.Nome,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleSeller,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.sessions.NewSessionToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue session: %w", err)
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID.String()))

	dto := mapper.ToUserDTO(user)
	return &dto, token, nil
}

// Login verifies credentials and opens a session
func (s *UserService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.UserDTO, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrUnauthorized
		}
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}

	if err := auth.ComparePassword(user.PasswordHash, req.Password); err != nil {
		return nil, "", ErrUnauthorized
	}

	token, err := s.sessions.NewSessionToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue session: %w", err)
	}

	dto := mapper.ToUserDTO(user)
	return &dto, token, nil
}

// Me returns the authenticated user's account
func (s *UserService) Me(ctx context.Context, userID uuid.UUID) (*domain.UserDTO, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	dto := mapper.ToUserDTO(user)
	return &dto, nil
}

// ListUsers returns every account, oldest first
func (s *UserService) ListUsers(ctx context.Context) ([]domain.UserDTO, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	dtos := make([]domain.UserDTO, 0, len(users))
	for i := range users {
		dtos = append(dtos, mapper.ToUserDTO(&users[i]))
	}
	return dtos, nil
}

// UpdateRole changes a user's role. A manager can only be assigned when
// demoting to seller, and must hold the leader or admin role.
func (s *UserService) UpdateRole(ctx context.Context, id uuid.UUID, req *domain.UpdateRoleRequest) (*domain.UserDTO, error) {
	role := domain.UserRole(strings.ToUpper(string(req.Role)))
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	var managerID *uuid.UUID
	if role == domain.RoleSeller && req.ManagerID != nil {
		manager, err := s.userRepo.GetByID(ctx, *req.ManagerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInvalidManager
			}
			return nil, fmt.Errorf("failed to get manager: %w", err)
		}
		if !manager.Role.CanViewTeam() {
			return nil, ErrInvalidManager
		}
		managerID = &manager.ID
	}

	if err := s.userRepo.UpdateRole(ctx, id, role, managerID); err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}

	updated, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload user: %w", err)
	}

	s.logger.Info("user role updated",
		zap.String("user_id", id.String()),
		zap.String("role", string(role)),
	)

	dto := mapper.ToUserDTO(updated)
	return &dto, nil
}
