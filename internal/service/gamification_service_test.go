package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/cadencia/cadencia-api/internal/domain"
	"github.com/cadencia/cadencia-api/internal/repository"
	"github.com/cadencia/cadencia-api/internal/service"
	"github.com/cadencia/cadencia-api/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupGamificationService(t *testing.T, now time.Time) (*service.GamificationService, *gorm.DB, *domain.User) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewGamificationRepository(db, testutil.NewTestRetryer(t))
	svc := service.NewGamificationService(repo, zap.NewNop()).WithClock(fixedClock(now))
	user := testutil.CreateTestUser(t, db, "Vendedor", domain.RoleSeller)
	return svc, db, user
}

func TestGamificationService_Get(t *testing.T) {
	now := time.Date(2024, time.July, 1, 10, 0, 0, 0, time.UTC)

	t.Run("first access creates profile with mission batch", func(t *testing.T) {
		svc, _, user := setupGamificationService(t, now)

		dto, err := svc.Get(context.Background(), user.ID)
		require.NoError(t, err)

		assert.Equal(t, user.ID, dto.UserID)
		assert.Equal(t, domain.LevelBeginner, dto.Nivel)
		assert.NotNil(t, dto.Conquistas)
		assert.Len(t, dto.MissoesDiarias, 3)
	})

	t.Run("penalty settles lazily once per day", func(t *testing.T) {
		svc, db, user := setupGamificationService(t, now)

		// Seed a profile with points from a previous day
		yesterday := now.AddDate(0, 0, -1)
		profile := &domain.GamificationProfile{
			UserID:       user.ID,
			PointsWeek:   12,
			PointsMonth:  60,
			Level:        domain.LevelPersistent,
			LastActivity: &yesterday,
		}
		require.NoError(t, db.Create(profile).Error)

		dto, err := svc.Get(context.Background(), user.ID)
		require.NoError(t, err)
		assert.Equal(t, 7, dto.PontosSemana)
		assert.Equal(t, 55, dto.PontosMes)

		// Second read on the same day deducts nothing
		dto, err = svc.Get(context.Background(), user.ID)
		require.NoError(t, err)
		assert.Equal(t, 7, dto.PontosSemana)
		assert.Equal(t, 55, dto.PontosMes)
	})
}

func TestGamificationService_Update(t *testing.T) {
	now := time.Date(2024, time.July, 1, 10, 0, 0, 0, time.UTC)
	svc, _, user := setupGamificationService(t, now)

	pontos := 350
	dto, err := svc.Update(context.Background(), user.ID, &domain.UpdateGamificationRequest{
		PontosMes: &pontos,
	})
	require.NoError(t, err)

	assert.Equal(t, 350, dto.PontosMes)
	assert.Equal(t, domain.LevelCadenceMaster, dto.Nivel)
}

func TestGamificationService_AddPoints(t *testing.T) {
	now := time.Date(2024, time.July, 1, 10, 0, 0, 0, time.UTC)

	t.Run("rejects out of range awards", func(t *testing.T) {
		svc, _, user := setupGamificationService(t, now)

		_, err := svc.AddPoints(context.Background(), user.ID, 0)
		assert.ErrorIs(t, err, service.ErrInvalidPoints)
		_, err = svc.AddPoints(context.Background(), user.ID, 51)
		assert.ErrorIs(t, err, service.ErrInvalidPoints)
	})

	t.Run("creates profile on first award", func(t *testing.T) {
		svc, _, user := setupGamificationService(t, now)

		dto, err := svc.AddPoints(context.Background(), user.ID, 10)
		require.NoError(t, err)
		assert.Equal(t, 10, dto.PontosHoje)
		assert.Equal(t, 10, dto.PontosSemana)
		assert.Equal(t, 10, dto.PontosMes)
		require.NotNil(t, dto.UltimaAtividade)
	})

	t.Run("accumulates and re-derives the level", func(t *testing.T) {
		svc, _, user := setupGamificationService(t, now)

		for i := 0; i < 4; i++ {
			_, err := svc.AddPoints(context.Background(), user.ID, 50)
			require.NoError(t, err)
		}
		dto, err := svc.AddPoints(context.Background(), user.ID, 50)
		require.NoError(t, err)

		assert.Equal(t, 250, dto.PontosMes)
		assert.Equal(t, domain.LevelConsistent, dto.Nivel)
	})
}

func TestGamificationService_CompleteMission(t *testing.T) {
	now := time.Date(2024, time.July, 1, 10, 0, 0, 0, time.UTC)

	missionsOf := func(t *testing.T, svc *service.GamificationService, userID uuid.UUID) []domain.MissionDTO {
		dto, err := svc.Get(context.Background(), userID)
		require.NoError(t, err)
		return dto.MissoesDiarias
	}

	t.Run("credits mission points", func(t *testing.T) {
		svc, _, user := setupGamificationService(t, now)
		missions := missionsOf(t, svc, user.ID)

		dto, err := svc.CompleteMission(context.Background(), user.ID, missions[0].ID)
		require.NoError(t, err)

		assert.Equal(t, 5, dto.PontosHoje)
		assert.Equal(t, 5, dto.PontosMes)
		var seen bool
		for _, m := range dto.MissoesDiarias {
			if m.ID == missions[0].ID {
				seen = true
				assert.True(t, m.Concluida)
				assert.Equal(t, m.Meta, m.Progresso)
			}
		}
		assert.True(t, seen)
	})

	t.Run("last mission grants the batch bonus exactly once", func(t *testing.T) {
		svc, _, user := setupGamificationService(t, now)
		missions := missionsOf(t, svc, user.ID)

		var dto *domain.GamificationDTO
		var err error
		for _, m := range missions {
			dto, err = svc.CompleteMission(context.Background(), user.ID, m.ID)
			require.NoError(t, err)
		}

		// 5 + 5 + 10 mission points plus the 20 point bonus
		assert.Equal(t, 40, dto.PontosHoje)
		assert.Equal(t, 40, dto.PontosMes)
	})

	t.Run("re-completion is a no-op", func(t *testing.T) {
		svc, _, user := setupGamificationService(t, now)
		missions := missionsOf(t, svc, user.ID)

		_, err := svc.CompleteMission(context.Background(), user.ID, missions[2].ID)
		require.NoError(t, err)
		dto, err := svc.CompleteMission(context.Background(), user.ID, missions[2].ID)
		require.NoError(t, err)

		assert.Equal(t, 10, dto.PontosHoje)
	})

	t.Run("missions of other users are invisible", func(t *testing.T) {
		svc, db, user := setupGamificationService(t, now)
		other := testutil.CreateTestUser(t, db, "Outro", domain.RoleSeller)
		missions := missionsOf(t, svc, other.ID)

		_, err := svc.CompleteMission(context.Background(), user.ID, missions[0].ID)
		assert.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("unknown mission id", func(t *testing.T) {
		svc, _, user := setupGamificationService(t, now)
		_ = missionsOf(t, svc, user.ID)

		_, err := svc.CompleteMission(context.Background(), user.ID, uuid.New())
		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}
