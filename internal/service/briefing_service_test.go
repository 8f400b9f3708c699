package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/cadencia/cadencia-api/internal/domain"
	"github.com/cadencia/cadencia-api/internal/repository"
	"github.com/cadencia/cadencia-api/internal/service"
	"github.com/cadencia/cadencia-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupBriefingService(t *testing.T, now time.Time) (*service.BriefingService, *gorm.DB, *domain.User) {
	db := testutil.SetupTestDB(t)
	retry := testutil.NewTestRetryer(t)
	briefingRepo := repository.NewBriefingRepository(db, retry)
	leadRepo := repository.NewLeadRepository(db, retry)
	svc := service.NewBriefingService(briefingRepo, leadRepo, zap.NewNop()).WithClock(fixedClock(now))
	user := testutil.CreateTestUser(t, db, "Vendedor", domain.RoleSeller)
	return svc, db, user
}

func TestBriefingService_Create(t *testing.T) {
	now := time.Date(2024, time.June, 3, 9, 0, 0, 0, time.UTC)

	t.Run("writes briefing, history entry, and lead update together", func(t *testing.T) {
		svc, db, user := setupBriefingService(t, now)
		lead := testutil.CreateTestLead(t, db, user.ID, "Cliente A")

		dto, err := svc.Create(context.Background(), user.ID, &domain.CreateBriefingRequest{
			LeadID:                lead.ID,
			TipoContato:           "Ligação",
			Objetivo:              "Qualificar o lead",
			Conversa:              "Conversa longa sobre o produto",
			TemperaturaAtualizada: domain.TemperatureHot,
		})
		require.NoError(t, err)
		assert.Equal(t, "Ligação", dto.TipoContato)
		assert.Equal(t, domain.TemperatureHot, dto.TemperaturaAtualizada)

		var reloaded domain.Lead
		require.NoError(t, db.First(&reloaded, "id = ?", lead.ID).Error)
		assert.Equal(t, domain.TemperatureHot, reloaded.Temperature)
		require.NotNil(t, reloaded.LastContact)

		var entries int64
		require.NoError(t, db.Model(&domain.ContactHistory{}).Where("lead_id = ?", lead.ID).Count(&entries).Error)
		assert.EqualValues(t, 1, entries)
	})

	t.Run("nothing is written for leads of other users", func(t *testing.T) {
		svc, db, user := setupBriefingService(t, now)
		other := testutil.CreateTestUser(t, db, "Outro", domain.RoleSeller)
		lead := testutil.CreateTestLead(t, db, other.ID, "Lead Alheio")

		_, err := svc.Create(context.Background(), user.ID, &domain.CreateBriefingRequest{
			LeadID:                lead.ID,
			TipoContato:           "Ligação",
			TemperaturaAtualizada: domain.TemperatureWarm,
		})
		assert.ErrorIs(t, err, service.ErrNotFound)

		var briefings, entries int64
		require.NoError(t, db.Model(&domain.Briefing{}).Count(&briefings).Error)
		require.NoError(t, db.Model(&domain.ContactHistory{}).Count(&entries).Error)
		assert.Zero(t, briefings)
		assert.Zero(t, entries)

		var reloaded domain.Lead
		require.NoError(t, db.First(&reloaded, "id = ?", lead.ID).Error)
		assert.Equal(t, domain.TemperatureCold, reloaded.Temperature)
	})

	t.Run("rejects invalid contact type", func(t *testing.T) {
		svc, db, user := setupBriefingService(t, now)
		lead := testutil.CreateTestLead(t, db, user.ID, "Cliente B")

		_, err := svc.Create(context.Background(), user.ID, &domain.CreateBriefingRequest{
			LeadID:                lead.ID,
			TipoContato:           "Telepatia",
			TemperaturaAtualizada: domain.TemperatureWarm,
		})
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})
}

func TestBriefingService_ListByLead(t *testing.T) {
	now := time.Date(2024, time.June, 3, 9, 0, 0, 0, time.UTC)
	svc, db, user := setupBriefingService(t, now)
	lead := testutil.CreateTestLead(t, db, user.ID, "Cliente C")

	for i := 0; i < 2; i++ {
		_, err := svc.Create(context.Background(), user.ID, &domain.CreateBriefingRequest{
			LeadID:                lead.ID,
			TipoContato:           "WhatsApp",
			TemperaturaAtualizada: domain.TemperatureWarm,
		})
		require.NoError(t, err)
	}

	dtos, err := svc.ListByLead(context.Background(), user.ID, lead.ID)
	require.NoError(t, err)
	assert.Len(t, dtos, 2)

	other := testutil.CreateTestUser(t, db, "Outro", domain.RoleSeller)
	_, err = svc.ListByLead(context.Background(), other.ID, lead.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}
