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

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func setupLeadService(t *testing.T, now time.Time) (*service.LeadService, *gorm.DB, *domain.User) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewLeadRepository(db, testutil.NewTestRetryer(t))
	svc := service.NewLeadService(repo, zap.NewNop()).WithClock(fixedClock(now))
	user := testutil.CreateTestUser(t, db, "Vendedor", domain.RoleSeller)
	return svc, db, user
}

func TestLeadService_Create(t *testing.T) {
	now := time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC)
	svc, db, user := setupLeadService(t, now)

	t.Run("accepts display labels for origin", func(t *testing.T) {
		dto, err := svc.Create(context.Background(), user.ID, &domain.CreateLeadRequest{
			Nome:     "Padaria Central",
			Origem:   "Indicação",
			Cadencia: domain.CadenceWeekly,
		})
		require.NoError(t, err)

		assert.Equal(t, "Padaria Central", dto.Nome)
		assert.Equal(t, "Indicação", dto.Origem)
		assert.Equal(t, domain.TemperatureCold, dto.Temperatura)
		assert.Equal(t, "Em Dia", dto.Status)
		assert.Nil(t, dto.ProximoContato)
		assert.Equal(t, 2, dto.Score)
	})

	t.Run("schedules from last contact", func(t *testing.T) {
		last := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
		dto, err := svc.Create(context.Background(), user.ID, &domain.CreateLeadRequest{
			Nome:          "Mercado Sul",
			Origem:        "Instagram",
			Cadencia:      domain.CadenceWeekly,
			UltimoContato: &last,
		})
		require.NoError(t, err)

		// 2024-05-01 + 7d = 2024-05-08, already past on 2024-05-10
		require.NotNil(t, dto.ProximoContato)
		assert.Equal(t, "Atrasado", dto.Status)
		assert.Equal(t, "Urgente", dto.Prioridade)
	})

	t.Run("rejects unknown cadence", func(t *testing.T) {
		_, err := svc.Create(context.Background(), user.ID, &domain.CreateLeadRequest{
			Nome:     "X",
			Origem:   "Instagram",
			Cadencia: "Diaria",
		})
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})

	t.Run("rejects unknown origin", func(t *testing.T) {
		_, err := svc.Create(context.Background(), user.ID, &domain.CreateLeadRequest{
			Nome:     "X",
			Origem:   "Carrier Pigeon",
			Cadencia: domain.CadenceWeekly,
		})
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})

	t.Run("stores estimated value in cents", func(t *testing.T) {
		v := 1234.56
		dto, err := svc.Create(context.Background(), user.ID, &domain.CreateLeadRequest{
			Nome:          "Loja Norte",
			Origem:        "Site",
			Cadencia:      domain.CadenceMonthly,
			ValorEstimado: &v,
		})
		require.NoError(t, err)
		require.NotNil(t, dto.ValorEstimado)
		assert.InDelta(t, 1234.56, *dto.ValorEstimado, 0.001)
	})

	t.Run("rounds cents instead of truncating", func(t *testing.T) {
		// 10.15 is not exactly representable; 10.15*100 truncates to 1014
		v := 10.15
		dto, err := svc.Create(context.Background(), user.ID, &domain.CreateLeadRequest{
			Nome:          "Loja Sul",
			Origem:        "Site",
			Cadencia:      domain.CadenceMonthly,
			ValorEstimado: &v,
		})
		require.NoError(t, err)

		var stored domain.Lead
		require.NoError(t, db.First(&stored, "id = ?", dto.ID).Error)
		require.NotNil(t, stored.EstimatedValueCents)
		assert.EqualValues(t, 1015, *stored.EstimatedValueCents)
	})
}

func TestLeadService_Get(t *testing.T) {
	now := time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC)
	svc, db, user := setupLeadService(t, now)
	lead := testutil.CreateTestLead(t, db, user.ID, "Cliente A")

	t.Run("owner can read", func(t *testing.T) {
		dto, err := svc.Get(context.Background(), user.ID, lead.ID)
		require.NoError(t, err)
		assert.Equal(t, "Cliente A", dto.Nome)
	})

	t.Run("other users cannot", func(t *testing.T) {
		other := testutil.CreateTestUser(t, db, "Outro", domain.RoleSeller)
		_, err := svc.Get(context.Background(), other.ID, lead.ID)
		assert.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.Get(context.Background(), user.ID, uuid.New())
		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestLeadService_Update(t *testing.T) {
	now := time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC)
	svc, db, user := setupLeadService(t, now)
	lead := testutil.CreateTestLead(t, db, user.ID, "Cliente B")

	t.Run("partial update keeps other fields", func(t *testing.T) {
		temp := domain.TemperatureHot
		dto, err := svc.Update(context.Background(), user.ID, lead.ID, &domain.UpdateLeadRequest{
			Temperatura: &temp,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.TemperatureHot, dto.Temperatura)
		assert.Equal(t, "Cliente B", dto.Nome)
		assert.Equal(t, 5, dto.Score) // hot +3, referral origin +2
	})

	t.Run("conversion is terminal", func(t *testing.T) {
		status := "Convertido"
		conv := now
		dto, err := svc.Update(context.Background(), user.ID, lead.ID, &domain.UpdateLeadRequest{
			Status:        &status,
			DataConversao: &conv,
		})
		require.NoError(t, err)
		assert.Equal(t, "Convertido", dto.Status)
		require.NotNil(t, dto.DataConversao)

		// Later recalculations must not reopen the lead
		nome := "Cliente B Ltda"
		dto, err = svc.Update(context.Background(), user.ID, lead.ID, &domain.UpdateLeadRequest{Nome: &nome})
		require.NoError(t, err)
		assert.Equal(t, "Convertido", dto.Status)
	})
}

func TestLeadService_Delete(t *testing.T) {
	now := time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC)
	svc, db, user := setupLeadService(t, now)
	lead := testutil.CreateTestLead(t, db, user.ID, "Cliente C")

	require.NoError(t, svc.Delete(context.Background(), user.ID, lead.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), user.ID, lead.ID), service.ErrNotFound)
}

func TestLeadService_RegisterContact(t *testing.T) {
	now := time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC)
	svc, db, user := setupLeadService(t, now)

	t.Run("appends history and reschedules", func(t *testing.T) {
		lead := testutil.CreateTestLead(t, db, user.ID, "Cliente D")

		dto, err := svc.RegisterContact(context.Background(), user.ID, lead.ID, nil)
		require.NoError(t, err)

		require.NotNil(t, dto.UltimoContato)
		require.NotNil(t, dto.ProximoContato)
		assert.Equal(t, "Em Dia", dto.Status)
		require.Len(t, dto.Historico, 1)
		assert.Equal(t, "Ligação", dto.Historico[0].Tipo)
		assert.Equal(t, "Contato registrado", dto.Historico[0].Resumo)
	})

	t.Run("snapshot keeps pre-contact state", func(t *testing.T) {
		last := now.AddDate(0, 0, -10)
		lead := testutil.CreateTestLead(t, db, user.ID, "Cliente E")
		require.NoError(t, db.Model(lead).Updates(map[string]interface{}{
			"last_contact": last,
			"status":       domain.StatusOverdue,
		}).Error)

		dto, err := svc.RegisterContact(context.Background(), user.ID, lead.ID, &domain.RegisterContactRequest{
			Briefing: &domain.ContactBriefingPayload{
				TipoContato: "Reunião",
				Conversa:    "Apresentação da proposta",
			},
		})
		require.NoError(t, err)

		// Entry keeps the overdue status, the lead itself is rescheduled
		require.Len(t, dto.Historico, 1)
		assert.Equal(t, "Atrasado", dto.Historico[0].Status)
		assert.Equal(t, "Reunião", dto.Historico[0].Tipo)
		assert.Equal(t, "Em Dia", dto.Status)
	})
}
