package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/cadencia/cadencia-api/internal/domain"
	"github.com/cadencia/cadencia-api/internal/repository"
	"github.com/cadencia/cadencia-api/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupLeadRepo(t *testing.T) (*repository.LeadRepository, *gorm.DB, *domain.User) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewLeadRepository(db, testutil.NewTestRetryer(t))
	user := testutil.CreateTestUser(t, db, "Vendedor", domain.RoleSeller)
	return repo, db, user
}

func TestLeadRepository_GetByID(t *testing.T) {
	repo, db, user := setupLeadRepo(t)
	lead := testutil.CreateTestLead(t, db, user.ID, "Cliente A")

	t.Run("scoped to owner", func(t *testing.T) {
		found, err := repo.GetByID(context.Background(), lead.ID, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "Cliente A", found.Name)
	})

	t.Run("other user misses", func(t *testing.T) {
		_, err := repo.GetByID(context.Background(), lead.ID, uuid.New())
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("preloads history ordered by date desc", func(t *testing.T) {
		older := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)
		newer := time.Date(2024, time.April, 5, 0, 0, 0, 0, time.UTC)
		for _, d := range []time.Time{older, newer} {
			require.NoError(t, db.Create(&domain.ContactHistory{
				LeadID:      lead.ID,
				Date:        d,
				Type:        domain.ContactCall,
				Temperature: domain.TemperatureCold,
				Status:      domain.StatusOnTrack,
			}).Error)
		}

		found, err := repo.GetByID(context.Background(), lead.ID, user.ID)
		require.NoError(t, err)
		require.Len(t, found.History, 2)
		assert.True(t, found.History[0].Date.After(found.History[1].Date))
	})
}

func TestLeadRepository_Delete(t *testing.T) {
	repo, db, user := setupLeadRepo(t)
	lead := testutil.CreateTestLead(t, db, user.ID, "Cliente B")

	t.Run("other user cannot delete", func(t *testing.T) {
		err := repo.Delete(context.Background(), lead.ID, uuid.New())
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("owner deletes once", func(t *testing.T) {
		require.NoError(t, repo.Delete(context.Background(), lead.ID, user.ID))
		err := repo.Delete(context.Background(), lead.ID, user.ID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestLeadRepository_RegisterContact(t *testing.T) {
	repo, db, user := setupLeadRepo(t)
	lead := testutil.CreateTestLead(t, db, user.ID, "Cliente C")

	now := time.Date(2024, time.April, 10, 10, 0, 0, 0, time.UTC)
	entry := &domain.ContactHistory{
		LeadID:      lead.ID,
		Date:        now,
		Type:        domain.ContactWhatsApp,
		Temperature: domain.TemperatureCold,
		Status:      domain.StatusOnTrack,
		Summary:     "Mensagem enviada",
	}
	lead.LastContact = &now

	require.NoError(t, repo.RegisterContact(context.Background(), lead, entry))

	found, err := repo.GetByID(context.Background(), lead.ID, user.ID)
	require.NoError(t, err)
	require.NotNil(t, found.LastContact)
	require.Len(t, found.History, 1)
	assert.Equal(t, domain.ContactWhatsApp, found.History[0].Type)
}

func TestLeadRepository_StatsBySellers(t *testing.T) {
	repo, db, sellerA := setupLeadRepo(t)
	sellerB := testutil.CreateTestUser(t, db, "Bruno", domain.RoleSeller)

	entry := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)
	mkLead := func(userID uuid.UUID, status domain.LeadStatus, stated *int64) {
		lead := &domain.Lead{
			UserID:      userID,
			Name:        "L",
			Origin:      domain.OriginInstagram,
			Cadence:     domain.CadenceWeekly,
			Status:      status,
			Temperature: domain.TemperatureCold,
			Priority:    domain.PriorityNormal,
			EntryDate:   entry,
			Currency:    "BRL",
		}
		lead.StatedValueCents = stated
		require.NoError(t, db.Create(lead).Error)
	}

	stated := int64(100000)
	mkLead(sellerA.ID, domain.StatusOnTrack, nil)
	mkLead(sellerA.ID, domain.StatusConverted, &stated)
	mkLead(sellerB.ID, domain.StatusOverdue, nil)

	t.Run("aggregates per seller", func(t *testing.T) {
		rows, err := repo.StatsBySellers(context.Background(), []uuid.UUID{sellerA.ID, sellerB.ID}, nil, nil)
		require.NoError(t, err)
		require.Len(t, rows, 2)

		byUser := map[uuid.UUID]repository.SellerLeadStats{}
		for _, row := range rows {
			byUser[row.UserID] = row
		}
		assert.Equal(t, 2, byUser[sellerA.ID].LeadsCount)
		assert.Equal(t, 1, byUser[sellerA.ID].ConvertedCount)
		assert.EqualValues(t, 100000, byUser[sellerA.ID].StatedValueCents)
		assert.Equal(t, 1, byUser[sellerB.ID].LeadsCount)
		assert.Zero(t, byUser[sellerB.ID].ConvertedCount)
	})

	t.Run("window excludes leads outside range", func(t *testing.T) {
		start := entry.AddDate(0, 0, 1)
		rows, err := repo.StatsBySellers(context.Background(), []uuid.UUID{sellerA.ID}, &start, nil)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}
