package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/cadencia/cadencia-api/internal/auth"
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

type teamFixture struct {
	svc     *service.TeamService
	db      *gorm.DB
	leader  *domain.User
	admin   *domain.User
	sellerA *domain.User
	sellerB *domain.User
}

func setupTeam(t *testing.T, now time.Time) *teamFixture {
	db := testutil.SetupTestDB(t)
	retry := testutil.NewTestRetryer(t)
	svc := service.NewTeamService(
		repository.NewUserRepository(db, retry),
		repository.NewLeadRepository(db, retry),
		zap.NewNop(),
	).WithClock(fixedClock(now))

	leader := testutil.CreateTestUser(t, db, "Líder", domain.RoleLeader)
	admin := testutil.CreateTestUser(t, db, "Admin", domain.RoleAdmin)
	sellerA := testutil.CreateTestUser(t, db, "Ana", domain.RoleSeller)
	sellerB := testutil.CreateTestUser(t, db, "Bruno", domain.RoleSeller)
	require.NoError(t, db.Model(sellerA).Update("manager_id", leader.ID).Error)
	sellerA.ManagerID = &leader.ID

	return &teamFixture{svc: svc, db: db, leader: leader, admin: admin, sellerA: sellerA, sellerB: sellerB}
}

func viewerFor(u *domain.User) *auth.UserContext {
	return &auth.UserContext{UserID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

func TestTeamService_Team(t *testing.T) {
	now := time.Date(2024, time.September, 2, 8, 0, 0, 0, time.UTC)
	fx := setupTeam(t, now)

	t.Run("leader sees only direct reports", func(t *testing.T) {
		members, err := fx.svc.Team(context.Background(), viewerFor(fx.leader))
		require.NoError(t, err)
		require.Len(t, members, 1)
		assert.Equal(t, fx.sellerA.ID, members[0].ID)
		assert.Equal(t, domain.RoleSeller, members[0].Role)
	})

	t.Run("admin sees every seller", func(t *testing.T) {
		members, err := fx.svc.Team(context.Background(), viewerFor(fx.admin))
		require.NoError(t, err)
		assert.Len(t, members, 2)
	})
}

func TestTeamService_Summary(t *testing.T) {
	now := time.Date(2024, time.September, 2, 8, 0, 0, 0, time.UTC)
	fx := setupTeam(t, now)

	// Two leads for Ana, one converted with a stated value
	testutil.CreateTestLead(t, fx.db, fx.sellerA.ID, "Lead 1")
	converted := testutil.CreateTestLead(t, fx.db, fx.sellerA.ID, "Lead 2")
	conv := now.AddDate(0, 0, -1)
	require.NoError(t, fx.db.Model(converted).Updates(map[string]interface{}{
		"status":             domain.StatusConverted,
		"conversion_date":    conv,
		"stated_value_cents": int64(500000),
	}).Error)
	// Align entry dates with the fixture clock so window filters see them
	require.NoError(t, fx.db.Model(&domain.Lead{}).
		Where("user_id = ?", fx.sellerA.ID).
		Update("entry_date", now).Error)

	t.Run("leader summary", func(t *testing.T) {
		summary, err := fx.svc.Summary(context.Background(), viewerFor(fx.leader), nil, nil)
		require.NoError(t, err)

		assert.Equal(t, 2, summary.Totals.LeadsCount)
		assert.Equal(t, 1, summary.Totals.ConvertedCount)
		assert.EqualValues(t, 500000, summary.Totals.TotalStatedValueCents)
		require.Len(t, summary.Breakdown, 1)
		assert.Equal(t, "Ana", summary.Breakdown[0].SellerName)
		assert.Equal(t, 2, summary.Breakdown[0].LeadsCount)
	})

	t.Run("entry date window filters leads", func(t *testing.T) {
		start := now.AddDate(0, 0, 1)
		summary, err := fx.svc.Summary(context.Background(), viewerFor(fx.leader), &start, nil)
		require.NoError(t, err)
		assert.Zero(t, summary.Totals.LeadsCount)

		start = now.AddDate(0, 0, -1)
		summary, err = fx.svc.Summary(context.Background(), viewerFor(fx.leader), &start, nil)
		require.NoError(t, err)
		assert.Equal(t, 2, summary.Totals.LeadsCount)
	})

	t.Run("empty team yields zero summary", func(t *testing.T) {
		other := testutil.CreateTestUser(t, fx.db, "Outro Líder", domain.RoleLeader)
		summary, err := fx.svc.Summary(context.Background(), viewerFor(other), nil, nil)
		require.NoError(t, err)
		assert.Zero(t, summary.Totals.LeadsCount)
		assert.Empty(t, summary.Breakdown)
	})
}

func TestTeamService_SellerDetail(t *testing.T) {
	now := time.Date(2024, time.September, 2, 8, 0, 0, 0, time.UTC)
	fx := setupTeam(t, now)

	lead := testutil.CreateTestLead(t, fx.db, fx.sellerA.ID, "Lead Detalhe")
	converted := testutil.CreateTestLead(t, fx.db, fx.sellerA.ID, "Lead Fechado")
	conv := now.AddDate(0, 0, -2)
	require.NoError(t, fx.db.Model(converted).Updates(map[string]interface{}{
		"status":             domain.StatusConverted,
		"conversion_date":    conv,
		"stated_value_cents": int64(150000),
	}).Error)
	require.NoError(t, fx.db.Create(&domain.ContactHistory{
		LeadID:      lead.ID,
		Date:        now.AddDate(0, 0, -1),
		Type:        domain.ContactCall,
		Temperature: domain.TemperatureCold,
		Status:      domain.StatusOnTrack,
		Summary:     "Primeira conversa",
	}).Error)

	t.Run("full drill-down for the manager", func(t *testing.T) {
		detail, err := fx.svc.SellerDetail(context.Background(), viewerFor(fx.leader), fx.sellerA.ID)
		require.NoError(t, err)

		assert.Equal(t, "Ana", detail.Seller.Name)
		assert.Equal(t, 2, detail.Metrics.TotalLeads)
		assert.Equal(t, 1, detail.Metrics.ConvertedLeads)
		assert.InDelta(t, 50.0, detail.Metrics.ConversionRate, 0.001)
		assert.EqualValues(t, 150000, detail.Metrics.TotalStatedValueCents)
		assert.Equal(t, 1, detail.Metrics.LeadsByStatus["Convertido"])
		assert.Len(t, detail.Leads, 2)
		assert.Len(t, detail.TimelineData, 30)

		require.NotEmpty(t, detail.RecentActivity)
		types := map[string]bool{}
		for _, a := range detail.RecentActivity {
			types[a.Type] = true
		}
		assert.True(t, types["contact"])
		assert.True(t, types["conversion"])
	})

	t.Run("admin can see any seller", func(t *testing.T) {
		_, err := fx.svc.SellerDetail(context.Background(), viewerFor(fx.admin), fx.sellerB.ID)
		require.NoError(t, err)
	})

	t.Run("leader cannot see sellers outside the team", func(t *testing.T) {
		_, err := fx.svc.SellerDetail(context.Background(), viewerFor(fx.leader), fx.sellerB.ID)
		assert.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("non-seller targets are not found", func(t *testing.T) {
		_, err := fx.svc.SellerDetail(context.Background(), viewerFor(fx.admin), fx.leader.ID)
		assert.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("unknown seller id", func(t *testing.T) {
		_, err := fx.svc.SellerDetail(context.Background(), viewerFor(fx.admin), uuid.New())
		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}
