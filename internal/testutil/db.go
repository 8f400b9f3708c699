package testutil

import (
	"testing"
	"time"

	"github.com/cadencia/cadencia-api/internal/database"
	"github.com/cadencia/cadencia-api/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens an isolated in-memory SQLite database and migrates
// the full schema. Each call returns a fresh database.
func SetupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to open in-memory test database")

	require.NoError(t, database.AutoMigrate(db))

	return db
}

// NewTestRetryer returns a retryer suitable for tests: a single attempt
// with no delay, so failures surface immediately.
func NewTestRetryer(t *testing.T) *database.Retryer {
	t.Helper()
	return database.NewRetryer(1, time.Millisecond, zap.NewNop())
}

// CreateTestUser inserts a user with the given role and returns it
func CreateTestUser(t *testing.T, db *gorm.DB, name string, role domain.UserRole) *domain.User {
	t.Helper()
	user := &domain.User{
		Name:         name,
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Role:         role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateTestLead inserts a minimal lead owned by the given user
func CreateTestLead(t *testing.T, db *gorm.DB, userID uuid.UUID, name string) *domain.Lead {
	t.Helper()
	lead := &domain.Lead{
		UserID:      userID,
		Name:        name,
		Origin:      domain.OriginReferral,
		Cadence:     domain.CadenceWeekly,
		Status:      domain.StatusOnTrack,
		Temperature: domain.TemperatureCold,
		Priority:    domain.PriorityNormal,
		EntryDate:   time.Now().UTC(),
		Currency:    "BRL",
	}
	require.NoError(t, db.Create(lead).Error)
	return lead
}
