// File: tests/integration/helpers_test.go
package integration

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"iserviceseeker_backend/internal/config"
	"iserviceseeker_backend/internal/platform/database"
	"iserviceseeker_backend/internal/shared"
	"iserviceseeker_backend/internal/user"
)

var dbCounter int

// setupTestDB opens a fresh in-memory sqlite database with foreign key
// enforcement on, runs the migrations and seeds the bootstrap data,
// mirroring application startup.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbCounter++
	dsn := fmt.Sprintf("file:integration_%d?mode=memory&cache=shared&_foreign_keys=1", dbCounter)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "failed to open test database")

	logger := zap.NewNop()
	require.NoError(t, database.Migrate(db, logger))
	require.NoError(t, database.Seed(context.Background(), db, &config.Config{}, logger))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// createTestUser inserts a user row the way the auth middleware would on a
// first verified request.
func createTestUser(t *testing.T, db *gorm.DB, uid, firstName, lastName string) *user.User {
	t.Helper()

	email := fmt.Sprintf("%s@example.com", uid)
	u := &user.User{
		ID:        uid,
		Email:     &email,
		FirstName: firstName,
		LastName:  lastName,
		UserType:  shared.UserTypeHomeowner,
		Role:      shared.RoleUser,
	}
	require.NoError(t, user.NewGORMRepository(db).Create(context.Background(), u))
	return u
}

func testConfig() *config.Config {
	return &config.Config{DefaultServiceRadiusMiles: 50.0}
}
