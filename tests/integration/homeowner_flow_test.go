// File: tests/integration/homeowner_flow_test.go
package integration

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"iserviceseeker_backend/internal/common"
	"iserviceseeker_backend/internal/homeowner"
	"iserviceseeker_backend/internal/shared"
	"iserviceseeker_backend/internal/user"
)

func TestHomeownerProfileCompletion(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	createTestUser(t, db, "ho-1", "Dana", "Homeowner")
	svc := homeowner.NewService(homeowner.NewGORMRepository(db), zap.NewNop())

	address := "100 Main St"
	city := "Seattle"
	profile, err := svc.CompleteProfile(ctx, "ho-1", homeowner.CompleteProfileRequest{
		Address: &address,
		City:    &city,
	})
	require.NoError(t, err)
	assert.True(t, profile.ReceiveEmailNotifications)
	assert.False(t, profile.ReceiveSMSNotifications)

	// Completion flips the user's type and completion flag in the same
	// transaction.
	var u user.User
	require.NoError(t, db.First(&u, "id = ?", "ho-1").Error)
	assert.Equal(t, shared.UserTypeHomeowner, u.UserType)
	assert.True(t, u.IsProfileComplete)
}

func TestHomeownerProfileIsOnePerUser(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	createTestUser(t, db, "ho-1", "Dana", "Homeowner")
	svc := homeowner.NewService(homeowner.NewGORMRepository(db), zap.NewNop())

	_, err := svc.CompleteProfile(ctx, "ho-1", homeowner.CompleteProfileRequest{})
	require.NoError(t, err)

	_, err = svc.CompleteProfile(ctx, "ho-1", homeowner.CompleteProfileRequest{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrConflict))
}

func TestHomeownerProfileRequiresExistingUser(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	svc := homeowner.NewService(homeowner.NewGORMRepository(db), zap.NewNop())

	_, err := svc.CompleteProfile(ctx, "ghost", homeowner.CompleteProfileRequest{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrNotFound))

	// The failed completion left no orphaned profile row behind.
	var count int64
	require.NoError(t, db.Model(&homeowner.HomeownerProfile{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestHomeownerProfileUpdateLeavesAbsentFieldsAlone(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	createTestUser(t, db, "ho-1", "Dana", "Homeowner")
	svc := homeowner.NewService(homeowner.NewGORMRepository(db), zap.NewNop())

	address := "100 Main St"
	_, err := svc.CompleteProfile(ctx, "ho-1", homeowner.CompleteProfileRequest{Address: &address})
	require.NoError(t, err)

	sms := true
	updated, err := svc.UpdateProfile(ctx, "ho-1", homeowner.UpdateProfileRequest{
		ReceiveSMSNotifications: &sms,
	})
	require.NoError(t, err)
	assert.True(t, updated.ReceiveSMSNotifications)
	require.NotNil(t, updated.Address)
	assert.Equal(t, "100 Main St", *updated.Address)
}
