// File: tests/integration/provider_flow_test.go
package integration

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"iserviceseeker_backend/internal/common"
	"iserviceseeker_backend/internal/provider"
	"iserviceseeker_backend/internal/shared"
	"iserviceseeker_backend/internal/user"
)

func TestProviderProfileCompletion(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	createTestUser(t, db, "pro-1", "Pat", "Plumber")
	svc := provider.NewService(provider.NewGORMRepository(db), nil, testConfig(), zap.NewNop())

	license := "WA-12345"
	profile, err := svc.CompleteProfile(ctx, "pro-1", provider.CompleteProfileRequest{
		CompanyName:   "Acme Plumbing",
		LicenseNumber: &license,
		CategoryIDs:   []uint{2, 4},
	})
	require.NoError(t, err)

	// Radius defaults from configuration, the founding membership is an
	// owner, and one service area exists per category.
	assert.Equal(t, 50.0, profile.ServiceRadius)
	assert.True(t, profile.IsActive)
	assert.False(t, profile.IsVerified)
	require.Len(t, profile.ServiceAreas, 2)
	assert.Equal(t, "Plumbing", profile.ServiceAreas[0].ServiceCategory.Name)

	role, err := svc.GetUserRole(ctx, "pro-1", profile.ID)
	require.NoError(t, err)
	assert.Equal(t, provider.RoleOwner, role)

	var u user.User
	require.NoError(t, db.First(&u, "id = ?", "pro-1").Error)
	assert.Equal(t, shared.UserTypeServiceProvider, u.UserType)
	assert.True(t, u.IsProfileComplete)
}

func TestProviderCompletionRollsBackOnUnknownCategory(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	createTestUser(t, db, "pro-1", "Pat", "Plumber")
	svc := provider.NewService(provider.NewGORMRepository(db), nil, testConfig(), zap.NewNop())

	_, err := svc.CompleteProfile(ctx, "pro-1", provider.CompleteProfileRequest{
		CompanyName: "Acme Plumbing",
		CategoryIDs: []uint{2, 999},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrNotFound))

	// Nothing from the failed transaction persists.
	var profileCount, areaCount int64
	require.NoError(t, db.Model(&provider.ServiceProviderProfile{}).Count(&profileCount).Error)
	require.NoError(t, db.Model(&provider.ServiceArea{}).Count(&areaCount).Error)
	assert.Zero(t, profileCount)
	assert.Zero(t, areaCount)

	var u user.User
	require.NoError(t, db.First(&u, "id = ?", "pro-1").Error)
	assert.Equal(t, shared.UserTypeHomeowner, u.UserType)
	assert.False(t, u.IsProfileComplete)
}

func TestProviderLicenseNumberIsUnique(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	createTestUser(t, db, "pro-1", "Pat", "Plumber")
	createTestUser(t, db, "pro-2", "Sam", "Sparks")
	svc := provider.NewService(provider.NewGORMRepository(db), nil, testConfig(), zap.NewNop())

	license := "WA-12345"
	_, err := svc.CompleteProfile(ctx, "pro-1", provider.CompleteProfileRequest{
		CompanyName:   "Acme Plumbing",
		LicenseNumber: &license,
		CategoryIDs:   []uint{2},
	})
	require.NoError(t, err)

	duplicate := "WA-12345"
	_, err = svc.CompleteProfile(ctx, "pro-2", provider.CompleteProfileRequest{
		CompanyName:   "Copycat Plumbing",
		LicenseNumber: &duplicate,
		CategoryIDs:   []uint{2},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrConflict))

	// Profiles without a license number are exempt from the constraint.
	_, err = svc.CompleteProfile(ctx, "pro-2", provider.CompleteProfileRequest{
		CompanyName: "Unlicensed Handyman",
		CategoryIDs: []uint{1},
	})
	require.NoError(t, err)
}

func TestMembershipLifecycle(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	createTestUser(t, db, "owner-1", "Pat", "Owner")
	createTestUser(t, db, "emp-1", "Sam", "Employee")
	svc := provider.NewService(provider.NewGORMRepository(db), nil, testConfig(), zap.NewNop())

	profile, err := svc.CompleteProfile(ctx, "owner-1", provider.CompleteProfileRequest{
		CompanyName: "Acme Plumbing",
		CategoryIDs: []uint{2},
	})
	require.NoError(t, err)

	// Add a member.
	canManageProfile, canManageBookings, canViewReports := provider.DerivePermissions(provider.RoleEmployee)
	membership, err := svc.AddUserToProvider(ctx, "emp-1", profile.ID, provider.RoleEmployee, canManageProfile, canManageBookings, canViewReports)
	require.NoError(t, err)
	assert.True(t, membership.IsActive)
	assert.False(t, membership.CanManageProfile)

	// A second add while active conflicts.
	_, err = svc.AddUserToProvider(ctx, "emp-1", profile.ID, provider.RoleEmployee, false, true, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrConflict))

	// Removal soft-deletes and is idempotent.
	require.NoError(t, svc.RemoveUserFromProvider(ctx, "emp-1", profile.ID))
	require.NoError(t, svc.RemoveUserFromProvider(ctx, "emp-1", profile.ID))

	var rows []provider.Membership
	require.NoError(t, db.Where("user_id = ?", "emp-1").Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.False(t, rows[0].IsActive)
	require.NotNil(t, rows[0].LeftAt)

	// Re-adding reactivates the same row with the new role instead of
	// inserting a second one.
	membership, err = svc.AddUserToProvider(ctx, "emp-1", profile.ID, provider.RoleManager, true, true, true)
	require.NoError(t, err)
	assert.True(t, membership.IsActive)
	assert.Equal(t, provider.RoleManager, membership.Role)
	assert.Nil(t, membership.LeftAt)

	require.NoError(t, db.Where("user_id = ?", "emp-1").Find(&rows).Error)
	require.Len(t, rows, 1)

	// The reactivated manager can now manage the profile.
	allowed, err := svc.CanManageProfile(ctx, "emp-1", profile.ID)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestProviderSearchFallsBackToDatabase(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	createTestUser(t, db, "pro-1", "Pat", "Plumber")
	createTestUser(t, db, "pro-2", "Sam", "Sparks")
	svc := provider.NewService(provider.NewGORMRepository(db), nil, testConfig(), zap.NewNop())

	_, err := svc.CompleteProfile(ctx, "pro-1", provider.CompleteProfileRequest{
		CompanyName: "Acme Plumbing",
		CategoryIDs: []uint{2},
	})
	require.NoError(t, err)
	_, err = svc.CompleteProfile(ctx, "pro-2", provider.CompleteProfileRequest{
		CompanyName: "Sparks Electrical",
		CategoryIDs: []uint{3},
	})
	require.NoError(t, err)

	profiles, pagination, err := svc.SearchProfiles(ctx, "Plumbing", 1, 10)
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "Acme Plumbing", profiles[0].CompanyName)
	assert.Equal(t, int64(1), pagination.TotalItems)
}

func TestGetProfilesForUserListsOnlyActiveMemberships(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	createTestUser(t, db, "owner-1", "Pat", "Owner")
	createTestUser(t, db, "emp-1", "Sam", "Employee")
	svc := provider.NewService(provider.NewGORMRepository(db), nil, testConfig(), zap.NewNop())

	profile, err := svc.CompleteProfile(ctx, "owner-1", provider.CompleteProfileRequest{
		CompanyName: "Acme Plumbing",
		CategoryIDs: []uint{2},
	})
	require.NoError(t, err)

	_, err = svc.AddUserToProvider(ctx, "emp-1", profile.ID, provider.RoleEmployee, false, true, false)
	require.NoError(t, err)

	profiles, err := svc.GetProfilesForUser(ctx, "emp-1")
	require.NoError(t, err)
	require.Len(t, profiles, 1)

	require.NoError(t, svc.RemoveUserFromProvider(ctx, "emp-1", profile.ID))

	profiles, err = svc.GetProfilesForUser(ctx, "emp-1")
	require.NoError(t, err)
	assert.Empty(t, profiles)

	hasActive, err := svc.HasActiveProfiles(ctx, "emp-1")
	require.NoError(t, err)
	assert.False(t, hasActive)
}
