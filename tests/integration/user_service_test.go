// File: tests/integration/user_service_test.go
package integration

import (
	"context"
	"testing"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"iserviceseeker_backend/internal/homeowner"
	"iserviceseeker_backend/internal/provider"
	"iserviceseeker_backend/internal/shared"
	"iserviceseeker_backend/internal/user"
)

func TestUserProvisioningFromTokenClaims(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	homeownerSvc := homeowner.NewService(homeowner.NewGORMRepository(db), zap.NewNop())
	providerSvc := provider.NewService(provider.NewGORMRepository(db), nil, testConfig(), zap.NewNop())
	svc := user.NewService(user.NewGORMRepository(db), homeownerSvc, providerSvc, testConfig(), zap.NewNop())

	token := &firebaseauth.Token{
		UID: "fb-uid-1",
		Claims: map[string]interface{}{
			"name":  "Dana Carter",
			"email": "Dana@Example.com",
		},
	}

	created, wasCreated, err := svc.GetOrCreateUserFromFirebaseClaims(ctx, token)
	require.NoError(t, err)
	assert.True(t, wasCreated)
	assert.Equal(t, "fb-uid-1", created.ID)
	assert.Equal(t, shared.UserTypeHomeowner, created.UserType)
	require.NotNil(t, created.Email)
	assert.Equal(t, "dana@example.com", *created.Email)

	// The second request resolves the same row.
	again, wasCreated, err := svc.GetOrCreateUserFromFirebaseClaims(ctx, token)
	require.NoError(t, err)
	assert.False(t, wasCreated)
	assert.Equal(t, created.ID, again.ID)
	require.NotNil(t, again.LastLoginAt)
}

func TestGetUserWithProfileAggregatesBothSides(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	createTestUser(t, db, "dual-1", "Jordan", "Both")
	homeownerSvc := homeowner.NewService(homeowner.NewGORMRepository(db), zap.NewNop())
	providerSvc := provider.NewService(provider.NewGORMRepository(db), nil, testConfig(), zap.NewNop())
	svc := user.NewService(user.NewGORMRepository(db), homeownerSvc, providerSvc, testConfig(), zap.NewNop())

	// No profiles yet: the aggregate is still retrievable.
	resp, err := svc.GetUserWithProfile(ctx, "dual-1")
	require.NoError(t, err)
	assert.Nil(t, resp.HomeownerProfile)
	assert.Empty(t, resp.ProviderProfiles)

	_, err = homeownerSvc.CompleteProfile(ctx, "dual-1", homeowner.CompleteProfileRequest{})
	require.NoError(t, err)
	_, err = providerSvc.CompleteProfile(ctx, "dual-1", provider.CompleteProfileRequest{
		CompanyName: "Jordan Contracting",
		CategoryIDs: []uint{1},
	})
	require.NoError(t, err)

	resp, err = svc.GetUserWithProfile(ctx, "dual-1")
	require.NoError(t, err)
	require.NotNil(t, resp.HomeownerProfile)
	assert.Equal(t, "dual-1", resp.HomeownerProfile.UserID)
	require.Len(t, resp.ProviderProfiles, 1)
	assert.Equal(t, "Jordan Contracting", resp.ProviderProfiles[0].CompanyName)
}

func TestUpdateUserNames(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	createTestUser(t, db, "uid-1", "Old", "Name")
	homeownerSvc := homeowner.NewService(homeowner.NewGORMRepository(db), zap.NewNop())
	providerSvc := provider.NewService(provider.NewGORMRepository(db), nil, testConfig(), zap.NewNop())
	svc := user.NewService(user.NewGORMRepository(db), homeownerSvc, providerSvc, testConfig(), zap.NewNop())

	updated, err := svc.UpdateUserNames(ctx, "uid-1", user.UpdateUserNamesRequest{
		FirstName: "New",
		LastName:  "Name",
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.FullName())
}

func TestDeletingUserCascadesToProfileAndMemberships(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	createTestUser(t, db, "gone-1", "Casey", "Leaver")
	homeownerSvc := homeowner.NewService(homeowner.NewGORMRepository(db), zap.NewNop())
	providerSvc := provider.NewService(provider.NewGORMRepository(db), nil, testConfig(), zap.NewNop())

	_, err := homeownerSvc.CompleteProfile(ctx, "gone-1", homeowner.CompleteProfileRequest{})
	require.NoError(t, err)
	profile, err := providerSvc.CompleteProfile(ctx, "gone-1", provider.CompleteProfileRequest{
		CompanyName: "Acme Plumbing",
		CategoryIDs: []uint{2},
	})
	require.NoError(t, err)

	require.NoError(t, db.Exec("DELETE FROM users WHERE id = ?", "gone-1").Error)

	// Both user-side FKs cascade: the homeowner profile and the membership
	// rows go with the user.
	var homeownerCount, membershipCount int64
	require.NoError(t, db.Model(&homeowner.HomeownerProfile{}).Where("user_id = ?", "gone-1").Count(&homeownerCount).Error)
	require.NoError(t, db.Model(&provider.Membership{}).Where("user_id = ?", "gone-1").Count(&membershipCount).Error)
	assert.Zero(t, homeownerCount)
	assert.Zero(t, membershipCount)

	// The provider organization itself is not owned by any single user and
	// survives the deletion.
	var profileCount int64
	require.NoError(t, db.Model(&provider.ServiceProviderProfile{}).Where("id = ?", profile.ID).Count(&profileCount).Error)
	assert.Equal(t, int64(1), profileCount)
}
