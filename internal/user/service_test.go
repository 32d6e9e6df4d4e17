// File: internal/user/service_test.go
package user

import (
	"context"
	"testing"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"iserviceseeker_backend/internal/common"
	"iserviceseeker_backend/internal/config"
	"iserviceseeker_backend/internal/shared"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, user *User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockRepository) FindByID(ctx context.Context, id string) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *mockRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *mockRepository) Update(ctx context.Context, user *User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockRepository) EnsureRole(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func newTestService(repo Repository) *ServiceImplementation {
	return NewService(repo, nil, nil, &config.Config{}, zap.NewNop())
}

func tokenWithClaims(uid string, claims map[string]interface{}) *firebaseauth.Token {
	return &firebaseauth.Token{UID: uid, Claims: claims}
}

func TestGetOrCreateUserFromFirebaseClaims_CreatesOnFirstSight(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo)

	repo.On("FindByID", mock.Anything, "uid-1").
		Return(nil, common.ErrNotFound.WithDetails("User not found with this ID."))
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *User) bool {
		return u.ID == "uid-1" &&
			u.FirstName == "Jamie" && u.LastName == "van der Berg" &&
			u.Email != nil && *u.Email == "jamie@example.com" &&
			u.UserType == shared.UserTypeHomeowner && u.Role == shared.RoleUser &&
			u.LastLoginAt != nil
	})).Return(nil)

	usr, wasCreated, err := svc.GetOrCreateUserFromFirebaseClaims(context.Background(), tokenWithClaims("uid-1", map[string]interface{}{
		"name":  "Jamie van der Berg",
		"email": "Jamie@Example.com",
	}))
	require.NoError(t, err)
	assert.True(t, wasCreated)
	assert.Equal(t, "uid-1", usr.ID)
	assert.Equal(t, "Jamie van der Berg", usr.FullName())
	repo.AssertExpectations(t)
}

func TestGetOrCreateUserFromFirebaseClaims_RefreshesExisting(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo)

	oldEmail := "old@example.com"
	existing := &User{
		ID:        "uid-1",
		Email:     &oldEmail,
		FirstName: "Jay",
		LastName:  "Smith",
		UserType:  shared.UserTypeHomeowner,
		Role:      shared.RoleUser,
	}
	repo.On("FindByID", mock.Anything, "uid-1").Return(existing, nil)
	repo.On("Update", mock.Anything, existing).Return(nil)

	usr, wasCreated, err := svc.GetOrCreateUserFromFirebaseClaims(context.Background(), tokenWithClaims("uid-1", map[string]interface{}{
		"name":  "Jamie Smith",
		"email": "new@example.com",
	}))
	require.NoError(t, err)
	assert.False(t, wasCreated)
	assert.Equal(t, "Jamie", usr.FirstName)
	require.NotNil(t, usr.Email)
	assert.Equal(t, "new@example.com", *usr.Email)
	require.NotNil(t, usr.LastLoginAt)
	repo.AssertNotCalled(t, "Create")
}

func TestGetOrCreateUserFromFirebaseClaims_ConcurrentInsertFallsBackToRead(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo)

	winner := &User{ID: "uid-1", FirstName: "Jamie", LastName: "Smith", Role: shared.RoleUser}

	repo.On("FindByID", mock.Anything, "uid-1").
		Return(nil, common.ErrNotFound.WithDetails("User not found with this ID.")).Once()
	repo.On("Create", mock.Anything, mock.Anything).
		Return(common.ErrConflict.WithDetails("A user with this ID or email already exists."))
	repo.On("FindByID", mock.Anything, "uid-1").Return(winner, nil).Once()

	usr, wasCreated, err := svc.GetOrCreateUserFromFirebaseClaims(context.Background(), tokenWithClaims("uid-1", map[string]interface{}{
		"name": "Jamie Smith",
	}))
	require.NoError(t, err)
	assert.False(t, wasCreated)
	assert.Equal(t, "uid-1", usr.ID)
}

func TestGetOrCreateUserFromFirebaseClaims_MissingSubject(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo)

	_, _, err := svc.GetOrCreateUserFromFirebaseClaims(context.Background(), &firebaseauth.Token{})
	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, common.ErrUnauthorized.Code, apiErr.Code)
}

func TestUpdateUserNames_TrimsInput(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo)

	existing := &User{ID: "uid-1", FirstName: "Old", LastName: "Name"}
	repo.On("FindByID", mock.Anything, "uid-1").Return(existing, nil)
	repo.On("Update", mock.Anything, existing).Return(nil)

	usr, err := svc.UpdateUserNames(context.Background(), "uid-1", UpdateUserNamesRequest{
		FirstName: "  New ",
		LastName:  " Name ",
	})
	require.NoError(t, err)
	assert.Equal(t, "New", usr.FirstName)
	assert.Equal(t, "Name", usr.LastName)
}
