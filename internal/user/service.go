// File: internal/user/service.go
package user

import (
	"context"
	"errors"
	"strings"
	"time"

	firebaseauth "firebase.google.com/go/v4/auth"
	"go.uber.org/zap"

	"iserviceseeker_backend/internal/common"
	"iserviceseeker_backend/internal/config"
	"iserviceseeker_backend/internal/homeowner"
	"iserviceseeker_backend/internal/provider"
	"iserviceseeker_backend/internal/shared"
)

// WithProfileResponse aggregates the user record with whichever marketplace
// profiles exist for it. A user can carry a homeowner profile, provider
// memberships, or neither.
type WithProfileResponse struct {
	User             shared.UserResponse        `json:"user"`
	HomeownerProfile *homeowner.ProfileResponse `json:"homeowner_profile,omitempty"`
	ProviderProfiles []provider.ProfileResponse `json:"provider_profiles"`
}

// ServiceImplementation implements the shared.Service interface.
type ServiceImplementation struct {
	repo             Repository
	homeownerService homeowner.Service
	providerService  provider.Service
	cfg              *config.Config
	logger           *zap.Logger
}

var _ shared.Service = (*ServiceImplementation)(nil)

// NewService creates a new user service.
func NewService(
	repo Repository,
	homeownerService homeowner.Service,
	providerService provider.Service,
	cfg *config.Config,
	logger *zap.Logger,
) *ServiceImplementation {
	return &ServiceImplementation{
		repo:             repo,
		homeownerService: homeownerService,
		providerService:  providerService,
		cfg:              cfg,
		logger:           logger,
	}
}

// GetUserByID retrieves a user by their identity provider UID.
func (s *ServiceImplementation) GetUserByID(ctx context.Context, id string) (*shared.User, error) {
	dbUser, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return DBToShared(dbUser), nil
}

// GetUserByEmail retrieves a user by their email address.
func (s *ServiceImplementation) GetUserByEmail(ctx context.Context, email string) (*shared.User, error) {
	dbUser, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return DBToShared(dbUser), nil
}

// GetOrCreateUserFromFirebaseClaims resolves the local user row for a
// verified ID token, creating it on first sight. Names and email from the
// token refresh the stored row, and LastLoginAt is bumped on every call.
func (s *ServiceImplementation) GetOrCreateUserFromFirebaseClaims(ctx context.Context, firebaseToken *firebaseauth.Token) (*shared.User, bool, error) {
	if firebaseToken == nil || firebaseToken.UID == "" {
		return nil, false, common.ErrUnauthorized.WithDetails("Token is missing a subject.")
	}

	email, firstName, lastName := claimsIdentity(firebaseToken)
	now := time.Now()

	dbUser, err := s.repo.FindByID(ctx, firebaseToken.UID)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			s.logger.Error("Error looking up user by UID", zap.Error(err), zap.String("uid", firebaseToken.UID))
			return nil, false, err
		}

		newUser := &User{
			ID:          firebaseToken.UID,
			FirstName:   firstName,
			LastName:    lastName,
			UserType:    shared.UserTypeHomeowner,
			Role:        shared.RoleUser,
			LastLoginAt: &now,
		}
		if email != "" {
			emailCopy := email
			newUser.Email = &emailCopy
		}

		if createErr := s.repo.Create(ctx, newUser); createErr != nil {
			// A concurrent first request can win the insert; fall back to reading.
			if errors.Is(createErr, common.ErrConflict) {
				existing, findErr := s.repo.FindByID(ctx, firebaseToken.UID)
				if findErr == nil {
					return DBToShared(existing), false, nil
				}
			}
			s.logger.Error("Failed to create user from token claims", zap.Error(createErr), zap.String("uid", firebaseToken.UID))
			return nil, false, createErr
		}

		s.logger.Info("Created user from token claims", zap.String("userID", newUser.ID))
		return DBToShared(newUser), true, nil
	}

	changed := false
	if firstName != "" && dbUser.FirstName != firstName {
		dbUser.FirstName = firstName
		changed = true
	}
	if lastName != "" && dbUser.LastName != lastName {
		dbUser.LastName = lastName
		changed = true
	}
	if email != "" && (dbUser.Email == nil || *dbUser.Email != email) {
		emailCopy := email
		dbUser.Email = &emailCopy
		changed = true
	}
	dbUser.LastLoginAt = &now

	if err := s.repo.Update(ctx, dbUser); err != nil {
		// Login proceeds even if the refresh write fails.
		s.logger.Warn("Failed to refresh user row from token claims", zap.Error(err), zap.String("userID", dbUser.ID))
	} else if changed {
		s.logger.Debug("Refreshed user details from token claims", zap.String("userID", dbUser.ID))
	}

	return DBToShared(dbUser), false, nil
}

// UpdateUserNames lets the user change their own first and last name.
func (s *ServiceImplementation) UpdateUserNames(ctx context.Context, userID string, req UpdateUserNamesRequest) (*shared.User, error) {
	dbUser, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	dbUser.FirstName = strings.TrimSpace(req.FirstName)
	dbUser.LastName = strings.TrimSpace(req.LastName)

	if err := s.repo.Update(ctx, dbUser); err != nil {
		s.logger.Error("Failed to update user names", zap.Error(err), zap.String("userID", userID))
		return nil, err
	}
	return DBToShared(dbUser), nil
}

// GetUserWithProfile returns the user together with the homeowner profile and
// the active provider profiles, whichever exist. A missing homeowner profile
// is not an error.
func (s *ServiceImplementation) GetUserWithProfile(ctx context.Context, userID string) (*WithProfileResponse, error) {
	dbUser, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &WithProfileResponse{
		User:             shared.ToUserResponse(DBToShared(dbUser)),
		ProviderProfiles: []provider.ProfileResponse{},
	}

	hoProfile, err := s.homeownerService.GetByUserID(ctx, userID)
	if err == nil {
		hoResp := homeowner.ToProfileResponse(hoProfile)
		resp.HomeownerProfile = &hoResp
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	providerProfiles, err := s.providerService.GetProfilesForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range providerProfiles {
		resp.ProviderProfiles = append(resp.ProviderProfiles, provider.ToProfileResponse(&providerProfiles[i]))
	}

	return resp, nil
}
