// File: internal/provider/service.go
package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"iserviceseeker_backend/internal/common"
	"iserviceseeker_backend/internal/config"
	"iserviceseeker_backend/internal/platform/elasticsearch"

	"go.uber.org/zap"
)

// Service defines the interface for provider-side business logic.
type Service interface {
	CompleteProfile(ctx context.Context, userID string, req CompleteProfileRequest) (*ServiceProviderProfile, error)
	GetProfileByID(ctx context.Context, profileID uint) (*ServiceProviderProfile, error)
	GetProfilesForUser(ctx context.Context, userID string) ([]ServiceProviderProfile, error)
	HasActiveProfiles(ctx context.Context, userID string) (bool, error)
	GetUserRole(ctx context.Context, userID string, profileID uint) (string, error)
	CanManageProfile(ctx context.Context, userID string, profileID uint) (bool, error)
	UpdateProfile(ctx context.Context, userID string, profileID uint, req UpdateProfileRequest) (*ServiceProviderProfile, error)
	AddUserToProvider(ctx context.Context, userID string, profileID uint, role string, canManageProfile, canManageBookings, canViewReports bool) (*Membership, error)
	RemoveUserFromProvider(ctx context.Context, userID string, profileID uint) error
	AttachLicenseDocument(ctx context.Context, actorID string, profileID uint, documentPath string) (*ServiceProviderProfile, error)
	SearchProfiles(ctx context.Context, query string, page, pageSize int) ([]ServiceProviderProfile, *common.Pagination, error)
	ReindexAllProfiles(ctx context.Context) error
}

type service struct {
	repo     Repository
	esClient *elasticsearch.ESClientWrapper
	cfg      *config.Config
	logger   *zap.Logger
}

// NewService creates a new provider service. esClient may be nil, in which
// case search is served from the database and indexing is skipped.
func NewService(repo Repository, esClient *elasticsearch.ESClientWrapper, cfg *config.Config, logger *zap.Logger) Service {
	return &service{
		repo:     repo,
		esClient: esClient,
		cfg:      cfg,
		logger:   logger,
	}
}

// CompleteProfile finishes provider onboarding: the profile, the founding
// membership and one service area per category are written atomically, and
// the user becomes a service provider with a complete profile.
func (s *service) CompleteProfile(ctx context.Context, userID string, req CompleteProfileRequest) (*ServiceProviderProfile, error) {
	role := req.Role
	if role == "" {
		role = RoleOwner
	}
	if !IsValidRole(role) {
		return nil, common.NewValidationAPIError(map[string]string{
			"role": fmt.Sprintf("The role must be one of: %v.", ValidRoles),
		})
	}

	serviceRadius := s.cfg.DefaultServiceRadiusMiles
	if req.ServiceRadius != nil {
		serviceRadius = *req.ServiceRadius
	}

	profile := &ServiceProviderProfile{
		CompanyName:     req.CompanyName,
		LicenseNumber:   req.LicenseNumber,
		BusinessAddress: req.BusinessAddress,
		City:            req.City,
		State:           req.State,
		ZipCode:         req.ZipCode,
		ServiceRadius:   serviceRadius,
		Description:     req.Description,
		Website:         req.Website,
		IsActive:        true,
	}

	canManageProfile, canManageBookings, canViewReports := DerivePermissions(role)
	membership := &Membership{
		UserID:            userID,
		Role:              role,
		IsActive:          true,
		JoinedAt:          time.Now(),
		CanManageProfile:  canManageProfile,
		CanManageBookings: canManageBookings,
		CanViewReports:    canViewReports,
	}

	if err := s.repo.CreateProfileForUser(ctx, userID, profile, membership, req.CategoryIDs); err != nil {
		s.logger.Warn("Failed to complete provider profile", zap.Error(err), zap.String("userID", userID))
		return nil, err
	}

	s.logger.Info("Provider profile completed",
		zap.Uint("profileID", profile.ID),
		zap.String("userID", userID),
		zap.String("role", role))

	s.indexProfile(ctx, profile.ID)

	// The onboarding transaction is already committed; a failed reload must
	// not make it look failed.
	full, err := s.repo.FindProfileByID(ctx, profile.ID)
	if err != nil {
		s.logger.Warn("Failed to reload provider profile after completion",
			zap.Error(err), zap.Uint("profileID", profile.ID))
		return profile, nil
	}
	return full, nil
}

func (s *service) GetProfileByID(ctx context.Context, profileID uint) (*ServiceProviderProfile, error) {
	return s.repo.FindProfileByID(ctx, profileID)
}

func (s *service) GetProfilesForUser(ctx context.Context, userID string) ([]ServiceProviderProfile, error) {
	profiles, err := s.repo.FindProfilesForUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to get provider profiles for user", zap.Error(err), zap.String("userID", userID))
		return nil, common.ErrInternalServer.WithDetails("Could not retrieve provider profiles.")
	}
	return profiles, nil
}

func (s *service) HasActiveProfiles(ctx context.Context, userID string) (bool, error) {
	count, err := s.repo.CountActiveMembershipsForUser(ctx, userID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *service) GetUserRole(ctx context.Context, userID string, profileID uint) (string, error) {
	membership, err := s.repo.FindActiveMembership(ctx, userID, profileID)
	if err != nil {
		return "", err
	}
	return membership.Role, nil
}

func (s *service) CanManageProfile(ctx context.Context, userID string, profileID uint) (bool, error) {
	membership, err := s.repo.FindActiveMembership(ctx, userID, profileID)
	if err != nil {
		if apiErr, ok := common.IsAPIError(err); ok && apiErr.Code == common.ErrNotFound.Code {
			return false, nil
		}
		return false, err
	}
	return membership.CanManageProfile, nil
}

// UpdateProfile is permission-gated: the acting user needs an active
// membership carrying CanManageProfile, otherwise nothing is written.
func (s *service) UpdateProfile(ctx context.Context, userID string, profileID uint, req UpdateProfileRequest) (*ServiceProviderProfile, error) {
	allowed, err := s.CanManageProfile(ctx, userID, profileID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		s.logger.Warn("Provider profile update denied",
			zap.String("userID", userID), zap.Uint("profileID", profileID))
		return nil, common.ErrForbidden.WithDetails("You do not have permission to manage this provider profile.")
	}

	profile, err := s.repo.FindProfileByID(ctx, profileID)
	if err != nil {
		return nil, err
	}

	if req.CompanyName != nil {
		profile.CompanyName = *req.CompanyName
	}
	if req.LicenseNumber != nil {
		profile.LicenseNumber = req.LicenseNumber
	}
	if req.BusinessAddress != nil {
		profile.BusinessAddress = req.BusinessAddress
	}
	if req.City != nil {
		profile.City = req.City
	}
	if req.State != nil {
		profile.State = req.State
	}
	if req.ZipCode != nil {
		profile.ZipCode = req.ZipCode
	}
	if req.ServiceRadius != nil {
		profile.ServiceRadius = *req.ServiceRadius
	}
	if req.Description != nil {
		profile.Description = req.Description
	}
	if req.Website != nil {
		profile.Website = req.Website
	}

	if err := s.repo.UpdateProfile(ctx, profile); err != nil {
		s.logger.Error("Failed to update provider profile", zap.Error(err), zap.Uint("profileID", profileID))
		return nil, err
	}
	s.logger.Info("Provider profile updated", zap.Uint("profileID", profileID), zap.String("by", userID))

	s.indexProfile(ctx, profileID)
	return profile, nil
}

// AddUserToProvider follows the reactivate-or-insert policy: an active row is
// a conflict, an inactive row is reactivated in place with the new role and
// flags, and only a missing row produces an insert. The composite unique
// index catches concurrent inserts.
func (s *service) AddUserToProvider(ctx context.Context, userID string, profileID uint, role string, canManageProfile, canManageBookings, canViewReports bool) (*Membership, error) {
	if role == "" {
		role = RoleMember
	}
	if !IsValidRole(role) {
		return nil, common.NewValidationAPIError(map[string]string{
			"role": fmt.Sprintf("The role must be one of: %v.", ValidRoles),
		})
	}

	if _, err := s.repo.FindProfileByID(ctx, profileID); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindMembership(ctx, userID, profileID)
	switch {
	case err == nil && existing.IsActive:
		return nil, common.ErrConflict.WithDetails("User is already an active member of this provider profile.")

	case err == nil:
		existing.Role = role
		existing.IsActive = true
		existing.JoinedAt = time.Now()
		existing.LeftAt = nil
		existing.CanManageProfile = canManageProfile
		existing.CanManageBookings = canManageBookings
		existing.CanViewReports = canViewReports
		if err := s.repo.UpdateMembership(ctx, existing); err != nil {
			s.logger.Error("Failed to reactivate membership", zap.Error(err),
				zap.String("userID", userID), zap.Uint("profileID", profileID))
			return nil, err
		}
		s.logger.Info("Membership reactivated",
			zap.String("userID", userID), zap.Uint("profileID", profileID), zap.String("role", role))
		return existing, nil

	default:
		if apiErr, ok := common.IsAPIError(err); !ok || apiErr.Code != common.ErrNotFound.Code {
			return nil, err
		}
		membership := &Membership{
			UserID:                   userID,
			ServiceProviderProfileID: profileID,
			Role:                     role,
			IsActive:                 true,
			JoinedAt:                 time.Now(),
			CanManageProfile:         canManageProfile,
			CanManageBookings:        canManageBookings,
			CanViewReports:           canViewReports,
		}
		if err := s.repo.CreateMembership(ctx, membership); err != nil {
			return nil, err
		}
		s.logger.Info("Membership created",
			zap.String("userID", userID), zap.Uint("profileID", profileID), zap.String("role", role))
		return membership, nil
	}
}

// RemoveUserFromProvider soft-deletes the membership. Removing an absent or
// already-inactive membership is a no-op.
func (s *service) RemoveUserFromProvider(ctx context.Context, userID string, profileID uint) error {
	membership, err := s.repo.FindActiveMembership(ctx, userID, profileID)
	if err != nil {
		if apiErr, ok := common.IsAPIError(err); ok && apiErr.Code == common.ErrNotFound.Code {
			return nil
		}
		return err
	}

	now := time.Now()
	membership.IsActive = false
	membership.LeftAt = &now
	if err := s.repo.UpdateMembership(ctx, membership); err != nil {
		s.logger.Error("Failed to deactivate membership", zap.Error(err),
			zap.String("userID", userID), zap.Uint("profileID", profileID))
		return err
	}
	s.logger.Info("Membership deactivated",
		zap.String("userID", userID), zap.Uint("profileID", profileID))
	return nil
}

// AttachLicenseDocument records an uploaded license document path on the
// profile, gated the same way as profile updates.
func (s *service) AttachLicenseDocument(ctx context.Context, actorID string, profileID uint, documentPath string) (*ServiceProviderProfile, error) {
	allowed, err := s.CanManageProfile(ctx, actorID, profileID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, common.ErrForbidden.WithDetails("You do not have permission to manage this provider profile.")
	}

	profile, err := s.repo.FindProfileByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	profile.LicenseDocumentPath = &documentPath
	if err := s.repo.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}
	s.logger.Info("License document attached", zap.Uint("profileID", profileID), zap.String("path", documentPath))
	return profile, nil
}

// SearchProfiles serves the provider directory. Elasticsearch is used when
// configured; otherwise the query runs against the database.
func (s *service) SearchProfiles(ctx context.Context, query string, page, pageSize int) ([]ServiceProviderProfile, *common.Pagination, error) {
	if page <= 0 {
		page = common.DefaultPage
	}
	if pageSize <= 0 || pageSize > common.MaxPageSize {
		pageSize = common.DefaultPageSize
	}

	if s.esClient != nil {
		profiles, total, err := s.searchProfilesES(ctx, query, (page-1)*pageSize, pageSize)
		if err == nil {
			return profiles, common.NewPagination(total, page, pageSize), nil
		}
		var noIndex *esSearchError
		if !errors.As(err, &noIndex) {
			s.logger.Warn("Elasticsearch provider search failed, falling back to database", zap.Error(err))
		}
	}

	profiles, total, err := s.repo.SearchProfiles(ctx, query, (page-1)*pageSize, pageSize)
	if err != nil {
		s.logger.Error("Provider search failed", zap.Error(err), zap.String("query", query))
		return nil, nil, common.ErrInternalServer.WithDetails("Could not search provider profiles.")
	}
	return profiles, common.NewPagination(total, page, pageSize), nil
}
