// File: internal/homeowner/service.go
package homeowner

import (
	"context"

	"go.uber.org/zap"
)

// Service defines the interface for homeowner profile business logic.
type Service interface {
	CompleteProfile(ctx context.Context, userID string, req CompleteProfileRequest) (*HomeownerProfile, error)
	GetByUserID(ctx context.Context, userID string) (*HomeownerProfile, error)
	UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*HomeownerProfile, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new homeowner service.
func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger,
	}
}

// CompleteProfile finishes homeowner onboarding. The repository runs the
// insert and the user-flag update as one transaction, so a duplicate profile
// or missing user leaves nothing behind.
func (s *service) CompleteProfile(ctx context.Context, userID string, req CompleteProfileRequest) (*HomeownerProfile, error) {
	profile := &HomeownerProfile{
		UserID:                    userID,
		Address:                   req.Address,
		City:                      req.City,
		State:                     req.State,
		ZipCode:                   req.ZipCode,
		ReceiveEmailNotifications: true,
	}
	if req.ReceiveEmailNotifications != nil {
		profile.ReceiveEmailNotifications = *req.ReceiveEmailNotifications
	}
	if req.ReceiveSMSNotifications != nil {
		profile.ReceiveSMSNotifications = *req.ReceiveSMSNotifications
	}

	if err := s.repo.CreateProfileForUser(ctx, profile); err != nil {
		s.logger.Warn("Failed to complete homeowner profile", zap.Error(err), zap.String("userID", userID))
		return nil, err
	}
	s.logger.Info("Homeowner profile completed", zap.Uint("profileID", profile.ID), zap.String("userID", userID))
	return profile, nil
}

func (s *service) GetByUserID(ctx context.Context, userID string) (*HomeownerProfile, error) {
	return s.repo.FindByUserID(ctx, userID)
}

func (s *service) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*HomeownerProfile, error) {
	profile, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Address != nil {
		profile.Address = req.Address
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
	if req.ReceiveEmailNotifications != nil {
		profile.ReceiveEmailNotifications = *req.ReceiveEmailNotifications
	}
	if req.ReceiveSMSNotifications != nil {
		profile.ReceiveSMSNotifications = *req.ReceiveSMSNotifications
	}

	if err := s.repo.Update(ctx, profile); err != nil {
		s.logger.Error("Failed to update homeowner profile", zap.Error(err), zap.String("userID", userID))
		return nil, err
	}
	s.logger.Info("Homeowner profile updated", zap.Uint("profileID", profile.ID))
	return profile, nil
}
