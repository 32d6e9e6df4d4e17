// File: internal/provider/repository.go
package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"iserviceseeker_backend/internal/common"

	"gorm.io/gorm"
)

// Repository defines the interface for provider profile, membership and
// service area data operations.
type Repository interface {
	// CreateProfileForUser inserts the profile, its founding membership and
	// one service area per category id, and flips the owning user's type and
	// completion flag, all in one transaction.
	CreateProfileForUser(ctx context.Context, userID string, profile *ServiceProviderProfile, membership *Membership, categoryIDs []uint) error
	FindProfileByID(ctx context.Context, id uint) (*ServiceProviderProfile, error)
	FindProfilesForUser(ctx context.Context, userID string) ([]ServiceProviderProfile, error)
	UpdateProfile(ctx context.Context, profile *ServiceProviderProfile) error

	FindMembership(ctx context.Context, userID string, profileID uint) (*Membership, error)
	FindActiveMembership(ctx context.Context, userID string, profileID uint) (*Membership, error)
	CountActiveMembershipsForUser(ctx context.Context, userID string) (int64, error)
	CreateMembership(ctx context.Context, membership *Membership) error
	UpdateMembership(ctx context.Context, membership *Membership) error

	SearchProfiles(ctx context.Context, query string, offset, limit int) ([]ServiceProviderProfile, int64, error)
	FindActiveProfiles(ctx context.Context) ([]ServiceProviderProfile, error)
	FindUnverifiedProfiles(ctx context.Context, createdBefore time.Time) ([]ServiceProviderProfile, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM provider repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "unique constraint") ||
		strings.Contains(err.Error(), "UNIQUE constraint")
}

func (r *gormRepository) CreateProfileForUser(ctx context.Context, userID string, profile *ServiceProviderProfile, membership *Membership, categoryIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var userCount int64
		if err := tx.Table("users").Where("id = ?", userID).Count(&userCount).Error; err != nil {
			return err
		}
		if userCount == 0 {
			return common.ErrNotFound.WithDetails("User not found.")
		}

		for _, catID := range categoryIDs {
			var catCount int64
			if err := tx.Table("service_categories").Where("id = ?", catID).Count(&catCount).Error; err != nil {
				return err
			}
			if catCount == 0 {
				return common.ErrNotFound.WithDetails(fmt.Sprintf("Service category %d not found.", catID))
			}
		}

		if err := tx.Create(profile).Error; err != nil {
			if isDuplicateKey(err) {
				return common.ErrConflict.WithDetails("A provider profile with this license number already exists.")
			}
			return err
		}

		membership.ServiceProviderProfileID = profile.ID
		if err := tx.Create(membership).Error; err != nil {
			if isDuplicateKey(err) {
				return common.ErrConflict.WithDetails("User is already a member of this provider profile.")
			}
			return err
		}

		// One area per requested category; the input is taken as-is.
		for _, catID := range categoryIDs {
			area := ServiceArea{
				ServiceProviderProfileID: profile.ID,
				ServiceCategoryID:        catID,
				IsActive:                 true,
			}
			if err := tx.Create(&area).Error; err != nil {
				return err
			}
		}

		return tx.Table("users").Where("id = ?", userID).Updates(map[string]interface{}{
			"user_type":           "service_provider",
			"is_profile_complete": true,
			"updated_at":          time.Now(),
		}).Error
	})
}

func (r *gormRepository) FindProfileByID(ctx context.Context, id uint) (*ServiceProviderProfile, error) {
	var profile ServiceProviderProfile
	err := r.db.WithContext(ctx).
		Preload("ServiceAreas.ServiceCategory").
		First(&profile, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Provider profile not found.")
		}
		return nil, err
	}
	return &profile, nil
}

func (r *gormRepository) FindProfilesForUser(ctx context.Context, userID string) ([]ServiceProviderProfile, error) {
	var profiles []ServiceProviderProfile
	err := r.db.WithContext(ctx).
		Joins("JOIN user_service_providers ON user_service_providers.service_provider_profile_id = service_provider_profiles.id").
		Where("user_service_providers.user_id = ? AND user_service_providers.is_active = ?", userID, true).
		Preload("ServiceAreas.ServiceCategory").
		Order("service_provider_profiles.company_name ASC").
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *gormRepository) UpdateProfile(ctx context.Context, profile *ServiceProviderProfile) error {
	err := r.db.WithContext(ctx).Omit("ServiceAreas", "Memberships").Save(profile).Error
	if err != nil {
		if isDuplicateKey(err) {
			return common.ErrConflict.WithDetails("A provider profile with this license number already exists.")
		}
		return err
	}
	return nil
}

func (r *gormRepository) FindMembership(ctx context.Context, userID string, profileID uint) (*Membership, error) {
	var membership Membership
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND service_provider_profile_id = ?", userID, profileID).
		First(&membership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Membership not found.")
		}
		return nil, err
	}
	return &membership, nil
}

func (r *gormRepository) FindActiveMembership(ctx context.Context, userID string, profileID uint) (*Membership, error) {
	var membership Membership
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND service_provider_profile_id = ? AND is_active = ?", userID, profileID, true).
		First(&membership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Active membership not found.")
		}
		return nil, err
	}
	return &membership, nil
}

func (r *gormRepository) CountActiveMembershipsForUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Membership{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Count(&count).Error
	return count, err
}

func (r *gormRepository) CreateMembership(ctx context.Context, membership *Membership) error {
	err := r.db.WithContext(ctx).Create(membership).Error
	if err != nil {
		// The composite unique index is the safety net for concurrent adds.
		if isDuplicateKey(err) {
			return common.ErrConflict.WithDetails("User is already a member of this provider profile.")
		}
		return err
	}
	return nil
}

func (r *gormRepository) UpdateMembership(ctx context.Context, membership *Membership) error {
	return r.db.WithContext(ctx).Save(membership).Error
}

func (r *gormRepository) SearchProfiles(ctx context.Context, query string, offset, limit int) ([]ServiceProviderProfile, int64, error) {
	var profiles []ServiceProviderProfile
	var total int64

	pattern := "%" + strings.TrimSpace(query) + "%"
	base := r.db.WithContext(ctx).Model(&ServiceProviderProfile{}).
		Where("is_active = ?", true).
		Where("company_name LIKE ? OR description LIKE ?", pattern, pattern)

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := base.
		Preload("ServiceAreas.ServiceCategory").
		Order("company_name ASC").
		Offset(offset).
		Limit(limit).
		Find(&profiles).Error
	if err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}

func (r *gormRepository) FindActiveProfiles(ctx context.Context) ([]ServiceProviderProfile, error) {
	var profiles []ServiceProviderProfile
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Preload("ServiceAreas.ServiceCategory").
		Find(&profiles).Error
	return profiles, err
}

func (r *gormRepository) FindUnverifiedProfiles(ctx context.Context, createdBefore time.Time) ([]ServiceProviderProfile, error) {
	var profiles []ServiceProviderProfile
	err := r.db.WithContext(ctx).
		Where("is_verified = ? AND is_active = ? AND created_at < ?", false, true, createdBefore).
		Find(&profiles).Error
	return profiles, err
}
