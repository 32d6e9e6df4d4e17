// File: internal/homeowner/repository.go
package homeowner

import (
	"context"
	"errors"
	"strings"
	"time"

	"iserviceseeker_backend/internal/common"

	"gorm.io/gorm"
)

// Repository defines the interface for homeowner profile data operations.
type Repository interface {
	// CreateProfileForUser inserts the profile and flips the owning user's
	// type and completion flag in one transaction.
	CreateProfileForUser(ctx context.Context, profile *HomeownerProfile) error
	FindByUserID(ctx context.Context, userID string) (*HomeownerProfile, error)
	Update(ctx context.Context, profile *HomeownerProfile) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM homeowner repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) CreateProfileForUser(ctx context.Context, profile *HomeownerProfile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var userCount int64
		if err := tx.Table("users").Where("id = ?", profile.UserID).Count(&userCount).Error; err != nil {
			return err
		}
		if userCount == 0 {
			return common.ErrNotFound.WithDetails("User not found.")
		}

		if err := tx.Create(profile).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "unique constraint") || strings.Contains(err.Error(), "UNIQUE constraint") {
				return common.ErrConflict.WithDetails("A homeowner profile already exists for this user.")
			}
			return err
		}

		return tx.Table("users").Where("id = ?", profile.UserID).Updates(map[string]interface{}{
			"user_type":           "homeowner",
			"is_profile_complete": true,
			"updated_at":          time.Now(),
		}).Error
	})
}

func (r *gormRepository) FindByUserID(ctx context.Context, userID string) (*HomeownerProfile, error) {
	var profile HomeownerProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Homeowner profile not found.")
		}
		return nil, err
	}
	return &profile, nil
}

func (r *gormRepository) Update(ctx context.Context, profile *HomeownerProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}
