// File: internal/platform/database/migrate.go
package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/gosimple/slug"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"iserviceseeker_backend/internal/category"
	"iserviceseeker_backend/internal/config"
	"iserviceseeker_backend/internal/homeowner"
	"iserviceseeker_backend/internal/provider"
	"iserviceseeker_backend/internal/shared"
	"iserviceseeker_backend/internal/user"
)

// Migrate runs the schema migrations for all models.
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	logger.Info("Running database migrations")
	err := db.AutoMigrate(
		&user.User{},
		&user.Role{},
		&category.ServiceCategory{},
		&homeowner.HomeownerProfile{},
		&provider.ServiceProviderProfile{},
		&provider.Membership{},
		&provider.ServiceArea{},
	)
	if err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}
	logger.Info("Database migrations complete")
	return nil
}

// Seed populates the bootstrap data. Roles are ensured on every startup; the
// service taxonomy is created by explicit ID so categories keep IDs 1..8 no
// matter what happened to the table. An admin user is created when a
// bootstrap UID is configured.
func Seed(ctx context.Context, db *gorm.DB, cfg *config.Config, logger *zap.Logger) error {
	userRepo := user.NewGORMRepository(db)
	for _, roleName := range user.DefaultRoles {
		if err := userRepo.EnsureRole(ctx, roleName); err != nil {
			return fmt.Errorf("ensuring role %q: %w", roleName, err)
		}
	}

	if err := seedCategories(ctx, db, logger); err != nil {
		return err
	}

	if cfg.BootstrapAdminUID != "" {
		if err := seedBootstrapAdmin(ctx, db, cfg, logger); err != nil {
			return err
		}
	}
	return nil
}

func seedCategories(ctx context.Context, db *gorm.DB, logger *zap.Logger) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created := 0
		for i, name := range category.DefaultTaxonomy {
			id := uint(i + 1)

			var existing category.ServiceCategory
			err := tx.Where("id = ?", id).First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("looking up category %d: %w", id, err)
			}

			cat := category.ServiceCategory{
				Name:     name,
				Slug:     slug.Make(name),
				IsActive: true,
			}
			cat.ID = id
			if err := tx.Create(&cat).Error; err != nil {
				return fmt.Errorf("seeding category %q: %w", name, err)
			}
			created++
		}
		if created > 0 {
			logger.Info("Service taxonomy seeded", zap.Int("created", created))
		}
		return nil
	})
}

func seedBootstrapAdmin(ctx context.Context, db *gorm.DB, cfg *config.Config, logger *zap.Logger) error {
	var count int64
	if err := db.WithContext(ctx).Model(&user.User{}).Where("id = ?", cfg.BootstrapAdminUID).Count(&count).Error; err != nil {
		return fmt.Errorf("checking bootstrap admin: %w", err)
	}
	if count > 0 {
		return nil
	}

	admin := user.User{
		ID:        cfg.BootstrapAdminUID,
		FirstName: cfg.BootstrapAdminFirstName,
		LastName:  cfg.BootstrapAdminLastName,
		UserType:  shared.UserTypeAdmin,
		Role:      shared.RoleAdmin,
	}
	if err := db.WithContext(ctx).Create(&admin).Error; err != nil {
		return fmt.Errorf("creating bootstrap admin: %w", err)
	}
	logger.Info("Bootstrap admin user created", zap.String("userID", admin.ID))
	return nil
}
