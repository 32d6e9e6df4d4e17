// File: internal/category/repository.go
package category

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"iserviceseeker_backend/internal/common"

	"gorm.io/gorm"
)

// Repository defines the interface for service category data operations.
type Repository interface {
	CreateCategory(ctx context.Context, category *ServiceCategory) error
	FindCategoryByID(ctx context.Context, id uint) (*ServiceCategory, error)
	FindCategoryBySlug(ctx context.Context, slug string) (*ServiceCategory, error)
	FindActiveCategories(ctx context.Context) ([]ServiceCategory, error)
	FindAllCategories(ctx context.Context) ([]ServiceCategory, error)
	UpdateCategory(ctx context.Context, category *ServiceCategory) error
	DeleteCategory(ctx context.Context, id uint) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM category repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) CreateCategory(ctx context.Context, category *ServiceCategory) error {
	category.Slug = strings.ToLower(strings.TrimSpace(category.Slug))
	err := r.db.WithContext(ctx).Create(category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "unique constraint") || strings.Contains(err.Error(), "UNIQUE constraint") {
			return common.ErrConflict.WithDetails("A service category with this name or slug already exists.")
		}
		return err
	}
	return nil
}

func (r *gormRepository) FindCategoryByID(ctx context.Context, id uint) (*ServiceCategory, error) {
	var category ServiceCategory
	err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Service category not found.")
		}
		return nil, err
	}
	return &category, nil
}

func (r *gormRepository) FindCategoryBySlug(ctx context.Context, slug string) (*ServiceCategory, error) {
	var category ServiceCategory
	normalizedSlug := strings.ToLower(strings.TrimSpace(slug))
	err := r.db.WithContext(ctx).First(&category, "slug = ?", normalizedSlug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Service category not found.")
		}
		return nil, err
	}
	return &category, nil
}

func (r *gormRepository) FindActiveCategories(ctx context.Context) ([]ServiceCategory, error) {
	var categories []ServiceCategory
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *gormRepository) FindAllCategories(ctx context.Context) ([]ServiceCategory, error) {
	var categories []ServiceCategory
	err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *gormRepository) UpdateCategory(ctx context.Context, category *ServiceCategory) error {
	if category.Slug != "" {
		category.Slug = strings.ToLower(strings.TrimSpace(category.Slug))
	}
	err := r.db.WithContext(ctx).Save(category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "unique constraint") || strings.Contains(err.Error(), "UNIQUE constraint") {
			return common.ErrConflict.WithDetails("A service category with this name or slug already exists.")
		}
		return err
	}
	return nil
}

func (r *gormRepository) DeleteCategory(ctx context.Context, id uint) error {
	// The service_areas FK is ON DELETE RESTRICT, but the count check keeps
	// the behavior identical on engines where the constraint is not enforced.
	var areaCount int64
	if err := r.db.WithContext(ctx).Table("service_areas").Where("service_category_id = ?", id).Count(&areaCount).Error; err != nil {
		return common.ErrInternalServer.WithDetails("Failed to check for associated service areas.")
	}
	if areaCount > 0 {
		return common.ErrConflict.WithDetails(
			fmt.Sprintf("Cannot delete service category: %d service areas still reference it.", areaCount),
		)
	}

	result := r.db.WithContext(ctx).Delete(&ServiceCategory{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Service category not found or already deleted.")
	}
	return nil
}
