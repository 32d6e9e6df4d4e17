// File: internal/category/service.go
package category

import (
	"context"
	"strconv"
	"strings"

	"iserviceseeker_backend/internal/common"

	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

// Service defines the interface for service-category business logic.
type Service interface {
	// Admin methods
	AdminCreateCategory(ctx context.Context, req AdminCreateCategoryRequest) (*ServiceCategory, error)
	AdminUpdateCategory(ctx context.Context, id uint, req AdminCreateCategoryRequest) (*ServiceCategory, error)
	AdminDeleteCategory(ctx context.Context, id uint) error

	// Public methods
	GetActiveCategories(ctx context.Context) ([]ServiceCategory, error)
	GetCategoryByIDOrSlug(ctx context.Context, idOrSlug string) (*ServiceCategory, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new category service.
func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger,
	}
}

// --- Admin Methods ---

func (s *service) AdminCreateCategory(ctx context.Context, req AdminCreateCategoryRequest) (*ServiceCategory, error) {
	finalSlug := strings.TrimSpace(req.Slug)
	if finalSlug == "" {
		finalSlug = slug.Make(req.Name)
	} else {
		finalSlug = slug.Make(finalSlug)
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	category := &ServiceCategory{
		Name:        strings.TrimSpace(req.Name),
		Slug:        finalSlug,
		Description: req.Description,
		IsActive:    isActive,
	}

	if err := s.repo.CreateCategory(ctx, category); err != nil {
		s.logger.Error("Failed to create service category", zap.Error(err), zap.String("name", req.Name))
		return nil, err
	}
	s.logger.Info("Service category created", zap.Uint("id", category.ID), zap.String("name", category.Name))
	return category, nil
}

func (s *service) AdminUpdateCategory(ctx context.Context, id uint, req AdminCreateCategoryRequest) (*ServiceCategory, error) {
	category, err := s.repo.FindCategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Name = strings.TrimSpace(req.Name)
	if req.Slug != "" {
		category.Slug = slug.Make(req.Slug)
	} else {
		category.Slug = slug.Make(req.Name)
	}
	category.Description = req.Description
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := s.repo.UpdateCategory(ctx, category); err != nil {
		s.logger.Error("Failed to update service category", zap.Error(err), zap.Uint("id", id))
		return nil, err
	}
	s.logger.Info("Service category updated", zap.Uint("id", category.ID))
	return category, nil
}

func (s *service) AdminDeleteCategory(ctx context.Context, id uint) error {
	// The repository refuses the delete while any service area references
	// the category.
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		s.logger.Warn("Failed to delete service category", zap.Error(err), zap.Uint("id", id))
		return err
	}
	s.logger.Info("Service category deleted", zap.Uint("id", id))
	return nil
}

// --- Public Methods ---

func (s *service) GetActiveCategories(ctx context.Context) ([]ServiceCategory, error) {
	categories, err := s.repo.FindActiveCategories(ctx)
	if err != nil {
		s.logger.Error("Failed to get active service categories", zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Could not retrieve service categories.")
	}
	return categories, nil
}

func (s *service) GetCategoryByIDOrSlug(ctx context.Context, idOrSlug string) (*ServiceCategory, error) {
	if id, err := strconv.ParseUint(idOrSlug, 10, 32); err == nil {
		return s.repo.FindCategoryByID(ctx, uint(id))
	}
	return s.repo.FindCategoryBySlug(ctx, idOrSlug)
}
