// File: tests/integration/taxonomy_test.go
package integration

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"iserviceseeker_backend/internal/category"
	"iserviceseeker_backend/internal/common"
	"iserviceseeker_backend/internal/config"
	"iserviceseeker_backend/internal/platform/database"
	"iserviceseeker_backend/internal/provider"
)

func TestTaxonomySeededOnceWithStableIDs(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	var categories []category.ServiceCategory
	require.NoError(t, db.Order("id ASC").Find(&categories).Error)
	require.Len(t, categories, 8)

	for i, name := range category.DefaultTaxonomy {
		assert.Equal(t, uint(i+1), categories[i].ID)
		assert.Equal(t, name, categories[i].Name)
		assert.True(t, categories[i].IsActive)
		assert.NotEmpty(t, categories[i].Slug)
	}

	// A second seed run is a no-op: every entry already exists under its ID.
	require.NoError(t, database.Seed(ctx, db, &config.Config{}, zap.NewNop()))
	var count int64
	require.NoError(t, db.Model(&category.ServiceCategory{}).Count(&count).Error)
	assert.Equal(t, int64(8), count)
}

func TestTaxonomyReseedRestoresStableIDs(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	// Empty the taxonomy, then seed again as a later startup would.
	require.NoError(t, db.Exec("DELETE FROM service_categories").Error)
	require.NoError(t, database.Seed(ctx, db, &config.Config{}, zap.NewNop()))

	var categories []category.ServiceCategory
	require.NoError(t, db.Order("id ASC").Find(&categories).Error)
	require.Len(t, categories, 8)
	for i, name := range category.DefaultTaxonomy {
		assert.Equal(t, uint(i+1), categories[i].ID)
		assert.Equal(t, name, categories[i].Name)
	}

	// A partial gap is refilled under the same ID too.
	require.NoError(t, db.Exec("DELETE FROM service_categories WHERE id = ?", 3).Error)
	require.NoError(t, database.Seed(ctx, db, &config.Config{}, zap.NewNop()))
	var electrical category.ServiceCategory
	require.NoError(t, db.First(&electrical, "id = ?", 3).Error)
	assert.Equal(t, "Electrical", electrical.Name)
}

func TestCategoryLookupByIDOrSlug(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := category.NewService(category.NewGORMRepository(db), zap.NewNop())

	byID, err := svc.GetCategoryByIDOrSlug(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "Plumbing", byID.Name)

	bySlug, err := svc.GetCategoryByIDOrSlug(ctx, "plumbing")
	require.NoError(t, err)
	assert.Equal(t, byID.ID, bySlug.ID)

	_, err = svc.GetCategoryByIDOrSlug(ctx, "no-such-trade")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestCategoryDeleteRestrictedWhileReferenced(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	createTestUser(t, db, "owner-1", "Pat", "Owner")
	providerSvc := provider.NewService(provider.NewGORMRepository(db), nil, testConfig(), zap.NewNop())
	_, err := providerSvc.CompleteProfile(ctx, "owner-1", provider.CompleteProfileRequest{
		CompanyName: "Acme Plumbing",
		CategoryIDs: []uint{2},
	})
	require.NoError(t, err)

	categorySvc := category.NewService(category.NewGORMRepository(db), zap.NewNop())

	err = categorySvc.AdminDeleteCategory(ctx, 2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrConflict))

	// Unreferenced categories delete cleanly.
	require.NoError(t, categorySvc.AdminDeleteCategory(ctx, 8))
	_, err = categorySvc.GetCategoryByIDOrSlug(ctx, "8")
	assert.True(t, errors.Is(err, common.ErrNotFound))
}
