// File: internal/category/model.go
package category

import (
	"time"

	"iserviceseeker_backend/internal/common"
)

// ServiceCategory represents a trade in the fixed service taxonomy
// (plumbing, electrical, roofing and so on).
type ServiceCategory struct {
	common.BaseModel
	Name        string  `gorm:"type:varchar(100);not null;uniqueIndex:idx_service_categories_name,unique"`
	Slug        string  `gorm:"type:varchar(100);not null;uniqueIndex:idx_service_categories_slug,unique"`
	Description *string `gorm:"type:varchar(500)"`
	IsActive    bool    `gorm:"not null;default:true"`
}

// TableName specifies the table name for the ServiceCategory model.
func (ServiceCategory) TableName() string {
	return "service_categories"
}

// DefaultTaxonomy is the canonical seed set. Entries are seeded by explicit
// ID in order, so IDs 1..8 stay stable across restarts.
var DefaultTaxonomy = []string{
	"General Contracting",
	"Plumbing",
	"Electrical",
	"HVAC",
	"Roofing",
	"Flooring",
	"Painting",
	"Landscaping",
}

// --- DTOs ---

// CategoryResponse defines the structure for category data sent in API responses.
type CategoryResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToCategoryResponse converts a ServiceCategory model to a CategoryResponse DTO.
func ToCategoryResponse(category *ServiceCategory) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Slug:        category.Slug,
		Description: category.Description,
		IsActive:    category.IsActive,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}

// AdminCreateCategoryRequest for admin creating categories.
type AdminCreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Slug        string  `json:"slug" binding:"omitempty,max=100"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=500"`
	IsActive    *bool   `json:"is_active,omitempty"`
}
