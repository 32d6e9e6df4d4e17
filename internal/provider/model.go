// File: internal/provider/model.go
package provider

import (
	"time"

	"iserviceseeker_backend/internal/category"
	"iserviceseeker_backend/internal/common"
)

// Membership roles within a service provider organization.
const (
	RoleMember   = "member"
	RoleManager  = "manager"
	RoleOwner    = "owner"
	RoleEmployee = "employee"
	RolePartner  = "partner"
)

// ValidRoles enumerates the accepted membership roles.
var ValidRoles = []string{RoleMember, RoleManager, RoleOwner, RoleEmployee, RolePartner}

// IsValidRole reports whether the given membership role is recognized.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

// DerivePermissions maps a membership role to its default permission flags.
// Owners and managers get everything; any role above plain member can manage
// bookings.
func DerivePermissions(role string) (canManageProfile, canManageBookings, canViewReports bool) {
	canManageProfile = role == RoleOwner || role == RoleManager
	canManageBookings = role != RoleMember
	canViewReports = role == RoleOwner || role == RoleManager
	return
}

// ServiceProviderProfile is a contractor organization. It is linked to users
// through Membership rows, not owned by a single user.
type ServiceProviderProfile struct {
	common.BaseModel
	CompanyName         string     `gorm:"type:varchar(200);not null;index"`
	LicenseNumber       *string    `gorm:"type:varchar(50);uniqueIndex:idx_service_provider_profiles_license_number,unique"`
	LicenseDocumentPath *string    `gorm:"type:varchar(500)"`
	BusinessAddress     *string    `gorm:"type:varchar(500)"`
	City                *string    `gorm:"type:varchar(100)"`
	State               *string    `gorm:"type:varchar(50)"`
	ZipCode             *string    `gorm:"type:varchar(20)"`
	ServiceRadius       float64    `gorm:"type:decimal(10,2);not null;default:50"`
	Description         *string    `gorm:"type:varchar(1000)"`
	Website             *string    `gorm:"type:varchar(255)"`
	IsVerified          bool       `gorm:"not null;default:false"`
	VerifiedAt          *time.Time
	IsActive            bool          `gorm:"not null;default:true"`
	ServiceAreas        []ServiceArea `gorm:"foreignKey:ServiceProviderProfileID;constraint:OnDelete:CASCADE"`
	Memberships         []Membership  `gorm:"foreignKey:ServiceProviderProfileID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the ServiceProviderProfile model.
func (ServiceProviderProfile) TableName() string {
	return "service_provider_profiles"
}

// userAccount pins user-side foreign keys to the users table. The full model
// lives in internal/user, which depends on this package and cannot be
// imported here.
type userAccount struct {
	ID string `gorm:"type:varchar(128);primaryKey"`
}

// TableName maps userAccount onto the users table.
func (userAccount) TableName() string {
	return "users"
}

// Membership is the junction row connecting a user to a provider profile.
// At most one row ever exists per (user, profile) pair; leaving deactivates
// the row and rejoining reactivates it in place.
type Membership struct {
	common.BaseModel
	UserID                   string      `gorm:"type:varchar(128);not null;uniqueIndex:idx_user_service_providers_user_profile,unique"`
	User                     userAccount `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	ServiceProviderProfileID uint        `gorm:"not null;uniqueIndex:idx_user_service_providers_user_profile,unique"`
	Role                     string      `gorm:"type:varchar(50);not null;default:'member'"`
	IsActive                 bool        `gorm:"not null;default:true"`
	JoinedAt                 time.Time   `gorm:"not null"`
	LeftAt                   *time.Time
	CanManageProfile         bool `gorm:"not null;default:false"`
	CanManageBookings        bool `gorm:"not null;default:false"`
	CanViewReports           bool `gorm:"not null;default:false"`
}

// TableName specifies the table name for the Membership model.
func (Membership) TableName() string {
	return "user_service_providers"
}

// ServiceArea assigns a provider profile to one service category. The
// category FK is RESTRICT so taxonomy entries cannot be deleted out from
// under providers.
type ServiceArea struct {
	common.BaseModel
	ServiceProviderProfileID uint                     `gorm:"not null;index"`
	ServiceCategoryID        uint                     `gorm:"not null;index"`
	ServiceCategory          category.ServiceCategory `gorm:"foreignKey:ServiceCategoryID;constraint:OnDelete:RESTRICT"`
	IsActive                 bool                     `gorm:"not null;default:true"`
}

// TableName specifies the table name for the ServiceArea model.
func (ServiceArea) TableName() string {
	return "service_areas"
}

// --- DTOs ---

// CompleteProfileRequest is the payload for finishing provider onboarding.
type CompleteProfileRequest struct {
	CompanyName     string  `json:"company_name" binding:"required,max=200"`
	LicenseNumber   *string `json:"license_number,omitempty" binding:"omitempty,max=50"`
	BusinessAddress *string `json:"business_address,omitempty" binding:"omitempty,max=500"`
	City            *string `json:"city,omitempty" binding:"omitempty,max=100"`
	State           *string `json:"state,omitempty" binding:"omitempty,max=50"`
	ZipCode         *string `json:"zip_code,omitempty" binding:"omitempty,max=20"`
	ServiceRadius   *float64 `json:"service_radius,omitempty" binding:"omitempty,gt=0"`
	Description     *string `json:"description,omitempty" binding:"omitempty,max=1000"`
	Website         *string `json:"website,omitempty" binding:"omitempty,max=255"`
	CategoryIDs     []uint  `json:"category_ids" binding:"required,min=1"`
	Role            string  `json:"role" binding:"omitempty,oneof=member manager owner employee partner"`
}

// UpdateProfileRequest updates mutable profile fields; absent fields are
// left untouched.
type UpdateProfileRequest struct {
	CompanyName     *string  `json:"company_name,omitempty" binding:"omitempty,max=200"`
	LicenseNumber   *string  `json:"license_number,omitempty" binding:"omitempty,max=50"`
	BusinessAddress *string  `json:"business_address,omitempty" binding:"omitempty,max=500"`
	City            *string  `json:"city,omitempty" binding:"omitempty,max=100"`
	State           *string  `json:"state,omitempty" binding:"omitempty,max=50"`
	ZipCode         *string  `json:"zip_code,omitempty" binding:"omitempty,max=20"`
	ServiceRadius   *float64 `json:"service_radius,omitempty" binding:"omitempty,gt=0"`
	Description     *string  `json:"description,omitempty" binding:"omitempty,max=1000"`
	Website         *string  `json:"website,omitempty" binding:"omitempty,max=255"`
}

// AddMemberRequest is the payload for adding a user to a provider profile.
// Permission flags default from the role when omitted.
type AddMemberRequest struct {
	UserID            string `json:"user_id" binding:"required"`
	Role              string `json:"role" binding:"omitempty,oneof=member manager owner employee partner"`
	CanManageProfile  *bool  `json:"can_manage_profile,omitempty"`
	CanManageBookings *bool  `json:"can_manage_bookings,omitempty"`
	CanViewReports    *bool  `json:"can_view_reports,omitempty"`
}

// ProfileResponse defines the structure for provider profile API responses.
type ProfileResponse struct {
	ID                  uint                  `json:"id"`
	CompanyName         string                `json:"company_name"`
	LicenseNumber       *string               `json:"license_number,omitempty"`
	LicenseDocumentPath *string               `json:"license_document_path,omitempty"`
	BusinessAddress     *string               `json:"business_address,omitempty"`
	City                *string               `json:"city,omitempty"`
	State               *string               `json:"state,omitempty"`
	ZipCode             *string               `json:"zip_code,omitempty"`
	ServiceRadius       float64               `json:"service_radius"`
	Description         *string               `json:"description,omitempty"`
	Website             *string               `json:"website,omitempty"`
	IsVerified          bool                  `json:"is_verified"`
	VerifiedAt          *time.Time            `json:"verified_at,omitempty"`
	IsActive            bool                  `json:"is_active"`
	ServiceAreas        []ServiceAreaResponse `json:"service_areas,omitempty"`
	CreatedAt           time.Time             `json:"created_at"`
	UpdatedAt           time.Time             `json:"updated_at"`
}

// ServiceAreaResponse defines the structure for service area data.
type ServiceAreaResponse struct {
	ID           uint    `json:"id"`
	CategoryID   uint    `json:"category_id"`
	CategoryName string  `json:"category_name,omitempty"`
	CategorySlug string  `json:"category_slug,omitempty"`
	IsActive     bool    `json:"is_active"`
}

// MembershipResponse defines the structure for membership data.
type MembershipResponse struct {
	ID                       uint       `json:"id"`
	UserID                   string     `json:"user_id"`
	ServiceProviderProfileID uint       `json:"service_provider_profile_id"`
	Role                     string     `json:"role"`
	IsActive                 bool       `json:"is_active"`
	JoinedAt                 time.Time  `json:"joined_at"`
	LeftAt                   *time.Time `json:"left_at,omitempty"`
	CanManageProfile         bool       `json:"can_manage_profile"`
	CanManageBookings        bool       `json:"can_manage_bookings"`
	CanViewReports           bool       `json:"can_view_reports"`
}

// ToProfileResponse converts a ServiceProviderProfile model to a
// ProfileResponse DTO.
func ToProfileResponse(p *ServiceProviderProfile) ProfileResponse {
	areas := make([]ServiceAreaResponse, len(p.ServiceAreas))
	for i, a := range p.ServiceAreas {
		areas[i] = ServiceAreaResponse{
			ID:           a.ID,
			CategoryID:   a.ServiceCategoryID,
			CategoryName: a.ServiceCategory.Name,
			CategorySlug: a.ServiceCategory.Slug,
			IsActive:     a.IsActive,
		}
	}
	return ProfileResponse{
		ID:                  p.ID,
		CompanyName:         p.CompanyName,
		LicenseNumber:       p.LicenseNumber,
		LicenseDocumentPath: p.LicenseDocumentPath,
		BusinessAddress:     p.BusinessAddress,
		City:                p.City,
		State:               p.State,
		ZipCode:             p.ZipCode,
		ServiceRadius:       p.ServiceRadius,
		Description:         p.Description,
		Website:             p.Website,
		IsVerified:          p.IsVerified,
		VerifiedAt:          p.VerifiedAt,
		IsActive:            p.IsActive,
		ServiceAreas:        areas,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}

// ToMembershipResponse converts a Membership model to a MembershipResponse DTO.
func ToMembershipResponse(m *Membership) MembershipResponse {
	return MembershipResponse{
		ID:                       m.ID,
		UserID:                   m.UserID,
		ServiceProviderProfileID: m.ServiceProviderProfileID,
		Role:                     m.Role,
		IsActive:                 m.IsActive,
		JoinedAt:                 m.JoinedAt,
		LeftAt:                   m.LeftAt,
		CanManageProfile:         m.CanManageProfile,
		CanManageBookings:        m.CanManageBookings,
		CanViewReports:           m.CanViewReports,
	}
}
