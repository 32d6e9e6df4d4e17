// File: internal/homeowner/model.go
package homeowner

import (
	"time"

	"iserviceseeker_backend/internal/common"
)

// userAccount pins the profile's user FK to the users table. The full model
// lives in internal/user, which depends on this package and cannot be
// imported here.
type userAccount struct {
	ID string `gorm:"type:varchar(128);primaryKey"`
}

// TableName maps userAccount onto the users table.
func (userAccount) TableName() string {
	return "users"
}

// HomeownerProfile holds the homeowner-side profile data, one row per user.
type HomeownerProfile struct {
	common.BaseModel
	UserID                    string      `gorm:"type:varchar(128);not null;uniqueIndex:idx_homeowner_profiles_user_id,unique"`
	User                      userAccount `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Address                   *string     `gorm:"type:varchar(500)"`
	City                      *string     `gorm:"type:varchar(100)"`
	State                     *string     `gorm:"type:varchar(50)"`
	ZipCode                   *string     `gorm:"type:varchar(20)"`
	ReceiveEmailNotifications bool        `gorm:"not null;default:true"`
	ReceiveSMSNotifications   bool        `gorm:"not null;default:false"`
}

// TableName specifies the table name for the HomeownerProfile model.
func (HomeownerProfile) TableName() string {
	return "homeowner_profiles"
}

// --- DTOs ---

// CompleteProfileRequest is the payload for finishing homeowner onboarding.
type CompleteProfileRequest struct {
	Address                   *string `json:"address,omitempty" binding:"omitempty,max=500"`
	City                      *string `json:"city,omitempty" binding:"omitempty,max=100"`
	State                     *string `json:"state,omitempty" binding:"omitempty,max=50"`
	ZipCode                   *string `json:"zip_code,omitempty" binding:"omitempty,max=20"`
	ReceiveEmailNotifications *bool   `json:"receive_email_notifications,omitempty"`
	ReceiveSMSNotifications   *bool   `json:"receive_sms_notifications,omitempty"`
}

// UpdateProfileRequest shares the shape of the completion payload; every
// field is optional and absent fields are left untouched.
type UpdateProfileRequest = CompleteProfileRequest

// ProfileResponse defines the structure for homeowner profile API responses.
type ProfileResponse struct {
	ID                        uint      `json:"id"`
	UserID                    string    `json:"user_id"`
	Address                   *string   `json:"address,omitempty"`
	City                      *string   `json:"city,omitempty"`
	State                     *string   `json:"state,omitempty"`
	ZipCode                   *string   `json:"zip_code,omitempty"`
	ReceiveEmailNotifications bool      `json:"receive_email_notifications"`
	ReceiveSMSNotifications   bool      `json:"receive_sms_notifications"`
	CreatedAt                 time.Time `json:"created_at"`
	UpdatedAt                 time.Time `json:"updated_at"`
}

// ToProfileResponse converts a HomeownerProfile model to a ProfileResponse DTO.
func ToProfileResponse(p *HomeownerProfile) ProfileResponse {
	return ProfileResponse{
		ID:                        p.ID,
		UserID:                    p.UserID,
		Address:                   p.Address,
		City:                      p.City,
		State:                     p.State,
		ZipCode:                   p.ZipCode,
		ReceiveEmailNotifications: p.ReceiveEmailNotifications,
		ReceiveSMSNotifications:   p.ReceiveSMSNotifications,
		CreatedAt:                 p.CreatedAt,
		UpdatedAt:                 p.UpdatedAt,
	}
}
