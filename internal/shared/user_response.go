// File: internal/shared/user_response.go
package shared

import (
	"time"
)

// UserResponse defines the structure for user data sent in API responses.
type UserResponse struct {
	ID                string     `json:"id"`
	Email             *string    `json:"email,omitempty"`
	FirstName         string     `json:"first_name"`
	LastName          string     `json:"last_name"`
	FullName          string     `json:"full_name"`
	UserType          string     `json:"user_type"`
	Role              string     `json:"role"`
	IsProfileComplete bool       `json:"is_profile_complete"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	LastLoginAt       *time.Time `json:"last_login_at,omitempty"`
}

// ToUserResponse converts a shared.User to a UserResponse DTO.
func ToUserResponse(svUser *User) UserResponse {
	return UserResponse{
		ID:                svUser.ID,
		Email:             svUser.Email,
		FirstName:         svUser.FirstName,
		LastName:          svUser.LastName,
		FullName:          svUser.FullName(),
		UserType:          svUser.UserType,
		Role:              svUser.Role,
		IsProfileComplete: svUser.IsProfileComplete,
		CreatedAt:         svUser.CreatedAt,
		UpdatedAt:         svUser.UpdatedAt,
		LastLoginAt:       svUser.LastLoginAt,
	}
}
