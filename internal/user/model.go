// File: internal/user/model.go
package user

import (
	"strings"
	"time"
)

// User represents the user model in the database. The primary key is the
// opaque UID issued by the identity provider, so no local ID is generated.
type User struct {
	ID                string  `gorm:"type:varchar(128);primaryKey"`
	Email             *string `gorm:"type:varchar(255);uniqueIndex"`
	FirstName         string  `gorm:"type:varchar(100);not null"`
	LastName          string  `gorm:"type:varchar(100);not null"`
	UserType          string  `gorm:"type:varchar(50);not null;default:'homeowner'"`
	Role              string  `gorm:"type:varchar(50);not null;default:'user'"`
	IsProfileComplete bool    `gorm:"not null;default:false"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
	LastLoginAt       *time.Time
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Role is the bootstrap table of identity roles. Rows are created if absent
// on every startup.
type Role struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"type:varchar(50);not null;uniqueIndex"`
}

// TableName specifies the table name for the Role model.
func (Role) TableName() string {
	return "roles"
}

// DefaultRoles are the identity roles the application recognizes.
var DefaultRoles = []string{"admin", "homeowner", "service_provider"}

// UpdateUserNamesRequest defines the structure for updating the user's own
// basic details.
type UpdateUserNamesRequest struct {
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"required,max=100"`
}
