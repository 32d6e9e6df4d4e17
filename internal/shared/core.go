// File: internal/shared/core.go
package shared

import (
	"context"
	"time"

	firebaseauth "firebase.google.com/go/v4/auth"
)

// User type tags describing which side of the marketplace an account is on.
const (
	UserTypeHomeowner       = "homeowner"
	UserTypeServiceProvider = "service_provider"
	UserTypeAdmin           = "admin"
)

// Authorization tiers.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a user in the system. The ID is the opaque UID issued by
// the identity provider.
type User struct {
	ID                string
	Email             *string
	FirstName         string
	LastName          string
	UserType          string
	Role              string
	IsProfileComplete bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
	LastLoginAt       *time.Time
}

// Service defines the interface for user-related business logic.
type Service interface {
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetOrCreateUserFromFirebaseClaims(ctx context.Context, firebaseToken *firebaseauth.Token) (usr *User, wasCreated bool, err error)
}
