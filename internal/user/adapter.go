// File: internal/user/adapter.go
package user

import (
	"strings"

	firebaseauth "firebase.google.com/go/v4/auth"

	"iserviceseeker_backend/internal/shared"
)

// DBToShared converts a GORM user.User model to a shared.User DTO.
func DBToShared(dbUser *User) *shared.User {
	if dbUser == nil {
		return nil
	}
	return &shared.User{
		ID:                dbUser.ID,
		Email:             dbUser.Email,
		FirstName:         dbUser.FirstName,
		LastName:          dbUser.LastName,
		UserType:          dbUser.UserType,
		Role:              dbUser.Role,
		IsProfileComplete: dbUser.IsProfileComplete,
		CreatedAt:         dbUser.CreatedAt,
		UpdatedAt:         dbUser.UpdatedAt,
		LastLoginAt:       dbUser.LastLoginAt,
	}
}

// claimsIdentity extracts the email and a first/last name split from the
// token claims. The "name" claim is a single display name; everything after
// the first space becomes the last name.
func claimsIdentity(token *firebaseauth.Token) (email, firstName, lastName string) {
	if v, ok := token.Claims["email"].(string); ok {
		email = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := token.Claims["name"].(string); ok {
		parts := strings.Fields(v)
		if len(parts) > 0 {
			firstName = parts[0]
		}
		if len(parts) > 1 {
			lastName = strings.Join(parts[1:], " ")
		}
	}
	return email, firstName, lastName
}
