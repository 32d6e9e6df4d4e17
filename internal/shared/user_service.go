// File: internal/shared/user_service.go
package shared

import "strings"

// FullName returns the user's display name.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// IsAdmin reports whether the user has the admin authorization tier.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
