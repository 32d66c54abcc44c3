package staff

import (
	"errors"
	"strings"
)

// ErrAdminProtected is returned when a delete targets a user carrying an
// admin role.
var ErrAdminProtected = errors.New("admin accounts cannot be deleted")

// User is a staff account as returned by the backend.
type User struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

// HasAdminRole reports whether any of the user's roles marks an admin,
// compared case-insensitively with and without the ROLE_ prefix.
func (u User) HasAdminRole() bool {
	for _, role := range u.Roles {
		upper := strings.ToUpper(strings.TrimSpace(role))
		if upper == "ADMIN" || upper == "ROLE_ADMIN" {
			return true
		}
	}
	return false
}

// CreateUserRequest is the payload for adding a staff account.
type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks the create payload before it is sent.
func (r CreateUserRequest) Validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return errors.New("username is required")
	}
	if r.Password == "" {
		return errors.New("password is required")
	}
	return nil
}
