package domain

import (
	"errors"
	"strings"
)

const (
	RoleClient = "CLIENT"
	RoleVet    = "VET"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingToken       = errors.New("auth response missing token")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrForbidden          = errors.New("access forbidden")
)

// User models the authenticated principal as the VetLink backend reports it.
// The gateway never mutates individual fields of an authenticated user; the
// whole record is replaced or dropped.
type User struct {
	ID       string   `json:"user_id"`
	Name     string   `json:"name"`
	Email    string   `json:"email,omitempty"`
	Role     string   `json:"role"`
	Phone    string   `json:"phone,omitempty"`
	Services []string `json:"services,omitempty"` // vet accounts only
	Location string   `json:"location,omitempty"`
}

// NormalizeRole maps any casing of a role string to its canonical uppercase
// form. Roles are always normalized before they are stored or compared.
func NormalizeRole(role string) string {
	return strings.ToUpper(strings.TrimSpace(role))
}

// Normalized returns a copy of the user with the role in canonical form.
func (u User) Normalized() User {
	u.Role = NormalizeRole(u.Role)
	return u
}

// HasRole reports whether the user's role matches the required one,
// case-insensitively. An empty requirement matches any role.
func (u User) HasRole(required string) bool {
	if required == "" {
		return true
	}
	return NormalizeRole(u.Role) == NormalizeRole(required)
}
