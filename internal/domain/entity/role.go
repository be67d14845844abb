// Package entity contains the core business objects of the project.
package entity

import (
	"slices"
	"strings"
)

// Role represents the type of role an account has in the system.
// It is fixed when the account is created.
type Role string

const (
	// RoleAdmin manages accounts and stores.
	RoleAdmin Role = "ADMIN"
	// RoleUser submits ratings.
	RoleUser Role = "USER"
	// RoleOwner views the ratings of the store it owns.
	RoleOwner Role = "OWNER"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleOwner:
		return true
	default:
		return false
	}
}

// ParseRole accepts a role name in any letter case.
func ParseRole(s string) (Role, bool) {
	role := Role(strings.ToUpper(strings.TrimSpace(s)))

	return role, role.IsValid()
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}

// ToStrings converts Roles to []string.
func (rs Roles) ToStrings() []string {
	result := make([]string, len(rs))
	for i, r := range rs {
		result[i] = r.String()
	}

	return result
}
