// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Account is a person who can sign in: an administrator, a rater or a store owner.
type Account struct {
	ID           uuid.UUID // Immutable surrogate key.
	Name         string    // Display name, 20-60 characters.
	Email        string    // Unique login identifier, stored lowercased.
	PasswordHash string    // Output of the password hasher, never the plaintext.
	Address      string    // Free text, at most 400 characters.
	Role         Role      // Fixed at creation.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NormalizeEmail trims and lowercases an email so uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// AccountSummary is the public view of an account, without credentials.
type AccountSummary struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Address string    `json:"address"`
	Role    Role      `json:"role"`
}

// Summary drops the password hash and timestamps.
func (a *Account) Summary() AccountSummary {
	return AccountSummary{
		ID:      a.ID,
		Name:    a.Name,
		Email:   a.Email,
		Address: a.Address,
		Role:    a.Role,
	}
}
