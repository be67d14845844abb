// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"storerating/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to self-register as a USER.
type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=20,max=60"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=16"`
	Address  string `json:"address" validate:"required,max=400"`
}

// LoginInput defines the data required to log in.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	// ClientIP scopes login throttling; it never comes from the body.
	ClientIP string `json:"-"`
}

// ChangePasswordInput carries the replacement password.
type ChangePasswordInput struct {
	NewPassword string `json:"newPassword" validate:"required,min=8,max=16"`
}

// --- Output DTOs ---

// AuthOutput is returned by register and login.
type AuthOutput struct {
	Token     string                `json:"token"`
	ExpiresAt time.Time             `json:"expiresAt"`
	Account   entity.AccountSummary `json:"user"`
}

// AuthUsecase covers account sign-up, sign-in and credential lifecycle.
type AuthUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)
	// Login fails with the same invalid-credentials error whether the email
	// is unknown or the password is wrong.
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)
	// Logout revokes the presented token until it would have expired.
	Logout(ctx context.Context, identity *entity.Identity) error
	// ChangePassword rehashes the password and revokes every token of the
	// account issued before the change.
	ChangePassword(ctx context.Context, identity *entity.Identity, input *ChangePasswordInput) error
}
