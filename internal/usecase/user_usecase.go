// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"taskman/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Name     string `json:"name"`
	Age      int    `json:"age"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginInput defines the data required to log in.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserInput is the partial-update type for PATCH /users/me. Nil fields
// are left untouched. The set of settable fields is the closed whitelist
// checked by the handler before this struct is populated.
type UpdateUserInput struct {
	Name     *string `json:"name"`
	Age      *int    `json:"age"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// --- Output DTOs ---

// AuthOutput returns the public user view plus a freshly issued token.
type AuthOutput struct {
	User  entity.PublicView `json:"user"`
	Token string            `json:"token"`
}

// UserUsecase defines the interface for user-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	// Register creates the account, sends the welcome email (best-effort)
	// and issues the first token.
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)

	// Login verifies credentials and issues a new token. Unknown email and
	// wrong password are reported identically.
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)

	// Logout invalidates exactly the token used for the current request.
	Logout(ctx context.Context, user *entity.User, token string) error

	// LogoutAll invalidates every live token of the user.
	LogoutAll(ctx context.Context, user *entity.User) error

	// List returns the public view of every account.
	List(ctx context.Context) ([]entity.PublicView, error)

	// Update applies a whitelisted partial update to the user, re-running
	// validation and password hashing.
	Update(ctx context.Context, user *entity.User, input *UpdateUserInput) (entity.PublicView, error)

	// Delete removes the account, cascading task deletion, and sends the
	// farewell email (best-effort).
	Delete(ctx context.Context, user *entity.User) error

	// SetAvatar normalizes the uploaded image and stores it on the user.
	SetAvatar(ctx context.Context, user *entity.User, data []byte) error

	// RemoveAvatar clears the stored avatar; fails if none is set.
	RemoveAvatar(ctx context.Context, user *entity.User) error

	// GetAvatar returns the stored PNG bytes for any user id.
	GetAvatar(ctx context.Context, id string) ([]byte, error)
}
