package authcore

import (
	"context"
	"time"
)

// User is an account record as stored by the integrator's database.
// PasswordHash is an argon2id PHC string and must never leave the service;
// hand [User.Sanitized] to anything user-facing.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Verified     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SanitizedUser is the outward-facing projection of a [User].
type SanitizedUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Sanitized strips the password hash for serialization.
func (u *User) Sanitized() SanitizedUser {
	return SanitizedUser{
		ID:        u.ID,
		Email:     u.Email,
		Verified:  u.Verified,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// UserStore is the persistence contract integrators implement over their
// user database. Email uniqueness is the store's responsibility: Create must
// fail with [ErrEmailTaken] on a duplicate even when Exists raced to false.
// Lookups that miss return [ErrUserNotFound].
type UserStore interface {
	// Exists reports whether an account with the email is registered.
	Exists(ctx context.Context, email string) (bool, error)

	// Create inserts a new unverified user and returns it with the
	// store-assigned ID and timestamps populated.
	Create(ctx context.Context, email, passwordHash string) (*User, error)

	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)

	// SetVerified flips the verified flag and returns the updated user.
	SetVerified(ctx context.Context, id string, verified bool) (*User, error)

	// SetPasswordHash replaces the password hash and returns the updated
	// user.
	SetPasswordHash(ctx context.Context, id, passwordHash string) (*User, error)
}
