package verification

import "time"

// Type is the closed set of code purposes. Keeping this a tagged variant
// rather than a free-form string lets the store filter type-safely.
type Type uint8

const (
	// TypeEmailVerification gates the one-time verified=true flip on a user.
	TypeEmailVerification Type = iota + 1
	// TypePasswordReset gates a password-hash replacement.
	TypePasswordReset
)

// String returns a stable name for logs and debugging.
func (t Type) String() string {
	switch t {
	case TypeEmailVerification:
		return "email_verification"
	case TypePasswordReset:
		return "password_reset"
	default:
		return "unknown"
	}
}

// Code is a single-use capability tied to a user.
type Code struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Type      Type      `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}
