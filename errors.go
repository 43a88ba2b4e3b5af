package authcore

import (
	"errors"
	"fmt"
)

// Kind classifies a failure for boundary mapping (HTTP status, UX copy).
// The set is closed; boundaries switch on it exhaustively.
type Kind int

const (
	// KindInternal is a downstream dependency failure, such as mail
	// dispatch failing on the password-reset request path.
	KindInternal Kind = iota
	// KindConflict is a duplicate registration.
	KindConflict
	// KindUnauthorized covers bad credentials, invalid or expired tokens,
	// and expired sessions.
	KindUnauthorized
	// KindNotFound covers missing/expired/wrong-type verification codes and
	// sessions not owned by the caller.
	KindNotFound
	// KindTooManyRequests is the password-reset issuance throttle.
	KindTooManyRequests
)

// String returns the stable machine-readable name of the kind.
func (k Kind) String() string {
	switch k {
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindTooManyRequests:
		return "too_many_requests"
	default:
		return "internal"
	}
}

// Error is a typed failure raised at the point of detection and propagated
// unmodified to the boundary. Message is safe to show to users; Err, when
// set, carries the underlying cause for logs and [errors.Is] checks.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the failure kind from err, defaulting to [KindInternal]
// for untyped errors.
func KindOf(err error) Kind {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Kind
	}
	return KindInternal
}

func fail(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func failWith(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// ErrEmailTaken must be returned by [UserStore.Create] when the email is
// already registered. The store-level uniqueness constraint is the
// authoritative guard against the check-then-create race; the service's
// pre-check only provides a friendlier fast path.
var ErrEmailTaken = errors.New("email already in use")

// ErrUserNotFound must be returned by [UserStore] lookups that miss.
var ErrUserNotFound = errors.New("user not found")
