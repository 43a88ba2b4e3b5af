// Package authcore is the credential and session lifecycle core behind the
// web application: account registration, login, signed access/refresh token
// pairs with sliding session expiry, email verification, and rate-limited
// password resets.
//
// The package is transport-agnostic. HTTP routing, request validation,
// cookie handling, and mail delivery are external collaborators: callers
// hand validated input to [Service] methods and map the returned typed
// failures ([Error]) to their own status codes. The user database is
// likewise external — integrators implement [UserStore] over their document
// store, which must enforce email uniqueness (see [ErrEmailTaken]). Session
// and verification-code state lives in Redis.
//
// See examples/http-minimal for a complete wiring.
package authcore
