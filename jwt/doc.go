// Package jwt issues and verifies the signed access/refresh token pair.
//
// Access and refresh tokens are signed with two distinct HS256 secrets so a
// leaked access-token secret cannot be used to forge refresh tokens, and the
// other way around. Both token classes carry an expiry claim and the shared
// "user" audience. Verification failures are plain errors; callers can tell
// an expired token from any other invalid token via [IsExpired].
package jwt
