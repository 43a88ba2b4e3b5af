// Package session provides Redis-backed persistence for logged-in sessions.
//
// A session represents one logged-in device or browser window, independent of
// token lifetime: deleting the session invalidates all future refreshes minted
// against it. Records expire through the Redis TTL and, as a second line,
// through a wall-clock expiry check at read time — there is no background
// sweeper, and an expired row that has not been swept yet is treated as gone.
//
// # Architecture boundaries
//
// This package owns the [Store] (Redis operations) and the [Session] model.
// It does not interpret tokens or decide when a session's expiry should
// slide — that policy belongs to the account service.
package session
