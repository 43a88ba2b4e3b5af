// Package verification provides single-use, typed, expiring verification
// codes backed by Redis.
//
// A code is a capability: its id is the secret the user receives by email,
// and redeeming it grants exactly one state transition (marking an email
// verified, or resetting a password). Codes found expired or carrying the
// wrong type are reported identically to missing codes, so callers cannot
// leak a code's existence or purpose through error variance.
//
// The store also keeps a short per-user issuance log per code type, which
// the account service reads to throttle password-reset requests.
package verification
