// Package password implements password hashing and verification with Argon2id.
//
// # Output format
//
// Hashes are encoded in PHC string format:
//
//	$argon2id$v=19$m=<memory>,t=<time>,p=<threads>$<salt>$<hash>
//
// Verification reads the parameters back out of the stored hash, so cost
// changes never invalidate existing credentials.
//
// # Architecture boundaries
//
// This package owns hashing and verification only. Password policy (length,
// confirmation matching) belongs to the request-validation boundary, and
// persistence of the resulting hash belongs to the user store.
package password
