package domain

import "time"

// PassphraseVerifier compares a candidate passphrase against the
// configured admin credential. Implementations must not leak timing
// information about the credential.
type PassphraseVerifier interface {
	// Verify returns ErrAuthenticationFailed on mismatch.
	Verify(passphrase string) error
}

// TokenIssuer issues a signed admin session token.
type TokenIssuer interface {
	Issue(expiry time.Duration) (string, error)
}

// TokenVerifier checks an admin session token.
type TokenVerifier interface {
	Verify(token string) error
}
