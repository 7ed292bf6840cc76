package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"roomreserve/internal/domain"
)

type bcryptVerifier struct {
	hash []byte
}

// NewBcryptVerifier returns a PassphraseVerifier that compares candidates
// against a bcrypt hash of the admin passphrase. bcrypt's comparison does
// not leak timing about the credential.
func NewBcryptVerifier(hash string) domain.PassphraseVerifier {
	return &bcryptVerifier{hash: []byte(hash)}
}

// HashPassphrase hashes a plaintext passphrase for use with
// NewBcryptVerifier. Used at startup when only ADMIN_PASSPHRASE (not the
// hash) is configured.
func HashPassphrase(passphrase string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(passphrase), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash passphrase: %w", err)
	}
	return string(hash), nil
}

func (v *bcryptVerifier) Verify(passphrase string) error {
	if err := bcrypt.CompareHashAndPassword(v.hash, []byte(passphrase)); err != nil {
		return domain.ErrAuthenticationFailed
	}
	return nil
}
