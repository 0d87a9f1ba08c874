package crypto

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/jokehub/jokehub/internal/common/constants"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password string, digest string) bool
}

// BcryptHasher hashes with a fixed cost; the salt is generated per call and
// embedded in the digest, so verification needs no separate salt storage.
type BcryptHasher struct{}

func (h *BcryptHasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), constants.BcryptCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether password matches digest. A malformed digest is
// reported as a mismatch, never as an error.
func (h *BcryptHasher) Verify(password string, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
