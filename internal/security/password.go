package security

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost keeps hashing around tens of milliseconds; the 72-byte
// bcrypt input limit matches the registration policy's password length cap.
const DefaultBcryptCost = 12

// HashPassword transforms a plaintext password into a salted one-way hash.
// bcrypt generates the per-row salt itself and embeds it in the output.
func HashPassword(password string, cost int) ([]byte, error) {
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}

// VerifyPassword reports whether password matches the stored hash. The
// comparison inside bcrypt is constant-time. Any other outcome, including a
// malformed stored hash, reads as a mismatch.
func VerifyPassword(password string, hash []byte) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}
