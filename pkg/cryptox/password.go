package cryptox

import (
	"golang.org/x/crypto/bcrypt"
)

// passwordCost is the fixed bcrypt work factor. Bumping it only affects
// newly stored hashes; existing hashes keep verifying because the cost is
// embedded in the hash itself.
const passwordCost = 10

// HashPassword derives a salted bcrypt hash from a plaintext password.
// The per-call random salt is embedded in the returned string.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether the plaintext password matches the stored
// bcrypt hash. A mismatch or a malformed hash both return false; this never
// leaks which of the two happened.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
