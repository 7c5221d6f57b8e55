package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
)

// OTP code bounds. Codes are always 6 decimal digits, leading digit
// non-zero, so every code has the same length on the wire.
const (
	otpMin = 100000
	otpMax = 999999
)

// GenerateOTP creates a 6-digit one-time code in [100000, 999999] from a
// cryptographically secure source. The plaintext is intended for one out-of
// band delivery and must never be stored; store FingerprintOTP of it instead.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpMax-otpMin+1))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+otpMin), nil
}

// FingerprintOTP returns the deterministic hex-encoded SHA-256 digest of a
// one-time code. Only the fingerprint is persisted, so a leaked user record
// never exposes a usable code.
func FingerprintOTP(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}
