package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/devsphere/quizapi/internal/api/domain"
	"github.com/devsphere/quizapi/internal/api/store"
	"github.com/devsphere/quizapi/pkg/cryptox"
	"github.com/devsphere/quizapi/pkg/mailx"
	"github.com/devsphere/quizapi/pkg/slogx"
)

// DefaultOTPTTL is how long a password-reset code stays valid.
const DefaultOTPTTL = 10 * time.Minute

// ErrInvalidOrExpiredOTP is returned for every OTP failure: unknown email,
// no challenge in flight, wrong code, or expired code. One error for all
// four keeps the endpoint from leaking which accounts exist.
var ErrInvalidOrExpiredOTP = errors.New("service: invalid or expired OTP")

// ResetService runs the forgot-password flow: issue a one-time code over
// email, verify it, and swap the password.
type ResetService struct {
	Store  store.Store
	Sender mailx.Sender
	OTPTTL time.Duration
}

// ForgotPassword issues a reset code for the account, if one exists. It
// returns nil for unknown emails, and also when the email fails to send;
// callers always acknowledge identically. Send failures are logged so
// operators can still see them.
func (s *ResetService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.Store.Users().GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("lookup user: %w", err)
	}

	code, err := cryptox.GenerateOTP()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}

	challenge := domain.ResetChallenge{
		CodeHash:  cryptox.FingerprintOTP(code),
		ExpiresAt: time.Now().UTC().Add(s.ttl()),
	}
	if err := s.Store.Users().SetResetChallenge(ctx, user.ID, challenge); err != nil {
		return fmt.Errorf("store reset challenge: %w", err)
	}

	subject := "Your password reset code"
	body := fmt.Sprintf(
		"Your one-time password reset code is %s. It expires in %d minutes.",
		code, int(s.ttl().Minutes()),
	)
	if err := s.Sender.Send(ctx, user.Email, subject, body); err != nil {
		slogx.FromContext(ctx).Error("failed to send reset email", "err", err)
	}

	return nil
}

// VerifyOTP checks a code without consuming it. The challenge stays in
// flight so the subsequent reset call can present the same code.
func (s *ResetService) VerifyOTP(ctx context.Context, email, code string) error {
	_, err := s.verify(ctx, email, code)
	return err
}

// ResetPassword consumes a valid code and swaps the password hash. The
// hash swap and challenge clear commit together so a crash can never leave
// a used code behind.
func (s *ResetService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	user, err := s.verify(ctx, email, code)
	if err != nil {
		return err
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().UpdatePasswordHash(ctx, user.ID, hash); err != nil {
			return err
		}
		return tx.Users().ClearResetChallenge(ctx, user.ID)
	})
}

// verify resolves the account and checks the code against the stored
// fingerprint in constant time. Every failure collapses to
// ErrInvalidOrExpiredOTP.
func (s *ResetService) verify(ctx context.Context, email, code string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrInvalidOrExpiredOTP
		}
		return domain.User{}, fmt.Errorf("lookup user: %w", err)
	}

	if user.Reset == nil {
		return domain.User{}, ErrInvalidOrExpiredOTP
	}

	fingerprint := cryptox.FingerprintOTP(code)
	if subtle.ConstantTimeCompare([]byte(fingerprint), []byte(user.Reset.CodeHash)) != 1 {
		return domain.User{}, ErrInvalidOrExpiredOTP
	}

	if user.Reset.Expired(time.Now().UTC()) {
		return domain.User{}, ErrInvalidOrExpiredOTP
	}

	return user, nil
}

// ttl resolves the challenge lifetime. Only the zero value means unset;
// a negative TTL is honored and yields an already-expired challenge.
func (s *ResetService) ttl() time.Duration {
	if s.OTPTTL != 0 {
		return s.OTPTTL
	}
	return DefaultOTPTTL
}
