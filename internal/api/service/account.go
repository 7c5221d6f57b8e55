// Package service holds the business logic between HTTP handlers and the
// store. Services return sentinel errors; handlers map them to API errors.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/devsphere/quizapi/internal/api/domain"
	"github.com/devsphere/quizapi/internal/api/store"
	"github.com/devsphere/quizapi/pkg/cryptox"
	"github.com/devsphere/quizapi/pkg/idx"
	"github.com/devsphere/quizapi/pkg/jwtx"
)

// MinPasswordLength applies when a logged-in user changes their password.
// Registration accepts any non-empty password for compatibility with
// accounts created before the rule existed.
const MinPasswordLength = 8

var (
	ErrEmailExists = errors.New("service: email already registered")

	// ErrInvalidCredentials covers both unknown email and wrong password so
	// login responses never reveal which one it was.
	ErrInvalidCredentials = errors.New("service: invalid credentials")

	// ErrInvalidRefreshToken covers every refresh failure: bad signature,
	// expired, malformed, or the subject no longer exists.
	ErrInvalidRefreshToken = errors.New("service: invalid refresh token")

	ErrWeakPassword            = errors.New("service: password too short")
	ErrWrongPassword           = errors.New("service: current password incorrect")
	ErrCurrentPasswordRequired = errors.New("service: current password required")
)

// dummyHash is a valid cost-10 bcrypt hash compared against when the login
// email is unknown, so that path pays the same bcrypt cost as a real
// comparison. The result is always discarded.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AccountService implements registration, login, token refresh and profile
// management.
type AccountService struct {
	Store  store.Store
	Tokens *jwtx.Tokens
}

// Register creates an account with the given role and returns its public
// profile. The caller decides which roles are permitted; the public
// endpoint always passes RoleUser while the admin endpoint may pass
// RoleAdmin.
func (s *AccountService) Register(
	ctx context.Context,
	email, password, firstname, lastname string,
	role domain.Role,
) (domain.Profile, error) {
	email = normalizeEmail(email)

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		Firstname:    firstname,
		Lastname:     lastname,
		PasswordHash: hash,
		Roles:        []domain.Role{role},
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Profile{}, ErrEmailExists
		}
		return domain.Profile{}, fmt.Errorf("create user: %w", err)
	}

	return user.PublicProfile(), nil
}

// Login verifies credentials and mints an access/refresh token pair. The
// password is checked even when the user is unknown so both failure paths
// cost about the same.
func (s *AccountService) Login(
	ctx context.Context,
	email, password string,
) (domain.Profile, domain.TokenPair, error) {
	user, err := s.Store.Users().GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			cryptox.VerifyPassword(password, dummyHash)
			return domain.Profile{}, domain.TokenPair{}, ErrInvalidCredentials
		}
		return domain.Profile{}, domain.TokenPair{}, fmt.Errorf("lookup user: %w", err)
	}

	if !cryptox.VerifyPassword(password, user.PasswordHash) {
		return domain.Profile{}, domain.TokenPair{}, ErrInvalidCredentials
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return domain.Profile{}, domain.TokenPair{}, err
	}

	return user.PublicProfile(), pair, nil
}

// RefreshAccess exchanges a valid refresh token for a fresh access token.
// Roles come from the store at refresh time, not from the refresh token,
// so role changes take effect within one access-token lifetime.
func (s *AccountService) RefreshAccess(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.Tokens.Verify(refreshToken, jwtx.KindRefresh)
	if err != nil {
		if errors.Is(err, jwtx.ErrNoSecret) {
			return "", err
		}
		return "", ErrInvalidRefreshToken
	}

	user, err := s.Store.Users().GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidRefreshToken
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	access, err := s.Tokens.IssueAccess(user.ID, domain.RolesToStrings(user.Roles))
	if err != nil {
		return "", fmt.Errorf("issue access token: %w", err)
	}
	return access, nil
}

// GetProfile returns the public profile for a user id.
func (s *AccountService) GetProfile(ctx context.Context, userID string) (domain.Profile, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return domain.Profile{}, err
	}
	return user.PublicProfile(), nil
}

// ProfilePatch carries optional profile updates. Empty string means leave
// the field unchanged.
type ProfilePatch struct {
	Email           string
	Firstname       string
	Lastname        string
	CurrentPassword string
	NewPassword     string
}

// UpdateProfile applies a patch to the authenticated user. Changing the
// password requires the current one and a new one of at least
// MinPasswordLength characters. Field updates and the password swap happen
// in one transaction.
func (s *AccountService) UpdateProfile(
	ctx context.Context,
	userID string,
	patch ProfilePatch,
) (domain.Profile, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return domain.Profile{}, err
	}

	var newHash string
	if patch.NewPassword != "" {
		if patch.CurrentPassword == "" {
			return domain.Profile{}, ErrCurrentPasswordRequired
		}
		if !cryptox.VerifyPassword(patch.CurrentPassword, user.PasswordHash) {
			return domain.Profile{}, ErrWrongPassword
		}
		if len(patch.NewPassword) < MinPasswordLength {
			return domain.Profile{}, ErrWeakPassword
		}

		newHash, err = cryptox.HashPassword(patch.NewPassword)
		if err != nil {
			return domain.Profile{}, fmt.Errorf("hash password: %w", err)
		}
	}

	email := user.Email
	if patch.Email != "" {
		email = normalizeEmail(patch.Email)
	}
	firstname := user.Firstname
	if patch.Firstname != "" {
		firstname = patch.Firstname
	}
	lastname := user.Lastname
	if patch.Lastname != "" {
		lastname = patch.Lastname
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().UpdateProfile(ctx, userID, email, firstname, lastname); err != nil {
			return err
		}
		if newHash != "" {
			return tx.Users().UpdatePasswordHash(ctx, userID, newHash)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Profile{}, ErrEmailExists
		}
		return domain.Profile{}, err
	}

	return s.GetProfile(ctx, userID)
}

func (s *AccountService) issuePair(user domain.User) (domain.TokenPair, error) {
	roles := domain.RolesToStrings(user.Roles)

	access, err := s.Tokens.IssueAccess(user.ID, roles)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := s.Tokens.IssueRefresh(user.ID, roles)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("issue refresh token: %w", err)
	}

	return domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
