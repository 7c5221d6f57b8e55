package store

import (
	"context"
	"errors"

	"github.com/devsphere/quizapi/internal/api/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for
// now) implement this. Sub-repositories keep concerns tidy and testable.
type Store interface {
	Users() Users

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. This is the
	// recommended way to run multi-step writes that must be atomic
	// (password reset consumes the challenge and swaps the hash together).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during login and the reset flows.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	// Returns ErrAlreadyExists when the email is taken; the UNIQUE index
	// settles concurrent registrations for the same email.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateProfile mutates email/firstname/lastname and bumps updated_at.
	UpdateProfile(ctx context.Context, userID, email, firstname, lastname string) error

	// UpdatePasswordHash sets the password_hash (bcrypt) and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// SetResetChallenge stores the hash+expiry pair, replacing any
	// challenge already in flight.
	SetResetChallenge(ctx context.Context, userID string, c domain.ResetChallenge) error

	// ClearResetChallenge removes both reset fields together.
	ClearResetChallenge(ctx context.Context, userID string) error
}
