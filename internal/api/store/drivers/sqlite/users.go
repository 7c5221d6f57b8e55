package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/devsphere/quizapi/internal/api/domain"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, email, firstname, lastname, password_hash, roles,
	reset_token_hash, reset_token_expires, created_at, updated_at`

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, firstname, lastname, password_hash, roles, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.Firstname, u.Lastname, u.PasswordHash,
		encodeRoles(u.Roles), now, now,
	)
	return mapConstraint(err)
}

func (r *usersRepo) UpdateProfile(
	ctx context.Context,
	userID, email, firstname, lastname string,
) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET email = ?, firstname = ?, lastname = ?, updated_at = ? WHERE id = ?`,
		email, firstname, lastname, time.Now().UTC(), userID,
	)
	return mapConstraint(err)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID string, newHash string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		newHash, time.Now().UTC(), userID,
	)
	return err
}

func (r *usersRepo) SetResetChallenge(
	ctx context.Context,
	userID string,
	c domain.ResetChallenge,
) error {
	if c.CodeHash == "" || c.ExpiresAt.IsZero() {
		return fmt.Errorf("sqlite: refusing to store partial reset challenge")
	}

	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET reset_token_hash = ?, reset_token_expires = ?, updated_at = ? WHERE id = ?`,
		c.CodeHash, c.ExpiresAt.UTC(), time.Now().UTC(), userID,
	)
	return err
}

func (r *usersRepo) ClearResetChallenge(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET reset_token_hash = NULL, reset_token_expires = NULL, updated_at = ? WHERE id = ?`,
		time.Now().UTC(), userID,
	)
	return err
}

func scanUser(row *sql.Row) (domain.User, error) {
	var (
		u            domain.User
		roles        string
		resetHash    sql.NullString
		resetExpires sql.NullTime
	)

	err := row.Scan(
		&u.ID, &u.Email, &u.Firstname, &u.Lastname, &u.PasswordHash, &roles,
		&resetHash, &resetExpires, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}

	u.Roles, err = domain.ParseRoles(strings.Fields(roles))
	if err != nil {
		return domain.User{}, fmt.Errorf("sqlite: corrupt role set for user %s: %w", u.ID, err)
	}

	// The schema CHECK keeps the pair together; assemble the challenge only
	// when both halves are present.
	if resetHash.Valid && resetExpires.Valid {
		u.Reset = &domain.ResetChallenge{
			CodeHash:  resetHash.String,
			ExpiresAt: resetExpires.Time,
		}
	}

	return u, nil
}

func encodeRoles(roles []domain.Role) string {
	return strings.Join(domain.RolesToStrings(roles), " ")
}
