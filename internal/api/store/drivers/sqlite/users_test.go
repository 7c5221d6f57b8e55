package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devsphere/quizapi/internal/api/domain"
	"github.com/devsphere/quizapi/internal/api/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	st, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func seedUser(t *testing.T, st *Store, id, email string) domain.User {
	t.Helper()

	u := domain.User{
		ID:           id,
		Email:        email,
		Firstname:    "Ada",
		Lastname:     "Lovelace",
		PasswordHash: "$2a$10$fakefakefakefakefakefake",
		Roles:        []domain.Role{domain.RoleUser},
	}
	require.NoError(t, st.Users().CreateUser(t.Context(), u))
	return u
}

func TestCreateAndGetUser(t *testing.T) {
	st := newTestStore(t)
	seeded := seedUser(t, st, "user-1", "ada@example.com")

	byEmail, err := st.Users().GetUserByEmail(t.Context(), "ada@example.com")
	require.NoError(t, err)
	require.Equal(t, seeded.ID, byEmail.ID)
	require.Equal(t, seeded.PasswordHash, byEmail.PasswordHash)
	require.Equal(t, []domain.Role{domain.RoleUser}, byEmail.Roles)
	require.Nil(t, byEmail.Reset)
	require.False(t, byEmail.CreatedAt.IsZero())

	byID, err := st.Users().GetUserByID(t.Context(), "user-1")
	require.NoError(t, err)
	require.Equal(t, byEmail.Email, byID.Email)
}

func TestGetUserNotFound(t *testing.T) {
	st := newTestStore(t)

	_, err := st.Users().GetUserByEmail(t.Context(), "nobody@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = st.Users().GetUserByID(t.Context(), "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	st := newTestStore(t)
	seedUser(t, st, "user-1", "ada@example.com")

	dup := domain.User{
		ID:           "user-2",
		Email:        "ada@example.com",
		PasswordHash: "hash",
		Roles:        []domain.Role{domain.RoleUser},
	}
	err := st.Users().CreateUser(t.Context(), dup)
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestUpdateProfile(t *testing.T) {
	st := newTestStore(t)
	seedUser(t, st, "user-1", "ada@example.com")

	err := st.Users().UpdateProfile(t.Context(), "user-1", "countess@example.com", "Augusta", "King")
	require.NoError(t, err)

	u, err := st.Users().GetUserByID(t.Context(), "user-1")
	require.NoError(t, err)
	require.Equal(t, "countess@example.com", u.Email)
	require.Equal(t, "Augusta", u.Firstname)
	require.Equal(t, "King", u.Lastname)
}

func TestUpdateProfileEmailConflict(t *testing.T) {
	st := newTestStore(t)
	seedUser(t, st, "user-1", "ada@example.com")
	seedUser(t, st, "user-2", "grace@example.com")

	err := st.Users().UpdateProfile(t.Context(), "user-2", "ada@example.com", "", "")
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestResetChallengeRoundTrip(t *testing.T) {
	st := newTestStore(t)
	seedUser(t, st, "user-1", "ada@example.com")

	expires := time.Now().UTC().Add(10 * time.Minute).Truncate(time.Second)
	challenge := domain.ResetChallenge{CodeHash: "abc123", ExpiresAt: expires}
	require.NoError(t, st.Users().SetResetChallenge(t.Context(), "user-1", challenge))

	u, err := st.Users().GetUserByID(t.Context(), "user-1")
	require.NoError(t, err)
	require.NotNil(t, u.Reset)
	require.Equal(t, "abc123", u.Reset.CodeHash)
	require.WithinDuration(t, expires, u.Reset.ExpiresAt, time.Second)

	require.NoError(t, st.Users().ClearResetChallenge(t.Context(), "user-1"))

	u, err = st.Users().GetUserByID(t.Context(), "user-1")
	require.NoError(t, err)
	require.Nil(t, u.Reset)
}

func TestSetResetChallengeRefusesPartial(t *testing.T) {
	st := newTestStore(t)
	seedUser(t, st, "user-1", "ada@example.com")

	err := st.Users().SetResetChallenge(t.Context(), "user-1", domain.ResetChallenge{CodeHash: "abc"})
	require.Error(t, err)

	err = st.Users().SetResetChallenge(t.Context(), "user-1",
		domain.ResetChallenge{ExpiresAt: time.Now()})
	require.Error(t, err)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	st := newTestStore(t)
	seedUser(t, st, "user-1", "ada@example.com")

	boom := assert.AnError
	err := st.WithTx(t.Context(), func(tx store.Tx) error {
		if err := tx.Users().UpdatePasswordHash(t.Context(), "user-1", "new-hash"); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	u, err := st.Users().GetUserByID(t.Context(), "user-1")
	require.NoError(t, err)
	require.NotEqual(t, "new-hash", u.PasswordHash)
}

func TestWithTxCommits(t *testing.T) {
	st := newTestStore(t)
	seedUser(t, st, "user-1", "ada@example.com")

	err := st.WithTx(t.Context(), func(tx store.Tx) error {
		return tx.Users().UpdatePasswordHash(t.Context(), "user-1", "new-hash")
	})
	require.NoError(t, err)

	u, err := st.Users().GetUserByID(t.Context(), "user-1")
	require.NoError(t, err)
	require.Equal(t, "new-hash", u.PasswordHash)
}
