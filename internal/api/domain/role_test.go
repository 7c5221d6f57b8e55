package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	role, err := ParseRole("admin")
	require.NoError(t, err)
	require.Equal(t, RoleAdmin, role)

	role, err = ParseRole("  User ")
	require.NoError(t, err)
	require.Equal(t, RoleUser, role)

	_, err = ParseRole("superuser")
	require.ErrorIs(t, err, ErrUnknownRole)
}

func TestParseRoles(t *testing.T) {
	roles, err := ParseRoles([]string{"USER", "ADMIN"})
	require.NoError(t, err)
	require.Equal(t, []Role{RoleUser, RoleAdmin}, roles)

	_, err = ParseRoles(nil)
	require.ErrorIs(t, err, ErrUnknownRole)

	_, err = ParseRoles([]string{"USER", "bogus"})
	require.ErrorIs(t, err, ErrUnknownRole)
}

func TestPublicProfileOmitsHash(t *testing.T) {
	u := User{
		ID:           "user-1",
		Email:        "ada@example.com",
		PasswordHash: "$2a$10$secret",
		Roles:        []Role{RoleUser},
	}

	p := u.PublicProfile()
	require.Equal(t, "user-1", p.ID)
	require.Equal(t, []string{"USER"}, p.Roles)
}
