package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/devsphere/quizapi/internal/api/domain"
	"github.com/devsphere/quizapi/internal/api/service"
	"github.com/devsphere/quizapi/internal/api/store/drivers/sqlite"
	"github.com/devsphere/quizapi/pkg/jwtx"
)

func newAccountService(t *testing.T) *service.AccountService {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	return &service.AccountService{
		Store: st,
		Tokens: &jwtx.Tokens{
			Issuer:        "quizapi-test",
			AccessSecret:  []byte("test-access-secret"),
			RefreshSecret: []byte("test-refresh-secret"),
			AccessTTL:     time.Minute,
			RefreshTTL:    time.Hour,
		},
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAccountService(t)

	profile, err := svc.Register(t.Context(),
		"Ada@Example.com", "s3cret-pass", "Ada", "Lovelace", domain.RoleUser)
	require.NoError(t, err)
	require.NotEmpty(t, profile.ID)
	require.Equal(t, "ada@example.com", profile.Email, "email should be normalized")
	require.Equal(t, []string{"USER"}, profile.Roles)

	got, pair, err := svc.Login(t.Context(), "ada@example.com", "s3cret-pass")
	require.NoError(t, err)
	require.Equal(t, profile.ID, got.ID)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.NotEqual(t, pair.AccessToken, pair.RefreshToken)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAccountService(t)

	_, err := svc.Register(t.Context(), "ada@example.com", "pass", "", "", domain.RoleUser)
	require.NoError(t, err)

	_, err = svc.Register(t.Context(), "ADA@example.com", "other", "", "", domain.RoleUser)
	require.ErrorIs(t, err, service.ErrEmailExists)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc := newAccountService(t)

	_, err := svc.Register(t.Context(), "ada@example.com", "s3cret-pass", "", "", domain.RoleUser)
	require.NoError(t, err)

	// Unknown email and wrong password must return the same sentinel.
	_, _, errUnknown := svc.Login(t.Context(), "ghost@example.com", "whatever")
	require.ErrorIs(t, errUnknown, service.ErrInvalidCredentials)

	_, _, errWrongPass := svc.Login(t.Context(), "ada@example.com", "wrong")
	require.ErrorIs(t, errWrongPass, service.ErrInvalidCredentials)

	// The unknown-email path burns a real bcrypt comparison against a fixed
	// hash; even its matching plaintext must never log in.
	_, _, err = svc.Login(t.Context(), "ghost@example.com", "password")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)

	require.Equal(t, errUnknown, errWrongPass)
}

func TestRefreshAccessUsesCurrentRoles(t *testing.T) {
	svc := newAccountService(t)

	profile, err := svc.Register(t.Context(), "ada@example.com", "s3cret-pass", "", "", domain.RoleUser)
	require.NoError(t, err)

	_, pair, err := svc.Login(t.Context(), "ada@example.com", "s3cret-pass")
	require.NoError(t, err)

	access, err := svc.RefreshAccess(t.Context(), pair.RefreshToken)
	require.NoError(t, err)

	claims, err := svc.Tokens.Verify(access, jwtx.KindAccess)
	require.NoError(t, err)
	require.Equal(t, profile.ID, claims.Subject)
	require.Equal(t, []string{"USER"}, claims.Roles)
}

func TestRefreshAccessRejectsBadTokens(t *testing.T) {
	svc := newAccountService(t)

	_, err := svc.RefreshAccess(t.Context(), "not-a-jwt")
	require.ErrorIs(t, err, service.ErrInvalidRefreshToken)

	// An access token is not a refresh token.
	_, regErr := svc.Register(t.Context(), "ada@example.com", "s3cret-pass", "", "", domain.RoleUser)
	require.NoError(t, regErr)
	_, pair, err := svc.Login(t.Context(), "ada@example.com", "s3cret-pass")
	require.NoError(t, err)

	_, err = svc.RefreshAccess(t.Context(), pair.AccessToken)
	require.ErrorIs(t, err, service.ErrInvalidRefreshToken)
}

func TestRefreshAccessDeletedUser(t *testing.T) {
	svc := newAccountService(t)

	// Token for a subject that never existed in this store.
	ghost, err := svc.Tokens.IssueRefresh("ghost-user", []string{"USER"})
	require.NoError(t, err)

	_, err = svc.RefreshAccess(t.Context(), ghost)
	require.ErrorIs(t, err, service.ErrInvalidRefreshToken)
}

func TestUpdateProfileFields(t *testing.T) {
	svc := newAccountService(t)

	profile, err := svc.Register(t.Context(), "ada@example.com", "s3cret-pass", "Ada", "", domain.RoleUser)
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(t.Context(), profile.ID, service.ProfilePatch{
		Firstname: "Augusta",
		Lastname:  "King",
	})
	require.NoError(t, err)
	require.Equal(t, "Augusta", updated.Firstname)
	require.Equal(t, "King", updated.Lastname)
	require.Equal(t, "ada@example.com", updated.Email, "unset fields stay put")
}

func TestUpdateProfilePasswordChange(t *testing.T) {
	svc := newAccountService(t)

	profile, err := svc.Register(t.Context(), "ada@example.com", "s3cret-pass", "", "", domain.RoleUser)
	require.NoError(t, err)

	// Missing current password.
	_, err = svc.UpdateProfile(t.Context(), profile.ID, service.ProfilePatch{
		NewPassword: "brand-new-password",
	})
	require.ErrorIs(t, err, service.ErrCurrentPasswordRequired)

	// Wrong current password.
	_, err = svc.UpdateProfile(t.Context(), profile.ID, service.ProfilePatch{
		CurrentPassword: "wrong",
		NewPassword:     "brand-new-password",
	})
	require.ErrorIs(t, err, service.ErrWrongPassword)

	// Too short.
	_, err = svc.UpdateProfile(t.Context(), profile.ID, service.ProfilePatch{
		CurrentPassword: "s3cret-pass",
		NewPassword:     "short",
	})
	require.ErrorIs(t, err, service.ErrWeakPassword)

	// Valid change; old password stops working.
	_, err = svc.UpdateProfile(t.Context(), profile.ID, service.ProfilePatch{
		CurrentPassword: "s3cret-pass",
		NewPassword:     "brand-new-password",
	})
	require.NoError(t, err)

	_, _, err = svc.Login(t.Context(), "ada@example.com", "s3cret-pass")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, _, err = svc.Login(t.Context(), "ada@example.com", "brand-new-password")
	require.NoError(t, err)
}

func TestProfileNeverExposesHash(t *testing.T) {
	svc := newAccountService(t)

	profile, err := svc.Register(t.Context(), "ada@example.com", "s3cret-pass", "", "", domain.RoleUser)
	require.NoError(t, err)

	got, err := svc.GetProfile(t.Context(), profile.ID)
	require.NoError(t, err)
	require.Equal(t, profile.ID, got.ID)
	require.NotEmpty(t, got.Roles)
}
