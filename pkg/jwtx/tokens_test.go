package jwtx

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func testTokens() *Tokens {
	return &Tokens{
		Issuer:        "quizapi-test",
		AccessSecret:  []byte("access-secret-for-tests"),
		RefreshSecret: []byte("refresh-secret-for-tests"),
		AccessTTL:     time.Minute,
		RefreshTTL:    time.Hour,
	}
}

func TestIssueAndVerifyAccessToken(t *testing.T) {
	tokens := testTokens()

	raw, err := tokens.IssueAccess("user-1", []string{"USER"})
	require.NoError(t, err)

	claims, err := tokens.Verify(raw, KindAccess)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
	require.Equal(t, []string{"USER"}, claims.Roles)
	require.Equal(t, "quizapi-test", claims.Issuer)
	require.NotEmpty(t, claims.ID)
}

func TestVerifyRejectsCrossKindTokens(t *testing.T) {
	tokens := testTokens()

	// A refresh token must never validate under the access secret and
	// vice versa.
	refresh, err := tokens.IssueRefresh("user-1", []string{"USER"})
	require.NoError(t, err)
	_, err = tokens.Verify(refresh, KindAccess)
	require.ErrorIs(t, err, ErrInvalidSig)

	access, err := tokens.IssueAccess("user-1", []string{"USER"})
	require.NoError(t, err)
	_, err = tokens.Verify(access, KindRefresh)
	require.ErrorIs(t, err, ErrInvalidSig)
}

func TestVerifyExpiredToken(t *testing.T) {
	tokens := testTokens()
	tokens.AccessTTL = -time.Minute

	raw, err := tokens.IssueAccess("user-1", nil)
	require.NoError(t, err)

	_, err = tokens.Verify(raw, KindAccess)
	require.ErrorIs(t, err, ErrExpired)
}

func TestZeroTTLFallsBackToDefault(t *testing.T) {
	tokens := testTokens()
	tokens.AccessTTL = 0
	tokens.RefreshTTL = 0

	// Unset lifetimes take the defaults; both tokens verify fine. A
	// negative lifetime must NOT fall back (TestVerifyExpiredToken).
	access, err := tokens.IssueAccess("user-1", nil)
	require.NoError(t, err)
	_, err = tokens.Verify(access, KindAccess)
	require.NoError(t, err)

	refresh, err := tokens.IssueRefresh("user-1", nil)
	require.NoError(t, err)
	_, err = tokens.Verify(refresh, KindRefresh)
	require.NoError(t, err)
}

func TestVerifyWrongSecret(t *testing.T) {
	tokens := testTokens()
	raw, err := tokens.IssueAccess("user-1", nil)
	require.NoError(t, err)

	other := testTokens()
	other.AccessSecret = []byte("a completely different secret")

	_, err = other.Verify(raw, KindAccess)
	require.ErrorIs(t, err, ErrInvalidSig)
}

func TestVerifyMalformedToken(t *testing.T) {
	tokens := testTokens()

	_, err := tokens.Verify("not.a.jwt", KindAccess)
	require.ErrorIs(t, err, ErrMalformed)

	_, err = tokens.Verify("", KindAccess)
	require.ErrorIs(t, err, ErrMalformed)
}

func TestVerifyWrongIssuer(t *testing.T) {
	tokens := testTokens()
	other := testTokens()
	other.Issuer = "someone-else"

	raw, err := other.IssueAccess("user-1", nil)
	require.NoError(t, err)

	_, err = tokens.Verify(raw, KindAccess)
	require.ErrorIs(t, err, ErrInvalidClaim)
}

func TestVerifyRejectsNoneAlgorithm(t *testing.T) {
	tokens := testTokens()

	claims := NewClaims("user-1", nil, time.Minute, tokens.Issuer, time.Now().UTC())
	raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = tokens.Verify(raw, KindAccess)
	require.Error(t, err)
}

func TestIssueWithoutSecret(t *testing.T) {
	tokens := &Tokens{}

	_, err := tokens.IssueAccess("user-1", nil)
	require.ErrorIs(t, err, ErrNoSecret)

	_, err = tokens.Verify("anything", KindRefresh)
	require.ErrorIs(t, err, ErrNoSecret)
}

func TestAccessVerifierAdapter(t *testing.T) {
	tokens := testTokens()
	raw, err := tokens.IssueAccess("user-1", []string{"ADMIN"})
	require.NoError(t, err)

	claims, err := tokens.AccessVerifier().Verify(raw)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
}
