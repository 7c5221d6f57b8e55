package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Kind selects which signing secret and TTL apply to a token.
type Kind string

const (
	// KindAccess is the short-lived per-request bearer credential.
	KindAccess Kind = "access"
	// KindRefresh is the longer-lived credential used solely to mint new
	// access tokens.
	KindRefresh Kind = "refresh"
)

var (
	// ErrNoSecret means the secret for the requested kind is unconfigured.
	// This is a server misconfiguration, not a client error.
	ErrNoSecret = errors.New("jwtx: signing secret not configured")

	ErrMalformed    = errors.New("jwtx: malformed token")
	ErrInvalidSig   = errors.New("jwtx: invalid signature")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
)

// Verifier validates a token and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// Tokens signs and verifies both token kinds with symmetric HMAC secrets.
// The access and refresh secrets must differ so one kind can never be
// replayed as the other. The signing algorithm is pinned to HS256; tokens
// carrying any other alg header (including "none") fail verification.
type Tokens struct {
	Issuer        string
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// IssueAccess signs a short-lived access token for the subject with its
// current role snapshot.
func (t *Tokens) IssueAccess(subject string, roles []string) (string, error) {
	return t.issue(subject, roles, KindAccess)
}

// IssueRefresh signs a refresh token. The role snapshot is carried for
// debugging only; refresh always re-reads roles from the store.
func (t *Tokens) IssueRefresh(subject string, roles []string) (string, error) {
	return t.issue(subject, roles, KindRefresh)
}

func (t *Tokens) issue(subject string, roles []string, kind Kind) (string, error) {
	secret, err := t.secretFor(kind)
	if err != nil {
		return "", err
	}

	claims := NewClaims(subject, roles, t.ttlFor(kind), t.Issuer, time.Now().UTC())
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// Verify parses and validates a token of the given kind. Failure modes:
// ErrExpired when past exp, ErrInvalidSig when the signature doesn't check
// out under the kind's secret, ErrMalformed when the token isn't a JWT at
// all, and ErrInvalidClaim for everything else (wrong alg, bad issuer, nbf
// in the future).
func (t *Tokens) Verify(raw string, kind Kind) (Claims, error) {
	secret, err := t.secretFor(kind)
	if err != nil {
		return Claims{}, err
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	}
	if t.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(t.Issuer))
	}

	var claims Claims
	_, err = jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidClaim
		}
		return secret, nil
	}, opts...)
	if err != nil {
		return Claims{}, mapParseError(err)
	}

	return claims, nil
}

// AccessVerifier adapts Tokens to the Verifier interface for middleware
// that only ever sees access tokens.
func (t *Tokens) AccessVerifier() Verifier {
	return kindVerifier{tokens: t, kind: KindAccess}
}

type kindVerifier struct {
	tokens *Tokens
	kind   Kind
}

func (v kindVerifier) Verify(token string) (Claims, error) {
	return v.tokens.Verify(token, v.kind)
}

func (t *Tokens) secretFor(kind Kind) ([]byte, error) {
	var secret []byte
	switch kind {
	case KindAccess:
		secret = t.AccessSecret
	case KindRefresh:
		secret = t.RefreshSecret
	default:
		return nil, ErrInvalidClaim
	}

	if len(secret) == 0 {
		return nil, ErrNoSecret
	}
	return secret, nil
}

// ttlFor resolves the lifetime for a kind. Only the zero value means
// unset; a negative TTL is honored and yields an already-expired token.
func (t *Tokens) ttlFor(kind Kind) time.Duration {
	if kind == KindRefresh {
		if t.RefreshTTL != 0 {
			return t.RefreshTTL
		}
		return DefaultRefreshTokenTTL
	}

	if t.AccessTTL != 0 {
		return t.AccessTTL
	}
	return DefaultAccessTokenTTL
}

// mapParseError collapses the jwt library's error surface into our
// stable sentinel taxonomy. Expiry is checked before the generic claim
// bucket so callers can distinguish it reliably.
func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSig
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	default:
		return ErrInvalidClaim
	}
}
