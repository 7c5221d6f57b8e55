package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/devsphere/quizapi/pkg/jwtx"
	"github.com/devsphere/quizapi/pkg/slogx"
)

// AuthnMiddleware authenticates requests by bearer access token. On success
// the verified claims are attached to the request context for downstream
// handlers. A missing secret is a server misconfiguration and answers 500,
// never a client-facing 401.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				ErrNoToken.WriteError(w)
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			claims, err := v.Verify(raw)
			if err != nil {
				if errors.Is(err, jwtx.ErrNoSecret) {
					log.Error("access token secret not configured")
					ErrServerError.WriteError(w)
					return
				}

				log.Warn("token verification failed", "err", err)
				mapVerifyError(err).WriteError(w)
				return
			}

			ctx = contextWithAuth(ctx, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func contextWithAuth(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, c.Subject)
	ctx = context.WithValue(ctx, CtxKeyRoles, c.Roles)
	return ctx
}

func mapVerifyError(err error) APIError {
	switch {
	case errors.Is(err, jwtx.ErrExpired):
		return ErrTokenExpired
	case errors.Is(err, jwtx.ErrInvalidSig):
		return ErrTokenBadSignature
	default:
		return ErrTokenInvalid
	}
}
