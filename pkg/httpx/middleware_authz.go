package httpx

import "net/http"

// RequireAnyRole gates a route on role membership: the authenticated
// identity must hold at least one of the allowed roles. Runs after
// AuthnMiddleware; an unauthenticated request has no roles and is rejected.
func RequireAnyRole(allowed ...string) Middleware {
	want := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		want[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, role := range rolesFromContext(r.Context()) {
				if _, ok := want[role]; ok {
					next.ServeHTTP(w, r)
					return
				}
			}

			ErrForbidden.WriteError(w)
		})
	}
}
