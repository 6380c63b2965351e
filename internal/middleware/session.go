package middleware

import (
	"net/http"

	"github.com/elitestar/bookings-web/internal/auth"
)

// Session restores the visitor session from the request cookie and attaches
// it to the request context.
func Session(factory *auth.Factory) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authCtx := factory.ForRequest(w, r)
			authCtx.Initialize(r.Context())
			next.ServeHTTP(w, r.WithContext(auth.NewRequestContext(r.Context(), authCtx)))
		})
	}
}
