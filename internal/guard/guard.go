// Package guard gates routes behind the visitor session.
package guard

import (
	"net/http"

	"github.com/elitestar/bookings-web/internal/auth"
	"github.com/elitestar/bookings-web/internal/telemetry/metrics"

	log "github.com/sirupsen/logrus"
)

// Rule describes a protected route: where to send visitors that may not see
// it, and whether only admins may see it.
type Rule struct {
	RedirectTo   string
	RequireAdmin bool
}

type Reason string

const (
	ReasonNone            Reason = ""
	ReasonUnauthenticated Reason = "unauthenticated"
	ReasonNotAdmin        Reason = "not_admin"
)

type Decision struct {
	Allow      bool
	RedirectTo string
	Reason     Reason
}

func Evaluate(session auth.Session, rule Rule) Decision {
	if !session.Authenticated {
		return Decision{RedirectTo: rule.RedirectTo, Reason: ReasonUnauthenticated}
	}
	if rule.RequireAdmin && !session.IsAdmin() {
		return Decision{RedirectTo: rule.RedirectTo, Reason: ReasonNotAdmin}
	}
	return Decision{Allow: true}
}

// Middleware redirects with 303 See Other whenever Evaluate denies the request.
// The protected handler is never invoked in that case.
func Middleware(rule Rule, metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := auth.SessionFromContext(r.Context())
			decision := Evaluate(session, rule)
			if decision.Allow {
				next.ServeHTTP(w, r)
				return
			}

			log.Tracef("guard: %s %s denied (%s), redirect to %s", r.Method, r.URL.Path, decision.Reason, decision.RedirectTo)
			if metricsManager != nil {
				metricsManager.CounterGuardRedirects.WithLabelValues(string(decision.Reason)).Inc()
			}
			http.Redirect(w, r, decision.RedirectTo, http.StatusSeeOther)
		})
	}
}
