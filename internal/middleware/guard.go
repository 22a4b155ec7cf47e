package middleware

import (
	"net/http"

	"github.com/chukwumaoranu/portfolio-gw/internal/auth"
	"github.com/chukwumaoranu/portfolio-gw/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

// Guard wraps an individual protected handler: while the session check is
// running the request waits, an invalid session gets a 303 to the login
// page, and only a valid one reaches the wrapped handler. The same
// auth.Checker instance drives the edge gate, so a request passing one
// cannot fail the other.
func Guard(checker auth.Checker) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.guard")
			defer span.End()

			if !checker.IsLogged(ctx) {
				log.Tracef("route guard: unauthorized => %s", r.URL.Path)
				span.SetStatus(codes.Error, "not-logged")
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}

			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
