package middleware

import (
	"net/http"
	"strings"

	"github.com/chukwumaoranu/portfolio-gw/internal/auth"
	"github.com/chukwumaoranu/portfolio-gw/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

const (
	loginPath     = "/admin/login"
	registerPath  = "/admin/register"
	dashboardPath = "/admin/dashboard"

	adminPathPrefix = "/admin"
)

// EdgeGateHandler routes admin traffic by the `token` cookie before any
// handler runs: anonymous requests to protected admin pages bounce to the
// login page, and already logged-in visitors of the login/register pages
// bounce to the dashboard. It shares the session check with the route
// guard through auth.Checker so the two can never disagree.
type EdgeGateHandler struct {
	checker auth.Checker

	// admin paths reachable without a valid session
	openAdminPaths map[string]bool
}

func NewEdgeGateHandler(checker auth.Checker) *EdgeGateHandler {
	return &EdgeGateHandler{
		checker: checker,
		openAdminPaths: map[string]bool{
			loginPath:        true,
			registerPath:     true,
			"/admin/logout":  true,
			"/admin/session": true,
		},
	}
}

func (h *EdgeGateHandler) Gate() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, span := tracing.GlobalTracer.Start(r.Context(), "middleware.edgeGate")
			defer span.End()

			if r.Method == http.MethodOptions {
				span.SetStatus(codes.Ok, "options-ok")
				next.ServeHTTP(w, r)
				return
			}

			path := r.URL.Path
			if !strings.HasPrefix(path, adminPathPrefix) {
				span.SetStatus(codes.Ok, "public")
				next.ServeHTTP(w, r)
				return
			}

			hasValidToken := false
			if cookie, err := r.Cookie(auth.CookieName); err == nil {
				hasValidToken = h.checker.TokenValid(cookie.Value)
			}

			if path == loginPath || path == registerPath {
				if hasValidToken {
					span.SetStatus(codes.Ok, "already-logged-in")
					http.Redirect(w, r, dashboardPath, http.StatusTemporaryRedirect)
					return
				}
				span.SetStatus(codes.Ok, "auth-page")
				next.ServeHTTP(w, r)
				return
			}

			if h.openAdminPaths[path] {
				span.SetStatus(codes.Ok, "open-admin-path")
				next.ServeHTTP(w, r)
				return
			}

			if !hasValidToken {
				log.Tracef("edge gate: no valid session for %s, redirecting to login", path)
				span.SetStatus(codes.Error, "no-valid-token")
				http.Redirect(w, r, loginPath, http.StatusTemporaryRedirect)
				return
			}

			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r)
		})
	}
}
