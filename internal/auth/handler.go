package auth

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/chukwumaoranu/portfolio-gw/internal/telemetry/tracing"
	"github.com/chukwumaoranu/portfolio-gw/internal/token"
	"github.com/chukwumaoranu/portfolio-gw/internal/upstream"
	"github.com/chukwumaoranu/portfolio-gw/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const (
	// CookieName is the session cookie between the browser and the
	// gateway; upstream calls carry the token as a bearer header instead.
	CookieName = "token"

	defaultCookieTTL = 24 * 7 * time.Hour

	minPasswordLen = 6
)

// CookieParams configure the session cookie written on login/register.
type CookieParams struct {
	Domain string
	Secure bool
}

type Handler struct {
	service      *Service
	cookieParams CookieParams
}

func NewHandler(service *Service, cookieParams CookieParams) *Handler {
	return &Handler{
		service:      service,
		cookieParams: cookieParams,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/login", handler.handleLogin).Methods("POST", "OPTIONS").Name("login")
	router.HandleFunc("/register", handler.handleRegister).Methods("POST", "OPTIONS").Name("register")
	router.HandleFunc("/logout", handler.handleLogout).Methods("POST", "OPTIONS").Name("logout")
	router.HandleFunc("/session", handler.handleSession).Methods("GET", "OPTIONS").Name("session")
}

func (handler *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "authHandler.login")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	var credentials upstream.Credentials
	if r.Header.Get("Content-Type") == pkg.ContentType.JSON {
		if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
			log.Errorf("login, unmarshal json params: %s", err)
			writeEnvelope(w, http.StatusBadRequest, false, "login failed", nil)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			log.Errorf("login failed, parse form error: %s", err)
			writeEnvelope(w, http.StatusBadRequest, false, "parse form error", nil)
			return
		}
		credentials = upstream.Credentials{
			Username: r.Form.Get("username"),
			Password: r.Form.Get("password"),
		}
	}

	if credentials.Username == "" {
		writeEnvelope(w, http.StatusBadRequest, false, "Username is required", nil)
		return
	}
	if credentials.Password == "" {
		writeEnvelope(w, http.StatusBadRequest, false, "Password is required", nil)
		return
	}

	authData, err := handler.service.Login(ctx, credentials)
	if err != nil {
		writeEnvelope(w, http.StatusUnauthorized, false, handler.service.Snapshot().Err, nil)
		return
	}

	handler.setSessionCookie(w, authData.Token)
	writeEnvelope(w, http.StatusOK, true, "", authData)
}

func (handler *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "authHandler.register")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	var registration upstream.Registration
	if err := json.NewDecoder(r.Body).Decode(&registration); err != nil {
		log.Errorf("register, unmarshal json params: %s", err)
		writeEnvelope(w, http.StatusBadRequest, false, "registration failed", nil)
		return
	}

	if message, ok := validateRegistration(registration); !ok {
		writeEnvelope(w, http.StatusBadRequest, false, message, nil)
		return
	}

	authData, err := handler.service.Register(ctx, registration)
	if err != nil {
		writeEnvelope(w, http.StatusBadRequest, false, handler.service.Snapshot().Err, nil)
		return
	}

	handler.setSessionCookie(w, authData.Token)
	writeEnvelope(w, http.StatusOK, true, "", authData)
}

func (handler *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "authHandler.logout")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	// local logout always takes effect, upstream teardown is best-effort
	handler.service.Logout(ctx)
	handler.clearSessionCookie(w)

	writeEnvelope(w, http.StatusOK, true, "", nil)
}

func (handler *Handler) handleSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "authHandler.session")
	defer span.End()

	// re-validate the stored token first, so a session that expired since
	// the last request is cleared before it gets reported
	handler.service.IsLogged(ctx)

	snapshot := handler.service.Snapshot()
	snapshotJSON, err := json.Marshal(snapshot)
	if err != nil {
		log.Errorf("marshal auth snapshot: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, snapshotJSON)
}

func (handler *Handler) setSessionCookie(w http.ResponseWriter, tokenValue string) {
	expires := time.Now().Add(defaultCookieTTL)
	if tokenExpiry, err := token.ExpiresAt(tokenValue); err == nil {
		expires = tokenExpiry
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    tokenValue,
		Path:     "/",
		Domain:   handler.cookieParams.Domain,
		Expires:  expires,
		HttpOnly: true,
		Secure:   handler.cookieParams.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (handler *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Domain:   handler.cookieParams.Domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   handler.cookieParams.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func validateRegistration(registration upstream.Registration) (string, bool) {
	if registration.Username == "" {
		return "Username is required", false
	}
	if !pkg.ValidEmail(registration.Email) {
		return "Please enter a valid email address", false
	}
	if len(registration.Password) < minPasswordLen {
		return "Password must be at least 6 characters", false
	}
	if registration.Password != registration.ConfirmPassword {
		return "Passwords do not match", false
	}
	return "", true
}

func writeEnvelope(w http.ResponseWriter, statusCode int, success bool, message string, data any) {
	envelope := struct {
		Success bool   `json:"success"`
		Message string `json:"message,omitempty"`
		Data    any    `json:"data,omitempty"`
	}{
		Success: success,
		Message: message,
		Data:    data,
	}

	envelopeJSON, err := json.Marshal(envelope)
	if err != nil {
		log.Errorf("marshal response envelope: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, envelopeJSON, statusCode)
}
