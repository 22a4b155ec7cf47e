package auth

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/chukwumaoranu/portfolio-gw/internal/instrumentation"
	"github.com/chukwumaoranu/portfolio-gw/internal/session"
	"github.com/chukwumaoranu/portfolio-gw/internal/token"
	"github.com/chukwumaoranu/portfolio-gw/internal/upstream"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=service.go -destination=service_mocks.go -package=auth

// userAPI is the slice of the upstream API the auth flow needs.
type userAPI interface {
	Login(ctx context.Context, credentials upstream.Credentials) (*upstream.AuthData, error)
	Register(ctx context.Context, registration upstream.Registration) (*upstream.AuthData, error)
	Logout(ctx context.Context) error
}

// Snapshot is the auth state visible to handlers and views. It is a
// derived projection: the session store plus the token expiry check are
// the source of truth.
type Snapshot struct {
	User            *upstream.User `json:"user"`
	IsAuthenticated bool           `json:"isAuthenticated"`
	Loading         bool           `json:"loading"`
	Err             string         `json:"error,omitempty"`
}

// Service drives the login/register/logout state machine:
// anonymous -> pending -> authenticated | anonymous(+error).
// It is injected where needed, never a package-level singleton.
type Service struct {
	mutex sync.Mutex
	store session.Store
	api   userAPI
	instr *instrumentation.Instrumentation

	user            *upstream.User
	isAuthenticated bool
	loading         bool
	errMessage      string
}

func NewService(store session.Store, api userAPI, instr *instrumentation.Instrumentation) *Service {
	return &Service{
		store: store,
		api:   api,
		instr: instr,
	}
}

// Login runs anonymous -> pending -> authenticated | anonymous. On success
// the token and the user snapshot are persisted to the session store before
// the state flips to authenticated. Failures never escape: the upstream
// message (or a generic fallback) lands in the state's error field.
func (s *Service) Login(ctx context.Context, credentials upstream.Credentials) (*upstream.AuthData, error) {
	s.setPending()

	authData, err := s.api.Login(ctx, credentials)
	if err != nil {
		s.setError(upstream.ErrorMessage(err, "Login failed"))
		s.instr.CounterLoginFailures.Inc()
		log.Tracef("failed login attempt for user: %s", credentials.Username)
		return nil, err
	}

	if err := s.persistSession(ctx, authData); err != nil {
		s.setError("Login failed")
		return nil, err
	}

	s.setAuthenticated(&authData.User)
	log.Trace("new login success")

	return authData, nil
}

// Register mirrors Login via the register endpoint.
func (s *Service) Register(ctx context.Context, registration upstream.Registration) (*upstream.AuthData, error) {
	s.setPending()

	authData, err := s.api.Register(ctx, registration)
	if err != nil {
		s.setError(upstream.ErrorMessage(err, "Registration failed"))
		return nil, err
	}

	if err := s.persistSession(ctx, authData); err != nil {
		s.setError("Registration failed")
		return nil, err
	}

	s.setAuthenticated(&authData.User)

	return authData, nil
}

// Logout tears the server-side session down best-effort and clears the
// local state unconditionally: a failed upstream call never leaves the
// client logged in.
func (s *Service) Logout(ctx context.Context) {
	s.setPending()

	if err := s.api.Logout(ctx); err != nil {
		log.Errorf("logout, upstream call (proceeding with local clear): %s", err)
	}

	s.clearSession(ctx)
}

// IsLogged is the one shared session validity check (used by both the
// route guard and the edge gate): a session is valid iff a token is
// stored and not expired. Detecting an expired token while the state
// still says authenticated clears both, restoring the invariant.
func (s *Service) IsLogged(ctx context.Context) bool {
	tokenValue, ok := s.store.Token(ctx)
	if ok && !token.IsExpired(tokenValue) {
		return true
	}

	s.mutex.Lock()
	wasAuthenticated := s.isAuthenticated
	s.mutex.Unlock()

	if ok || wasAuthenticated {
		log.Tracef("session invalid or expired, clearing local auth state")
		s.instr.CounterSessionsExpired.Inc()
		s.clearSession(ctx)
	}

	return false
}

// TokenValid runs the same check against an explicit token string, for
// call sites that read the token from the request instead of the store.
func (s *Service) TokenValid(tokenValue string) bool {
	return tokenValue != "" && !token.IsExpired(tokenValue)
}

// Snapshot returns a copy of the current auth state.
func (s *Service) Snapshot() Snapshot {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return Snapshot{
		User:            s.user,
		IsAuthenticated: s.isAuthenticated,
		Loading:         s.loading,
		Err:             s.errMessage,
	}
}

func (s *Service) persistSession(ctx context.Context, authData *upstream.AuthData) error {
	if err := s.store.SetToken(ctx, authData.Token); err != nil {
		return err
	}

	userJSON, err := json.Marshal(authData.User)
	if err != nil {
		return err
	}
	if err := s.store.SetUser(ctx, userJSON); err != nil {
		return err
	}

	return nil
}

func (s *Service) clearSession(ctx context.Context) {
	if err := s.store.Clear(ctx); err != nil {
		log.Errorf("auth service, clear session store: %s", err)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.user = nil
	s.isAuthenticated = false
	s.loading = false
}

func (s *Service) setPending() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.loading = true
	s.errMessage = ""
}

func (s *Service) setAuthenticated(user *upstream.User) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.user = user
	s.isAuthenticated = true
	s.loading = false
	s.errMessage = ""
}

func (s *Service) setError(message string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.user = nil
	s.isAuthenticated = false
	s.loading = false
	s.errMessage = message
}
