package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/chukwumaoranu/portfolio-gw/internal/instrumentation"
	"github.com/chukwumaoranu/portfolio-gw/internal/session"
	"github.com/chukwumaoranu/portfolio-gw/internal/upstream"
	"github.com/chukwumaoranu/portfolio-gw/pkg"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type handlerTestSetup struct {
	router  *mux.Router
	apiMock *MockuserAPI
	store   *session.TestStore
	service *Service
}

func newHandlerTestSetup(t *testing.T) *handlerTestSetup {
	t.Helper()

	ctrl := gomock.NewController(t)
	apiMock := NewMockuserAPI(ctrl)
	store := session.NewTestStore()
	service := NewService(store, apiMock, instrumentation.NewTestInstrumentation())

	handler := NewHandler(service, CookieParams{Domain: "localhost", Secure: false})
	router := mux.NewRouter()
	handler.SetupRoutes(router.PathPrefix("/admin").Subrouter())

	return &handlerTestSetup{
		router:  router,
		apiMock: apiMock,
		store:   store,
		service: service,
	}
}

func sessionCookie(t *testing.T, rr *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range rr.Result().Cookies() {
		if cookie.Name == CookieName {
			return cookie
		}
	}
	return nil
}

func TestHandler_Login(t *testing.T) {
	setup := newHandlerTestSetup(t)

	tokenValue := testToken(t, time.Now().Add(time.Hour))
	setup.apiMock.
		EXPECT().
		Login(gomock.Any(), upstream.Credentials{Username: "chukwuma", Password: "secret"}).
		Return(&upstream.AuthData{
			User:  upstream.User{ID: 1, Username: "chukwuma", Email: "chukwuma@example.com"},
			Token: tokenValue,
		}, nil)

	req := httptest.NewRequest(
		"POST", "/admin/login",
		strings.NewReader(`{"username":"chukwuma","password":"secret"}`),
	)
	req.Header.Set("Content-Type", pkg.ContentType.JSON)
	rr := httptest.NewRecorder()

	setup.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var envelope struct {
		Success bool              `json:"success"`
		Data    upstream.AuthData `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.Equal(t, tokenValue, envelope.Data.Token)
	assert.Equal(t, "chukwuma", envelope.Data.User.Username)

	cookie := sessionCookie(t, rr)
	require.NotNil(t, cookie)
	assert.Equal(t, tokenValue, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Expires.After(time.Now()))

	storedToken, ok := setup.store.Token(context.Background())
	require.True(t, ok)
	assert.Equal(t, tokenValue, storedToken)
}

func TestHandler_Login_formEncoded(t *testing.T) {
	setup := newHandlerTestSetup(t)

	tokenValue := testToken(t, time.Now().Add(time.Hour))
	setup.apiMock.
		EXPECT().
		Login(gomock.Any(), upstream.Credentials{Username: "chukwuma", Password: "secret"}).
		Return(&upstream.AuthData{
			User:  upstream.User{ID: 1, Username: "chukwuma"},
			Token: tokenValue,
		}, nil)

	form := url.Values{}
	form.Set("username", "chukwuma")
	form.Set("password", "secret")
	req := httptest.NewRequest("POST", "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()

	setup.router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestHandler_Login_invalidCredentials(t *testing.T) {
	setup := newHandlerTestSetup(t)

	setup.apiMock.
		EXPECT().
		Login(gomock.Any(), gomock.Any()).
		Return(nil, &upstream.APIError{
			StatusCode: http.StatusUnauthorized,
			Message:    "Invalid credentials",
		})

	req := httptest.NewRequest(
		"POST", "/admin/login",
		strings.NewReader(`{"username":"chukwuma","password":"wrong"}`),
	)
	req.Header.Set("Content-Type", pkg.ContentType.JSON)
	rr := httptest.NewRecorder()

	setup.router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "Invalid credentials")
	assert.Nil(t, sessionCookie(t, rr))
}

func TestHandler_Login_missingFields(t *testing.T) {
	setup := newHandlerTestSetup(t)

	for _, tc := range []struct {
		body    string
		message string
	}{
		{body: `{"password":"secret"}`, message: "Username is required"},
		{body: `{"username":"chukwuma"}`, message: "Password is required"},
	} {
		req := httptest.NewRequest("POST", "/admin/login", strings.NewReader(tc.body))
		req.Header.Set("Content-Type", pkg.ContentType.JSON)
		rr := httptest.NewRecorder()

		setup.router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), tc.message)
	}
}

func TestHandler_Register(t *testing.T) {
	setup := newHandlerTestSetup(t)

	tokenValue := testToken(t, time.Now().Add(time.Hour))
	setup.apiMock.
		EXPECT().
		Register(gomock.Any(), gomock.Any()).
		Return(&upstream.AuthData{
			User:  upstream.User{ID: 2, Username: "chukwuma"},
			Token: tokenValue,
		}, nil)

	req := httptest.NewRequest(
		"POST", "/admin/register",
		strings.NewReader(`{
			"username":"chukwuma",
			"email":"chukwuma@example.com",
			"password":"secret123",
			"confirmPassword":"secret123"
		}`),
	)
	rr := httptest.NewRecorder()

	setup.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	cookie := sessionCookie(t, rr)
	require.NotNil(t, cookie)
	assert.Equal(t, tokenValue, cookie.Value)
}

func TestHandler_Register_validation(t *testing.T) {
	// no EXPECT calls set up: rejected registrations never reach upstream
	setup := newHandlerTestSetup(t)

	for _, tc := range []struct {
		name    string
		body    string
		message string
	}{
		{
			name:    "missing username",
			body:    `{"email":"a@b.com","password":"secret123","confirmPassword":"secret123"}`,
			message: "Username is required",
		},
		{
			name:    "invalid email",
			body:    `{"username":"chukwuma","email":"not-an-email","password":"secret123","confirmPassword":"secret123"}`,
			message: "Please enter a valid email address",
		},
		{
			name:    "short password",
			body:    `{"username":"chukwuma","email":"a@b.com","password":"abc","confirmPassword":"abc"}`,
			message: "Password must be at least 6 characters",
		},
		{
			name:    "password mismatch",
			body:    `{"username":"chukwuma","email":"a@b.com","password":"secret123","confirmPassword":"secret124"}`,
			message: "Passwords do not match",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/admin/register", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()

			setup.router.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Contains(t, rr.Body.String(), tc.message)
		})
	}
}

func TestHandler_Logout(t *testing.T) {
	setup := newHandlerTestSetup(t)
	ctx := context.Background()

	require.NoError(t, setup.store.SetToken(ctx, testToken(t, time.Now().Add(time.Hour))))
	setup.apiMock.
		EXPECT().
		Logout(gomock.Any()).
		Return(errors.New("upstream exploded"))

	req := httptest.NewRequest("POST", "/admin/logout", nil)
	rr := httptest.NewRecorder()

	setup.router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	// session cleared locally despite the upstream failure
	_, ok := setup.store.Token(ctx)
	assert.False(t, ok)

	cookie := sessionCookie(t, rr)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Equal(t, -1, cookie.MaxAge)
}

func TestHandler_Session(t *testing.T) {
	setup := newHandlerTestSetup(t)

	tokenValue := testToken(t, time.Now().Add(time.Hour))
	setup.apiMock.
		EXPECT().
		Login(gomock.Any(), gomock.Any()).
		Return(&upstream.AuthData{
			User:  upstream.User{ID: 1, Username: "chukwuma"},
			Token: tokenValue,
		}, nil)
	_, err := setup.service.Login(context.Background(), upstream.Credentials{Username: "chukwuma", Password: "secret"})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/admin/session", nil)
	rr := httptest.NewRecorder()

	setup.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var snapshot Snapshot
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &snapshot))
	assert.True(t, snapshot.IsAuthenticated)
	assert.False(t, snapshot.Loading)
	require.NotNil(t, snapshot.User)
	assert.Equal(t, "chukwuma", snapshot.User.Username)
}

func TestHandler_Session_expiredTokenCleared(t *testing.T) {
	setup := newHandlerTestSetup(t)

	// the login response carries a token that has already expired, the
	// state flips to authenticated because login trusts the upstream
	expiredToken := testToken(t, time.Now().Add(-time.Minute))
	setup.apiMock.
		EXPECT().
		Login(gomock.Any(), gomock.Any()).
		Return(&upstream.AuthData{
			User:  upstream.User{ID: 1, Username: "chukwuma"},
			Token: expiredToken,
		}, nil)
	_, err := setup.service.Login(context.Background(), upstream.Credentials{Username: "chukwuma", Password: "secret"})
	require.NoError(t, err)
	require.True(t, setup.service.Snapshot().IsAuthenticated)

	req := httptest.NewRequest("GET", "/admin/session", nil)
	rr := httptest.NewRecorder()

	setup.router.ServeHTTP(rr, req)

	// the endpoint re-validates the stored token and reports anonymous
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `{"user":null,"isAuthenticated":false,"loading":false}`, rr.Body.String())

	_, ok := setup.store.Token(context.Background())
	assert.False(t, ok)
	assert.False(t, setup.service.Snapshot().IsAuthenticated)
}

func TestHandler_Session_anonymous(t *testing.T) {
	setup := newHandlerTestSetup(t)

	req := httptest.NewRequest("GET", "/admin/session", nil)
	rr := httptest.NewRecorder()

	setup.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `{"user":null,"isAuthenticated":false,"loading":false}`, rr.Body.String())
}
