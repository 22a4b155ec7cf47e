package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chukwumaoranu/portfolio-gw/internal/auth"
	"github.com/chukwumaoranu/portfolio-gw/internal/middleware"

	"github.com/stretchr/testify/assert"
)

func TestGuard(t *testing.T) {
	checker := auth.NewTestChecker()
	handlerCalled := false
	handler := middleware.Guard(checker)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/admin/api/projects", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.False(t, handlerCalled)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/admin/login", rr.Header().Get("Location"))

	checker.Logged = true
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/admin/api/projects", nil))

	assert.True(t, handlerCalled)
	assert.Equal(t, http.StatusOK, rr.Code)
}
