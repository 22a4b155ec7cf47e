package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noToken(_ context.Context) (string, bool) {
	return "", false
}

func staticToken(tokenValue string) TokenSourceFunc {
	return func(_ context.Context) (string, bool) {
		return tokenValue, true
	}
}

func TestClient_Get(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/projects", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":[{"id":1,"title":"portfolio"}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client(), noToken)
	data, err := client.Get(context.Background(), "/api/projects")
	require.NoError(t, err)

	var projects []Project
	require.NoError(t, json.Unmarshal(data, &projects))
	require.Len(t, projects, 1)
	assert.Equal(t, "portfolio", projects[0].Title)
}

func TestClient_BearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client(), staticToken("tok-123"))
	_, err := client.Get(context.Background(), "/api/users")
	require.NoError(t, err)
}

func TestClient_EnvelopeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"message":"Invalid credentials"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client(), noToken)
	data, err := client.Post(context.Background(), "/api/users/login", Credentials{
		Username: "chukwuma",
		Password: "nope",
	})
	require.Error(t, err)
	assert.Nil(t, data)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
}

func TestClient_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"user not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client(), noToken)
	_, err := client.Get(context.Background(), "/api/users/users/99")
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "user not found", apiErr.Message)
}

func TestClient_HTTPErrorGenericFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "internal blowup, not json", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client(), noToken)
	_, err := client.Get(context.Background(), "/api/profiles")
	require.Error(t, err)

	assert.Equal(t, "something went wrong", ErrorMessage(err, "something went wrong"))
}

func TestProfile_NormalizesFieldNames(t *testing.T) {
	camel := []byte(`{"id":1,"user_id":2,"fullName":"Chukwuma Oranu","profileImage":"/uploads/me.png","profession":"engineer"}`)
	snake := []byte(`{"id":1,"user_id":2,"full_name":"Chukwuma Oranu","profile_image":"/uploads/me.png","profession":"engineer"}`)

	var fromCamel, fromSnake Profile
	require.NoError(t, json.Unmarshal(camel, &fromCamel))
	require.NoError(t, json.Unmarshal(snake, &fromSnake))

	assert.Equal(t, fromSnake, fromCamel)
	assert.Equal(t, "Chukwuma Oranu", fromCamel.FullName)
	assert.Equal(t, "/uploads/me.png", fromCamel.ProfileImage)
}
