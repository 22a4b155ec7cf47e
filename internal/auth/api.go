package auth

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/chukwumaoranu/portfolio-gw/internal/upstream"
)

var _ userAPI = (*API)(nil)

// API is the users slice of the portfolio REST API.
type API struct {
	client *upstream.Client
}

func NewAPI(client *upstream.Client) *API {
	return &API{client: client}
}

func (a *API) Login(ctx context.Context, credentials upstream.Credentials) (*upstream.AuthData, error) {
	data, err := a.client.Post(ctx, "/api/users/login", credentials)
	if err != nil {
		return nil, err
	}
	return decodeAuthData(data)
}

func (a *API) Register(ctx context.Context, registration upstream.Registration) (*upstream.AuthData, error) {
	data, err := a.client.Post(ctx, "/api/users/register", registration)
	if err != nil {
		return nil, err
	}
	return decodeAuthData(data)
}

func (a *API) Logout(ctx context.Context) error {
	_, err := a.client.Post(ctx, "/api/users/logout", nil)
	return err
}

func decodeAuthData(data json.RawMessage) (*upstream.AuthData, error) {
	authData := &upstream.AuthData{}
	if err := json.Unmarshal(data, authData); err != nil {
		return nil, fmt.Errorf("unmarshal auth data: %w", err)
	}
	if authData.Token == "" {
		return nil, fmt.Errorf("auth data without token")
	}
	return authData, nil
}
