package upstream

import (
	"context"
	"encoding/json"
)

//go:generate mockgen -source=api.go -destination=api_mocks.go -package=upstream

var _ API = (*Client)(nil)

// API is the request surface the entity services program against, so
// tests can stand in for the portfolio API without a live server.
type API interface {
	Get(ctx context.Context, path string) (json.RawMessage, error)
	Post(ctx context.Context, path string, body any) (json.RawMessage, error)
	Put(ctx context.Context, path string, body any) (json.RawMessage, error)
	Delete(ctx context.Context, path string) (json.RawMessage, error)
}
