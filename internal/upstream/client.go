// Package upstream is the HTTP client for the external portfolio REST API.
// All gateway data flows through it: the API owns the data, the gateway
// holds only transient caches on top of these calls.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"
)

const genericErrMessage = "request failed"

// Envelope is the response convention of the portfolio API:
// {success, data, message}.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// APIError carries the upstream status code and the message extracted from
// the response body (or a generic fallback when the body had none).
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream api [%d]: %s", e.StatusCode, e.Message)
}

// TokenSourceFunc provides the bearer token attached to authenticated
// requests. Returning false sends the request without credentials.
type TokenSourceFunc func(ctx context.Context) (string, bool)

type Client struct {
	baseURL     string
	httpClient  *http.Client
	tokenSource TokenSourceFunc
	onError     func()
}

func NewClient(baseURL string, httpClient *http.Client, tokenSource TokenSourceFunc) *Client {
	return &Client{
		baseURL:     baseURL,
		httpClient:  httpClient,
		tokenSource: tokenSource,
		onError:     func() {},
	}
}

// SetErrorHook registers a callback fired once per failed upstream call,
// used to feed the error counter metric.
func (c *Client) SetErrorHook(onError func()) {
	c.onError = onError
}

func (c *Client) Get(ctx context.Context, path string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *Client) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

func (c *Client) Put(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPut, path, body)
}

func (c *Client) Delete(ctx context.Context, path string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodDelete, path, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any) (data json.RawMessage, err error) {
	defer func() {
		if err != nil {
			c.onError()
		}
	}()

	var reqBody io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if tokenValue, ok := c.tokenSource(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+tokenValue)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    messageFromBody(respBytes),
		}
	}

	var envelope Envelope
	if err := json.Unmarshal(respBytes, &envelope); err != nil {
		log.Errorf("upstream api, unmarshal envelope from %s %s: %s", method, path, err)
		return nil, fmt.Errorf("unmarshal response envelope: %w", err)
	}

	if !envelope.Success {
		message := envelope.Message
		if message == "" {
			message = genericErrMessage
		}
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    message,
		}
	}

	return envelope.Data, nil
}

// messageFromBody digs the error message out of an HTTP error response,
// falling back to a generic one for empty or non-JSON bodies.
func messageFromBody(body []byte) string {
	var errBody struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &errBody); err == nil && errBody.Message != "" {
		return errBody.Message
	}
	return genericErrMessage
}

// ErrorMessage extracts the user-facing message from an upstream call
// error: the API's own message when present, a generic fallback otherwise.
func ErrorMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != genericErrMessage {
		return apiErr.Message
	}
	return fallback
}
