/*
Package gateway is the HTTP client for the АлёГараж REST backend.

It owns the bearer token: the in-memory copy is preferred, the persistent
credential store is the fallback after a fresh process start. Every request
sends JSON and expects JSON back; non-2xx responses become a *RequestError
whose message is the body's "message" field when present, or a generic
status-coded fallback.
*/
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"alegarazh/internal/app/storage"
)

// RequestError is a failed backend call. Message is human-readable and may be
// matched against form-field keywords by the caller.
type RequestError struct {
	// Status is the HTTP status code of the response.
	Status int

	// Message is the server-provided error text or the generic fallback.
	Message string
}

// Error implements the error interface; the text is shown to users verbatim.
func (e *RequestError) Error() string {
	return e.Message
}

// Client is the АлёГараж API client.
type Client struct {
	baseURL string
	http    *http.Client
	creds   storage.Store

	// token is the in-memory copy; empty means fall back to creds.
	token string
}

// New creates a Client against baseURL, persisting credentials in creds.
// No request timeout is set beyond the transport defaults; callers cancel via
// context.
func New(baseURL string, creds storage.Store) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{},
		creds:   creds,
	}
}

// Token returns the current bearer token, preferring the in-memory copy and
// falling back to the persistent store.
func (c *Client) Token() string {
	if c.token != "" {
		return c.token
	}
	return c.creds.Token()
}

// SetToken stores the token in memory and mirrors it to the persistent store.
func (c *Client) SetToken(token string) error {
	c.token = token
	return c.creds.SaveToken(token)
}

// ClearCredentials drops the in-memory token and the persisted token and user
// snapshot together.
func (c *Client) ClearCredentials() error {
	c.token = ""
	return c.creds.Clear()
}

// request performs one API call: body is JSON-encoded when non-nil, the
// response is decoded into out when non-nil.
func (c *Client) request(ctx context.Context, method, endpoint string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", endpoint, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return c.errorFromResponse(res)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", endpoint, err)
	}

	return nil
}

// errorFromResponse extracts the "message" field from an error body, falling
// back to a generic status-coded message when the body is not parsable.
func (c *Client) errorFromResponse(res *http.Response) error {
	reqErr := &RequestError{
		Status:  res.StatusCode,
		Message: fmt.Sprintf("Ошибка запроса: %d", res.StatusCode),
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err == nil && body.Message != "" {
		reqErr.Message = body.Message
	}

	return reqErr
}
