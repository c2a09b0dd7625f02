package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/habit-grid/internal/logger"
)

// TransportError is the single distinguished error kind for the habit
// API: any network failure or non-2xx response surfaces as one of these,
// distinguished only by status and message. Validation failures arrive
// as 4xx responses and are not modeled separately.
type TransportError struct {
	Method string
	Path   string

	// Status is the HTTP status code, or 0 for network-level failures.
	Status int

	// Body is the response body, when one was received.
	Body string

	// Err is the underlying error for network-level failures.
	Err error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s: unexpected status %d: %s",
		e.Method, e.Path, e.Status, e.Body)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Retryable reports whether the failure is worth retrying: network
// errors and server-side failures are, client errors (4xx) are not.
func (e *TransportError) Retryable() bool {
	return e.Status == 0 || e.Status >= 500
}

// IsTransport reports whether err (or any error in its chain) is a
// TransportError, returning it when so.
func IsTransport(err error) (*TransportError, bool) {
	var te *TransportError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}

// Client is a thin HTTP client for the habit API. It handles JSON
// marshaling and request-ID tagging; failures propagate to the caller
// as TransportErrors with no retrying beyond transport defaults.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a habit API client. The baseURL should be the API
// root (e.g., http://localhost:8000/api).
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string { return c.baseURL }

// Ping verifies connectivity by listing the user collection.
func (c *Client) Ping(ctx context.Context) error {
	return c.get(ctx, "/v1/userall/", nil)
}

func (c *Client) get(ctx context.Context, path string, result interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, result)
}

func (c *Client) post(ctx context.Context, path string, body, result interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, result)
}

func (c *Client) put(ctx context.Context, path string, body, result interface{}) error {
	return c.do(ctx, http.MethodPut, path, body, result)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// do is the core HTTP method that builds the request and handles JSON
// (de)serialization. Every request carries an X-Request-ID so failures
// in the log file can be correlated with server logs.
func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	body interface{},
	result interface{},
) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Logger.Debug("request failed",
			"method", method, "path", path, "request_id", requestID, "err", err)
		return &TransportError{Method: method, Path: path, Err: err}
	}

	respBody, readErr := io.ReadAll(resp.Body)
	resp.Body.Close()
	if readErr != nil {
		return &TransportError{Method: method, Path: path, Err: readErr}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Logger.Debug("unexpected status",
			"method", method, "path", path,
			"request_id", requestID, "status", resp.StatusCode)
		return &TransportError{
			Method: method,
			Path:   path,
			Status: resp.StatusCode,
			Body:   strings.TrimSpace(string(respBody)),
		}
	}

	// No content to parse (e.g. 204 on delete).
	if result == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("unmarshaling response from %s %s: %w", method, path, err)
	}

	return nil
}
