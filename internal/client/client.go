// Package client is a typed HTTP client for the libtrack REST API. It is the
// only place that speaks the wire protocol: callers get Go values and errors,
// never raw status strings.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Client calls the REST backend. Safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

func New(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// do executes one request and returns the response body. A non-2xx response
// becomes a *StatusError carrying the backend's JSON error message; a request
// that never completes surfaces as a wrapped transport error.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("api request", "method", method, "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Message: errorMessage(data)}
	}
	return data, nil
}

// getJSON fetches path and decodes the response into v.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, v any) error {
	data, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// expectStatus checks the action response body for the expected status value.
// Anything else is still an application-level answer, so it wraps a
// *StatusError carrying the backend's message; callers must not mistake it
// for a transport failure.
func expectStatus(data []byte, want string) error {
	var p struct {
		Status string `json:"status"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if p.Status != want {
		return fmt.Errorf("unexpected status %q: %w", p.Status,
			&StatusError{Code: http.StatusOK, Message: p.Error})
	}
	return nil
}

func errorMessage(data []byte) string {
	var p struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return ""
	}
	return p.Error
}
