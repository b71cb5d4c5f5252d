// ABOUTME: HTTP JSON client for the remote update service
// ABOUTME: One method per remote operation; failures surface as wrapped errors

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	// MaxResponseSize caps response bodies read from the server.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB

	userAgent = "otacheck/1.0"
)

// ErrMalformedResponse wraps a response body that could not be decoded.
// Callers that must distinguish parse failures from transport failures
// (the root-install logging path) test for it with errors.Is.
var ErrMalformedResponse = errors.New("malformed server response")

// Client talks to the update service API. All methods take a context and
// return either a decoded payload or an error; timeouts are handled here and
// look like any other failure to callers.
type Client struct {
	baseURL    string
	httpClient *http.Client
	appVersion string
}

// NewClient creates an API client for the service at baseURL.
func NewClient(baseURL, appVersion string) *Client {
	return &Client{
		baseURL:    baseURL,
		appVersion: appVersion,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// getJSON issues a GET and decodes the JSON response into out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return c.do(req, out)
}

// postJSON issues a POST with a JSON body and decodes the response into out.
// A nil out discards the response body.
func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", uuid.New().String())
	req.Header.Set("App-Version", c.appVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}
