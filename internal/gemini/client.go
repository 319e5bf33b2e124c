// Copyright (c) 2025 FinMentor Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package gemini

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/finmentor/finmentor-tui/internal/credential"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// DefaultBaseURL is the generative-language API root.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// DefaultModel is the model used when none is configured.
	DefaultModel = "gemini-1.5-flash"

	// DefaultTimeout is the per-request timeout.
	DefaultTimeout = 60 * time.Second

	// MaxResponseSize caps the response body.
	// SECURITY: Response size limit prevents memory exhaustion attacks.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB limit

	// requestsPerSecond spaces outbound calls. The free tier allows 15
	// requests per minute; one per second is comfortably under interactive
	// typing speed anyway.
	requestsPerSecond = 1
)

// PERFORMANCE: Connection pooling reduces TCP handshake overhead.
// Shared HTTP client for all generateContent requests.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	},
	Timeout: DefaultTimeout,
}

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrNotConfigured indicates no credential was supplied; no request is
	// made in this case.
	ErrNotConfigured = errors.New("API key not configured")

	// ErrAuthFailed indicates the service rejected the credential (401/403).
	ErrAuthFailed = errors.New("authentication failed")

	// ErrRateLimited indicates too many requests were made.
	ErrRateLimited = errors.New("rate limited")

	// ErrEmptyResponse indicates a 2xx response carrying no generated text.
	ErrEmptyResponse = errors.New("empty response from model")
)

// APIError is a non-2xx response from the service.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("gemini error [%s] (HTTP %d): %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("gemini error (HTTP %d): %s", e.Status, e.Message)
}

// IsAuthError reports whether err is an authorization-class failure, used by
// callers to pick "check your API key" guidance over generic retry guidance.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrAuthFailed) || errors.Is(err, ErrNotConfigured)
}

// =============================================================================
// CLIENT
// =============================================================================

// Completer is the interface the conversation session depends on.
type Completer interface {
	// Complete sends one composed request and returns the generated text.
	Complete(ctx context.Context, req Request, cred credential.Credential) (string, error)
}

// Client calls the generateContent endpoint. A single attempt per invocation;
// the caller decides whether to resend.
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a client with default endpoint settings.
func NewClient() *Client {
	return &Client{
		baseURL:    DefaultBaseURL,
		model:      DefaultModel,
		httpClient: sharedHTTPClient,
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
}

// WithBaseURL sets a custom API root.
func (c *Client) WithBaseURL(url string) *Client {
	c.baseURL = strings.TrimSuffix(url, "/")
	return c
}

// WithModel sets the model identifier.
func (c *Client) WithModel(model string) *Client {
	if model != "" {
		c.model = model
	}
	return c
}

// WithTimeout sets the per-request timeout. This replaces the shared client
// with a dedicated one, so pooled connections are not affected.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.httpClient = &http.Client{
		Transport: sharedHTTPClient.Transport,
		Timeout:   timeout,
	}
	return c
}

// Model returns the configured model identifier.
func (c *Client) Model() string { return c.model }

// Complete sends req and extracts the first generated text fragment.
//
// One attempt only: transient failures are returned to the caller, who must
// resend explicitly. The credential travels in the x-goog-api-key header and
// never appears in errors or logs.
func (c *Client) Complete(ctx context.Context, req Request, cred credential.Credential) (string, error) {
	if !cred.Present() {
		return "", ErrNotConfigured
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("request cancelled: %w", err)
	}

	bodyBytes, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", cred.Value)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)

	// SECURITY: Clear the credential header immediately after the request so
	// it cannot surface through request dumps.
	httpReq.Header.Del("x-goog-api-key")

	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	c.logResponse(resp, time.Since(start), cred)

	body, err := readResponse(resp)
	if err != nil {
		return "", err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", handleErrorResponse(resp.StatusCode, body)
	}

	var parsed Response
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("%w: %v", ErrEmptyResponse, err)
	}

	text := parsed.FirstText()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// logResponse logs status, duration, and the credential fingerprint only.
// SECURITY: Never log the key value or the response body.
func (c *Client) logResponse(resp *http.Response, duration time.Duration, cred credential.Credential) {
	log.Printf("gemini: %s %d (%v) key=%s", c.model, resp.StatusCode, duration.Round(time.Millisecond), cred.Fingerprint())
}

// readResponse reads the body with a size cap.
// SECURITY: Response size limit prevents memory exhaustion attacks.
func readResponse(resp *http.Response) ([]byte, error) {
	limited := io.LimitReader(resp.Body, MaxResponseSize)
	body, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) == MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}

// handleErrorResponse maps non-2xx statuses to the error taxonomy.
func handleErrorResponse(statusCode int, body []byte) error {
	apiErr := &APIError{Status: statusCode}

	var parsed apiErrorResponse
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		apiErr.Code = parsed.Error.Status
		apiErr.Message = parsed.Error.Message
	} else {
		apiErr.Message = http.StatusText(statusCode)
	}

	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrAuthFailed, apiErr.Message)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrRateLimited, apiErr.Message)
	default:
		return apiErr
	}
}
