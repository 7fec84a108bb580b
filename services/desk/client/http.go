// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package client is a typed HTTP client for the support desk backend.
//
// # Architecture
//
//	Store / CLI → Client (per-endpoint methods) → HTTPClient Interface → http.Client
//
// The client is a thin configured request sender: fixed base URL, fixed
// content type, fixed timeout (standard and an extended variant for the
// enhanced endpoints). It logs every outgoing call and every failing
// response. It does not retry, does not deduplicate concurrent identical
// requests, and does not cache; degraded-mode behavior lives in the store.
//
// # Thread Safety
//
// Client is immutable after construction and safe for concurrent use.
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

	"github.com/AleutianAI/IncidentConsole/services/desk/observability"
)

// =============================================================================
// Timeouts
// =============================================================================

const (
	// MinTimeout is the absolute minimum for any desk request. Prevents
	// accidental infinite hangs from zero timeouts.
	MinTimeout = 1 * time.Second

	// DefaultTimeout is the standard timeout for desk API requests.
	DefaultTimeout = 30 * time.Second

	// DefaultEnhancedTimeout is the extended timeout for the enhanced
	// endpoints (uploads, exports, AI health), which run model inference or
	// bulk serialization server-side.
	DefaultEnhancedTimeout = 120 * time.Second
)

// enforceMinTimeout returns at least MinTimeout, and the default when the
// requested value is zero or negative.
func enforceMinTimeout(requested, fallback time.Duration) time.Duration {
	if requested <= 0 {
		return fallback
	}
	if requested < MinTimeout {
		return MinTimeout
	}
	return requested
}

// =============================================================================
// HTTP Client Interface
// =============================================================================

// HTTPClient allows injecting mock HTTP clients for testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// defaultHTTPClient wraps *http.Client to satisfy HTTPClient.
type defaultHTTPClient struct {
	client *http.Client
}

func (c *defaultHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return c.client.Do(req)
}

// =============================================================================
// Configuration
// =============================================================================

// Config holds construction parameters for Client.
//
// Only BaseURL is required; all other fields have defaults.
type Config struct {
	// BaseURL is the desk backend root, without trailing slash
	// (e.g. "http://localhost:8000").
	BaseURL string

	// Timeout applies to standard endpoints. Default: 30s.
	Timeout time.Duration

	// EnhancedTimeout applies to upload/export/AI endpoints. Default: 120s.
	EnhancedTimeout time.Duration

	// Logger receives request/failure logs. Default: slog.Default().
	Logger *slog.Logger

	// Metrics receives request observations. Nil disables instrumentation.
	Metrics *observability.Metrics
}

// =============================================================================
// Client
// =============================================================================

// Client is the desk API client. One method per backend endpoint; see
// incidents.go, chat.go, analytics.go, reference.go, health.go, enhanced.go.
type Client struct {
	baseURL  string
	std      HTTPClient
	enhanced HTTPClient
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// New creates a Client with production HTTP transports.
//
// Returns an error if BaseURL is empty or unparseable. Trailing slashes on
// BaseURL are trimmed so path joining stays predictable.
func New(config Config) (*Client, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("desk client: BaseURL is required")
	}
	parsed, err := url.Parse(config.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("desk client: invalid BaseURL %q", config.BaseURL)
	}

	std := &defaultHTTPClient{client: &http.Client{
		Timeout: enforceMinTimeout(config.Timeout, DefaultTimeout),
	}}
	enhanced := &defaultHTTPClient{client: &http.Client{
		Timeout: enforceMinTimeout(config.EnhancedTimeout, DefaultEnhancedTimeout),
	}}
	return NewWithHTTPClients(config, std, enhanced), nil
}

// NewWithHTTPClients creates a Client with injected transports.
//
// Tests use this to substitute mocks without a live backend:
//
//	mock := &mockHTTPClient{response: okResponse}
//	c := client.NewWithHTTPClients(client.Config{BaseURL: "http://test"}, mock, mock)
func NewWithHTTPClients(config Config, std, enhanced HTTPClient) *Client {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:  strings.TrimRight(config.BaseURL, "/"),
		std:      std,
		enhanced: enhanced,
		logger:   logger,
		metrics:  config.Metrics,
	}
}

// BaseURL returns the configured backend root.
func (c *Client) BaseURL() string { return c.baseURL }

// =============================================================================
// Request Plumbing
// =============================================================================

// errorBody is the backend's failure payload shape.
type errorBody struct {
	Detail string `json:"detail"`
}

// successEnvelope is the minimal shape shared by every success payload.
type successEnvelope struct {
	Success *bool `json:"success"`
}

// doJSON performs one request and decodes the JSON response into out.
//
// endpoint is the metric/log label, not the URL path. body may be nil for
// GET requests. When useEnhanced is true the extended-timeout transport is
// used. All failures come back as *APIError.
func (c *Client) doJSON(ctx context.Context, endpoint, method, path string, query url.Values, body any, out any, useEnhanced bool) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &APIError{Kind: KindValidation, Endpoint: endpoint, Err: fmt.Errorf("encode request: %w", err)}
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return &APIError{Kind: KindTransport, Endpoint: endpoint, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, endpoint, out, useEnhanced)
}

// send dispatches a prepared request and decodes the response.
func (c *Client) send(req *http.Request, endpoint string, out any, useEnhanced bool) error {
	transport := c.std
	if useEnhanced {
		transport = c.enhanced
	}

	c.logger.Debug("desk request",
		"endpoint", endpoint,
		"method", req.Method,
		"url", req.URL.String(),
	)

	start := time.Now()
	resp, err := transport.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		apiErr := &APIError{Kind: KindTransport, Endpoint: endpoint, Err: err}
		c.observeFailure(endpoint, apiErr, elapsed)
		return apiErr
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		apiErr := &APIError{Kind: KindTransport, Endpoint: endpoint, Err: fmt.Errorf("read response: %w", err)}
		c.observeFailure(endpoint, apiErr, elapsed)
		return apiErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var eb errorBody
		_ = json.Unmarshal(raw, &eb)
		apiErr := &APIError{
			Kind:       classifyStatus(resp.StatusCode),
			StatusCode: resp.StatusCode,
			Endpoint:   endpoint,
			Detail:     eb.Detail,
		}
		c.observeFailure(endpoint, apiErr, elapsed)
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			apiErr := &APIError{Kind: KindDecode, StatusCode: resp.StatusCode, Endpoint: endpoint, Err: err}
			c.observeFailure(endpoint, apiErr, elapsed)
			return apiErr
		}
		// A 200 with success=false is still a server-side failure.
		var env successEnvelope
		if err := json.Unmarshal(raw, &env); err == nil && env.Success != nil && !*env.Success {
			apiErr := &APIError{Kind: KindServer, StatusCode: resp.StatusCode, Endpoint: endpoint, Detail: "backend reported failure"}
			c.observeFailure(endpoint, apiErr, elapsed)
			return apiErr
		}
	}

	c.metrics.ObserveRequest(endpoint, "success", elapsed)
	return nil
}

// observeFailure logs and counts one failed request.
func (c *Client) observeFailure(endpoint string, apiErr *APIError, elapsed time.Duration) {
	c.logger.Error("desk request failed",
		"endpoint", endpoint,
		"kind", apiErr.Kind.String(),
		"status_code", apiErr.StatusCode,
		"detail", apiErr.Detail,
		"error", errString(apiErr.Err),
		"duration_ms", elapsed.Milliseconds(),
	)
	c.metrics.ObserveRequest(endpoint, "error", elapsed)
	c.metrics.ObserveError(endpoint, apiErr.Kind.String())
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
