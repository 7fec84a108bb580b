// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/IncidentConsole/services/desk/datatypes"
)

// mockHTTPClient records the last request and returns a canned response.
type mockHTTPClient struct {
	lastRequest *http.Request
	lastBody    string
	response    *http.Response
	err         error
	calls       int
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	m.calls++
	m.lastRequest = req
	if req.Body != nil {
		raw, _ := io.ReadAll(req.Body)
		m.lastBody = string(raw)
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

// newTestClient returns a client with separate std and enhanced mocks so
// tests can assert which transport handled the call.
func newTestClient(std, enhanced *mockHTTPClient) *Client {
	return NewWithHTTPClients(Config{BaseURL: "http://desk.test"}, std, enhanced)
}

// ============================================================================
// Request building
// ============================================================================

func TestListIncidentsBuildsQuery(t *testing.T) {
	std := &mockHTTPClient{response: jsonResponse(200,
		`{"success":true,"incidents":[],"total":0,"skip":10,"limit":5}`)}
	c := newTestClient(std, &mockHTTPClient{})

	_, err := c.ListIncidents(context.Background(), datatypes.IncidentFilters{
		Status:   datatypes.StatusOpen,
		Category: "Network",
		Priority: datatypes.PriorityHigh,
		Skip:     10,
		Limit:    5,
	})
	require.NoError(t, err)

	require.NotNil(t, std.lastRequest)
	assert.Equal(t, http.MethodGet, std.lastRequest.Method)
	assert.Equal(t, "/incidents", std.lastRequest.URL.Path)
	query := std.lastRequest.URL.Query()
	assert.Equal(t, "Open", query.Get("status"))
	assert.Equal(t, "Network", query.Get("category"))
	assert.Equal(t, "High", query.Get("priority"))
	assert.Equal(t, "10", query.Get("skip"))
	assert.Equal(t, "5", query.Get("limit"))
}

func TestListIncidentsOmitsZeroFilters(t *testing.T) {
	std := &mockHTTPClient{response: jsonResponse(200,
		`{"success":true,"incidents":[],"total":0}`)}
	c := newTestClient(std, &mockHTTPClient{})

	_, err := c.ListIncidents(context.Background(), datatypes.IncidentFilters{})
	require.NoError(t, err)
	assert.Empty(t, std.lastRequest.URL.RawQuery)
}

func TestGetIncidentEscapesID(t *testing.T) {
	std := &mockHTTPClient{response: jsonResponse(200,
		`{"success":true,"incident":{"incident_id":"INC20250114003","title":"VPN down"}}`)}
	c := newTestClient(std, &mockHTTPClient{})

	incident, err := c.GetIncident(context.Background(), "INC20250114003")
	require.NoError(t, err)
	assert.Equal(t, "INC20250114003", incident.IncidentID)
	assert.Equal(t, "/incidents/INC20250114003", std.lastRequest.URL.Path)
}

func TestCreateIncidentValidatesBeforeSending(t *testing.T) {
	std := &mockHTTPClient{}
	c := newTestClient(std, &mockHTTPClient{})

	_, err := c.CreateIncident(context.Background(), datatypes.CreateIncidentRequest{
		Title: "missing everything else",
	})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Zero(t, std.calls, "invalid request must not reach the network")
}

func TestCreateIncidentSendsSnakeCaseBody(t *testing.T) {
	std := &mockHTTPClient{response: jsonResponse(200,
		`{"success":true,"incident_id":"INC20250828001","incident":{"incident_id":"INC20250828001"}}`)}
	c := newTestClient(std, &mockHTTPClient{})

	incident, err := c.CreateIncident(context.Background(), datatypes.CreateIncidentRequest{
		Title:       "Printer jam on floor 3",
		Description: "Paper tray 2 keeps jamming",
		Category:    "Hardware",
		Priority:    datatypes.PriorityLow,
		CreatedBy:   "jdoe",
	})
	require.NoError(t, err)
	assert.Equal(t, "INC20250828001", incident.IncidentID)
	assert.Equal(t, "application/json", std.lastRequest.Header.Get("Content-Type"))
	assert.Contains(t, std.lastBody, `"created_by":"jdoe"`)
	assert.Contains(t, std.lastBody, `"priority":"Low"`)
}

func TestCreateIncidentRejectsResponseWithoutID(t *testing.T) {
	std := &mockHTTPClient{response: jsonResponse(200,
		`{"success":true,"incident":{}}`)}
	c := newTestClient(std, &mockHTTPClient{})

	_, err := c.CreateIncident(context.Background(), datatypes.CreateIncidentRequest{
		Title:       "t",
		Description: "d",
		Category:    "c",
		Priority:    datatypes.PriorityLow,
		CreatedBy:   "u",
	})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindDecode, apiErr.Kind)
}

// ============================================================================
// Error taxonomy
// ============================================================================

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind ErrorKind
	}{
		{"not found", 404, `{"detail":"Incident not found"}`, KindNotFound},
		{"bad request", 400, `{"detail":"Message content cannot be empty"}`, KindValidation},
		{"unprocessable", 422, `{"detail":"validation error"}`, KindValidation},
		{"server error", 500, `{"detail":"boom"}`, KindServer},
		{"bad gateway", 502, ``, KindServer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			std := &mockHTTPClient{response: jsonResponse(tt.status, tt.body)}
			c := newTestClient(std, &mockHTTPClient{})

			_, err := c.GetIncident(context.Background(), "INC1")
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.wantKind, apiErr.Kind)
			assert.Equal(t, tt.status, apiErr.StatusCode)
		})
	}
}

func TestTransportErrorWrapsCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	std := &mockHTTPClient{err: cause}
	c := newTestClient(std, &mockHTTPClient{})

	_, err := c.Health(context.Background())
	require.Error(t, err)
	assert.True(t, IsTransport(err))
	assert.ErrorIs(t, err, cause)
}

func TestDecodeErrorOnMalformedBody(t *testing.T) {
	std := &mockHTTPClient{response: jsonResponse(200, `<html>not json</html>`)}
	c := newTestClient(std, &mockHTTPClient{})

	_, err := c.GetAnalytics(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindDecode, apiErr.Kind)
}

func TestSuccessFalseIsServerError(t *testing.T) {
	std := &mockHTTPClient{response: jsonResponse(200,
		`{"success":false,"incidents":[],"total":0}`)}
	c := newTestClient(std, &mockHTTPClient{})

	_, err := c.ListIncidents(context.Background(), datatypes.IncidentFilters{})
	require.Error(t, err)
	assert.True(t, IsServer(err))
}

func TestServerDetailSurfacesInError(t *testing.T) {
	std := &mockHTTPClient{response: jsonResponse(404, `{"detail":"Incident not found"}`)}
	c := newTestClient(std, &mockHTTPClient{})

	_, err := c.GetIncident(context.Background(), "INC404")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Incident not found")
}

// ============================================================================
// Transport selection
// ============================================================================

func TestSendChatMessageUsesEnhancedTransport(t *testing.T) {
	std := &mockHTTPClient{}
	enhanced := &mockHTTPClient{response: jsonResponse(200,
		`{"success":true,"user_message":{"content":"hi"},"bot_response":{"content":"hello"},"session_updated":{"session_id":"s1"}}`)}
	c := newTestClient(std, enhanced)

	env, err := c.SendChatMessage(context.Background(), "s1", "hi")
	require.NoError(t, err)
	assert.Equal(t, "hello", env.BotResponse.Content)
	assert.Zero(t, std.calls)
	assert.Equal(t, 1, enhanced.calls)
	assert.Equal(t, "/chat/sessions/s1/messages", enhanced.lastRequest.URL.Path)
}

func TestSendChatMessageRejectsOversizedContent(t *testing.T) {
	enhanced := &mockHTTPClient{}
	c := newTestClient(&mockHTTPClient{}, enhanced)

	_, err := c.SendChatMessage(context.Background(), "s1", strings.Repeat("x", datatypes.MaxMessageContentBytes+1))
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Zero(t, enhanced.calls)
}

func TestListChatMessagesUsesStandardTransport(t *testing.T) {
	std := &mockHTTPClient{response: jsonResponse(200,
		`{"success":true,"messages":[],"total":0}`)}
	enhanced := &mockHTTPClient{}
	c := newTestClient(std, enhanced)

	_, err := c.ListChatMessages(context.Background(), "s1", 25)
	require.NoError(t, err)
	assert.Equal(t, 1, std.calls)
	assert.Zero(t, enhanced.calls)
	assert.Equal(t, "25", std.lastRequest.URL.Query().Get("limit"))
}

// ============================================================================
// Health probes
// ============================================================================

func TestHealthParsesStatus(t *testing.T) {
	std := &mockHTTPClient{response: jsonResponse(200,
		`{"status":"healthy","timestamp":"2025-08-28T09:00:00Z"}`)}
	c := newTestClient(std, &mockHTTPClient{})

	status, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.True(t, status.Healthy())
}

func TestAIHealthUnavailableIsStatusNotError(t *testing.T) {
	enhanced := &mockHTTPClient{response: jsonResponse(200,
		`{"success":false,"status":"unavailable"}`)}
	c := newTestClient(&mockHTTPClient{}, enhanced)

	status, err := c.AIHealth(context.Background())
	require.NoError(t, err)
	assert.False(t, status.Success)
	assert.Equal(t, "unavailable", status.Status)
}

// ============================================================================
// Live transport round-trip
// ============================================================================

func TestClientAgainstFakeBackend(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/incidents":
			assert.Equal(t, "Open", r.URL.Query().Get("status"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"success":true,"incidents":[{"incident_id":"INC20250828002","title":"Wifi flaky","status":"Open","priority":"Medium","category":"Network"}],"total":1}`))
		case "/health":
			_, _ = w.Write([]byte(`{"status":"healthy","timestamp":"2025-08-28T09:00:00Z"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail":"not found"}`))
		}
	}))
	defer server.Close()

	c, err := New(Config{BaseURL: server.URL})
	require.NoError(t, err)

	env, err := c.ListIncidents(context.Background(), datatypes.IncidentFilters{Status: datatypes.StatusOpen})
	require.NoError(t, err)
	require.Len(t, env.Incidents, 1)
	assert.Equal(t, "INC20250828002", env.Incidents[0].IncidentID)

	status, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.True(t, status.Healthy())

	_, err = c.GetIncident(context.Background(), "INC404")
	assert.True(t, IsNotFound(err))
}

// ============================================================================
// Construction
// ============================================================================

func TestNewRequiresValidBaseURL(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)

	_, err = New(Config{BaseURL: "not a url"})
	require.Error(t, err)

	c, err := New(Config{BaseURL: "http://localhost:8000/"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", c.BaseURL(), "trailing slash trimmed")
}
