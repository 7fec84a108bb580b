// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Incident endpoints: list, get, create, update, resolve.
package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/AleutianAI/IncidentConsole/services/desk/datatypes"
)

// ListIncidents fetches incidents matching the given filters.
//
// Maps to GET /incidents with skip/limit/status/category/priority query
// parameters. The returned envelope carries the server-side total, which may
// exceed len(Incidents) when paging.
func (c *Client) ListIncidents(ctx context.Context, filters datatypes.IncidentFilters) (*datatypes.IncidentListEnvelope, error) {
	query := url.Values{}
	if filters.Status != "" {
		query.Set("status", string(filters.Status))
	}
	if filters.Category != "" {
		query.Set("category", filters.Category)
	}
	if filters.Priority != "" {
		query.Set("priority", string(filters.Priority))
	}
	if filters.Skip > 0 {
		query.Set("skip", strconv.Itoa(filters.Skip))
	}
	if filters.Limit > 0 {
		query.Set("limit", strconv.Itoa(filters.Limit))
	}

	var env datatypes.IncidentListEnvelope
	if err := c.doJSON(ctx, "incidents_list", http.MethodGet, "/incidents", query, nil, &env, false); err != nil {
		return nil, err
	}
	return &env, nil
}

// GetIncident fetches a single incident by its public identifier
// (e.g. "INC20250114003"). Maps to GET /incidents/{id}.
func (c *Client) GetIncident(ctx context.Context, incidentID string) (*datatypes.Incident, error) {
	var env datatypes.IncidentEnvelope
	path := "/incidents/" + url.PathEscape(incidentID)
	if err := c.doJSON(ctx, "incidents_get", http.MethodGet, path, nil, nil, &env, false); err != nil {
		return nil, err
	}
	return &env.Incident, nil
}

// CreateIncident submits a new incident and returns the server-confirmed
// record, including the assigned incident_id. Maps to POST /incidents.
//
// The request is validated locally before any network traffic; validation
// failures surface as *APIError with KindValidation.
func (c *Client) CreateIncident(ctx context.Context, req datatypes.CreateIncidentRequest) (*datatypes.Incident, error) {
	if err := req.Validate(); err != nil {
		return nil, &APIError{Kind: KindValidation, Endpoint: "incidents_create", Err: err}
	}
	var env datatypes.IncidentEnvelope
	if err := c.doJSON(ctx, "incidents_create", http.MethodPost, "/incidents", nil, req, &env, false); err != nil {
		return nil, err
	}
	if env.Incident.IncidentID == "" {
		return nil, &APIError{Kind: KindDecode, Endpoint: "incidents_create", Err: fmt.Errorf("response missing incident_id")}
	}
	return &env.Incident, nil
}

// UpdateIncident applies a partial update and returns the refreshed record.
// Maps to PUT /incidents/{id}.
func (c *Client) UpdateIncident(ctx context.Context, incidentID string, req datatypes.UpdateIncidentRequest) (*datatypes.Incident, error) {
	if err := req.Validate(); err != nil {
		return nil, &APIError{Kind: KindValidation, Endpoint: "incidents_update", Err: err}
	}
	var env datatypes.IncidentEnvelope
	path := "/incidents/" + url.PathEscape(incidentID)
	if err := c.doJSON(ctx, "incidents_update", http.MethodPut, path, nil, req, &env, false); err != nil {
		return nil, err
	}
	return &env.Incident, nil
}

// ResolveIncident marks an incident resolved with the given resolution
// steps. The server stamps resolved_at and computes the resolution time.
// Maps to POST /incidents/{id}/resolve.
func (c *Client) ResolveIncident(ctx context.Context, incidentID string, resolutionSteps string) (*datatypes.Incident, error) {
	var env datatypes.IncidentEnvelope
	path := "/incidents/" + url.PathEscape(incidentID) + "/resolve"
	body := datatypes.ResolveIncidentRequest{ResolutionSteps: resolutionSteps}
	if err := c.doJSON(ctx, "incidents_resolve", http.MethodPost, path, nil, body, &env, false); err != nil {
		return nil, err
	}
	return &env.Incident, nil
}
