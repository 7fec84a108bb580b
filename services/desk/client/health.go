// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Liveness and capability probes.
package client

import (
	"context"
	"net/http"

	"github.com/AleutianAI/IncidentConsole/services/desk/datatypes"
)

// Health probes backend liveness. Maps to GET /health.
func (c *Client) Health(ctx context.Context) (*datatypes.HealthStatus, error) {
	var status datatypes.HealthStatus
	if err := c.doJSON(ctx, "health", http.MethodGet, "/health", nil, nil, &status, false); err != nil {
		return nil, err
	}
	return &status, nil
}

// AIHealth probes the assistant capability tier. Maps to GET /ai/health.
//
// Uses the extended timeout transport: the server runs a live inference
// round-trip as part of the probe. Note that the server answers 200 with
// status "unavailable" when the model is down; callers should inspect
// Status, not just the error.
func (c *Client) AIHealth(ctx context.Context) (*datatypes.AIHealthStatus, error) {
	var status datatypes.AIHealthStatus
	if err := c.doJSON(ctx, "ai_health", http.MethodGet, "/ai/health", nil, nil, &status, true); err != nil {
		// A success=false envelope is how the server reports an unavailable
		// model; surface it as a status rather than an opaque error.
		if IsServer(err) {
			return &datatypes.AIHealthStatus{Success: false, Status: "unavailable"}, nil
		}
		return nil, err
	}
	return &status, nil
}
