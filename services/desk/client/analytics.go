// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Analytics dashboard endpoints.
package client

import (
	"context"
	"net/http"

	"github.com/AleutianAI/IncidentConsole/services/desk/datatypes"
)

// GetAnalytics fetches the standard dashboard snapshot.
// Maps to GET /analytics/dashboard.
func (c *Client) GetAnalytics(ctx context.Context) (*datatypes.AnalyticsSnapshot, error) {
	var env datatypes.AnalyticsEnvelope
	if err := c.doJSON(ctx, "analytics", http.MethodGet, "/analytics/dashboard", nil, nil, &env, false); err != nil {
		return nil, err
	}
	return &env.Analytics, nil
}

// GetEnhancedAnalytics fetches the enhanced snapshot with trend and chat
// metrics. Maps to GET /analytics/dashboard/enhanced; uses the extended
// timeout transport because the server aggregates across chat history.
func (c *Client) GetEnhancedAnalytics(ctx context.Context) (*datatypes.AnalyticsSnapshot, error) {
	var env datatypes.AnalyticsEnvelope
	if err := c.doJSON(ctx, "analytics_enhanced", http.MethodGet, "/analytics/dashboard/enhanced", nil, nil, &env, true); err != nil {
		return nil, err
	}
	return &env.Analytics, nil
}
