// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package datatypes

// ChatMetrics summarizes assistant usage, returned only by the enhanced
// analytics endpoint.
type ChatMetrics struct {
	TotalSessions         int `json:"total_sessions"`
	TotalMessages         int `json:"total_messages"`
	SessionsWithIncidents int `json:"sessions_with_incidents"`
}

// AnalyticsSnapshot is a point-in-time aggregate view of incident counts and
// rates. The backend recomputes it per request; the client replaces its copy
// wholesale on each fetch and never merges incrementally.
//
// Enhanced-only fields (WeeklyTrend, ChatMetrics, SLACompliance,
// FirstContactResolution) are pointers so a standard snapshot leaves them
// absent instead of zero.
type AnalyticsSnapshot struct {
	TotalIncidents        int                 `json:"total_incidents"`
	OpenIncidents         int                 `json:"open_incidents"`
	ResolvedToday         int                 `json:"resolved_today"`
	PriorityDistribution  map[Priority]int    `json:"priority_distribution"`
	CategoryDistribution  map[string]int      `json:"category_distribution"`
	AvgResolutionTimeMins float64             `json:"average_resolution_time"`
	AIResolutionRate      float64             `json:"ai_resolution_rate"`
	UserSatisfactionScore float64             `json:"user_satisfaction_score"`

	WeeklyTrend            *float64     `json:"weekly_trend,omitempty"`
	ChatMetrics            *ChatMetrics `json:"chat_metrics,omitempty"`
	SLACompliance          *float64     `json:"sla_compliance,omitempty"`
	FirstContactResolution *float64     `json:"first_contact_resolution,omitempty"`
}

// AnalyticsEnvelope wraps GET /analytics/dashboard and
// GET /analytics/dashboard/enhanced responses.
type AnalyticsEnvelope struct {
	Success   bool              `json:"success"`
	Analytics AnalyticsSnapshot `json:"analytics"`
}
