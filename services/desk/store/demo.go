// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Canned data for offline mode. Only reachable behind the explicit
// --offline flag; a live fetch that fails never falls back to these.
package store

import (
	"time"

	"github.com/AleutianAI/IncidentConsole/services/desk/datatypes"
)

func demoIncidents() []datatypes.Incident {
	now := time.Now()
	assignee := "jsmith"
	return []datatypes.Incident{
		{
			IncidentID:  "INC20250114001",
			Title:       "VPN disconnects every few minutes",
			Description: "Remote users report the VPN tunnel dropping roughly every five minutes since the morning maintenance window.",
			Category:    "Network",
			Priority:    datatypes.PriorityHigh,
			Status:      datatypes.StatusInProgress,
			CreatedBy:   "demo",
			AssignedTo:  &assignee,
			CreatedAt:   now.Add(-3 * time.Hour),
			UpdatedAt:   now.Add(-20 * time.Minute),
		},
		{
			IncidentID:  "INC20250114002",
			Title:       "Shared drive read-only for finance group",
			Description: "The finance shared drive mounts read-only for all members of the finance AD group.",
			Category:    "Access",
			Priority:    datatypes.PriorityMedium,
			Status:      datatypes.StatusOpen,
			CreatedBy:   "demo",
			CreatedAt:   now.Add(-90 * time.Minute),
			UpdatedAt:   now.Add(-90 * time.Minute),
		},
		{
			IncidentID:  "INC20250113007",
			Title:       "Laptop battery swelling",
			Description: "Physical damage reported on a 2022 fleet laptop; device pulled from service pending replacement.",
			Category:    "Hardware",
			Priority:    datatypes.PriorityLow,
			Status:      datatypes.StatusResolved,
			CreatedBy:   "demo",
			CreatedAt:   now.Add(-26 * time.Hour),
			UpdatedAt:   now.Add(-24 * time.Hour),
		},
	}
}

func demoAnalytics() datatypes.AnalyticsSnapshot {
	return datatypes.AnalyticsSnapshot{
		TotalIncidents: 3,
		OpenIncidents:  2,
		ResolvedToday:  1,
		PriorityDistribution: map[datatypes.Priority]int{
			datatypes.PriorityLow:    1,
			datatypes.PriorityMedium: 1,
			datatypes.PriorityHigh:   1,
		},
		CategoryDistribution: map[string]int{
			"Network":  1,
			"Access":   1,
			"Hardware": 1,
		},
		AvgResolutionTimeMins: 118,
		AIResolutionRate:      0.33,
		UserSatisfactionScore: 4.1,
	}
}
