// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package store

import (
	"fmt"

	"github.com/AleutianAI/IncidentConsole/services/desk/datatypes"
)

// apply folds one action into the state. Runs only on the consumer
// goroutine, so it mutates st directly; clone happens at the Snapshot
// boundary.
func (s *Store) apply(st *State, action Action) {
	switch a := action.(type) {
	case SetIncidents:
		st.Incidents = a.Incidents
		st.IncidentsTotal = a.Total

	case AddIncident:
		st.Incidents = append([]datatypes.Incident{a.Incident}, st.Incidents...)
		st.IncidentsTotal++

	case UpdateIncidentByID:
		// No-op when the id is absent: never drops, never duplicates.
		for i := range st.Incidents {
			if st.Incidents[i].IncidentID == a.MatchID {
				st.Incidents[i] = a.Incident
				break
			}
		}

	case RemoveIncidentByID:
		for i := range st.Incidents {
			if st.Incidents[i].IncidentID == a.MatchID {
				st.Incidents = append(st.Incidents[:i], st.Incidents[i+1:]...)
				if st.IncidentsTotal > 0 {
					st.IncidentsTotal--
				}
				break
			}
		}

	case SetChatSession:
		session := a.Session
		st.Session = &session
		st.SessionLocal = a.Local

	case SetChatMessages:
		st.Messages = a.Messages

	case AppendChatMessage:
		st.Messages = append(st.Messages, a.Message)

	case ConfirmChatMessage:
		for i := range st.Messages {
			if st.Messages[i].LocalID == a.LocalID {
				confirmed := a.Message
				confirmed.LocalID = a.LocalID
				confirmed.Delivery = datatypes.DeliveryConfirmed
				st.Messages[i] = confirmed
				break
			}
		}

	case MarkMessageFailed:
		for i := range st.Messages {
			if st.Messages[i].LocalID == a.LocalID {
				st.Messages[i].Delivery = datatypes.DeliveryFailed
				break
			}
		}

	case SetChatLoading:
		st.ChatLoading = a.Loading

	case SetAnalytics:
		analytics := a.Analytics
		st.Analytics = &analytics

	case SetSliceHealth:
		st.Health[a.Slice] = a.Health
		if s.metrics != nil {
			degraded := a.Health.State == SliceDegraded || a.Health.State == SliceStale
			s.metrics.SetDegraded(string(a.Slice), degraded)
		}

	case SetActiveView:
		st.ActiveView = a.View

	case ToggleSidebar:
		st.SidebarVisible = !st.SidebarVisible

	default:
		// The interface is sealed, so this fires only when a new variant was
		// added without a reducer arm. Loud, counted, state untouched.
		s.logger.Warn("store: unhandled action variant",
			"action", fmt.Sprintf("%T", action))
		if s.metrics != nil {
			s.metrics.CountUnknownAction()
		}
	}
}
