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
	"time"

	"github.com/AleutianAI/IncidentConsole/services/desk/datatypes"
)

// View identifies the active screen in a front end driving this store.
type View string

const (
	ViewDashboard View = "dashboard"
	ViewIncidents View = "incidents"
	ViewChat      View = "chat"
	ViewAnalytics View = "analytics"
)

// SliceName identifies one independently fetched slice of state.
type SliceName string

const (
	SliceIncidents SliceName = "incidents"
	SliceChat      SliceName = "chat"
	SliceAnalytics SliceName = "analytics"
)

// SliceState is the load lifecycle of a slice.
//
// Degraded and Stale replace the source system's habit of substituting
// fabricated data on failure: a failed fetch is recorded as such, and any
// data shown under Stale is a real, timestamped previous snapshot.
type SliceState int

const (
	// SliceEmpty means no fetch has completed yet ("no data yet", which is
	// distinct from degraded).
	SliceEmpty SliceState = iota

	// SliceLoading means a fetch is in flight.
	SliceLoading

	// SliceReady means the slice holds fresh server data.
	SliceReady

	// SliceDegraded means the last fetch failed and no substitute data is
	// being shown.
	SliceDegraded

	// SliceStale means the last fetch failed and the slice holds the last
	// known good snapshot from the local cache, flagged with its capture
	// time.
	SliceStale
)

// String returns a human-readable form for logs and the CLI status line.
func (s SliceState) String() string {
	switch s {
	case SliceEmpty:
		return "empty"
	case SliceLoading:
		return "loading"
	case SliceReady:
		return "ready"
	case SliceDegraded:
		return "degraded"
	case SliceStale:
		return "stale"
	default:
		return "unknown"
	}
}

// SliceHealth is the fetch outcome metadata for one slice.
type SliceHealth struct {
	State SliceState

	// Source records where the current data came from: "server", "cache",
	// or "demo" (offline mode only).
	Source string

	// LastError and LastErrorKind describe the most recent failure, kept
	// across a successful stale-cache load so the UI can explain why the
	// data is old.
	LastError     string
	LastErrorKind string

	// UpdatedAt is when this health record last changed.
	UpdatedAt time.Time

	// CapturedAt is when stale data was originally fetched from the server.
	// Zero unless State is SliceStale.
	CapturedAt time.Time
}

// State is an immutable snapshot of the application state. Snapshot()
// returns a deep-enough copy: slices are cloned, record contents are shared
// but treated as read-only by convention.
type State struct {
	Incidents      []datatypes.Incident
	IncidentsTotal int

	Session      *datatypes.ChatSession
	SessionLocal bool
	Messages     []datatypes.ChatMessage
	ChatLoading  bool

	Analytics *datatypes.AnalyticsSnapshot

	Health map[SliceName]SliceHealth

	ActiveView     View
	SidebarVisible bool
}

// clone copies the state for handoff outside the consumer goroutine.
func (st *State) clone() State {
	out := *st
	out.Incidents = append([]datatypes.Incident(nil), st.Incidents...)
	out.Messages = append([]datatypes.ChatMessage(nil), st.Messages...)
	out.Health = make(map[SliceName]SliceHealth, len(st.Health))
	for k, v := range st.Health {
		out.Health[k] = v
	}
	if st.Session != nil {
		session := *st.Session
		out.Session = &session
	}
	if st.Analytics != nil {
		analytics := *st.Analytics
		out.Analytics = &analytics
	}
	return out
}

// SessionID returns the current session identifier, or "" when no session
// exists.
func (st *State) SessionID() string {
	if st.Session == nil {
		return ""
	}
	return st.Session.SessionID
}
