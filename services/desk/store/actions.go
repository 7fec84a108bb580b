// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Actions are the only way state changes. The Action interface is sealed
// (unexported marker method), so the variant set is closed at compile time
// and the reducer switch in reducer.go can be checked for exhaustiveness by
// inspection. An unrecognized variant is still counted and logged rather
// than silently ignored.
package store

import "github.com/AleutianAI/IncidentConsole/services/desk/datatypes"

// Action is one state transition request. Implementations live in this
// package only.
type Action interface {
	isAction()
}

// SetIncidents replaces the incident list wholesale, as after a fetch.
type SetIncidents struct {
	Incidents []datatypes.Incident
	Total     int
}

// AddIncident prepends one incident (newest first).
type AddIncident struct {
	Incident datatypes.Incident
}

// UpdateIncidentByID replaces the entry whose incident_id equals MatchID.
// A no-op when MatchID is absent from the list: never drops, never
// duplicates. MatchID is separate from Incident.IncidentID so an optimistic
// placeholder can be reconciled with its server-confirmed record.
type UpdateIncidentByID struct {
	MatchID  string
	Incident datatypes.Incident
}

// RemoveIncidentByID removes a client-side optimistic placeholder whose
// create round-trip failed. Server-confirmed incidents are never removed in
// this layer.
type RemoveIncidentByID struct {
	MatchID string
}

// SetChatSession replaces the session record wholesale. Local marks
// sessions synthesized in offline mode, which are never presented as
// server-backed.
type SetChatSession struct {
	Session datatypes.ChatSession
	Local   bool
}

// SetChatMessages replaces the transcript wholesale, as after loading a
// resumed session. Within a live session only AppendChatMessage is used.
type SetChatMessages struct {
	Messages []datatypes.ChatMessage
}

// AppendChatMessage appends one message. The transcript is append-only and
// ordered by arrival; existing entries are never reordered or mutated by
// this action.
type AppendChatMessage struct {
	Message datatypes.ChatMessage
}

// ConfirmChatMessage reconciles an optimistic message (matched by LocalID)
// with the server-stored copy. Position in the transcript is preserved.
type ConfirmChatMessage struct {
	LocalID string
	Message datatypes.ChatMessage
}

// MarkMessageFailed flags an optimistic message (matched by LocalID) as
// undelivered. The message stays in the transcript so the failure is
// visible; no synthetic reply is fabricated.
type MarkMessageFailed struct {
	LocalID string
}

// SetChatLoading toggles the assistant-busy flag.
type SetChatLoading struct {
	Loading bool
}

// SetAnalytics replaces the analytics snapshot wholesale.
type SetAnalytics struct {
	Analytics datatypes.AnalyticsSnapshot
}

// SetSliceHealth records fetch outcome metadata for one state slice.
type SetSliceHealth struct {
	Slice  SliceName
	Health SliceHealth
}

// SetActiveView switches the active view identifier.
type SetActiveView struct {
	View View
}

// ToggleSidebar flips sidebar visibility. Two consecutive toggles restore
// the original value.
type ToggleSidebar struct{}

func (SetIncidents) isAction()       {}
func (AddIncident) isAction()        {}
func (UpdateIncidentByID) isAction() {}
func (RemoveIncidentByID) isAction() {}
func (SetChatSession) isAction()     {}
func (SetChatMessages) isAction()    {}
func (AppendChatMessage) isAction()  {}
func (ConfirmChatMessage) isAction() {}
func (MarkMessageFailed) isAction()  {}
func (SetChatLoading) isAction()     {}
func (SetAnalytics) isAction()       {}
func (SetSliceHealth) isAction()     {}
func (SetActiveView) isAction()      {}
func (ToggleSidebar) isAction()      {}
