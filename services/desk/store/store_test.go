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
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/IncidentConsole/services/desk/datatypes"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := New(nil, nil)
	t.Cleanup(s.Close)
	return s
}

func incident(id string, status datatypes.Status) datatypes.Incident {
	return datatypes.Incident{
		IncidentID: id,
		Title:      "test " + id,
		Category:   "Network",
		Priority:   datatypes.PriorityMedium,
		Status:     status,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
}

func TestInitialState(t *testing.T) {
	s := newTestStore(t)
	st := s.Snapshot()

	assert.Empty(t, st.Incidents)
	assert.Nil(t, st.Session)
	assert.Nil(t, st.Analytics)
	assert.Equal(t, ViewDashboard, st.ActiveView)
	assert.True(t, st.SidebarVisible)
	assert.Equal(t, SliceEmpty, st.Health[SliceIncidents].State)
	assert.Equal(t, SliceEmpty, st.Health[SliceAnalytics].State)
}

func TestAddIncidentPrepends(t *testing.T) {
	s := newTestStore(t)

	s.Dispatch(SetIncidents{
		Incidents: []datatypes.Incident{incident("INC20250114001", datatypes.StatusOpen)},
		Total:     1,
	})
	s.Dispatch(AddIncident{Incident: incident("INC20250114002", datatypes.StatusOpen)})

	st := s.Snapshot()
	require.Len(t, st.Incidents, 2)
	assert.Equal(t, "INC20250114002", st.Incidents[0].IncidentID)
	assert.Equal(t, "INC20250114001", st.Incidents[1].IncidentID)
	assert.Equal(t, 2, st.IncidentsTotal)
}

func TestUpdateIncidentByIDReplacesStatus(t *testing.T) {
	s := newTestStore(t)
	s.Dispatch(SetIncidents{
		Incidents: []datatypes.Incident{
			incident("INC20250114001", datatypes.StatusOpen),
			incident("INC20250114002", datatypes.StatusOpen),
		},
		Total: 2,
	})

	updated := incident("INC20250114002", datatypes.StatusResolved)
	s.Dispatch(UpdateIncidentByID{MatchID: "INC20250114002", Incident: updated})

	st := s.Snapshot()
	require.Len(t, st.Incidents, 2)
	assert.Equal(t, datatypes.StatusOpen, st.Incidents[0].Status)
	assert.Equal(t, datatypes.StatusResolved, st.Incidents[1].Status)
}

func TestUpdateIncidentByIDAbsentIsNoOp(t *testing.T) {
	s := newTestStore(t)
	s.Dispatch(SetIncidents{
		Incidents: []datatypes.Incident{incident("INC20250114001", datatypes.StatusOpen)},
		Total:     1,
	})
	before := s.Snapshot()

	s.Dispatch(UpdateIncidentByID{
		MatchID:  "INC20259999999",
		Incident: incident("INC20259999999", datatypes.StatusResolved),
	})

	after := s.Snapshot()
	assert.Equal(t, before.Incidents, after.Incidents)
	assert.Equal(t, before.IncidentsTotal, after.IncidentsTotal)
}

func TestRemoveIncidentByID(t *testing.T) {
	s := newTestStore(t)
	s.Dispatch(SetIncidents{
		Incidents: []datatypes.Incident{
			incident("PENDING-abc", datatypes.StatusOpen),
			incident("INC20250114001", datatypes.StatusOpen),
		},
		Total: 2,
	})

	s.Dispatch(RemoveIncidentByID{MatchID: "PENDING-abc"})

	st := s.Snapshot()
	require.Len(t, st.Incidents, 1)
	assert.Equal(t, "INC20250114001", st.Incidents[0].IncidentID)
	assert.Equal(t, 1, st.IncidentsTotal)

	// Removing an absent id changes nothing.
	s.Dispatch(RemoveIncidentByID{MatchID: "PENDING-gone"})
	assert.Equal(t, st.Incidents, s.Snapshot().Incidents)
}

func TestAppendChatMessagePreservesOrder(t *testing.T) {
	s := newTestStore(t)

	for _, content := range []string{"first", "second", "third"} {
		s.Dispatch(AppendChatMessage{Message: datatypes.ChatMessage{
			SessionID: "sess-1",
			Type:      datatypes.MessageUser,
			Content:   content,
			Delivery:  datatypes.DeliveryConfirmed,
		}})
	}

	st := s.Snapshot()
	require.Len(t, st.Messages, 3)
	assert.Equal(t, "first", st.Messages[0].Content)
	assert.Equal(t, "second", st.Messages[1].Content)
	assert.Equal(t, "third", st.Messages[2].Content)
}

func TestConfirmChatMessageKeepsPosition(t *testing.T) {
	s := newTestStore(t)

	s.Dispatch(AppendChatMessage{Message: datatypes.ChatMessage{
		Content: "earlier", Delivery: datatypes.DeliveryConfirmed,
	}})
	s.Dispatch(AppendChatMessage{Message: datatypes.ChatMessage{
		LocalID: "local-1", Content: "draft", Delivery: datatypes.DeliveryPending,
	}})
	s.Dispatch(AppendChatMessage{Message: datatypes.ChatMessage{
		Content: "later", Delivery: datatypes.DeliveryConfirmed,
	}})

	s.Dispatch(ConfirmChatMessage{LocalID: "local-1", Message: datatypes.ChatMessage{
		ID: 42, Content: "draft",
	}})

	st := s.Snapshot()
	require.Len(t, st.Messages, 3)
	assert.Equal(t, "earlier", st.Messages[0].Content)
	assert.Equal(t, 42, st.Messages[1].ID)
	assert.Equal(t, datatypes.DeliveryConfirmed, st.Messages[1].Delivery)
	assert.Equal(t, "local-1", st.Messages[1].LocalID)
	assert.Equal(t, "later", st.Messages[2].Content)
}

func TestMarkMessageFailedKeepsMessage(t *testing.T) {
	s := newTestStore(t)
	s.Dispatch(AppendChatMessage{Message: datatypes.ChatMessage{
		LocalID: "local-1", Content: "did not send", Delivery: datatypes.DeliveryPending,
	}})

	s.Dispatch(MarkMessageFailed{LocalID: "local-1"})

	st := s.Snapshot()
	require.Len(t, st.Messages, 1)
	assert.Equal(t, datatypes.DeliveryFailed, st.Messages[0].Delivery)
	assert.Equal(t, "did not send", st.Messages[0].Content)
}

func TestToggleSidebarInvolution(t *testing.T) {
	s := newTestStore(t)
	initial := s.Snapshot().SidebarVisible

	s.Dispatch(ToggleSidebar{})
	assert.Equal(t, !initial, s.Snapshot().SidebarVisible)

	s.Dispatch(ToggleSidebar{})
	assert.Equal(t, initial, s.Snapshot().SidebarVisible)
}

func TestSetActiveView(t *testing.T) {
	s := newTestStore(t)
	s.Dispatch(SetActiveView{View: ViewChat})
	assert.Equal(t, ViewChat, s.Snapshot().ActiveView)
}

func TestSetSliceHealth(t *testing.T) {
	s := newTestStore(t)
	now := time.Now()
	s.Dispatch(SetSliceHealth{Slice: SliceAnalytics, Health: SliceHealth{
		State: SliceDegraded, LastError: "boom", LastErrorKind: "transport", UpdatedAt: now,
	}})

	health := s.Snapshot().Health[SliceAnalytics]
	assert.Equal(t, SliceDegraded, health.State)
	assert.Equal(t, "boom", health.LastError)
	assert.Equal(t, "transport", health.LastErrorKind)
}

func TestSnapshotIsACopy(t *testing.T) {
	s := newTestStore(t)
	s.Dispatch(SetIncidents{
		Incidents: []datatypes.Incident{incident("INC20250114001", datatypes.StatusOpen)},
		Total:     1,
	})

	st := s.Snapshot()
	st.Incidents[0].Title = "mutated locally"
	st.Health[SliceIncidents] = SliceHealth{State: SliceDegraded}

	fresh := s.Snapshot()
	assert.Equal(t, "test INC20250114001", fresh.Incidents[0].Title)
	assert.Equal(t, SliceEmpty, fresh.Health[SliceIncidents].State)
}

func TestConcurrentDispatchAndSnapshot(t *testing.T) {
	s := newTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				s.Dispatch(AppendChatMessage{Message: datatypes.ChatMessage{Content: "m"}})
				_ = s.Snapshot()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, s.Snapshot().Messages, 8*50)
}

func TestDispatchAfterCloseIsNoOp(t *testing.T) {
	s := New(nil, nil)
	s.Close()

	assert.NotPanics(t, func() {
		s.Dispatch(ToggleSidebar{})
		_ = s.Snapshot()
		s.Close()
	})
}

type bogusAction struct{}

func (bogusAction) isAction() {}

func TestUnknownActionLeavesStateUntouched(t *testing.T) {
	s := newTestStore(t)
	s.Dispatch(SetIncidents{
		Incidents: []datatypes.Incident{incident("INC20250114001", datatypes.StatusOpen)},
		Total:     1,
	})
	before := s.Snapshot()

	s.Dispatch(bogusAction{})

	after := s.Snapshot()
	assert.Equal(t, before.Incidents, after.Incidents)
	assert.Equal(t, before.ActiveView, after.ActiveView)
}
