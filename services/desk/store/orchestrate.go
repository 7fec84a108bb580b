// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Orchestration: async operations that call the backend and fold the
// results into the store as actions. Failures land as slice health, never
// as fabricated data; the last known good snapshot may be served from the
// local cache, flagged stale with its capture time.
package store

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/AleutianAI/IncidentConsole/services/desk/client"
	"github.com/AleutianAI/IncidentConsole/services/desk/datatypes"
)

// DeskAPI is the backend surface the orchestrator needs. *client.Client
// satisfies it; tests substitute a fake.
type DeskAPI interface {
	ListIncidents(ctx context.Context, filters datatypes.IncidentFilters) (*datatypes.IncidentListEnvelope, error)
	CreateIncident(ctx context.Context, req datatypes.CreateIncidentRequest) (*datatypes.Incident, error)
	UpdateIncident(ctx context.Context, incidentID string, req datatypes.UpdateIncidentRequest) (*datatypes.Incident, error)
	ResolveIncident(ctx context.Context, incidentID string, resolutionSteps string) (*datatypes.Incident, error)
	CreateChatSession(ctx context.Context, userID int) (*datatypes.SessionEnvelope, error)
	SendChatMessage(ctx context.Context, sessionID string, content string) (*datatypes.MessageEnvelope, error)
	ListChatMessages(ctx context.Context, sessionID string, limit int) (*datatypes.MessagesEnvelope, error)
	GetAnalytics(ctx context.Context) (*datatypes.AnalyticsSnapshot, error)
	GetEnhancedAnalytics(ctx context.Context) (*datatypes.AnalyticsSnapshot, error)
}

// Cache persists last-known-good slice data between runs. Implemented by
// services/desk/snapshot; nil disables stale serving.
type Cache interface {
	PutIncidents(incidents []datatypes.Incident, total int) error
	GetIncidents() (incidents []datatypes.Incident, total int, capturedAt time.Time, err error)
	PutAnalytics(snapshot datatypes.AnalyticsSnapshot) error
	GetAnalytics() (snapshot *datatypes.AnalyticsSnapshot, capturedAt time.Time, err error)
}

// Orchestrator runs backend operations and dispatches the outcomes.
type Orchestrator struct {
	api     DeskAPI
	store   *Store
	cache   Cache
	logger  *slog.Logger
	offline bool
	userID  int
}

// OrchestratorConfig wires an Orchestrator.
type OrchestratorConfig struct {
	API    DeskAPI
	Store  *Store
	Cache  Cache
	Logger *slog.Logger

	// Offline enables the demo data path. Demo data is always labeled with
	// Source "demo"; it is never substituted for a failed live fetch.
	Offline bool

	// UserID identifies the operator for chat sessions.
	UserID int
}

// NewOrchestrator validates the config and returns an orchestrator.
func NewOrchestrator(config OrchestratorConfig) *Orchestrator {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		api:     config.API,
		store:   config.Store,
		cache:   config.Cache,
		logger:  logger,
		offline: config.Offline,
		userID:  config.UserID,
	}
}

// Offline reports whether the demo data path is active.
func (o *Orchestrator) Offline() bool { return o.offline }

// ============================================================================
// Incidents
// ============================================================================

// FetchIncidents loads the incident list. On failure it falls back to the
// cached snapshot when one exists, marking the slice stale; with no cache
// the slice goes degraded and keeps whatever it had.
func (o *Orchestrator) FetchIncidents(ctx context.Context, filters datatypes.IncidentFilters) error {
	if o.offline {
		incidents := demoIncidents()
		o.store.Dispatch(SetIncidents{Incidents: incidents, Total: len(incidents)})
		o.store.Dispatch(SetSliceHealth{Slice: SliceIncidents, Health: SliceHealth{
			State: SliceReady, Source: "demo", UpdatedAt: time.Now(),
		}})
		return nil
	}

	env, err := o.api.ListIncidents(ctx, filters)
	if err != nil {
		o.degradeIncidents(err)
		return err
	}

	o.store.Dispatch(SetIncidents{Incidents: env.Incidents, Total: env.Total})
	o.store.Dispatch(SetSliceHealth{Slice: SliceIncidents, Health: SliceHealth{
		State: SliceReady, Source: "server", UpdatedAt: time.Now(),
	}})
	if o.cache != nil {
		if cacheErr := o.cache.PutIncidents(env.Incidents, env.Total); cacheErr != nil {
			o.logger.Warn("snapshot write failed", "slice", "incidents", "error", cacheErr)
		}
	}
	return nil
}

func (o *Orchestrator) degradeIncidents(err error) {
	health := SliceHealth{
		State:         SliceDegraded,
		LastError:     err.Error(),
		LastErrorKind: errorKind(err),
		UpdatedAt:     time.Now(),
	}
	if o.cache != nil {
		if incidents, total, capturedAt, cacheErr := o.cache.GetIncidents(); cacheErr == nil {
			o.store.Dispatch(SetIncidents{Incidents: incidents, Total: total})
			health.State = SliceStale
			health.Source = "cache"
			health.CapturedAt = capturedAt
		}
	}
	o.store.Dispatch(SetSliceHealth{Slice: SliceIncidents, Health: health})
}

// CreateIncident submits a new incident. The list gets an optimistic
// placeholder immediately; on confirmation the placeholder is replaced by
// the server record and analytics are refetched, on failure it is removed
// and the error returned. Offline mode synthesizes a local record instead.
func (o *Orchestrator) CreateIncident(ctx context.Context, req datatypes.CreateIncidentRequest) (*datatypes.Incident, error) {
	if o.offline {
		incident := datatypes.Incident{
			IncidentID:  "LOCAL-" + uuid.NewString()[:8],
			Title:       req.Title,
			Description: req.Description,
			Category:    req.Category,
			Priority:    req.Priority,
			Status:      datatypes.StatusOpen,
			CreatedBy:   req.CreatedBy,
			AssignedTo:  req.AssignedTo,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}
		o.store.Dispatch(AddIncident{Incident: incident})
		return &incident, nil
	}

	placeholderID := "PENDING-" + uuid.NewString()[:8]
	placeholder := datatypes.Incident{
		IncidentID:  placeholderID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
		Status:      datatypes.StatusOpen,
		CreatedBy:   req.CreatedBy,
		AssignedTo:  req.AssignedTo,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	o.store.Dispatch(AddIncident{Incident: placeholder})

	incident, err := o.api.CreateIncident(ctx, req)
	if err != nil {
		o.store.Dispatch(RemoveIncidentByID{MatchID: placeholderID})
		return nil, err
	}
	o.store.Dispatch(UpdateIncidentByID{MatchID: placeholderID, Incident: *incident})

	// Counts and distributions shifted; refresh in the background.
	go func() {
		refreshCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if refreshErr := o.FetchAnalytics(refreshCtx, false); refreshErr != nil {
			o.logger.Debug("analytics refresh after create failed", "error", refreshErr)
		}
	}()
	return incident, nil
}

// UpdateIncident applies field changes to an incident and folds the
// server's updated record into the list.
func (o *Orchestrator) UpdateIncident(ctx context.Context, incidentID string, req datatypes.UpdateIncidentRequest) (*datatypes.Incident, error) {
	incident, err := o.api.UpdateIncident(ctx, incidentID, req)
	if err != nil {
		return nil, err
	}
	o.store.Dispatch(UpdateIncidentByID{MatchID: incidentID, Incident: *incident})
	return incident, nil
}

// ResolveIncident marks an incident resolved and folds the result into the
// list.
func (o *Orchestrator) ResolveIncident(ctx context.Context, incidentID string, resolutionSteps string) (*datatypes.Incident, error) {
	incident, err := o.api.ResolveIncident(ctx, incidentID, resolutionSteps)
	if err != nil {
		return nil, err
	}
	o.store.Dispatch(UpdateIncidentByID{MatchID: incidentID, Incident: *incident})
	return incident, nil
}

// ============================================================================
// Chat
// ============================================================================

// StartChatSession creates a session and seeds the transcript with the
// server's welcome message. Offline mode synthesizes a local session,
// labeled as such.
func (o *Orchestrator) StartChatSession(ctx context.Context) error {
	if o.offline {
		session := datatypes.ChatSession{
			SessionID: uuid.NewString(),
			UserID:    o.userID,
			Status:    "active",
		}
		o.store.Dispatch(SetChatSession{Session: session, Local: true})
		o.store.Dispatch(SetChatMessages{Messages: []datatypes.ChatMessage{{
			SessionID: session.SessionID,
			Type:      datatypes.MessageBot,
			Content:   "Offline mode: messages stay on this machine.",
			Timestamp: time.Now(),
			Delivery:  datatypes.DeliveryConfirmed,
		}}})
		o.store.Dispatch(SetSliceHealth{Slice: SliceChat, Health: SliceHealth{
			State: SliceReady, Source: "demo", UpdatedAt: time.Now(),
		}})
		return nil
	}

	env, err := o.api.CreateChatSession(ctx, o.userID)
	if err != nil {
		o.store.Dispatch(SetSliceHealth{Slice: SliceChat, Health: SliceHealth{
			State:         SliceDegraded,
			LastError:     err.Error(),
			LastErrorKind: errorKind(err),
			UpdatedAt:     time.Now(),
		}})
		return err
	}

	o.store.Dispatch(SetChatSession{Session: env.Session, Local: false})
	messages := []datatypes.ChatMessage{}
	if env.WelcomeMessage.Content != "" {
		welcome := env.WelcomeMessage
		welcome.Delivery = datatypes.DeliveryConfirmed
		messages = append(messages, welcome)
	}
	o.store.Dispatch(SetChatMessages{Messages: messages})
	o.store.Dispatch(SetSliceHealth{Slice: SliceChat, Health: SliceHealth{
		State: SliceReady, Source: "server", UpdatedAt: time.Now(),
	}})
	return nil
}

// SendChatMessage appends the operator's message optimistically, sends it,
// then reconciles: on success the message is confirmed and the assistant
// reply appended, on failure the message is marked undelivered. No reply
// is ever synthesized for a failed send.
func (o *Orchestrator) SendChatMessage(ctx context.Context, content string) error {
	snapshot := o.store.Snapshot()
	sessionID := snapshot.SessionID()
	if sessionID == "" {
		return &client.APIError{Kind: client.KindValidation, Endpoint: "chat_send",
			Detail: "no active chat session"}
	}

	localID := uuid.NewString()
	o.store.Dispatch(AppendChatMessage{Message: datatypes.ChatMessage{
		LocalID:   localID,
		SessionID: sessionID,
		Type:      datatypes.MessageUser,
		Content:   content,
		Timestamp: time.Now(),
		Delivery:  datatypes.DeliveryPending,
	}})
	o.store.Dispatch(SetChatLoading{Loading: true})
	defer o.store.Dispatch(SetChatLoading{Loading: false})

	if o.offline {
		o.store.Dispatch(ConfirmChatMessage{LocalID: localID, Message: datatypes.ChatMessage{
			SessionID: sessionID,
			Type:      datatypes.MessageUser,
			Content:   content,
			Timestamp: time.Now(),
		}})
		o.store.Dispatch(AppendChatMessage{Message: datatypes.ChatMessage{
			SessionID: sessionID,
			Type:      datatypes.MessageBot,
			Content:   "Offline mode: no assistant is connected. Your note was recorded locally.",
			Timestamp: time.Now(),
			Delivery:  datatypes.DeliveryConfirmed,
		}})
		return nil
	}

	env, err := o.api.SendChatMessage(ctx, sessionID, content)
	if err != nil {
		o.store.Dispatch(MarkMessageFailed{LocalID: localID})
		return err
	}

	o.store.Dispatch(ConfirmChatMessage{LocalID: localID, Message: env.UserMessage})
	reply := env.BotResponse
	reply.Delivery = datatypes.DeliveryConfirmed
	o.store.Dispatch(AppendChatMessage{Message: reply})
	if env.SessionUpdated.SessionID != "" {
		o.store.Dispatch(SetChatSession{Session: env.SessionUpdated, Local: false})
	}
	return nil
}

// LoadMessages replaces the transcript with the stored history of the
// current session, as when resuming.
func (o *Orchestrator) LoadMessages(ctx context.Context, limit int) error {
	snapshot := o.store.Snapshot()
	sessionID := snapshot.SessionID()
	if sessionID == "" {
		return &client.APIError{Kind: client.KindValidation, Endpoint: "chat_history",
			Detail: "no active chat session"}
	}
	if snapshot.SessionLocal {
		return nil
	}

	env, err := o.api.ListChatMessages(ctx, sessionID, limit)
	if err != nil {
		return err
	}
	messages := env.Messages
	for i := range messages {
		messages[i].Delivery = datatypes.DeliveryConfirmed
	}
	o.store.Dispatch(SetChatMessages{Messages: messages})
	return nil
}

// ============================================================================
// Analytics
// ============================================================================

// FetchAnalytics loads the dashboard snapshot, the enhanced variant when
// asked. Failure handling mirrors FetchIncidents: cached snapshot with a
// stale flag when available, degraded otherwise.
func (o *Orchestrator) FetchAnalytics(ctx context.Context, enhanced bool) error {
	if o.offline {
		o.store.Dispatch(SetAnalytics{Analytics: demoAnalytics()})
		o.store.Dispatch(SetSliceHealth{Slice: SliceAnalytics, Health: SliceHealth{
			State: SliceReady, Source: "demo", UpdatedAt: time.Now(),
		}})
		return nil
	}

	fetch := o.api.GetAnalytics
	if enhanced {
		fetch = o.api.GetEnhancedAnalytics
	}
	snapshot, err := fetch(ctx)
	if err != nil {
		o.degradeAnalytics(err)
		return err
	}

	o.store.Dispatch(SetAnalytics{Analytics: *snapshot})
	o.store.Dispatch(SetSliceHealth{Slice: SliceAnalytics, Health: SliceHealth{
		State: SliceReady, Source: "server", UpdatedAt: time.Now(),
	}})
	if o.cache != nil {
		if cacheErr := o.cache.PutAnalytics(*snapshot); cacheErr != nil {
			o.logger.Warn("snapshot write failed", "slice", "analytics", "error", cacheErr)
		}
	}
	return nil
}

func (o *Orchestrator) degradeAnalytics(err error) {
	health := SliceHealth{
		State:         SliceDegraded,
		LastError:     err.Error(),
		LastErrorKind: errorKind(err),
		UpdatedAt:     time.Now(),
	}
	if o.cache != nil {
		if snapshot, capturedAt, cacheErr := o.cache.GetAnalytics(); cacheErr == nil {
			o.store.Dispatch(SetAnalytics{Analytics: *snapshot})
			health.State = SliceStale
			health.Source = "cache"
			health.CapturedAt = capturedAt
		}
	}
	o.store.Dispatch(SetSliceHealth{Slice: SliceAnalytics, Health: health})
}

// RefreshAll fetches incidents and analytics concurrently. Each slice
// degrades independently; the first error is returned after both finish.
func (o *Orchestrator) RefreshAll(ctx context.Context, filters datatypes.IncidentFilters) error {
	// Plain group, not WithContext: one slice failing must not cancel the
	// other's fetch.
	var group errgroup.Group
	group.Go(func() error { return o.FetchIncidents(ctx, filters) })
	group.Go(func() error { return o.FetchAnalytics(ctx, false) })
	return group.Wait()
}

func errorKind(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind.String()
	}
	return "unknown"
}
