// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package datatypes provides wire types for the support desk API.
//
// Every response envelope from the desk backend carries a success flag plus
// a payload keyed by domain noun ("incidents", "session", "bot_response",
// "analytics", "entries"). Field names are snake_case and timestamps are
// ISO-8601 strings parsed into time.Time on this side of the wire.
//
// This file contains incident types. For chat types, see chat.go.
package datatypes

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// =============================================================================
// Enumerations
// =============================================================================

// Priority is the urgency classification assigned to an incident.
type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

// Valid reports whether p is one of the recognized priority values.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Status is the lifecycle state of an incident.
//
// Incidents move Open → In Progress → Resolved. The desk backend never
// deletes incidents; resolution is the terminal state.
type Status string

const (
	StatusOpen       Status = "Open"
	StatusInProgress Status = "In Progress"
	StatusResolved   Status = "Resolved"
)

// Valid reports whether s is one of the recognized status values.
func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved:
		return true
	}
	return false
}

// =============================================================================
// Shared Validator Instance
// =============================================================================

// deskValidate is the validator instance shared by all desk datatypes.
// Initialized in init() with custom validators.
var deskValidate *validator.Validate

func init() {
	deskValidate = validator.New()

	// Message content is capped at 32KB in bytes, not runes.
	_ = deskValidate.RegisterValidation("maxbytes", validateMaxBytes)
}

// =============================================================================
// Incident
// =============================================================================

// Incident is a reported issue record tracked by the desk backend.
//
// IncidentID is server-assigned in the form "INC" + yyyymmdd + sequence
// (e.g. "INC20250114003"). A client may hold an optimistic placeholder with
// a locally derived ID until the server confirms; the placeholder is then
// reconciled by ID replacement, never duplicated.
//
// Optional fields use pointers so that "absent" and "zero" stay distinct
// across the wire.
type Incident struct {
	ID                    int            `json:"id,omitempty"`
	IncidentID            string         `json:"incident_id"`
	Title                 string         `json:"title"`
	Description           string         `json:"description"`
	Category              string         `json:"category"`
	Priority              Priority       `json:"priority"`
	Status                Status         `json:"status"`
	CreatedBy             string         `json:"created_by"`
	AssignedTo            *string        `json:"assigned_to,omitempty"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`
	ResolvedAt            *time.Time     `json:"resolved_at,omitempty"`
	AdditionalInfo        map[string]any `json:"additional_info,omitempty"`
	ResolutionSteps       *string        `json:"resolution_steps,omitempty"`
	ResolutionTimeMinutes *int           `json:"resolution_time_minutes,omitempty"`
	PredictedCategory     *string        `json:"predicted_category,omitempty"`
	ConfidenceScore       *float64       `json:"confidence_score,omitempty"`
	SentimentScore        *float64       `json:"sentiment_score,omitempty"`
	SimilarIncidents      []string       `json:"similar_incidents,omitempty"`
}

// IncidentFilters narrows GET /incidents. Zero values mean "no filter";
// Limit of 0 defers to the server default (50).
type IncidentFilters struct {
	Status   Status
	Category string
	Priority Priority
	Skip     int
	Limit    int
}

// =============================================================================
// Request Types
// =============================================================================

// CreateIncidentRequest is the body for POST /incidents.
//
// # Validation
//
// Uses go-playground/validator:
//   - Title: required, max 500 characters
//   - Description: required
//   - Category: required, max 100 characters
//   - Priority: required, one of Low/Medium/High/Critical
//   - CreatedBy: required, max 150 characters
type CreateIncidentRequest struct {
	Title             string         `json:"title" validate:"required,max=500"`
	Description       string         `json:"description" validate:"required"`
	Category          string         `json:"category" validate:"required,max=100"`
	Priority          Priority       `json:"priority" validate:"required,oneof=Low Medium High Critical"`
	CreatedBy         string         `json:"created_by" validate:"required,max=150"`
	AssignedTo        *string        `json:"assigned_to,omitempty"`
	AdditionalInfo    map[string]any `json:"additional_info,omitempty"`
	PredictedCategory *string        `json:"predicted_category,omitempty"`
	ConfidenceScore   *float64       `json:"confidence_score,omitempty"`
	SentimentScore    *float64       `json:"sentiment_score,omitempty"`
}

// Validate checks the request against its validation tags.
//
// Returns a *validator.ValidationErrors wrapped with field context on
// failure, nil otherwise.
func (r *CreateIncidentRequest) Validate() error {
	if err := deskValidate.Struct(r); err != nil {
		return fmt.Errorf("invalid incident request: %w", err)
	}
	return nil
}

// UpdateIncidentRequest is the body for PUT /incidents/{id}.
//
// All fields are optional; only non-nil fields are sent. The server rejects
// attempts to change id, incident_id, or created_at.
type UpdateIncidentRequest struct {
	Title       *string   `json:"title,omitempty" validate:"omitempty,max=500"`
	Description *string   `json:"description,omitempty"`
	Category    *string   `json:"category,omitempty" validate:"omitempty,max=100"`
	Priority    *Priority `json:"priority,omitempty" validate:"omitempty,oneof=Low Medium High Critical"`
	Status      *Status   `json:"status,omitempty" validate:"omitempty,oneof=Open 'In Progress' Resolved"`
	AssignedTo  *string   `json:"assigned_to,omitempty"`
}

// Validate checks the request against its validation tags.
func (r *UpdateIncidentRequest) Validate() error {
	if err := deskValidate.Struct(r); err != nil {
		return fmt.Errorf("invalid incident update: %w", err)
	}
	return nil
}

// ResolveIncidentRequest is the body for POST /incidents/{id}/resolve.
type ResolveIncidentRequest struct {
	ResolutionSteps string `json:"resolution_steps"`
}

// =============================================================================
// Response Envelopes
// =============================================================================

// IncidentListEnvelope wraps GET /incidents responses.
type IncidentListEnvelope struct {
	Success   bool       `json:"success"`
	Incidents []Incident `json:"incidents"`
	Total     int        `json:"total"`
	Skip      int        `json:"skip"`
	Limit     int        `json:"limit"`
}

// IncidentEnvelope wraps single-incident responses (create, get, update,
// resolve). IncidentID and Message are only populated by mutating endpoints.
type IncidentEnvelope struct {
	Success    bool     `json:"success"`
	IncidentID string   `json:"incident_id,omitempty"`
	Incident   Incident `json:"incident"`
	Message    string   `json:"message,omitempty"`
}

// CategoriesEnvelope wraps GET /categories responses.
type CategoriesEnvelope struct {
	Success    bool     `json:"success"`
	Categories []string `json:"categories"`
}
