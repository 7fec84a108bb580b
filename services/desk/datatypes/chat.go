// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Chat session and message types for the desk assistant endpoints.
//
// Sessions group an ordered list of messages between a user and the desk
// assistant. The server replaces session fields wholesale after each message
// round-trip (rolling summary state, collected data, missing info), so the
// client treats the session record as opaque and replaceable.
package datatypes

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// =============================================================================
// Constants for Input Limits
// =============================================================================

const (
	// MaxMessageContentBytes is the maximum size of a single message content.
	// Checked in bytes (not runes) to bound payload memory.
	MaxMessageContentBytes = 32 * 1024 // 32KB
)

// validateMaxBytes enforces MaxMessageContentBytes on string fields.
func validateMaxBytes(fl validator.FieldLevel) bool {
	return len(fl.Field().String()) <= MaxMessageContentBytes
}

// =============================================================================
// Session and Message Types
// =============================================================================

// MessageType distinguishes who authored a chat message.
type MessageType string

const (
	MessageUser MessageType = "user"
	MessageBot  MessageType = "bot"
)

// Valid reports whether t is a recognized message type.
func (t MessageType) Valid() bool {
	return t == MessageUser || t == MessageBot
}

// ChatSession is a conversational context owned by a user.
//
// Status is "active" or "closed". CurrentStep, CollectedData and MissingInfo
// are assistant-side workflow state the client renders but never interprets.
type ChatSession struct {
	ID            int            `json:"id,omitempty"`
	SessionID     string         `json:"session_id"`
	UserID        int            `json:"user_id"`
	IncidentID    *int           `json:"incident_id,omitempty"`
	Status        string         `json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	CurrentStep   *string        `json:"current_step,omitempty"`
	CollectedData map[string]any `json:"collected_data,omitempty"`
	MissingInfo   []string       `json:"missing_info,omitempty"`
}

// AttachmentInfo describes a file attached to a chat message.
type AttachmentInfo struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name,omitempty"`
	SizeBytes    int64  `json:"file_size,omitempty"`
	Path         string `json:"file_path,omitempty"`
}

// MessageMetadata carries the assistant's structured annotations on a
// message. Every field is optional; pointers keep "absent" distinct from a
// zero value so the renderer can skip what the server did not send.
type MessageMetadata struct {
	Type                       string          `json:"type,omitempty"`
	Confidence                 *float64        `json:"confidence,omitempty"`
	SuggestedActions           []string        `json:"suggested_actions,omitempty"`
	RequiresClarification      *bool           `json:"requires_clarification,omitempty"`
	NextSteps                  []string        `json:"next_steps,omitempty"`
	KBMatches                  []string        `json:"kb_matches,omitempty"`
	EstimatedResolutionMinutes *int            `json:"estimated_resolution_time,omitempty"`
	Attachment                 *AttachmentInfo `json:"attachment,omitempty"`
}

// DeliveryState tracks a locally appended message's relationship to the
// server. Server-sourced messages are always DeliveryConfirmed.
type DeliveryState string

const (
	// DeliveryConfirmed means the server has acknowledged the message.
	DeliveryConfirmed DeliveryState = "confirmed"
	// DeliveryPending means the message was appended optimistically and the
	// round-trip has not resolved yet.
	DeliveryPending DeliveryState = "pending"
	// DeliveryFailed means the round-trip failed. The message stays in the
	// transcript, flagged, so the failure is visible rather than masked.
	DeliveryFailed DeliveryState = "failed"
)

// ChatMessage is one entry in a session transcript.
//
// The transcript is append-only and ordered by arrival of successful
// responses, not by the Timestamp field (which is client-generated for
// optimistic messages and may race the server clock).
type ChatMessage struct {
	ID        int              `json:"id,omitempty"`
	SessionID string           `json:"session_id"`
	Type      MessageType      `json:"message_type"`
	Content   string           `json:"content"`
	Timestamp time.Time        `json:"timestamp"`
	Metadata  *MessageMetadata `json:"message_metadata,omitempty"`

	// Delivery is client-side only and never serialized to the backend.
	Delivery DeliveryState `json:"-"`

	// LocalID identifies optimistic messages before the server assigns an ID.
	LocalID string `json:"-"`
}

// =============================================================================
// Request Types
// =============================================================================

// CreateSessionRequest is the body for POST /chat/sessions.
type CreateSessionRequest struct {
	UserID int `json:"user_id" validate:"required,min=1"`
}

// Validate checks the request against its validation tags.
func (r *CreateSessionRequest) Validate() error {
	if err := deskValidate.Struct(r); err != nil {
		return fmt.Errorf("invalid session request: %w", err)
	}
	return nil
}

// SendMessageRequest is the body for POST /chat/sessions/{id}/messages.
type SendMessageRequest struct {
	Content string `json:"content" validate:"required,maxbytes"`
}

// Validate checks the request against its validation tags, including the
// 32KB content cap.
func (r *SendMessageRequest) Validate() error {
	if err := deskValidate.Struct(r); err != nil {
		return fmt.Errorf("invalid message request: %w", err)
	}
	return nil
}

// =============================================================================
// Response Envelopes
// =============================================================================

// SessionEnvelope wraps POST /chat/sessions responses. The server seeds every
// new session with a welcome message.
type SessionEnvelope struct {
	Success        bool        `json:"success"`
	SessionID      string      `json:"session_id"`
	Session        ChatSession `json:"session"`
	WelcomeMessage ChatMessage `json:"welcome_message"`
}

// MessageEnvelope wraps POST /chat/sessions/{id}/messages responses.
//
// The server echoes the stored user message, returns the assistant reply,
// and replaces the session record wholesale (SessionUpdated).
type MessageEnvelope struct {
	Success           bool           `json:"success"`
	UserMessage       ChatMessage    `json:"user_message"`
	BotResponse       ChatMessage    `json:"bot_response"`
	SessionUpdated    ChatSession    `json:"session_updated"`
	SentimentAnalysis map[string]any `json:"sentiment_analysis,omitempty"`
	KBMatches         []KBEntry      `json:"kb_matches,omitempty"`
}

// MessagesEnvelope wraps GET /chat/sessions/{id}/messages responses.
type MessagesEnvelope struct {
	Success  bool          `json:"success"`
	Messages []ChatMessage `json:"messages"`
	Total    int           `json:"total"`
}
