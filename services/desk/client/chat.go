// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Chat session endpoints: create, send message, list messages.
package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/AleutianAI/IncidentConsole/services/desk/datatypes"
)

// CreateChatSession opens a new assistant session for the given user.
//
// Maps to POST /chat/sessions. The server seeds the session with a welcome
// message, returned in the envelope alongside the session record.
func (c *Client) CreateChatSession(ctx context.Context, userID int) (*datatypes.SessionEnvelope, error) {
	req := datatypes.CreateSessionRequest{UserID: userID}
	if err := req.Validate(); err != nil {
		return nil, &APIError{Kind: KindValidation, Endpoint: "chat_create_session", Err: err}
	}
	var env datatypes.SessionEnvelope
	if err := c.doJSON(ctx, "chat_create_session", http.MethodPost, "/chat/sessions", nil, req, &env, false); err != nil {
		return nil, err
	}
	return &env, nil
}

// SendChatMessage posts a user message and returns the full round-trip
// result: the stored user message, the assistant reply, and the wholesale
// updated session. Maps to POST /chat/sessions/{id}/messages.
//
// This call runs model inference server-side, so it uses the extended
// timeout transport.
func (c *Client) SendChatMessage(ctx context.Context, sessionID, content string) (*datatypes.MessageEnvelope, error) {
	req := datatypes.SendMessageRequest{Content: content}
	if err := req.Validate(); err != nil {
		return nil, &APIError{Kind: KindValidation, Endpoint: "chat_send", Err: err}
	}
	var env datatypes.MessageEnvelope
	path := "/chat/sessions/" + url.PathEscape(sessionID) + "/messages"
	if err := c.doJSON(ctx, "chat_send", http.MethodPost, path, nil, req, &env, true); err != nil {
		return nil, err
	}
	return &env, nil
}

// ListChatMessages fetches a session transcript in chronological order.
// Maps to GET /chat/sessions/{id}/messages. limit of 0 defers to the server
// default (100).
func (c *Client) ListChatMessages(ctx context.Context, sessionID string, limit int) (*datatypes.MessagesEnvelope, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	var env datatypes.MessagesEnvelope
	path := "/chat/sessions/" + url.PathEscape(sessionID) + "/messages"
	if err := c.doJSON(ctx, "chat_messages", http.MethodGet, path, query, nil, &env, false); err != nil {
		return nil, err
	}
	return &env, nil
}
