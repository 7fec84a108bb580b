// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Reference data endpoints: knowledge base, categories, languages.
package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/AleutianAI/IncidentConsole/services/desk/datatypes"
)

// ListKnowledgeBase fetches active knowledge base entries.
// Maps to GET /knowledge-base with optional category and search filters.
func (c *Client) ListKnowledgeBase(ctx context.Context, filters datatypes.KBFilters) (*datatypes.KBEnvelope, error) {
	query := url.Values{}
	if filters.Category != "" {
		query.Set("category", filters.Category)
	}
	if filters.Search != "" {
		query.Set("search", filters.Search)
	}
	var env datatypes.KBEnvelope
	if err := c.doJSON(ctx, "kb_list", http.MethodGet, "/knowledge-base", query, nil, &env, false); err != nil {
		return nil, err
	}
	return &env, nil
}

// ListCategories fetches the distinct incident categories known to the
// backend. Maps to GET /categories.
func (c *Client) ListCategories(ctx context.Context) ([]string, error) {
	var env datatypes.CategoriesEnvelope
	if err := c.doJSON(ctx, "categories", http.MethodGet, "/categories", nil, nil, &env, false); err != nil {
		return nil, err
	}
	return env.Categories, nil
}

// ListLanguages fetches the supported UI languages. Maps to GET /languages.
func (c *Client) ListLanguages(ctx context.Context) (*datatypes.LanguagesEnvelope, error) {
	var env datatypes.LanguagesEnvelope
	if err := c.doJSON(ctx, "languages", http.MethodGet, "/languages", nil, nil, &env, false); err != nil {
		return nil, err
	}
	return &env, nil
}
