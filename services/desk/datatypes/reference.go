// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Reference data: knowledge base entries, languages, and health probes.
package datatypes

import "time"

// KBEntry is a knowledge base article matched against incident reports.
type KBEntry struct {
	ID                 int            `json:"id,omitempty"`
	KBID               string         `json:"kb_id"`
	UseCase            string         `json:"use_case"`
	Category           string         `json:"category"`
	SubCategory        *string        `json:"sub_category,omitempty"`
	RequiredInfo       []string       `json:"required_info"`
	SolutionSteps      string         `json:"solution_steps"`
	CommonSymptoms     []string       `json:"common_symptoms,omitempty"`
	ResolutionEstimate *int           `json:"resolution_time_estimate,omitempty"`
	SuccessRate        float64        `json:"success_rate"`
	Tags               []string       `json:"tags,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	IsActive           bool           `json:"is_active"`
	Extra              map[string]any `json:"-"`
}

// KBFilters narrows GET /knowledge-base.
type KBFilters struct {
	Category string
	Search   string
}

// KBEnvelope wraps GET /knowledge-base responses.
type KBEnvelope struct {
	Success bool      `json:"success"`
	Entries []KBEntry `json:"entries"`
	Total   int       `json:"total"`
}

// Language describes one supported UI language.
type Language struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	NativeName string `json:"native_name"`
}

// LanguagesEnvelope wraps GET /languages responses.
type LanguagesEnvelope struct {
	Success         bool       `json:"success"`
	Languages       []Language `json:"languages"`
	DefaultLanguage string     `json:"default_language"`
}

// HealthStatus is the liveness probe payload from GET /health.
type HealthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// Healthy reports whether the backend considers itself operational.
func (h HealthStatus) Healthy() bool {
	return h.Status == "healthy"
}

// AIHealthStatus is the capability probe payload from GET /ai/health.
//
// Status is "operational", "mock_mode", or "unavailable". The desk runs in
// mock mode when no language model is configured server-side.
type AIHealthStatus struct {
	Success      bool   `json:"success"`
	Status       string `json:"status"`
	ResponseTime string `json:"response_time,omitempty"`
	Model        string `json:"model,omitempty"`
	TestResponse string `json:"test_response,omitempty"`
	Error        string `json:"error,omitempty"`
}
