// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Enhanced endpoints: file upload, CSV export, analytics report.
package client

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/AleutianAI/IncidentConsole/services/desk/datatypes"
)

// UploadFile sends an attachment via POST /upload (multipart form, field
// name "file"). filename is the client-side name; the server assigns a
// unique stored name and returns both.
func (c *Client) UploadFile(ctx context.Context, filename string, content io.Reader) (*datatypes.UploadResult, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, &APIError{Kind: KindValidation, Endpoint: "upload", Err: err}
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, &APIError{Kind: KindValidation, Endpoint: "upload", Err: err}
	}
	if err := writer.Close(); err != nil {
		return nil, &APIError{Kind: KindValidation, Endpoint: "upload", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &buf)
	if err != nil {
		return nil, &APIError{Kind: KindTransport, Endpoint: "upload", Err: err}
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	var result datatypes.UploadResult
	if err := c.send(req, "upload", &result, true); err != nil {
		return nil, err
	}
	return &result, nil
}

// ExportIncidentsCSV fetches an inline CSV dump of incidents, optionally
// bounded by creation time. Maps to GET /export/incidents/csv.
func (c *Client) ExportIncidentsCSV(ctx context.Context, window datatypes.ExportWindow) (*datatypes.CSVExport, error) {
	query := url.Values{}
	if !window.Start.IsZero() {
		query.Set("start_date", window.Start.Format(time.RFC3339))
	}
	if !window.End.IsZero() {
		query.Set("end_date", window.End.Format(time.RFC3339))
	}
	var export datatypes.CSVExport
	if err := c.doJSON(ctx, "export_csv", http.MethodGet, "/export/incidents/csv", query, nil, &export, true); err != nil {
		return nil, err
	}
	return &export, nil
}

// ExportAnalyticsReport fetches the generated analytics report.
// Maps to GET /export/analytics/report.
func (c *Client) ExportAnalyticsReport(ctx context.Context) (*datatypes.AnalyticsReport, error) {
	var report datatypes.AnalyticsReport
	if err := c.doJSON(ctx, "export_report", http.MethodGet, "/export/analytics/report", nil, nil, &report, true); err != nil {
		return nil, err
	}
	return &report, nil
}
