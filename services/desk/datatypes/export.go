// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Export and upload types for the enhanced desk endpoints.
package datatypes

import "time"

// UploadResult is the payload from POST /upload (multipart).
type UploadResult struct {
	Success      bool   `json:"success"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	FileSize     int64  `json:"file_size"`
	FilePath     string `json:"file_path"`
	Message      string `json:"message,omitempty"`
}

// CSVExport is the payload from GET /export/incidents/csv. The server
// returns the CSV inline rather than as a download stream.
type CSVExport struct {
	Success     bool   `json:"success"`
	Filename    string `json:"filename"`
	Content     string `json:"content"`
	RecordCount int    `json:"record_count"`
}

// ExportWindow bounds a CSV export by incident creation time. Zero values
// leave the corresponding bound open.
type ExportWindow struct {
	Start time.Time
	End   time.Time
}

// AnalyticsReport is the payload from GET /export/analytics/report.
type AnalyticsReport struct {
	Success  bool          `json:"success"`
	Filename string        `json:"filename"`
	Report   ReportContent `json:"report"`
	Message  string        `json:"message,omitempty"`
}

// ReportContent is the generated report body.
type ReportContent struct {
	ExportTimestamp time.Time         `json:"export_timestamp"`
	Analytics       AnalyticsSnapshot `json:"analytics"`
	Summary         ReportSummary     `json:"summary"`
}

// ReportSummary holds the preformatted headline figures of a report.
type ReportSummary struct {
	TotalIncidents    int    `json:"total_incidents"`
	ResolutionRate    string `json:"resolution_rate"`
	AvgResolutionTime string `json:"avg_resolution_time"`
	AIPerformance     string `json:"ai_performance"`
}
