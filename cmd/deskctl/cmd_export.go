// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/IncidentConsole/pkg/ux"
	"github.com/AleutianAI/IncidentConsole/services/desk/datatypes"
)

// parseExportWindow converts --start/--end date strings into a window.
// Dates are whole days; the end bound covers through end of that day.
func parseExportWindow() (datatypes.ExportWindow, error) {
	var window datatypes.ExportWindow
	if flagExportStart != "" {
		start, err := time.Parse("2006-01-02", flagExportStart)
		if err != nil {
			return window, fmt.Errorf("invalid --start %q: use YYYY-MM-DD", flagExportStart)
		}
		window.Start = start
	}
	if flagExportEnd != "" {
		end, err := time.Parse("2006-01-02", flagExportEnd)
		if err != nil {
			return window, fmt.Errorf("invalid --end %q: use YYYY-MM-DD", flagExportEnd)
		}
		window.End = end.Add(24*time.Hour - time.Second)
	}
	if !window.Start.IsZero() && !window.End.IsZero() && window.End.Before(window.Start) {
		return window, fmt.Errorf("--end is before --start")
	}
	return window, nil
}

// writeOutput sends content to --output when given, stdout otherwise.
func writeOutput(content []byte) error {
	if flagOutputPath == "" {
		_, err := os.Stdout.Write(content)
		return err
	}
	if err := os.WriteFile(flagOutputPath, content, 0640); err != nil {
		return fmt.Errorf("write %s: %w", flagOutputPath, err)
	}
	ux.Success(fmt.Sprintf("wrote %s (%d bytes)", flagOutputPath, len(content)))
	return nil
}

func runExportCSV(cmd *cobra.Command, args []string) error {
	window, err := parseExportWindow()
	if err != nil {
		return err
	}

	var export *datatypes.CSVExport
	err = ux.WithSpinner("exporting incidents", func() error {
		var exportErr error
		export, exportErr = deskApp.client.ExportIncidentsCSV(cmd.Context(), window)
		return exportErr
	})
	if err != nil {
		return err
	}

	if flagOutputPath != "" {
		ux.Muted(fmt.Sprintf("%d records (server name %s)", export.RecordCount, export.Filename))
	}
	return writeOutput([]byte(export.Content))
}

func runExportReport(cmd *cobra.Command, args []string) error {
	var report *datatypes.AnalyticsReport
	err := ux.WithSpinner("generating analytics report", func() error {
		var reportErr error
		report, reportErr = deskApp.client.ExportAnalyticsReport(cmd.Context())
		return reportErr
	})
	if err != nil {
		return err
	}

	if flagOutputPath != "" {
		encoded, err := json.MarshalIndent(report.Report, "", "  ")
		if err != nil {
			return err
		}
		return writeOutput(append(encoded, '\n'))
	}

	summary := report.Report.Summary
	ux.Title("Analytics Report")
	ux.Muted("generated " + report.Report.ExportTimestamp.Format("2006-01-02 15:04"))
	fmt.Printf("  Total incidents:  %d\n", summary.TotalIncidents)
	fmt.Printf("  Resolution rate:  %s\n", summary.ResolutionRate)
	fmt.Printf("  Avg resolution:   %s\n", summary.AvgResolutionTime)
	fmt.Printf("  AI performance:   %s\n", summary.AIPerformance)
	fmt.Println()
	renderAnalytics(&report.Report.Analytics)
	return nil
}

func runUpload(cmd *cobra.Command, args []string) error {
	path := args[0]
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}

	var result *datatypes.UploadResult
	err = ux.WithSpinner("uploading "+info.Name(), func() error {
		var uploadErr error
		result, uploadErr = deskApp.client.UploadFile(cmd.Context(), info.Name(), file)
		return uploadErr
	})
	if err != nil {
		return err
	}

	ux.Success(fmt.Sprintf("uploaded %s as %s (%d bytes)", result.OriginalName, result.Filename, result.FileSize))
	return nil
}
