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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/IncidentConsole/services/desk/store"
)

func runAnalytics(cmd *cobra.Command, args []string) error {
	fetchErr := deskApp.orch.FetchAnalytics(cmd.Context(), flagEnhanced)
	snapshot := deskApp.store.Snapshot()
	health := snapshot.Health[store.SliceAnalytics]
	renderHealthBanner(health)

	if fetchErr != nil && health.State != store.SliceStale {
		return fetchErr
	}
	if snapshot.Analytics == nil {
		return fmt.Errorf("no analytics available")
	}
	renderAnalytics(snapshot.Analytics)
	return nil
}
