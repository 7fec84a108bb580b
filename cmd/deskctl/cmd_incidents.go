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

	"github.com/AleutianAI/IncidentConsole/pkg/ux"
	"github.com/AleutianAI/IncidentConsole/services/desk/client"
	"github.com/AleutianAI/IncidentConsole/services/desk/datatypes"
	"github.com/AleutianAI/IncidentConsole/services/desk/store"
)

func runIncidentsList(cmd *cobra.Command, args []string) error {
	filters := datatypes.IncidentFilters{
		Status:   datatypes.Status(flagStatus),
		Category: flagCategory,
		Priority: datatypes.Priority(flagPriority),
		Skip:     flagSkip,
		Limit:    flagLimit,
	}
	if flagStatus != "" && !filters.Status.Valid() {
		return fmt.Errorf("unknown status %q (Open, 'In Progress', Resolved)", flagStatus)
	}
	if flagPriority != "" && !filters.Priority.Valid() {
		return fmt.Errorf("unknown priority %q (Low, Medium, High, Critical)", flagPriority)
	}

	fetchErr := deskApp.orch.FetchIncidents(cmd.Context(), filters)
	snapshot := deskApp.store.Snapshot()
	health := snapshot.Health[store.SliceIncidents]
	renderHealthBanner(health)

	// A failed fetch with a cached snapshot still renders; only a fully
	// degraded slice is a command failure.
	if fetchErr != nil && health.State != store.SliceStale {
		return fetchErr
	}
	renderIncidentTable(snapshot.Incidents, snapshot.IncidentsTotal)
	return nil
}

func runIncidentsGet(cmd *cobra.Command, args []string) error {
	incident, err := deskApp.client.GetIncident(cmd.Context(), args[0])
	if err != nil {
		if client.IsNotFound(err) {
			return fmt.Errorf("incident %s not found", args[0])
		}
		return err
	}
	renderIncidentDetail(incident)
	return nil
}

func runIncidentsCreate(cmd *cobra.Command, args []string) error {
	if err := requireFlag(flagTitle, "title"); err != nil {
		return err
	}
	if err := requireFlag(flagDescription, "description"); err != nil {
		return err
	}
	if err := requireFlag(flagCategory, "category"); err != nil {
		return err
	}
	if err := requireFlag(flagCreatedBy, "created-by"); err != nil {
		return err
	}

	req := datatypes.CreateIncidentRequest{
		Title:       flagTitle,
		Description: flagDescription,
		Category:    flagCategory,
		Priority:    datatypes.Priority(flagPriority),
		CreatedBy:   flagCreatedBy,
	}
	if flagAssignTo != "" {
		req.AssignedTo = &flagAssignTo
	}

	var incident *datatypes.Incident
	err := ux.WithSpinner("filing incident", func() error {
		var createErr error
		incident, createErr = deskApp.orch.CreateIncident(cmd.Context(), req)
		return createErr
	})
	if err != nil {
		return err
	}

	ux.Success(fmt.Sprintf("created %s", incident.IncidentID))
	renderIncidentDetail(incident)
	return nil
}

func runIncidentsUpdate(cmd *cobra.Command, args []string) error {
	var req datatypes.UpdateIncidentRequest
	changed := false
	if cmd.Flags().Changed("title") {
		req.Title = &flagTitle
		changed = true
	}
	if cmd.Flags().Changed("description") {
		req.Description = &flagDescription
		changed = true
	}
	if cmd.Flags().Changed("category") {
		req.Category = &flagCategory
		changed = true
	}
	if cmd.Flags().Changed("priority") {
		priority := datatypes.Priority(flagPriority)
		req.Priority = &priority
		changed = true
	}
	if cmd.Flags().Changed("status") {
		status := datatypes.Status(flagStatus)
		req.Status = &status
		changed = true
	}
	if cmd.Flags().Changed("assign") {
		req.AssignedTo = &flagAssignTo
		changed = true
	}
	if !changed {
		return fmt.Errorf("nothing to update: pass at least one field flag")
	}

	incident, err := deskApp.orch.UpdateIncident(cmd.Context(), args[0], req)
	if err != nil {
		if client.IsNotFound(err) {
			return fmt.Errorf("incident %s not found", args[0])
		}
		return err
	}
	ux.Success(fmt.Sprintf("updated %s", incident.IncidentID))
	renderIncidentDetail(incident)
	return nil
}

func runIncidentsResolve(cmd *cobra.Command, args []string) error {
	if err := requireFlag(flagResolutionSteps, "steps"); err != nil {
		return err
	}
	incident, err := deskApp.orch.ResolveIncident(cmd.Context(), args[0], flagResolutionSteps)
	if err != nil {
		if client.IsNotFound(err) {
			return fmt.Errorf("incident %s not found", args[0])
		}
		return err
	}
	ux.Success(fmt.Sprintf("resolved %s", incident.IncidentID))
	renderIncidentDetail(incident)
	return nil
}
