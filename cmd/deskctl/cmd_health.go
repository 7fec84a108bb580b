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
)

func runHealth(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	status, err := deskApp.client.Health(ctx)
	if err != nil {
		ux.Error("backend unreachable at " + deskApp.client.BaseURL())
		return err
	}
	if status.Healthy() {
		ux.Success("backend healthy (" + deskApp.client.BaseURL() + ")")
	} else {
		ux.Warning("backend reports status " + status.Status)
	}

	if !flagAIProbe {
		return nil
	}

	var ai *aiProbeSummary
	err = ux.WithSpinner("probing assistant model", func() error {
		probe, probeErr := deskApp.client.AIHealth(ctx)
		if probeErr != nil {
			return probeErr
		}
		ai = &aiProbeSummary{probe.Status, probe.Model, probe.ResponseTime, probe.Error}
		return nil
	})
	if err != nil {
		return err
	}

	switch ai.status {
	case "operational":
		line := "assistant operational"
		if ai.model != "" {
			line += " (" + ai.model
			if ai.responseTime != "" {
				line += ", " + ai.responseTime
			}
			line += ")"
		}
		ux.Success(line)
	case "mock_mode":
		ux.Warning("assistant in mock mode: no language model configured server-side")
	default:
		detail := ai.status
		if ai.errText != "" {
			detail += ": " + ai.errText
		}
		ux.Error("assistant unavailable (" + detail + ")")
		return fmt.Errorf("assistant unavailable")
	}
	return nil
}

// aiProbeSummary narrows the probe payload to what the summary lines print.
type aiProbeSummary struct {
	status       string
	model        string
	responseTime string
	errText      string
}
