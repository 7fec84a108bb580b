// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Terminal rendering for incidents, analytics, chat transcripts, and the
// slice health banner. Machine mode emits tab-separated plain text.
package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AleutianAI/IncidentConsole/pkg/ux"
	"github.com/AleutianAI/IncidentConsole/services/desk/datatypes"
	"github.com/AleutianAI/IncidentConsole/services/desk/store"
)

// renderHealthBanner explains where the displayed data came from when it is
// anything other than a fresh server fetch. Silent for healthy slices.
func renderHealthBanner(health store.SliceHealth) {
	switch health.State {
	case store.SliceStale:
		ux.WarningBox("Stale data",
			fmt.Sprintf("Backend unreachable (%s). Showing the last snapshot from %s.",
				health.LastErrorKind, health.CapturedAt.Format("2006-01-02 15:04")))
	case store.SliceDegraded:
		ux.WarningBox("Backend unavailable",
			fmt.Sprintf("Fetch failed (%s): %s\nNo cached snapshot to fall back on.",
				health.LastErrorKind, health.LastError))
	default:
		if health.Source == "demo" {
			ux.Muted("offline mode: demo data")
		}
	}
}

func priorityStyle(p datatypes.Priority) string {
	switch p {
	case datatypes.PriorityCritical:
		return ux.Styles.Critical.Render(string(p))
	case datatypes.PriorityHigh:
		return ux.Styles.Error.Render(string(p))
	case datatypes.PriorityMedium:
		return ux.Styles.Warning.Render(string(p))
	default:
		return ux.Styles.Muted.Render(string(p))
	}
}

func statusStyle(s datatypes.Status) string {
	switch s {
	case datatypes.StatusResolved:
		return ux.Styles.Success.Render(string(s))
	case datatypes.StatusInProgress:
		return ux.Styles.Warning.Render(string(s))
	default:
		return string(s)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

// renderIncidentTable prints the incident list, one line per incident.
func renderIncidentTable(incidents []datatypes.Incident, total int) {
	if ux.GetPersonality().Level == ux.PersonalityMachine {
		for _, inc := range incidents {
			fmt.Printf("%s\t%s\t%s\t%s\t%s\n",
				inc.IncidentID, inc.Status, inc.Priority, inc.Category, inc.Title)
		}
		return
	}

	if len(incidents) == 0 {
		ux.Muted("no incidents match")
		return
	}

	fmt.Printf("%-16s %-12s %-9s %-20s %s\n",
		ux.Styles.Bold.Render("ID"),
		ux.Styles.Bold.Render("STATUS"),
		ux.Styles.Bold.Render("PRIORITY"),
		ux.Styles.Bold.Render("CATEGORY"),
		ux.Styles.Bold.Render("TITLE"))
	for _, inc := range incidents {
		fmt.Printf("%-16s %-12s %-9s %-20s %s\n",
			inc.IncidentID,
			statusStyle(inc.Status),
			priorityStyle(inc.Priority),
			truncate(inc.Category, 20),
			truncate(inc.Title, 50))
	}
	if total > len(incidents) {
		ux.Muted(fmt.Sprintf("showing %d of %d", len(incidents), total))
	}
}

// renderIncidentDetail prints one incident in full.
func renderIncidentDetail(inc *datatypes.Incident) {
	if ux.GetPersonality().Level == ux.PersonalityMachine {
		fmt.Printf("incident_id\t%s\n", inc.IncidentID)
		fmt.Printf("title\t%s\n", inc.Title)
		fmt.Printf("status\t%s\n", inc.Status)
		fmt.Printf("priority\t%s\n", inc.Priority)
		fmt.Printf("category\t%s\n", inc.Category)
		fmt.Printf("created_by\t%s\n", inc.CreatedBy)
		fmt.Printf("created_at\t%s\n", inc.CreatedAt.Format("2006-01-02 15:04:05"))
		if inc.AssignedTo != nil {
			fmt.Printf("assigned_to\t%s\n", *inc.AssignedTo)
		}
		if inc.ResolutionSteps != nil {
			fmt.Printf("resolution_steps\t%s\n", *inc.ResolutionSteps)
		}
		return
	}

	ux.Title(fmt.Sprintf("%s  %s", inc.IncidentID, inc.Title))
	fmt.Printf("  Status:    %s\n", statusStyle(inc.Status))
	fmt.Printf("  Priority:  %s\n", priorityStyle(inc.Priority))
	fmt.Printf("  Category:  %s\n", inc.Category)
	fmt.Printf("  Created:   %s by %s\n", inc.CreatedAt.Format("2006-01-02 15:04"), inc.CreatedBy)
	if inc.AssignedTo != nil && *inc.AssignedTo != "" {
		fmt.Printf("  Assigned:  %s\n", *inc.AssignedTo)
	}
	if inc.ResolvedAt != nil {
		resolved := fmt.Sprintf("  Resolved:  %s", inc.ResolvedAt.Format("2006-01-02 15:04"))
		if inc.ResolutionTimeMinutes != nil {
			resolved += fmt.Sprintf(" (%d min)", *inc.ResolutionTimeMinutes)
		}
		fmt.Println(resolved)
	}
	fmt.Println()
	fmt.Println("  " + strings.ReplaceAll(inc.Description, "\n", "\n  "))
	if inc.ResolutionSteps != nil && *inc.ResolutionSteps != "" {
		fmt.Println()
		ux.Info("Resolution: " + *inc.ResolutionSteps)
	}
	if inc.PredictedCategory != nil && *inc.PredictedCategory != "" {
		line := "Predicted category: " + *inc.PredictedCategory
		if inc.ConfidenceScore != nil {
			line += fmt.Sprintf(" (%.0f%%)", *inc.ConfidenceScore*100)
		}
		ux.Muted(line)
	}
}

// renderAnalytics prints the dashboard snapshot, including the enhanced
// fields when the server sent them.
func renderAnalytics(a *datatypes.AnalyticsSnapshot) {
	if ux.GetPersonality().Level == ux.PersonalityMachine {
		fmt.Printf("total_incidents\t%d\n", a.TotalIncidents)
		fmt.Printf("open_incidents\t%d\n", a.OpenIncidents)
		fmt.Printf("resolved_today\t%d\n", a.ResolvedToday)
		fmt.Printf("average_resolution_time\t%.1f\n", a.AvgResolutionTimeMins)
		fmt.Printf("ai_resolution_rate\t%.1f\n", a.AIResolutionRate)
		fmt.Printf("user_satisfaction_score\t%.1f\n", a.UserSatisfactionScore)
		if a.SLACompliance != nil {
			fmt.Printf("sla_compliance\t%.1f\n", *a.SLACompliance)
		}
		return
	}

	ux.Title("Incident Analytics")
	fmt.Printf("  Total incidents:   %d\n", a.TotalIncidents)
	fmt.Printf("  Open:              %d\n", a.OpenIncidents)
	fmt.Printf("  Resolved today:    %d\n", a.ResolvedToday)
	fmt.Printf("  Avg resolution:    %.1f min\n", a.AvgResolutionTimeMins)
	fmt.Printf("  AI resolution:     %.1f%%\n", a.AIResolutionRate)
	fmt.Printf("  Satisfaction:      %.1f/5\n", a.UserSatisfactionScore)

	if len(a.PriorityDistribution) > 0 {
		fmt.Println()
		ux.Info("By priority:")
		for _, p := range []datatypes.Priority{datatypes.PriorityCritical, datatypes.PriorityHigh, datatypes.PriorityMedium, datatypes.PriorityLow} {
			if count, ok := a.PriorityDistribution[p]; ok {
				fmt.Printf("    %-9s %d\n", priorityStyle(p), count)
			}
		}
	}
	if len(a.CategoryDistribution) > 0 {
		fmt.Println()
		ux.Info("By category:")
		categories := make([]string, 0, len(a.CategoryDistribution))
		for cat := range a.CategoryDistribution {
			categories = append(categories, cat)
		}
		sort.Strings(categories)
		for _, cat := range categories {
			fmt.Printf("    %-24s %d\n", cat, a.CategoryDistribution[cat])
		}
	}

	enhanced := a.WeeklyTrend != nil || a.SLACompliance != nil || a.ChatMetrics != nil || a.FirstContactResolution != nil
	if enhanced {
		fmt.Println()
		ux.Info("Enhanced metrics:")
		if a.WeeklyTrend != nil {
			fmt.Printf("    Weekly trend:            %+.1f%%\n", *a.WeeklyTrend)
		}
		if a.SLACompliance != nil {
			fmt.Printf("    SLA compliance:          %.1f%%\n", *a.SLACompliance)
		}
		if a.FirstContactResolution != nil {
			fmt.Printf("    First-contact resolution: %.1f%%\n", *a.FirstContactResolution)
		}
		if a.ChatMetrics != nil {
			fmt.Printf("    Chat sessions:           %d (%d with incidents, %d messages)\n",
				a.ChatMetrics.TotalSessions, a.ChatMetrics.SessionsWithIncidents, a.ChatMetrics.TotalMessages)
		}
	}
}

// renderChatMessage prints one transcript entry with a speaker prefix and a
// delivery marker for anything not yet confirmed.
func renderChatMessage(msg datatypes.ChatMessage) {
	if ux.GetPersonality().Level == ux.PersonalityMachine {
		fmt.Printf("%s\t%s\n", msg.Type, msg.Content)
		return
	}

	prefix := ux.Styles.Subtitle.Render("assistant")
	if msg.Type == datatypes.MessageUser {
		prefix = ux.Styles.Bold.Render("you")
	}
	marker := ""
	switch msg.Delivery {
	case datatypes.DeliveryPending:
		marker = " " + ux.IconPending.Render()
	case datatypes.DeliveryFailed:
		marker = " " + ux.IconError.Render() + ux.Styles.Error.Render(" not delivered")
	}
	fmt.Printf("%s%s: %s\n", prefix, marker, msg.Content)

	if msg.Metadata != nil && len(msg.Metadata.SuggestedActions) > 0 {
		for _, action := range msg.Metadata.SuggestedActions {
			ux.Muted("  " + string(ux.IconBullet) + " " + action)
		}
	}
}

// renderKBEntries prints knowledge base search results.
func renderKBEntries(entries []datatypes.KBEntry) {
	if ux.GetPersonality().Level == ux.PersonalityMachine {
		for _, entry := range entries {
			fmt.Printf("%s\t%s\t%s\n", entry.KBID, entry.Category, entry.UseCase)
		}
		return
	}

	if len(entries) == 0 {
		ux.Muted("no knowledge base entries match")
		return
	}
	for _, entry := range entries {
		ux.Title(fmt.Sprintf("%s  %s", entry.KBID, entry.UseCase))
		fmt.Printf("  Category:     %s", entry.Category)
		if entry.SubCategory != nil && *entry.SubCategory != "" {
			fmt.Printf(" / %s", *entry.SubCategory)
		}
		fmt.Println()
		fmt.Printf("  Success rate: %.0f%%\n", entry.SuccessRate*100)
		if entry.ResolutionEstimate != nil {
			fmt.Printf("  Est. time:    %d min\n", *entry.ResolutionEstimate)
		}
		fmt.Println("  " + strings.ReplaceAll(entry.SolutionSteps, "\n", "\n  "))
		fmt.Println()
	}
}
