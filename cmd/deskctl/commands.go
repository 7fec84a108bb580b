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
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/IncidentConsole/pkg/logging"
	"github.com/AleutianAI/IncidentConsole/pkg/ux"
	"github.com/AleutianAI/IncidentConsole/services/desk/client"
	"github.com/AleutianAI/IncidentConsole/services/desk/observability"
	"github.com/AleutianAI/IncidentConsole/services/desk/snapshot"
	"github.com/AleutianAI/IncidentConsole/services/desk/store"
)

// --- Global Command Variables ---
var (
	flagBackendURL  string
	flagOffline     bool
	flagUserID      int
	flagPersonality string // UX personality level (full/standard/minimal/machine)
	flagNoCache     bool

	// incidents list
	flagStatus   string
	flagCategory string
	flagPriority string
	flagSkip     int
	flagLimit    int

	// incidents create/update
	flagTitle       string
	flagDescription string
	flagCreatedBy   string
	flagAssignTo    string

	// incidents resolve
	flagResolutionSteps string

	// chat
	flagResumeSession string
	flagHistoryLimit  int

	// analytics / health
	flagEnhanced bool
	flagAIProbe  bool

	// kb
	flagSearch string

	// export
	flagExportStart string
	flagExportEnd   string
	flagOutputPath  string

	rootCmd = &cobra.Command{
		Use:   "deskctl",
		Short: "A terminal console for the support desk backend",
		Long: `deskctl manages IT support incidents from the terminal: browse and
file incidents, talk to the desk assistant, inspect analytics, and export
reports. When the backend is unreachable it serves the last snapshot it
saw, clearly flagged as stale.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupApp(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			teardownApp()
		},
	}

	// --- Incidents ---
	incidentsCmd = &cobra.Command{
		Use:     "incidents",
		Short:   "Browse and manage support incidents",
		Aliases: []string{"inc"},
	}
	incidentsListCmd = &cobra.Command{
		Use:   "list",
		Short: "List incidents, optionally filtered by status/category/priority",
		RunE:  runIncidentsList, // Defined in cmd_incidents.go
	}
	incidentsGetCmd = &cobra.Command{
		Use:   "get [incident-id]",
		Short: "Show one incident in full",
		Args:  cobra.ExactArgs(1),
		RunE:  runIncidentsGet,
	}
	incidentsCreateCmd = &cobra.Command{
		Use:   "create",
		Short: "File a new incident",
		RunE:  runIncidentsCreate,
	}
	incidentsUpdateCmd = &cobra.Command{
		Use:   "update [incident-id]",
		Short: "Update fields on an incident",
		Args:  cobra.ExactArgs(1),
		RunE:  runIncidentsUpdate,
	}
	incidentsResolveCmd = &cobra.Command{
		Use:   "resolve [incident-id]",
		Short: "Mark an incident resolved with resolution steps",
		Args:  cobra.ExactArgs(1),
		RunE:  runIncidentsResolve,
	}

	// --- Chat ---
	chatCmd = &cobra.Command{
		Use:   "chat",
		Short: "Talk to the desk assistant interactively",
		RunE:  runChat, // Defined in cmd_chat.go
	}

	// --- Analytics ---
	analyticsCmd = &cobra.Command{
		Use:   "analytics",
		Short: "Show the incident analytics dashboard",
		RunE:  runAnalytics, // Defined in cmd_analytics.go
	}

	// --- Health ---
	healthCmd = &cobra.Command{
		Use:   "health",
		Short: "Probe backend liveness and assistant availability",
		RunE:  runHealth, // Defined in cmd_health.go
	}

	// --- Reference data ---
	kbCmd = &cobra.Command{
		Use:   "kb",
		Short: "Search the knowledge base",
		RunE:  runKB, // Defined in cmd_kb.go
	}
	categoriesCmd = &cobra.Command{
		Use:   "categories",
		Short: "List the incident categories the backend knows",
		RunE:  runCategories,
	}
	languagesCmd = &cobra.Command{
		Use:   "languages",
		Short: "List supported UI languages",
		RunE:  runLanguages,
	}

	// --- Export / upload ---
	exportCmd = &cobra.Command{
		Use:   "export",
		Short: "Export incident data and analytics reports",
	}
	exportCSVCmd = &cobra.Command{
		Use:   "incidents",
		Short: "Export incidents as CSV",
		RunE:  runExportCSV, // Defined in cmd_export.go
	}
	exportReportCmd = &cobra.Command{
		Use:   "report",
		Short: "Export the generated analytics report",
		RunE:  runExportReport,
	}
	uploadCmd = &cobra.Command{
		Use:   "upload [file]",
		Short: "Upload an attachment to the desk backend",
		Args:  cobra.ExactArgs(1),
		RunE:  runUpload,
	}
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagBackendURL, "backend", "", "desk backend URL (overrides config)")
	pf.BoolVar(&flagOffline, "offline", false, "run against canned demo data, no backend")
	pf.IntVar(&flagUserID, "user", 0, "operator user id for chat sessions (overrides config)")
	pf.StringVar(&flagPersonality, "personality", "", "output style: full, standard, minimal, machine")
	pf.BoolVar(&flagNoCache, "no-cache", false, "disable the last-known-good snapshot cache")

	incidentsListCmd.Flags().StringVar(&flagStatus, "status", "", "filter by status (Open, 'In Progress', Resolved)")
	incidentsListCmd.Flags().StringVar(&flagCategory, "category", "", "filter by category")
	incidentsListCmd.Flags().StringVar(&flagPriority, "priority", "", "filter by priority (Low, Medium, High, Critical)")
	incidentsListCmd.Flags().IntVar(&flagSkip, "skip", 0, "pagination offset")
	incidentsListCmd.Flags().IntVar(&flagLimit, "limit", 0, "page size (server default 50)")

	incidentsCreateCmd.Flags().StringVar(&flagTitle, "title", "", "incident title (required)")
	incidentsCreateCmd.Flags().StringVar(&flagDescription, "description", "", "incident description (required)")
	incidentsCreateCmd.Flags().StringVar(&flagCategory, "category", "", "incident category (required)")
	incidentsCreateCmd.Flags().StringVar(&flagPriority, "priority", "Medium", "priority (Low, Medium, High, Critical)")
	incidentsCreateCmd.Flags().StringVar(&flagCreatedBy, "created-by", "", "reporter username (required)")
	incidentsCreateCmd.Flags().StringVar(&flagAssignTo, "assign", "", "assignee username")

	incidentsUpdateCmd.Flags().StringVar(&flagTitle, "title", "", "new title")
	incidentsUpdateCmd.Flags().StringVar(&flagDescription, "description", "", "new description")
	incidentsUpdateCmd.Flags().StringVar(&flagCategory, "category", "", "new category")
	incidentsUpdateCmd.Flags().StringVar(&flagPriority, "priority", "", "new priority")
	incidentsUpdateCmd.Flags().StringVar(&flagStatus, "status", "", "new status")
	incidentsUpdateCmd.Flags().StringVar(&flagAssignTo, "assign", "", "new assignee")

	incidentsResolveCmd.Flags().StringVar(&flagResolutionSteps, "steps", "", "what fixed it (required)")

	chatCmd.Flags().StringVar(&flagResumeSession, "resume", "", "resume an existing session by id")
	chatCmd.Flags().IntVar(&flagHistoryLimit, "history", 0, "history entries to load on resume (server default 100)")

	analyticsCmd.Flags().BoolVar(&flagEnhanced, "enhanced", false, "include trend, SLA, and chat metrics")

	healthCmd.Flags().BoolVar(&flagAIProbe, "ai", false, "also probe the assistant model (slow)")

	kbCmd.Flags().StringVar(&flagCategory, "category", "", "filter by category")
	kbCmd.Flags().StringVar(&flagSearch, "search", "", "full-text search term")

	exportCSVCmd.Flags().StringVar(&flagExportStart, "start", "", "window start (YYYY-MM-DD)")
	exportCSVCmd.Flags().StringVar(&flagExportEnd, "end", "", "window end (YYYY-MM-DD)")
	exportCSVCmd.Flags().StringVarP(&flagOutputPath, "output", "o", "", "write to file instead of stdout")
	exportReportCmd.Flags().StringVarP(&flagOutputPath, "output", "o", "", "write to file instead of stdout")

	incidentsCmd.AddCommand(incidentsListCmd, incidentsGetCmd, incidentsCreateCmd, incidentsUpdateCmd, incidentsResolveCmd)
	exportCmd.AddCommand(exportCSVCmd, exportReportCmd)
	rootCmd.AddCommand(incidentsCmd, chatCmd, analyticsCmd, healthCmd, kbCmd, categoriesCmd, languagesCmd, exportCmd, uploadCmd)
}

// =============================================================================
// Application wiring
// =============================================================================

// app holds everything a command needs, built once in PersistentPreRun.
type app struct {
	config Config
	logger *logging.Logger
	client *client.Client
	cache  *snapshot.Cache
	store  *store.Store
	orch   *store.Orchestrator
}

var deskApp *app

func setupApp(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Environment overrides the file; flags override both.
	if env := os.Getenv("DESKCTL_BACKEND_URL"); env != "" {
		cfg.Backend.BaseURL = env
	}
	if os.Getenv("DESKCTL_OFFLINE") == "1" {
		cfg.Offline = true
	}

	if flagBackendURL != "" {
		cfg.Backend.BaseURL = flagBackendURL
	}
	if flagOffline {
		cfg.Offline = true
	}
	if flagUserID > 0 {
		cfg.UserID = flagUserID
	}
	if flagPersonality != "" {
		cfg.Personality = flagPersonality
	}
	if flagNoCache {
		cfg.Cache.Enabled = false
	}

	if cfg.Personality != "" {
		ux.SetPersonalityLevel(ux.ParsePersonalityLevel(cfg.Personality))
	} else {
		ux.InitPersonality()
	}

	logger := logging.New(logging.Config{
		Level:   logging.ParseLevel(cfg.Logging.Level),
		LogDir:  cfg.Logging.Dir,
		Service: "deskctl",
		JSON:    cfg.Logging.JSON,
	})

	observability.Init()

	apiClient, err := client.New(client.Config{
		BaseURL:         cfg.Backend.BaseURL,
		Timeout:         time.Duration(cfg.Backend.TimeoutSeconds) * time.Second,
		EnhancedTimeout: time.Duration(cfg.Backend.EnhancedTimeoutSeconds) * time.Second,
		Logger:          logger.Slog(),
		Metrics:         observability.Default,
	})
	if err != nil {
		_ = logger.Close()
		return err
	}

	var cache *snapshot.Cache
	if cfg.Cache.Enabled && !cfg.Offline {
		cache, err = snapshot.Open(snapshot.Config{Path: expandHome(cfg.Cache.Path)})
		if err != nil {
			// A broken cache degrades to no cache; it never blocks the CLI.
			logger.Warn("snapshot cache unavailable", "path", cfg.Cache.Path, "error", err)
			cache = nil
		}
	}

	stateStore := store.New(logger.Slog(), observability.Default)
	orchConfig := store.OrchestratorConfig{
		API:     apiClient,
		Store:   stateStore,
		Logger:  logger.Slog(),
		Offline: cfg.Offline,
		UserID:  cfg.UserID,
	}
	if cache != nil {
		orchConfig.Cache = cache
	}

	deskApp = &app{
		config: cfg,
		logger: logger,
		client: apiClient,
		cache:  cache,
		store:  stateStore,
		orch:   store.NewOrchestrator(orchConfig),
	}
	return nil
}

func teardownApp() {
	if deskApp == nil {
		return
	}
	deskApp.store.Close()
	if deskApp.cache != nil {
		if err := deskApp.cache.Close(); err != nil {
			deskApp.logger.Warn("snapshot cache close failed", "error", err)
		}
	}
	_ = deskApp.logger.Close()
	deskApp = nil
}

func requireFlag(value, name string) error {
	if value == "" {
		return fmt.Errorf("--%s is required", name)
	}
	return nil
}
