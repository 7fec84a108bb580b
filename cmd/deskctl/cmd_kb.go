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
	"github.com/AleutianAI/IncidentConsole/services/desk/datatypes"
)

func runKB(cmd *cobra.Command, args []string) error {
	env, err := deskApp.client.ListKnowledgeBase(cmd.Context(), datatypes.KBFilters{
		Category: flagCategory,
		Search:   flagSearch,
	})
	if err != nil {
		return err
	}
	renderKBEntries(env.Entries)
	if env.Total > len(env.Entries) {
		ux.Muted(fmt.Sprintf("showing %d of %d entries", len(env.Entries), env.Total))
	}
	return nil
}

func runCategories(cmd *cobra.Command, args []string) error {
	categories, err := deskApp.client.ListCategories(cmd.Context())
	if err != nil {
		return err
	}
	for _, category := range categories {
		fmt.Println(category)
	}
	return nil
}

func runLanguages(cmd *cobra.Command, args []string) error {
	env, err := deskApp.client.ListLanguages(cmd.Context())
	if err != nil {
		return err
	}
	for _, lang := range env.Languages {
		marker := ""
		if lang.Code == env.DefaultLanguage {
			marker = " (default)"
		}
		if ux.GetPersonality().Level == ux.PersonalityMachine {
			fmt.Printf("%s\t%s\t%s\n", lang.Code, lang.Name, lang.NativeName)
		} else {
			fmt.Printf("%-6s %s / %s%s\n", lang.Code, lang.Name, lang.NativeName, marker)
		}
	}
	return nil
}
