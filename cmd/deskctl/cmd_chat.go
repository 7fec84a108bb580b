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
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/IncidentConsole/pkg/ux"
	"github.com/AleutianAI/IncidentConsole/services/desk/datatypes"
	"github.com/AleutianAI/IncidentConsole/services/desk/store"
)

func runChat(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if flagResumeSession != "" {
		session := datatypes.ChatSession{SessionID: flagResumeSession, Status: "active"}
		deskApp.store.Dispatch(store.SetChatSession{Session: session, Local: false})
		if err := deskApp.orch.LoadMessages(ctx, flagHistoryLimit); err != nil {
			return err
		}
	} else {
		if err := deskApp.orch.StartChatSession(ctx); err != nil {
			return err
		}
	}

	snapshot := deskApp.store.Snapshot()
	renderHealthBanner(snapshot.Health[store.SliceChat])
	for _, msg := range snapshot.Messages {
		renderChatMessage(msg)
	}
	rendered := len(snapshot.Messages)

	if ux.GetPersonality().ShowHints && ux.IsInteractive() {
		ux.Muted("type 'exit' to leave; up/down recalls earlier messages")
	}

	reader := NewInputReader()
	for {
		line, err := reader.ReadLine("you:")
		if err != nil {
			if errors.Is(err, ErrInputClosed) {
				break
			}
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if isExitCommand(line) {
			break
		}

		spin := ux.NewSpinner("assistant is typing").WithType(ux.SpinnerTyping)
		spin.Start()
		sendErr := deskApp.orch.SendChatMessage(ctx, line)
		spin.Stop()

		snapshot = deskApp.store.Snapshot()
		for _, msg := range snapshot.Messages[min(rendered, len(snapshot.Messages)):] {
			// The operator already sees their own line at the prompt; echo it
			// again only when delivery failed.
			if msg.Type == datatypes.MessageUser && msg.Delivery != datatypes.DeliveryFailed {
				continue
			}
			renderChatMessage(msg)
		}
		rendered = len(snapshot.Messages)

		if sendErr != nil {
			ux.Error("message not delivered: " + sendErr.Error())
		}
	}

	if sessionID := snapshot.SessionID(); sessionID != "" && !snapshot.SessionLocal {
		ux.Muted("session " + sessionID + " (resume with --resume)")
	}
	return nil
}
