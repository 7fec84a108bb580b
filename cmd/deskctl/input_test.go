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
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyUp() tea.KeyMsg   { return tea.KeyMsg{Type: tea.KeyUp} }
func keyDown() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyDown} }

func pressKey(t *testing.T, m inputModel, msg tea.KeyMsg) inputModel {
	t.Helper()
	updated, _ := m.Update(msg)
	out, ok := updated.(inputModel)
	require.True(t, ok)
	return out
}

func TestIsExitCommand(t *testing.T) {
	for _, input := range []string{"exit", "quit", "EXIT", " Quit ", "/exit", "/quit"} {
		assert.True(t, isExitCommand(input), "%q should exit", input)
	}
	for _, input := range []string{"", "exits", "please exit", "q"} {
		assert.False(t, isExitCommand(input), "%q should not exit", input)
	}
}

func TestStdinReaderReadsLines(t *testing.T) {
	reader := NewStdinReader(strings.NewReader("first line\nsecond line\n"))

	line, err := reader.ReadLine("> ")
	require.NoError(t, err)
	assert.Equal(t, "first line", line)

	line, err = reader.ReadLine("> ")
	require.NoError(t, err)
	assert.Equal(t, "second line", line)

	_, err = reader.ReadLine("> ")
	assert.ErrorIs(t, err, ErrInputClosed)
}

func TestMockInputReaderExhausts(t *testing.T) {
	reader := &MockInputReader{Lines: []string{"hello", "exit"}}

	line, err := reader.ReadLine("> ")
	require.NoError(t, err)
	assert.Equal(t, "hello", line)

	line, err = reader.ReadLine("> ")
	require.NoError(t, err)
	assert.Equal(t, "exit", line)

	_, err = reader.ReadLine("> ")
	assert.ErrorIs(t, err, ErrInputClosed)
}

func TestInputHistoryNavigation(t *testing.T) {
	model := newInputModel("you:", []string{"older", "newer"})

	// Up recalls the most recent entry first.
	model = pressKey(t, model, keyUp())
	assert.Equal(t, "newer", model.input.Value())

	model = pressKey(t, model, keyUp())
	assert.Equal(t, "older", model.input.Value())

	// Up at the oldest entry stays put.
	model = pressKey(t, model, keyUp())
	assert.Equal(t, "older", model.input.Value())

	// Down walks back toward the empty draft.
	model = pressKey(t, model, keyDown())
	assert.Equal(t, "newer", model.input.Value())
	model = pressKey(t, model, keyDown())
	assert.Equal(t, "", model.input.Value())
}

func TestInputHistoryPreservesDraft(t *testing.T) {
	model := newInputModel("you:", []string{"earlier message"})
	model.input.SetValue("half typed")

	model = pressKey(t, model, keyUp())
	assert.Equal(t, "earlier message", model.input.Value())

	model = pressKey(t, model, keyDown())
	assert.Equal(t, "half typed", model.input.Value())
}
