// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Chat input handling. Interactive terminals get a bubbletea line editor
// with in-session history; pipes fall back to plain stdin reads.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/AleutianAI/IncidentConsole/pkg/ux"
)

// ErrInputClosed is returned when the input source is exhausted or the user
// aborted the prompt (ctrl-c / ctrl-d / EOF).
var ErrInputClosed = errors.New("input closed")

// InputReader produces one line of user input per call.
type InputReader interface {
	ReadLine(prompt string) (string, error)
}

// NewInputReader picks the reader for the current terminal: the interactive
// editor when stdin is a TTY, a plain scanner otherwise.
func NewInputReader() InputReader {
	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return &InteractiveInputReader{}
	}
	return NewStdinReader(os.Stdin)
}

// isExitCommand reports whether the input asks to leave the chat loop.
func isExitCommand(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "exit", "quit", "/exit", "/quit":
		return true
	}
	return false
}

// =============================================================================
// StdinReader
// =============================================================================

// StdinReader reads lines from a plain stream. Used for piped input and in
// tests.
type StdinReader struct {
	scanner *bufio.Scanner
}

// NewStdinReader wraps r in a line scanner.
func NewStdinReader(r io.Reader) *StdinReader {
	return &StdinReader{scanner: bufio.NewScanner(r)}
}

// ReadLine reads the next line. The prompt is only printed on terminals, so
// piped transcripts stay clean.
func (r *StdinReader) ReadLine(prompt string) (string, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", ErrInputClosed
	}
	return r.scanner.Text(), nil
}

// =============================================================================
// InteractiveInputReader
// =============================================================================

// InteractiveInputReader runs a bubbletea line editor with up/down history
// recall. History lives for the process only; nothing is persisted.
type InteractiveInputReader struct {
	history []string
}

// ReadLine prompts for one line of input.
func (r *InteractiveInputReader) ReadLine(prompt string) (string, error) {
	model := newInputModel(prompt, r.history)
	program := tea.NewProgram(model)
	result, err := program.Run()
	if err != nil {
		return "", fmt.Errorf("input prompt: %w", err)
	}

	final, ok := result.(inputModel)
	if !ok || final.aborted {
		return "", ErrInputClosed
	}
	line := final.input.Value()
	if strings.TrimSpace(line) != "" {
		r.history = append(r.history, line)
	}
	return line, nil
}

// inputModel is the bubbletea model for one prompt.
type inputModel struct {
	input        textinput.Model
	prompt       string
	history      []string
	historyIndex int // len(history) means "editing a new line"
	draft        string
	submitted    bool
	aborted      bool
}

func newInputModel(prompt string, history []string) inputModel {
	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = "type a message, or 'exit' to leave"
	input.CharLimit = 0
	input.Width = 80
	input.Focus()
	return inputModel{
		input:        input,
		prompt:       prompt,
		history:      history,
		historyIndex: len(history),
	}
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch keyMsg.Type {
	case tea.KeyEnter:
		m.submitted = true
		return m, tea.Quit

	case tea.KeyCtrlC, tea.KeyCtrlD, tea.KeyEsc:
		m.aborted = true
		return m, tea.Quit

	case tea.KeyUp:
		if m.historyIndex > 0 {
			if m.historyIndex == len(m.history) {
				m.draft = m.input.Value()
			}
			m.historyIndex--
			m.input.SetValue(m.history[m.historyIndex])
			m.input.CursorEnd()
		}
		return m, nil

	case tea.KeyDown:
		if m.historyIndex < len(m.history) {
			m.historyIndex++
			if m.historyIndex == len(m.history) {
				m.input.SetValue(m.draft)
			} else {
				m.input.SetValue(m.history[m.historyIndex])
			}
			m.input.CursorEnd()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(keyMsg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.submitted || m.aborted {
		// Leave the submitted line visible in the scrollback.
		return fmt.Sprintf("%s %s\n", m.prompt, m.input.Value())
	}
	return fmt.Sprintf("%s %s", ux.Styles.Bold.Render(m.prompt), m.input.View())
}

// =============================================================================
// MockInputReader
// =============================================================================

// MockInputReader feeds scripted lines, for tests.
type MockInputReader struct {
	Lines []string
	index int
}

// ReadLine returns the next scripted line, then ErrInputClosed.
func (r *MockInputReader) ReadLine(prompt string) (string, error) {
	if r.index >= len(r.Lines) {
		return "", ErrInputClosed
	}
	line := r.Lines[r.index]
	r.index++
	return line, nil
}
