// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package store holds the application state behind a single consumer
// goroutine. All mutation flows through Dispatch as typed actions; reads
// flow through Snapshot, which hands back a copy. There is no shared
// mutable state and no lock for callers to hold wrong.
package store

import (
	"log/slog"
	"sync"

	"github.com/AleutianAI/IncidentConsole/services/desk/observability"
)

// opQueueDepth bounds how many pending commands can queue before Dispatch
// blocks. Deep enough for a refresh burst across all slices.
const opQueueDepth = 64

// Store serializes every state read and write through one goroutine.
type Store struct {
	ops     chan func(*State)
	done    chan struct{}
	stopped chan struct{}

	closeOnce sync.Once

	logger  *slog.Logger
	metrics *observability.Metrics
}

// New starts the consumer goroutine and returns a store with empty slices
// and the dashboard view active. Close must be called to stop the consumer.
func New(logger *slog.Logger, metrics *observability.Metrics) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		ops:     make(chan func(*State), opQueueDepth),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		logger:  logger,
		metrics: metrics,
	}
	go s.consume()
	return s
}

// consume is the single consumer loop. It owns the State value outright;
// nothing else ever touches it.
func (s *Store) consume() {
	defer close(s.stopped)
	state := State{
		Health: map[SliceName]SliceHealth{
			SliceIncidents: {State: SliceEmpty},
			SliceChat:      {State: SliceEmpty},
			SliceAnalytics: {State: SliceEmpty},
		},
		ActiveView:     ViewDashboard,
		SidebarVisible: true,
	}
	for {
		select {
		case op := <-s.ops:
			op(&state)
		case <-s.done:
			// Drain commands already queued so callers see their effects
			// in any final Snapshot taken before Close.
			for {
				select {
				case op := <-s.ops:
					op(&state)
				default:
					return
				}
			}
		}
	}
}

// Dispatch submits one action. It blocks only when the queue is full, and
// becomes a no-op after Close.
func (s *Store) Dispatch(action Action) {
	select {
	case s.ops <- func(st *State) { s.apply(st, action) }:
	case <-s.done:
	}
}

// Snapshot returns a copy of the current state, consistent as of the point
// the consumer processed the request. After Close it returns the zero
// State.
func (s *Store) Snapshot() State {
	reply := make(chan State, 1)
	select {
	case s.ops <- func(st *State) { reply <- st.clone() }:
		select {
		case st := <-reply:
			return st
		case <-s.stopped:
			// Consumer exited before reaching the request.
			select {
			case st := <-reply:
				return st
			default:
				return State{}
			}
		}
	case <-s.done:
		return State{}
	}
}

// Close stops the consumer after draining queued commands. Safe to call
// more than once.
func (s *Store) Close() {
	s.closeOnce.Do(func() { close(s.done) })
	<-s.stopped
}
