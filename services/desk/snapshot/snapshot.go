// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package snapshot persists last-known-good slice data in an embedded
// BadgerDB so the console can show real, timestamped data when the backend
// is unreachable. It is a cache, not a store of record: everything here is
// reconstructible from the backend.
//
// Records are stored as JSON under fixed keys, wrapped with the capture
// time so stale data is always presented with its age.
//
// License: BadgerDB is Apache 2.0 licensed (github.com/dgraph-io/badger).
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/AleutianAI/IncidentConsole/services/desk/datatypes"
)

// ErrNoSnapshot is returned by Get methods when no record has been stored
// under the requested key.
var ErrNoSnapshot = errors.New("no snapshot stored")

const (
	keyIncidents = "snapshot/incidents"
	keyAnalytics = "snapshot/analytics"
)

// Config holds configuration for the snapshot cache.
type Config struct {
	// Path is the directory for BadgerDB files.
	// Required unless InMemory is true.
	Path string

	// InMemory enables in-memory mode (no disk persistence).
	// Useful for testing.
	InMemory bool

	// Logger is the logger for BadgerDB operations.
	// If nil, BadgerDB's internal logging is disabled.
	Logger *slog.Logger
}

// badgerLogger adapts slog.Logger to BadgerDB's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// Cache is a BadgerDB-backed last-known-good store.
//
// Thread Safety: safe for concurrent use.
type Cache struct {
	db *badger.DB
}

// Open creates and opens the snapshot cache.
//
// Creates the directory if it doesn't exist. Caller must call Close when
// done.
func Open(cfg Config) (*Cache, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for persistent snapshot cache")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0750); err != nil {
			return nil, fmt.Errorf("create snapshot directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithNumVersionsToKeep(1)

	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open snapshot cache: %w", err)
	}
	return &Cache{db: db}, nil
}

// OpenInMemory opens a throwaway in-memory cache for testing.
func OpenInMemory() (*Cache, error) {
	return Open(Config{InMemory: true})
}

// Close closes the underlying database. Pending writes are flushed.
func (c *Cache) Close() error {
	return c.db.Close()
}

// incidentsRecord is the stored shape for the incidents slice.
type incidentsRecord struct {
	Incidents  []datatypes.Incident `json:"incidents"`
	Total      int                  `json:"total"`
	CapturedAt time.Time            `json:"captured_at"`
}

// analyticsRecord is the stored shape for the analytics slice.
type analyticsRecord struct {
	Analytics  datatypes.AnalyticsSnapshot `json:"analytics"`
	CapturedAt time.Time                   `json:"captured_at"`
}

// PutIncidents stores the incident list as the new last known good.
func (c *Cache) PutIncidents(incidents []datatypes.Incident, total int) error {
	return c.put(keyIncidents, incidentsRecord{
		Incidents:  incidents,
		Total:      total,
		CapturedAt: time.Now(),
	})
}

// GetIncidents returns the stored incident list and its capture time.
// Returns ErrNoSnapshot when nothing has been stored.
func (c *Cache) GetIncidents() ([]datatypes.Incident, int, time.Time, error) {
	var rec incidentsRecord
	if err := c.get(keyIncidents, &rec); err != nil {
		return nil, 0, time.Time{}, err
	}
	return rec.Incidents, rec.Total, rec.CapturedAt, nil
}

// PutAnalytics stores the analytics snapshot as the new last known good.
func (c *Cache) PutAnalytics(snapshot datatypes.AnalyticsSnapshot) error {
	return c.put(keyAnalytics, analyticsRecord{
		Analytics:  snapshot,
		CapturedAt: time.Now(),
	})
}

// GetAnalytics returns the stored analytics snapshot and its capture time.
// Returns ErrNoSnapshot when nothing has been stored.
func (c *Cache) GetAnalytics() (*datatypes.AnalyticsSnapshot, time.Time, error) {
	var rec analyticsRecord
	if err := c.get(keyAnalytics, &rec); err != nil {
		return nil, time.Time{}, err
	}
	return &rec.Analytics, rec.CapturedAt, nil
}

func (c *Cache) put(key string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", key, err)
	}
	err = c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), encoded)
	})
	if err != nil {
		return fmt.Errorf("write snapshot %s: %w", key, err)
	}
	return nil
}

func (c *Cache) get(key string, out any) error {
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNoSnapshot
			}
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, out)
		})
	})
	if err != nil {
		if errors.Is(err, ErrNoSnapshot) {
			return ErrNoSnapshot
		}
		return fmt.Errorf("read snapshot %s: %w", key, err)
	}
	return nil
}
