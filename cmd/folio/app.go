// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/olegiv/folio-go/internal/config"
	"github.com/olegiv/folio-go/internal/logging"
	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/remote"
	"github.com/olegiv/folio-go/internal/remote/memstore"
	"github.com/olegiv/folio-go/internal/store"
)

// newLogger builds the process logger: text output plus a diagnostics ring
// that keeps recent warnings and errors for the admin API.
func newLogger(cfg *config.Config, out io.Writer) (*slog.Logger, *logging.Recorder) {
	recorder := logging.NewRecorder(logging.DefaultRecorderSize)
	text := slog.NewTextHandler(out, &slog.HandlerOptions{Level: cfg.SlogLevel()})
	logger := slog.New(logging.NewDiagnosticsHandler(text, recorder))
	slog.SetDefault(logger)
	return logger, recorder
}

// openRemote opens the configured remote store. SQL stores are migrated; the
// memory store gets the same default site config row the migrations insert.
func openRemote(cfg *config.Config, logger *slog.Logger) (remote.Store, error) {
	if cfg.RemoteDriver == config.DriverMemory {
		logger.Warn("using in-memory remote store; catalog edits are lost on restart",
			"category", logging.CategorySystem)
		m := memstore.New()
		row := model.SiteConfigSingletonRow(model.DefaultSiteConfig())
		if err := m.Insert(context.Background(), remote.TableSiteConfig, row); err != nil {
			return nil, fmt.Errorf("creating site config row: %w", err)
		}
		return m, nil
	}

	if cfg.RemoteDriver == config.DriverSQLite || cfg.RemoteDriver == config.DriverSQLite3 {
		if err := ensureDir(cfg.RemoteDSN); err != nil {
			return nil, err
		}
	}

	logger.Info("opening remote store", "category", logging.CategorySystem, "driver", cfg.RemoteDriver)
	s, err := store.Open(cfg.RemoteDriver, cfg.RemoteDSN)
	if err != nil {
		return nil, fmt.Errorf("opening remote store: %w", err)
	}
	return s, nil
}

// ensureDir creates the parent directory of a file path.
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating data directory %s: %w", dir, err)
	}
	return nil
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
