// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the periodic catalog refresh.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/olegiv/folio-go/internal/logging"
)

// Refresher reloads the catalog from the remote store.
type Refresher interface {
	Refresh(ctx context.Context)
}

// Scheduler triggers a full catalog refresh on a cron schedule.
type Scheduler struct {
	refresher Refresher
	schedule  string
	cron      *cron.Cron
	entryID   cron.EntryID
	logger    *slog.Logger
}

// ValidateSchedule checks a standard five-field cron expression.
// Descriptors such as "@every 10m" and "@hourly" are accepted too.
func ValidateSchedule(expr string) error {
	if _, err := cron.ParseStandard(expr); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", expr, err)
	}
	return nil
}

// New creates a new scheduler instance. An empty schedule disables it.
func New(refresher Refresher, schedule string, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		refresher: refresher,
		schedule:  schedule,
		cron:      cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger,
	}
}

// Enabled reports whether a schedule is configured.
func (s *Scheduler) Enabled() bool {
	return s.schedule != ""
}

// Start registers the refresh job and starts the cron runner.
// It is a no-op when the scheduler is disabled.
func (s *Scheduler) Start() error {
	if !s.Enabled() {
		s.logger.Debug("scheduled refresh disabled", "category", logging.CategorySystem)
		return nil
	}

	id, err := s.cron.AddFunc(s.schedule, s.run)
	if err != nil {
		return fmt.Errorf("scheduling catalog refresh: %w", err)
	}
	s.entryID = id

	s.cron.Start()
	s.logger.Info("scheduler started",
		"category", logging.CategorySystem,
		"schedule", s.schedule,
		"next_run", s.NextRun(),
	)
	return nil
}

// Stop gracefully stops the scheduler, waiting for a running refresh.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	if s.Enabled() {
		s.logger.Info("scheduler stopped", "category", logging.CategorySystem)
	}
}

// NextRun returns when the refresh runs next, or the zero time if it is not scheduled.
func (s *Scheduler) NextRun() time.Time {
	if s.entryID == 0 {
		return time.Time{}
	}
	return s.cron.Entry(s.entryID).Next
}

func (s *Scheduler) run() {
	start := time.Now()
	s.refresher.Refresh(context.Background())
	s.logger.Debug("scheduled refresh finished",
		"category", logging.CategoryCatalog,
		"duration", time.Since(start),
	)
}
