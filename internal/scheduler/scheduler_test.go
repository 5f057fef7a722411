// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"
)

type countingRefresher struct {
	calls atomic.Int32
}

func (c *countingRefresher) Refresh(context.Context) {
	c.calls.Add(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNew(t *testing.T) {
	logger := testLogger()

	s := New(&countingRefresher{}, "", logger)
	if s == nil {
		t.Fatal("New() returned nil")
	}
	if s.cron == nil {
		t.Error("New() scheduler has nil cron")
	}
	if s.logger != logger {
		t.Error("New() scheduler has wrong logger")
	}
	if s.Enabled() {
		t.Error("empty schedule should be disabled")
	}
}

func TestScheduler_Disabled(t *testing.T) {
	s := New(&countingRefresher{}, "", testLogger())
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !s.NextRun().IsZero() {
		t.Error("disabled scheduler should have no next run")
	}
	s.Stop()
}

func TestScheduler_InvalidSchedule(t *testing.T) {
	s := New(&countingRefresher{}, "not a schedule", testLogger())
	if err := s.Start(); err == nil {
		t.Error("Start() should fail for an invalid schedule")
	}
}

func TestScheduler_StartStop(t *testing.T) {
	s := New(&countingRefresher{}, "*/5 * * * *", testLogger())

	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	next := s.NextRun()
	if next.IsZero() || !next.After(time.Now()) {
		t.Errorf("NextRun() = %v, want a future time", next)
	}
	s.Stop()
}

func TestScheduler_RunsRefresh(t *testing.T) {
	r := &countingRefresher{}
	s := New(r, "@every 1s", testLogger())
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer s.Stop()

	deadline := time.Now().Add(5 * time.Second)
	for r.calls.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("refresh did not run")
		}
		time.Sleep(50 * time.Millisecond)
	}
}

func TestValidateSchedule(t *testing.T) {
	tests := []struct {
		expr    string
		wantErr bool
	}{
		{"* * * * *", false},
		{"0 */6 * * *", false},
		{"@hourly", false},
		{"@every 10m", false},
		{"", true},
		{"61 * * * *", true},
		{"every day", true},
	}
	for _, tt := range tests {
		err := ValidateSchedule(tt.expr)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateSchedule(%q) error = %v, wantErr %v", tt.expr, err, tt.wantErr)
		}
	}
}
