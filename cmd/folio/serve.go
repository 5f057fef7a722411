// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/olegiv/folio-go/internal/auth"
	"github.com/olegiv/folio-go/internal/catalog"
	"github.com/olegiv/folio-go/internal/config"
	"github.com/olegiv/folio-go/internal/handler"
	"github.com/olegiv/folio-go/internal/logging"
	"github.com/olegiv/folio-go/internal/metrics"
	"github.com/olegiv/folio-go/internal/middleware"
	"github.com/olegiv/folio-go/internal/scheduler"
	"github.com/olegiv/folio-go/internal/session"
	"github.com/olegiv/folio-go/internal/version"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger, recorder := newLogger(cfg, os.Stdout)
	logger.Info("starting folio", "category", logging.CategorySystem, "version", version.Get().String(), "env", cfg.Env)

	verifier, err := auth.NewVerifier(cfg.AdminSecret, cfg.AdminSecretHash)
	if err != nil {
		return fmt.Errorf("configuring admin secret: %w", err)
	}
	if cfg.AdminSecretHash != "" && auth.NeedsRehash(cfg.AdminSecretHash) {
		logger.Warn("admin secret hash uses outdated argon2 parameters; regenerate it with folio hash-secret",
			"category", logging.CategoryAuth)
	}

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	catalogMetrics, err := metrics.NewCatalog(reg)
	if err != nil {
		return fmt.Errorf("registering metrics: %w", err)
	}

	// Remote store and catalog
	remoteStore, err := openRemote(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := remoteStore.Close(); err != nil {
			logger.Error("error closing remote store", "category", logging.CategorySystem, "error", err)
		}
	}()

	store := catalog.New(remoteStore, catalog.WithLogger(logger), catalog.WithMetrics(catalogMetrics))
	store.Load(ctx)
	content := store.Snapshot()
	logger.Info("catalog loaded",
		"category", logging.CategoryCatalog,
		"projects", len(content.Projects),
		"categories", len(content.Categories),
	)
	// Closed before the remote store so in-flight writes can finish.
	defer func() { _ = store.Close() }()

	// Sessions
	sessionStore, closeSessions, err := openSessionStore(cfg, logger)
	if err != nil {
		return err
	}
	defer closeSessions()
	sessionManager := session.New(sessionStore, cfg.IsDevelopment())

	gate := auth.NewGate(verifier, session.NewFlags(sessionManager), logger)

	// Login protection
	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	lpCtx, stopLP := context.WithCancel(ctx)
	defer stopLP()
	go loginProtection.Run(lpCtx, 5*time.Minute)

	// Scheduled refresh
	sched := scheduler.New(store, cfg.RefreshSchedule, logger)
	if err := sched.Start(); err != nil {
		return err
	}
	defer sched.Stop()

	security := middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())
	security.ExcludePaths = []string{"/metrics"}

	router := handler.NewRouter(handler.RouterDeps{
		Catalog:         store,
		Gate:            gate,
		Sessions:        sessionManager,
		LoginProtection: loginProtection,
		RateLimiter:     middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		CSRF:            middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret)[:config.MinSessionSecretLength], cfg.IsDevelopment(), cfg.ServerPort),
		Security:        security,
		RequestTimeout:  20 * time.Second,
		Gatherer:        reg,
		Recorder:        recorder,
		Logger:          logger,
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "category", logging.CategorySystem, "addr", cfg.ServerAddr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down server...", "category", logging.CategorySystem)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("server stopped", "category", logging.CategorySystem)
	return nil
}

// openSessionStore returns the Redis session store when configured and the
// sqlite3store otherwise, with a func that releases it.
func openSessionStore(cfg *config.Config, logger *slog.Logger) (scs.Store, func(), error) {
	if cfg.UseRedisSessions() {
		opts := session.DefaultRedisStoreOptions()
		opts.URL = cfg.RedisURL
		rs, err := session.NewRedisStore(opts)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to redis: %w", err)
		}
		logger.Info("session store initialized", "category", logging.CategorySystem, "backend", "redis")
		return rs, func() { _ = rs.Close() }, nil
	}

	if err := ensureDir(cfg.SessionDBPath); err != nil {
		return nil, nil, err
	}
	db, err := session.OpenSQLite(cfg.SessionDBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening session database: %w", err)
	}
	logger.Info("session store initialized", "category", logging.CategorySystem, "backend", "sqlite", "path", cfg.SessionDBPath)
	return session.NewSQLiteStore(db), func() { _ = db.Close() }, nil
}
