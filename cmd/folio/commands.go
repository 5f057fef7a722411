// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/olegiv/folio-go/internal/auth"
	"github.com/olegiv/folio-go/internal/catalog"
	"github.com/olegiv/folio-go/internal/config"
	"github.com/olegiv/folio-go/internal/version"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the remote store schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if cfg.RemoteDriver == config.DriverMemory {
				return errors.New("the memory driver has no schema to migrate")
			}

			logger, _ := newLogger(cfg, cmd.ErrOrStderr())
			s, err := openRemote(cfg, logger)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Write the default catalog to the remote store",
		Long: `Seed upserts the built-in projects and categories into the remote store.
Existing rows with the same ids are overwritten. A stored site config is kept.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			logger, _ := newLogger(cfg, cmd.ErrOrStderr())
			r, err := openRemote(cfg, logger)
			if err != nil {
				return err
			}
			defer func() { _ = r.Close() }()

			store := catalog.New(r, catalog.WithLogger(logger))
			defer func() { _ = store.Close() }()

			if err := store.SeedDefaults(cmd.Context()); err != nil {
				return err
			}
			content := store.Snapshot()
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "seeded %d projects and %d categories\n",
				len(content.Projects), len(content.Categories))
			return nil
		},
	}
}

func newHashSecretCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-secret [secret]",
		Short: "Print the argon2id hash of an admin secret",
		Long: `Hash-secret prints a value for FOLIO_ADMIN_SECRET_HASH. The secret is read
from the first argument, or from the first line of standard input.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, err := readSecret(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			hash, err := auth.HashArgon2(secret)
			if err != nil {
				return fmt.Errorf("hashing secret: %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

// readSecret returns args[0] or the first line of in.
func readSecret(in io.Reader, args []string) (string, error) {
	secret := ""
	if len(args) == 1 {
		secret = args[0]
	} else {
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("reading secret: %w", err)
		}
		secret = strings.TrimRight(line, "\r\n")
	}
	if secret == "" {
		return "", errors.New("secret must not be empty")
	}
	return secret, nil
}

func newVersionCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.Get()
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), info)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "folio %s\n", info)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}
