// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/olegiv/folio-go/internal/version"
)

// envFile is the optional dotenv file read before configuration is parsed.
var envFile string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "folio",
		Short: "Portfolio catalog server",
		Long: `Folio serves a portfolio catalog (projects, categories and site text)
from an in-memory cache kept in sync with a SQL backing store.

Configuration is read from FOLIO_* environment variables. A .env file in the
working directory is loaded first when present.`,
		Version:       version.Get().String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if envFile != "" {
				return godotenv.Load(envFile)
			}
			// Load .env if present (development)
			_ = godotenv.Load()
			return nil
		},
	}

	root.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file to load (default: .env if present)")
	root.SetVersionTemplate("folio {{.Version}}\n")

	root.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newSeedCmd(),
		newHashSecretCmd(),
		newVersionCmd(),
	)
	return root
}
