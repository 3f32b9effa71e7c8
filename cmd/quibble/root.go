// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quibble Contributors

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/quibble/quibble/internal/xdg"
)

// Global flags available to all subcommands.
var configFile string

// resolveConfigFile returns the --config value, or the XDG default when the
// flag is unset and the default file exists.
func resolveConfigFile() string {
	if configFile != "" {
		return configFile
	}
	if path := xdg.ConfigFile(); path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// NewRootCmd creates the root command for the Quibble CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quibble",
		Short: "Quibble - a community discussion platform",
		Long: `Quibble is a community discussion platform with email-verified
registration, cookie-based sessions, communities, and follow feeds.`,
	}

	// Global flag for config file path
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	// Add subcommands
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newMigrateCmd())

	return cmd
}
