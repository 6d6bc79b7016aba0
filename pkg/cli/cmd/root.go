// Package cmd wires up the settings command line interface.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root command with version info and subcommands.
func NewRootCmd(version, commit, date string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect and maintain settings files in JSON, YAML, TOML and INI formats",
		Long: `settings reads, edits and reconciles application settings files.

The file format is inferred from the file extension (.json, .yaml, .yml,
.toml, .ini) or set explicitly with --format. Keys are addressed with
dotted paths, so "window.width" names the "width" key inside the "window"
mapping.`,
		RunE:         handleRootRunE,
		SilenceUsage: true,
	}

	cmd.Version = fmt.Sprintf("%s (Built on %s from Git SHA %s)", version, date, commit)

	cmd.AddCommand(NewGetCmd())
	cmd.AddCommand(NewSetCmd())
	cmd.AddCommand(NewUnsetCmd())
	cmd.AddCommand(NewSanitizeCmd())
	cmd.AddCommand(NewConvertCmd())

	return cmd
}

// Execute runs the provided root command and handles errors.
func Execute(cmd *cobra.Command) error {
	err := cmd.Execute()
	if err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// handleRootRunE handles the root command.
func handleRootRunE(cmd *cobra.Command, _ []string) error {
	// The err can safely be ignored, as it can never fail at runtime.
	_ = cmd.Help()

	return nil
}
