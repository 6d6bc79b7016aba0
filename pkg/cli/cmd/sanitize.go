package cmd

import (
	"github.com/devantler-tech/settings/pkg/settings/sanitize"
	"github.com/devantler-tech/settings/pkg/ui/notify"
	"github.com/spf13/cobra"
)

// defaultsFlagName names the file holding the default schema.
const defaultsFlagName = "defaults"

// NewSanitizeCmd creates the sanitize command, reconciling a settings file
// against a default schema file.
func NewSanitizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sanitize <file>",
		Short: "Reconcile a settings file against a default schema",
		Long: `Reconcile a settings file against a default schema.

Keys absent from the defaults are removed and keys missing from the file
are added with their default values, level by level. Values of keys present
on both sides are left untouched, even when their types differ.`,
		Args:         cobra.ExactArgs(1),
		RunE:         handleSanitizeRunE,
		SilenceUsage: true,
	}

	addFormatFlag(cmd.Flags())
	cmd.Flags().String(defaultsFlagName, "", "file holding the default schema (required)")
	_ = cmd.MarkFlagRequired(defaultsFlagName)

	return cmd
}

func handleSanitizeRunE(cmd *cobra.Command, args []string) error {
	path := args[0]

	defaultsPath, err := cmd.Flags().GetString(defaultsFlagName)
	if err != nil {
		return err
	}

	format, err := resolveFormat(cmd.Flags(), path)
	if err != nil {
		return err
	}

	defaultsFormat, err := resolveFormat(cmd.Flags(), defaultsPath)
	if err != nil {
		return err
	}

	tree, err := loadTree(path, format)
	if err != nil {
		return err
	}

	defaults, err := loadTree(defaultsPath, defaultsFormat)
	if err != nil {
		return err
	}

	result, err := sanitize.Sanitize(tree, defaults)
	if err != nil {
		return err
	}

	if result.Empty() {
		notify.Successf(cmd.OutOrStdout(), "'%s' already matches the default schema", path)

		return nil
	}

	err = saveTree(path, format, tree)
	if err != nil {
		return err
	}

	for _, removed := range result.Remove {
		notify.Activityf(cmd.OutOrStdout(), "removed %q", removed)
	}

	for added := range result.Add {
		notify.Activityf(cmd.OutOrStdout(), "added %q", added)
	}

	notify.Successf(
		cmd.OutOrStdout(),
		"sanitized '%s': removed %d key(s), added %d key(s)",
		path, len(result.Remove), len(result.Add),
	)

	return nil
}
