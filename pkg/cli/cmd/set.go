package cmd

import (
	"fmt"

	"github.com/devantler-tech/settings/pkg/ui/notify"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewSetCmd creates the set command, storing a value at a dotted key path.
func NewSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <file> <key> <value>",
		Short: "Store a value at a dotted key path",
		Long: `Store a value at a dotted key path.

The value is parsed as a YAML scalar, so "42" becomes a number, "true" a
boolean and anything else a string. Intermediate mappings are created as
needed.`,
		Args:         cobra.ExactArgs(3),
		RunE:         handleSetRunE,
		SilenceUsage: true,
	}

	addFormatFlag(cmd.Flags())

	return cmd
}

func handleSetRunE(cmd *cobra.Command, args []string) error {
	path, key, raw := args[0], args[1], args[2]

	format, err := resolveFormat(cmd.Flags(), path)
	if err != nil {
		return err
	}

	tree, err := loadTree(path, format)
	if err != nil {
		return err
	}

	var value any

	err = yaml.Unmarshal([]byte(raw), &value)
	if err != nil {
		return fmt.Errorf("failed to parse value %q: %w", raw, err)
	}

	err = setPath(tree, key, value)
	if err != nil {
		return err
	}

	err = saveTree(path, format, tree)
	if err != nil {
		return err
	}

	notify.Successf(cmd.OutOrStdout(), "set %q in '%s'", key, path)

	return nil
}
