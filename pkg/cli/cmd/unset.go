package cmd

import (
	"github.com/devantler-tech/settings/pkg/ui/notify"
	"github.com/spf13/cobra"
)

// NewUnsetCmd creates the unset command, deleting a dotted key path.
func NewUnsetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "unset <file> <key>",
		Short:        "Delete the key at a dotted key path",
		Args:         cobra.ExactArgs(2),
		RunE:         handleUnsetRunE,
		SilenceUsage: true,
	}

	addFormatFlag(cmd.Flags())

	return cmd
}

func handleUnsetRunE(cmd *cobra.Command, args []string) error {
	path, key := args[0], args[1]

	format, err := resolveFormat(cmd.Flags(), path)
	if err != nil {
		return err
	}

	tree, err := loadTree(path, format)
	if err != nil {
		return err
	}

	err = unsetPath(tree, key)
	if err != nil {
		return err
	}

	err = saveTree(path, format, tree)
	if err != nil {
		return err
	}

	notify.Successf(cmd.OutOrStdout(), "removed %q from '%s'", key, path)

	return nil
}
