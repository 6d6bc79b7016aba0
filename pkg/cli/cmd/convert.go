package cmd

import (
	"github.com/devantler-tech/settings/pkg/settings/codec"
	"github.com/devantler-tech/settings/pkg/ui/notify"
	"github.com/spf13/cobra"
)

const (
	fromFlagName = "from"
	toFlagName   = "to"
)

// NewConvertCmd creates the convert command, re-encoding a settings file
// into another format.
func NewConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <source> <destination>",
		Short: "Re-encode a settings file into another format",
		Long: `Re-encode a settings file into another format.

Formats are inferred from the file extensions unless --from/--to override
them. Converting into INI requires the tree to be two levels deep, and
converting out of INI yields string values only.`,
		Args:         cobra.ExactArgs(2),
		RunE:         handleConvertRunE,
		SilenceUsage: true,
	}

	cmd.Flags().String(fromFlagName, "", "source format; inferred from the extension when empty")
	cmd.Flags().String(toFlagName, "", "destination format; inferred from the extension when empty")

	return cmd
}

func handleConvertRunE(cmd *cobra.Command, args []string) error {
	source, destination := args[0], args[1]

	sourceFormat, err := flagOrInferredFormat(cmd, fromFlagName, source)
	if err != nil {
		return err
	}

	destinationFormat, err := flagOrInferredFormat(cmd, toFlagName, destination)
	if err != nil {
		return err
	}

	tree, err := loadTree(source, sourceFormat)
	if err != nil {
		return err
	}

	err = saveTree(destination, destinationFormat, tree)
	if err != nil {
		return err
	}

	notify.Successf(
		cmd.OutOrStdout(),
		"converted '%s' (%s) to '%s' (%s)",
		source, sourceFormat, destination, destinationFormat,
	)

	return nil
}

// flagOrInferredFormat resolves a format from a named flag, falling back to
// extension inference.
func flagOrInferredFormat(cmd *cobra.Command, flagName, path string) (codec.Format, error) {
	override, err := cmd.Flags().GetString(flagName)
	if err != nil {
		return "", err
	}

	if override != "" {
		return codec.ParseFormat(override)
	}

	return codec.FormatFromPath(path)
}
