package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewGetCmd creates the get command, printing the value at a dotted key path.
func NewGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "get <file> <key>",
		Short:        "Print the value stored at a dotted key path",
		Args:         cobra.ExactArgs(2),
		RunE:         handleGetRunE,
		SilenceUsage: true,
	}

	addFormatFlag(cmd.Flags())

	return cmd
}

func handleGetRunE(cmd *cobra.Command, args []string) error {
	path, key := args[0], args[1]

	format, err := resolveFormat(cmd.Flags(), path)
	if err != nil {
		return err
	}

	tree, err := loadTree(path, format)
	if err != nil {
		return err
	}

	value, err := lookupPath(tree, key)
	if err != nil {
		return err
	}

	rendered, err := yaml.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to render value: %w", err)
	}

	cmd.Print(string(rendered))

	return nil
}
