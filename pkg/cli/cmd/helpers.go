package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/devantler-tech/settings/pkg/settings"
	"github.com/devantler-tech/settings/pkg/settings/codec"
	"github.com/spf13/pflag"
)

// formatFlagName is the flag overriding extension-based format inference.
const formatFlagName = "format"

// settingsFilePerm is the permission mode settings files are written with.
const settingsFilePerm = 0o600

// addFormatFlag registers the shared --format flag on a command's flag set.
func addFormatFlag(flags *pflag.FlagSet) {
	flags.String(
		formatFlagName,
		"",
		"settings file format (json, yaml, toml, ini); inferred from the file extension when empty",
	)
}

// resolveFormat returns the format for a settings file, preferring the
// --format flag over extension inference.
func resolveFormat(flags *pflag.FlagSet, path string) (codec.Format, error) {
	override, err := flags.GetString(formatFlagName)
	if err != nil {
		return "", fmt.Errorf("failed to read --%s flag: %w", formatFlagName, err)
	}

	if override != "" {
		return codec.ParseFormat(override)
	}

	return codec.FormatFromPath(path)
}

// loadTree reads and decodes a settings file.
func loadTree(path string, format codec.Format) (map[string]any, error) {
	fileCodec, err := settings.DefaultRegistry().Lookup(format)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	tree, err := fileCodec.Unmarshal(data)
	if err != nil {
		return nil, err
	}

	return tree, nil
}

// saveTree encodes and writes a settings file, truncating prior contents.
func saveTree(path string, format codec.Format, tree map[string]any) error {
	fileCodec, err := settings.DefaultRegistry().Lookup(format)
	if err != nil {
		return err
	}

	data, err := fileCodec.Marshal(tree)
	if err != nil {
		return err
	}

	err = os.WriteFile(path, data, settingsFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}

// lookupPath walks a dotted key path and returns the value it addresses.
func lookupPath(tree map[string]any, path string) (any, error) {
	segments := strings.Split(path, ".")
	container := tree

	for _, segment := range segments[:len(segments)-1] {
		nested, ok := container[segment].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("key %q not found: %q is not a mapping", path, segment)
		}

		container = nested
	}

	value, ok := container[segments[len(segments)-1]]
	if !ok {
		return nil, fmt.Errorf("key %q not found", path)
	}

	return value, nil
}

// setPath walks a dotted key path, creating intermediate mappings as
// needed, and stores the value at the terminal key.
func setPath(tree map[string]any, path string, value any) error {
	segments := strings.Split(path, ".")
	container := tree

	for _, segment := range segments[:len(segments)-1] {
		next, exists := container[segment]
		if !exists {
			nested := make(map[string]any)
			container[segment] = nested
			container = nested

			continue
		}

		nested, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("cannot set %q: %q is not a mapping", path, segment)
		}

		container = nested
	}

	container[segments[len(segments)-1]] = value

	return nil
}

// unsetPath walks a dotted key path and deletes the terminal key.
func unsetPath(tree map[string]any, path string) error {
	segments := strings.Split(path, ".")
	container := tree

	for _, segment := range segments[:len(segments)-1] {
		nested, ok := container[segment].(map[string]any)
		if !ok {
			return fmt.Errorf("key %q not found: %q is not a mapping", path, segment)
		}

		container = nested
	}

	key := segments[len(segments)-1]
	if _, ok := container[key]; !ok {
		return fmt.Errorf("key %q not found", path)
	}

	delete(container, key)

	return nil
}
