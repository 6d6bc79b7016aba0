package cmd_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/devantler-tech/settings/pkg/cli/cmd"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.NoColor = true

	os.Exit(m.Run())
}

// runCommand executes the root command with the given arguments and returns
// its combined output.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := cmd.NewRootCmd("dev", "none", "unknown")

	var out bytes.Buffer

	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()

	return out.String(), err
}

// writeSettingsFile writes contents to a fresh file in a temp directory.
func writeSettingsFile(t *testing.T, name, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	return path
}

func TestRootCmdShowsHelp(t *testing.T) {
	t.Parallel()

	out, err := runCommand(t)

	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "get")
	assert.Contains(t, out, "sanitize")
}

func TestRootCmdVersion(t *testing.T) {
	t.Parallel()

	out, err := runCommand(t, "--version")

	require.NoError(t, err)
	assert.Contains(t, out, "dev (Built on unknown from Git SHA none)")
}

func TestGetCmd(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		contents string
		fileName string
		key      string
		want     string
	}{
		{
			name:     "top-level string",
			contents: `{"theme": "dark"}`,
			fileName: "settings.json",
			key:      "theme",
			want:     "dark\n",
		},
		{
			name:     "nested value through a dotted path",
			contents: "window:\n    width: 800\n",
			fileName: "settings.yaml",
			key:      "window.width",
			want:     "800\n",
		},
		{
			name:     "mapping value renders as yaml",
			contents: `{"window": {"width": 800}}`,
			fileName: "settings.json",
			key:      "window",
			want:     "width: 800\n",
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			path := writeSettingsFile(t, testCase.fileName, testCase.contents)

			out, err := runCommand(t, "get", path, testCase.key)

			require.NoError(t, err)
			assert.Equal(t, testCase.want, out)
		})
	}
}

func TestGetCmdMissingKey(t *testing.T) {
	t.Parallel()

	path := writeSettingsFile(t, "settings.json", `{"theme": "dark"}`)

	_, err := runCommand(t, "get", path, "missing")

	require.ErrorContains(t, err, "not found")
}

func TestGetCmdFormatOverride(t *testing.T) {
	t.Parallel()

	// A .conf extension is meaningless on its own; --format supplies it.
	path := writeSettingsFile(t, "settings.conf", `{"theme": "dark"}`)

	out, err := runCommand(t, "get", path, "theme", "--format", "json")

	require.NoError(t, err)
	assert.Equal(t, "dark\n", out)
}

func TestSetCmdParsesScalars(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		key   string
		value string
		want  string
	}{
		{name: "string", key: "theme", value: "dark", want: "dark\n"},
		{name: "number", key: "level", value: "42", want: "42\n"},
		{name: "boolean", key: "enabled", value: "true", want: "true\n"},
		{name: "nested path creates mappings", key: "window.width", value: "800", want: "800\n"},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			path := writeSettingsFile(t, "settings.json", `{}`)

			out, err := runCommand(t, "set", path, testCase.key, testCase.value)
			require.NoError(t, err)
			assert.Contains(t, out, "set")

			got, err := runCommand(t, "get", path, testCase.key)
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestSetCmdRejectsScalarIntermediate(t *testing.T) {
	t.Parallel()

	path := writeSettingsFile(t, "settings.json", `{"theme": "dark"}`)

	_, err := runCommand(t, "set", path, "theme.variant", "high-contrast")

	require.ErrorContains(t, err, "not a mapping")
}

func TestUnsetCmd(t *testing.T) {
	t.Parallel()

	path := writeSettingsFile(t, "settings.json", `{"theme": "dark", "level": 1}`)

	out, err := runCommand(t, "unset", path, "level")
	require.NoError(t, err)
	assert.Contains(t, out, "removed")

	_, err = runCommand(t, "get", path, "level")
	require.ErrorContains(t, err, "not found")
}

func TestUnsetCmdMissingKey(t *testing.T) {
	t.Parallel()

	path := writeSettingsFile(t, "settings.json", `{"theme": "dark"}`)

	_, err := runCommand(t, "unset", path, "missing")

	require.ErrorContains(t, err, "not found")
}

func TestSanitizeCmd(t *testing.T) {
	t.Parallel()

	path := writeSettingsFile(t, "settings.json", `{"theme": "dark", "obsolete": true}`)
	defaults := writeSettingsFile(t, "defaults.json", `{"theme": "light", "level": 1}`)

	out, err := runCommand(t, "sanitize", path, "--defaults", defaults)

	require.NoError(t, err)
	assert.Contains(t, out, `removed "obsolete"`)
	assert.Contains(t, out, `added "level"`)

	got, err := runCommand(t, "get", path, "theme")
	require.NoError(t, err)
	assert.Equal(t, "dark\n", got)

	got, err = runCommand(t, "get", path, "level")
	require.NoError(t, err)
	assert.Equal(t, "1\n", got)

	_, err = runCommand(t, "get", path, "obsolete")
	require.ErrorContains(t, err, "not found")
}

func TestSanitizeCmdAlreadyClean(t *testing.T) {
	t.Parallel()

	path := writeSettingsFile(t, "settings.json", `{"theme": "dark"}`)
	defaults := writeSettingsFile(t, "defaults.json", `{"theme": "light"}`)

	out, err := runCommand(t, "sanitize", path, "--defaults", defaults)

	require.NoError(t, err)
	assert.Contains(t, out, "already matches")
}

func TestSanitizeCmdRequiresDefaults(t *testing.T) {
	t.Parallel()

	path := writeSettingsFile(t, "settings.json", `{"theme": "dark"}`)

	_, err := runCommand(t, "sanitize", path)

	require.Error(t, err)
}

func TestConvertCmd(t *testing.T) {
	t.Parallel()

	source := writeSettingsFile(t, "settings.json", `{"general": {"theme": "dark"}}`)
	destination := filepath.Join(t.TempDir(), "settings.toml")

	out, err := runCommand(t, "convert", source, destination)

	require.NoError(t, err)
	assert.Contains(t, out, "converted")

	got, err := runCommand(t, "get", destination, "general.theme")
	require.NoError(t, err)
	assert.Equal(t, "dark\n", got)
}

func TestConvertCmdToIniRequiresSections(t *testing.T) {
	t.Parallel()

	source := writeSettingsFile(t, "settings.json", `{"theme": "dark"}`)
	destination := filepath.Join(t.TempDir(), "settings.ini")

	_, err := runCommand(t, "convert", source, destination)

	require.Error(t, err)
}

func TestConvertCmdFormatFlags(t *testing.T) {
	t.Parallel()

	source := writeSettingsFile(t, "in.conf", "general:\n    theme: dark\n")
	destination := filepath.Join(t.TempDir(), "out.conf")

	out, err := runCommand(t, "convert", source, destination, "--from", "yaml", "--to", "ini")

	require.NoError(t, err)
	assert.Contains(t, out, "converted")

	data, err := os.ReadFile(destination)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[general]")
	assert.Contains(t, string(data), "theme = dark")
}

func TestExecuteWrapsErrors(t *testing.T) {
	t.Parallel()

	failing := &cobra.Command{
		Use:           "failing",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return assert.AnError
		},
	}

	err := cmd.Execute(failing)

	require.ErrorContains(t, err, "command execution failed")
}
