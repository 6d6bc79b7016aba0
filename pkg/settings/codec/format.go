package codec

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies a supported settings file format.
type Format string

const (
	// FormatJSON is the JSON settings format.
	FormatJSON Format = "json"
	// FormatYAML is the YAML settings format.
	FormatYAML Format = "yaml"
	// FormatTOML is the TOML settings format.
	FormatTOML Format = "toml"
	// FormatINI is the INI settings format.
	FormatINI Format = "ini"
)

// ErrUnsupportedFormat is returned when a format is not one of the supported
// settings formats, or when a format cannot be inferred from a file path.
var ErrUnsupportedFormat = errors.New("unsupported settings format")

// ErrAmbiguousFormat is returned when the read and write paths carry
// different file extensions and no explicit format was given.
var ErrAmbiguousFormat = errors.New("read and write paths must share a file extension when no format is specified")

// extensionToFormat maps file extensions to their settings format.
var extensionToFormat = map[string]Format{
	".json": FormatJSON,
	".yaml": FormatYAML,
	".yml":  FormatYAML,
	".toml": FormatTOML,
	".ini":  FormatINI,
}

// String returns the format as its lowercase tag.
func (f Format) String() string {
	return string(f)
}

// ValidValues returns all valid string values for the format enum.
func (Format) ValidValues() []string {
	return []string{
		string(FormatJSON),
		string(FormatYAML),
		string(FormatTOML),
		string(FormatINI),
	}
}

// ParseFormat converts a string tag into a Format.
// Matching is case-insensitive. Unknown tags return ErrUnsupportedFormat.
func ParseFormat(value string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(value)))
	switch format {
	case FormatJSON, FormatYAML, FormatTOML, FormatINI:
		return format, nil
	default:
		return "", fmt.Errorf(
			"%w: %q is not one of %s",
			ErrUnsupportedFormat,
			value,
			strings.Join(format.ValidValues(), ", "),
		)
	}
}

// FormatFromPath infers the settings format from a file path's extension.
func FormatFromPath(path string) (Format, error) {
	extension := strings.ToLower(filepath.Ext(path))

	format, ok := extensionToFormat[extension]
	if !ok {
		return "", fmt.Errorf(
			"%w: cannot infer format from %q, supported extensions are .json, .yaml, .yml, .toml and .ini",
			ErrUnsupportedFormat,
			path,
		)
	}

	return format, nil
}

// FormatFromPaths infers the settings format shared by a read and a write
// path. Paths with differing extensions are a configuration error, since the
// inferred format would be ambiguous.
func FormatFromPaths(readPath, writePath string) (Format, error) {
	readExt := strings.ToLower(filepath.Ext(readPath))
	writeExt := strings.ToLower(filepath.Ext(writePath))

	if readExt != writeExt {
		return "", fmt.Errorf("%w: got %q and %q", ErrAmbiguousFormat, readPath, writePath)
	}

	return FormatFromPath(readPath)
}
