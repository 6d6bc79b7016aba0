// Package inicodec implements the INI settings codec.
//
// INI is the most constrained of the supported formats: a tree must be
// exactly two levels deep, with top-level keys naming sections and section
// values mapping keys to scalars. INI also has no typed values, so numbers
// and booleans written through this codec decode back as strings. That
// round-trip lossiness is a property of the format and is documented rather
// than fixed.
package inicodec

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"

	ini "gopkg.in/ini.v1"
)

// ErrSectionShape is returned when a tree does not have the two-level
// section/mapping shape INI requires.
var ErrSectionShape = errors.New(
	"ini format requires top-level keys to be sections with scalar key/value settings",
)

// Codec serializes settings trees as INI.
type Codec struct{}

// NewCodec creates an INI codec.
func NewCodec() *Codec {
	return &Codec{}
}

// Name returns the codec identifier.
func (*Codec) Name() string {
	return "ini"
}

// ValidShape reports whether every top-level value of the tree is a mapping,
// as required for INI sections.
func ValidShape(tree map[string]any) bool {
	for _, value := range tree {
		if _, ok := sectionValues(value); !ok {
			return false
		}
	}

	return true
}

// Marshal serializes the settings tree as INI. The shape is validated in
// full before any byte is produced, so a shape error never leaves partial
// output behind. Sections and keys are emitted in sorted order. Nil values
// are written as bare keys without a value.
func (*Codec) Marshal(tree map[string]any) ([]byte, error) {
	file := ini.Empty()

	for _, name := range sortedKeys(tree) {
		values, ok := sectionValues(tree[name])
		if !ok {
			return nil, fmt.Errorf("%w: top-level key %q is not a mapping", ErrSectionShape, name)
		}

		section, err := file.NewSection(name)
		if err != nil {
			return nil, fmt.Errorf("failed to create ini section %q: %w", name, err)
		}

		for _, key := range sortedKeys(values) {
			err = appendKey(section, key, values[key])
			if err != nil {
				return nil, fmt.Errorf("%w: section %q", err, name)
			}
		}
	}

	var buf bytes.Buffer

	_, err := file.WriteTo(&buf)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal settings as INI: %w", err)
	}

	return buf.Bytes(), nil
}

// Unmarshal parses INI into a two-level settings tree. All leaf values are
// strings; bare keys without a value decode as the empty string.
func (*Codec) Unmarshal(data []byte) (map[string]any, error) {
	file, err := ini.Load(normalizeBareKeys(data))
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings from INI: %w", err)
	}

	tree := make(map[string]any)

	for _, section := range file.Sections() {
		// The synthetic default section only matters when keys appear
		// before the first section header.
		if section.Name() == ini.DefaultSection && len(section.Keys()) == 0 {
			continue
		}

		values := make(map[string]any, len(section.Keys()))
		for _, key := range section.Keys() {
			values[key.Name()] = key.Value()
		}

		tree[section.Name()] = values
	}

	return tree, nil
}

// sectionValues converts a top-level tree value into a section mapping.
func sectionValues(value any) (map[string]any, bool) {
	switch typed := value.(type) {
	case map[string]any:
		return typed, true
	case map[string]string:
		values := make(map[string]any, len(typed))
		for key, item := range typed {
			values[key] = item
		}

		return values, true
	default:
		return nil, false
	}
}

// appendKey writes a single section entry, rejecting values INI cannot
// represent as a scalar.
func appendKey(section *ini.Section, key string, value any) error {
	switch value.(type) {
	case map[string]any, map[string]string, []any, []string:
		return fmt.Errorf("%w: key %q has a non-scalar value", ErrSectionShape, key)
	case nil:
		_, err := section.NewBooleanKey(key)
		if err != nil {
			return fmt.Errorf("failed to create ini key %q: %w", key, err)
		}

		return nil
	default:
		_, err := section.NewKey(key, fmt.Sprint(value))
		if err != nil {
			return fmt.Errorf("failed to create ini key %q: %w", key, err)
		}

		return nil
	}
}

// normalizeBareKeys rewrites valueless keys ("key" on its own line) into
// "key =" so they parse as keys with an empty value instead of failing.
func normalizeBareKeys(data []byte) []byte {
	lines := strings.Split(string(data), "\n")

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" ||
			strings.HasPrefix(trimmed, ";") ||
			strings.HasPrefix(trimmed, "#") ||
			strings.HasPrefix(trimmed, "[") {
			continue
		}

		if !strings.ContainsAny(trimmed, "=:") {
			lines[i] = line + " ="
		}
	}

	return []byte(strings.Join(lines, "\n"))
}

// sortedKeys returns the map's keys in sorted order for deterministic output.
func sortedKeys(values map[string]any) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
