// Package tomlcodec implements the TOML settings codec.
package tomlcodec

import (
	"fmt"

	toml "github.com/pelletier/go-toml/v2"
)

// Codec serializes settings trees as TOML.
//
// TOML cannot represent null values, and trees containing nils fail to
// marshal. This is a limitation of the format itself and is surfaced as an
// error rather than silently worked around.
type Codec struct{}

// NewCodec creates a TOML codec.
func NewCodec() *Codec {
	return &Codec{}
}

// Name returns the codec identifier.
func (*Codec) Name() string {
	return "toml"
}

// Marshal serializes the settings tree as TOML. Nested mappings become
// tables, which TOML requires to follow plain key/value pairs at the same
// level; the encoder takes care of that ordering.
func (*Codec) Marshal(tree map[string]any) ([]byte, error) {
	data, err := toml.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal settings as TOML: %w", err)
	}

	return data, nil
}

// Unmarshal parses TOML into a settings tree. Numbers decode as int64 or
// float64 depending on their TOML representation.
func (*Codec) Unmarshal(data []byte) (map[string]any, error) {
	var tree map[string]any

	err := toml.Unmarshal(data, &tree)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings from TOML: %w", err)
	}

	return tree, nil
}
