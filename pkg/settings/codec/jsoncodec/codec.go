// Package jsoncodec implements the JSON settings codec.
package jsoncodec

import (
	"encoding/json"
	"fmt"
)

// indent matches the four-space indentation the settings files are written
// with for readability.
const indent = "    "

// Codec serializes settings trees as indented JSON.
type Codec struct{}

// NewCodec creates a JSON codec.
func NewCodec() *Codec {
	return &Codec{}
}

// Name returns the codec identifier.
func (*Codec) Name() string {
	return "json"
}

// Marshal serializes the settings tree as indented JSON with a trailing
// newline. Map keys are emitted in sorted order, so output is deterministic.
func (*Codec) Marshal(tree map[string]any) ([]byte, error) {
	data, err := json.MarshalIndent(tree, "", indent)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal settings as JSON: %w", err)
	}

	return append(data, '\n'), nil
}

// Unmarshal parses JSON into a settings tree. Numbers decode as float64.
func (*Codec) Unmarshal(data []byte) (map[string]any, error) {
	var tree map[string]any

	err := json.Unmarshal(data, &tree)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings from JSON: %w", err)
	}

	return tree, nil
}
