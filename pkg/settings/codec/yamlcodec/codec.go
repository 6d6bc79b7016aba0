// Package yamlcodec implements the YAML settings codec.
package yamlcodec

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Codec serializes settings trees as YAML.
//
// Only plain scalars, sequences and mappings are produced or accepted; the
// codec never constructs arbitrary types from tagged nodes, matching the
// safe subset of YAML.
type Codec struct{}

// NewCodec creates a YAML codec.
func NewCodec() *Codec {
	return &Codec{}
}

// Name returns the codec identifier.
func (*Codec) Name() string {
	return "yaml"
}

// Marshal serializes the settings tree as YAML. Map keys are emitted in
// sorted order, so output is deterministic.
func (*Codec) Marshal(tree map[string]any) ([]byte, error) {
	data, err := yaml.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal settings as YAML: %w", err)
	}

	return data, nil
}

// Unmarshal parses YAML into a settings tree.
func (*Codec) Unmarshal(data []byte) (map[string]any, error) {
	var tree map[string]any

	err := yaml.Unmarshal(data, &tree)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings from YAML: %w", err)
	}

	return tree, nil
}
