package settings

import (
	"fmt"

	mapstructure "github.com/go-viper/mapstructure/v2"
)

// Converter bridges between a settings tree and the caller's settings type.
// It unifies map-backed and struct-backed stores behind one [Store] type:
// the tree converter is the identity, and the struct converter decodes into
// a typed record.
type Converter[T any] interface {
	// ToTree converts a settings value into a settings tree.
	ToTree(value T) (map[string]any, error)
	// FromTree converts a settings tree back into a settings value.
	FromTree(tree map[string]any) (T, error)
}

// TreeConverter is the identity converter for stores whose settings type is
// the tree itself.
type TreeConverter struct{}

// ToTree returns the tree unchanged.
func (TreeConverter) ToTree(value map[string]any) (map[string]any, error) {
	return value, nil
}

// FromTree returns the tree unchanged.
func (TreeConverter) FromTree(tree map[string]any) (map[string]any, error) {
	return tree, nil
}

// StructConverter converts between a settings tree and a typed record via
// reflection. Decoding is weakly typed so string leaves, as produced by the
// INI codec, still populate numeric and boolean fields.
type StructConverter[T any] struct{}

// NewStructConverter creates a struct converter for the given record type.
func NewStructConverter[T any]() StructConverter[T] {
	return StructConverter[T]{}
}

// ToTree converts a typed record into a settings tree.
func (StructConverter[T]) ToTree(value T) (map[string]any, error) {
	tree := make(map[string]any)

	err := mapstructure.Decode(value, &tree)
	if err != nil {
		return nil, fmt.Errorf("failed to convert settings to a tree: %w", err)
	}

	return tree, nil
}

// FromTree converts a settings tree into a typed record.
func (StructConverter[T]) FromTree(tree map[string]any) (T, error) {
	var value T

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &value,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return value, fmt.Errorf("failed to build settings decoder: %w", err)
	}

	err = decoder.Decode(tree)
	if err != nil {
		return value, fmt.Errorf("failed to convert tree to settings: %w", err)
	}

	return value, nil
}
