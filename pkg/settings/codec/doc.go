// Package codec provides bidirectional conversion between an in-memory
// settings tree and its on-disk representation.
//
// A settings tree is a map[string]any whose values are scalars, []any
// slices, or nested map[string]any mappings. Each supported format (JSON,
// YAML, TOML, INI) implements the [Codec] interface in its own subpackage,
// and a [Registry] maps formats to codec implementations.
//
// Codecs are injected into a registry explicitly. Requesting a format
// without a registered codec is a configuration error, surfaced as
// [ErrCodecNotRegistered].
package codec
