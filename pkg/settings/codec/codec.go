package codec

// Codec converts a settings tree to and from its serialized representation
// for a single format.
type Codec interface {
	// Marshal serializes a settings tree into bytes.
	Marshal(tree map[string]any) ([]byte, error)
	// Unmarshal deserializes bytes into a settings tree.
	Unmarshal(data []byte) (map[string]any, error)
	// Name returns the codec identifier used for diagnostics.
	Name() string
}
