package codec

import (
	"errors"
	"fmt"
)

// ErrCodecNotRegistered is returned when a registry lookup finds no codec
// for the requested format.
var ErrCodecNotRegistered = errors.New("no codec registered for format")

// Registry maps settings formats to codec implementations.
//
// Codecs are injected explicitly rather than discovered at runtime, so the
// set of usable formats is fixed at construction time and requesting an
// unregistered format fails fast.
type Registry struct {
	codecs map[Format]Codec
}

// NewRegistry creates an empty codec registry.
func NewRegistry() *Registry {
	return &Registry{codecs: make(map[Format]Codec)}
}

// Register associates a codec with a format, replacing any previous codec
// for that format. It returns the registry to allow chaining.
func (r *Registry) Register(format Format, c Codec) *Registry {
	r.codecs[format] = c

	return r
}

// Lookup returns the codec registered for the given format.
func (r *Registry) Lookup(format Format) (Codec, error) {
	c, ok := r.codecs[format]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCodecNotRegistered, format)
	}

	return c, nil
}

// Formats returns the formats with a registered codec.
func (r *Registry) Formats() []Format {
	formats := make([]Format, 0, len(r.codecs))
	for format := range r.codecs {
		formats = append(formats, format)
	}

	return formats
}
