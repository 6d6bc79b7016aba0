package settings

import (
	"github.com/devantler-tech/settings/pkg/settings/codec"
	"github.com/devantler-tech/settings/pkg/settings/codec/inicodec"
	"github.com/devantler-tech/settings/pkg/settings/codec/jsoncodec"
	"github.com/devantler-tech/settings/pkg/settings/codec/tomlcodec"
	"github.com/devantler-tech/settings/pkg/settings/codec/yamlcodec"
)

// DefaultRegistry returns a codec registry with all four supported formats
// registered.
func DefaultRegistry() *codec.Registry {
	return codec.NewRegistry().
		Register(codec.FormatJSON, jsoncodec.NewCodec()).
		Register(codec.FormatYAML, yamlcodec.NewCodec()).
		Register(codec.FormatTOML, tomlcodec.NewCodec()).
		Register(codec.FormatINI, inicodec.NewCodec())
}
