package settings

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// SchemaFor generates an indented JSON Schema document for a typed settings
// record. The schema describes the shape a settings file is expected to
// have and can be published alongside an application for editor validation.
func SchemaFor[T any]() ([]byte, error) {
	reflector := jsonschema.Reflector{DoNotReference: true}

	var value T

	schema := reflector.Reflect(&value)

	data, err := json.MarshalIndent(schema, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal settings schema: %w", err)
	}

	return append(data, '\n'), nil
}
