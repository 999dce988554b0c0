// Package schema generates JSON Schemas for the SDK's wire types.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/pokesdk/poke-sdk/wireformat"
)

// GenerateSchema reflects v into an indented JSON Schema (Draft 2020-12).
func GenerateSchema(v any) ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true,
	}
	s := reflector.Reflect(v)

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}

// EnvelopeSchema describes the text envelope every binding returns.
func EnvelopeSchema() ([]byte, error) {
	return GenerateSchema(&wireformat.EnvelopeWire{})
}
