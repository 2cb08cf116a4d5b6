package parser

import (
	"fmt"

	"github.com/casualjim/strix/provider"
	json "github.com/goccy/go-json"
	"github.com/invopop/jsonschema"
)

var schemaReflector = jsonschema.Reflector{
	DoNotReference: true,
	ExpandedStruct: true,
}

// JSONSchema reflects the JSON schema of T. Every field without omitempty is
// required and no additional properties are allowed, as strict structured
// output demands.
func JSONSchema[T any]() *jsonschema.Schema {
	var v T
	schema := schemaReflector.Reflect(&v)
	schema.Version = ""
	return schema
}

// Schema returns the structured output request for T.
func Schema[T any](name, description string) *provider.StructuredOutput {
	return &provider.StructuredOutput{
		Name:        name,
		Description: description,
		Schema:      JSONSchema[T](),
	}
}

// FormatInstructions tells the model how to shape a reply for T. Append it to
// a prompt when the provider cannot enforce a schema.
func FormatInstructions[T any]() (string, error) {
	b, err := json.Marshal(JSONSchema[T]())
	if err != nil {
		return "", fmt.Errorf("marshal schema: %w", err)
	}
	return "Respond only with a JSON object that conforms to this JSON schema:\n" + string(b), nil
}
