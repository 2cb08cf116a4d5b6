package provider

import (
	"context"

	"github.com/casualjim/strix/memory"
	"github.com/casualjim/strix/tool"
	"github.com/google/uuid"
	"github.com/invopop/jsonschema"
)

// Provider is implemented by chat model backends.
type Provider interface {
	ChatCompletion(context.Context, CompletionParams) (<-chan StreamEvent, error)
}

// Model names a model and the provider that serves it.
type Model interface {
	Name() string
	Provider() Provider
}

// CompletionParams describes one chat completion request.
type CompletionParams struct {
	// RunID ties the emitted events to the caller's run.
	RunID uuid.UUID

	// Instructions is sent as a leading system message when not empty.
	// Leave it empty when the thread already starts with its own instructions.
	Instructions string

	// Thread is the conversation history, sent in order.
	Thread *memory.Memory

	// Stream selects incremental delivery of the reply.
	Stream bool

	// ResponseSchema asks the model to answer with JSON matching the schema.
	ResponseSchema *StructuredOutput

	Model Model

	// Temperature defaults to 0 when nil.
	Temperature *float64

	// Tools are advertised to the model as callable functions.
	Tools []tool.Definition

	// Prevents unkeyed literals
	_ struct{}
}

// StructuredOutput names a JSON schema the reply must follow.
type StructuredOutput struct {
	Name        string
	Description string
	Schema      *jsonschema.Schema
}

// Temperature returns a pointer suitable for CompletionParams.Temperature.
func Temperature(t float64) *float64 {
	return &t
}
