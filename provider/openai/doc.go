/*
Package openai implements provider.Provider on top of the official
openai-go client.

Models are registered by name and lazily create their provider on first
use, so the same model value can be shared across lessons:

	m := openai.GPT4oMini(option.WithAPIKey(key))
	events, err := m.Provider().ChatCompletion(ctx, provider.CompletionParams{
		Model:  m,
		Thread: mem,
		Stream: true,
	})

NewModel skips the registry, which is handy when a test points a model at
an httptest server.

# Requests

The conversation in CompletionParams.Thread is converted in order. Stored
instructions become system messages, tool calls become assistant messages
carrying tool_calls, and tool results are sent with their tool_call_id.
CompletionParams.Instructions, when not empty, is prepended as an extra
system message. The temperature defaults to 0.

A ResponseSchema turns on strict JSON schema output. Streaming requests ask
the API to include token usage in the final chunk.

# Events

A non streaming call emits a single provider.Response. A streaming call
emits a start Delim, one Chunk per delta, an end Delim and finally the
accumulated Response with its usage. Cancelling the context stops the
stream and emits a provider.Error wrapping the context error.
*/
package openai
