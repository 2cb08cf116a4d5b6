// Package messages defines the typed messages that make up a conversation with
// a chat model.
//
// A conversation is a list of envelopes, each carrying one payload:
//   - Instructions: the system prompt that steers the model
//   - UserMessage: text written by the user
//   - AssistantMessage: text written by the model
//   - ToolCallMessage: a model turn that asks for one or more tools to run
//   - ToolResponse: the result of running a tool, keyed by the call ID
//
// Payloads are grouped by marker interfaces so the compiler keeps them apart:
// ModelMessage is anything that can be stored in a conversation, Request is
// anything sent to the model and Response is anything the model produces.
//
// Example usage:
//
//	sys := messages.New().Instructions("You're a helpful assistant")
//	msg := messages.New().WithSender("user").UserPrompt("What's the capital of Brazil?")
//	fmt.Println(msg.Payload.Role(), msg.Payload.Content)
package messages
