package messages

import (
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
)

// Role names accepted by chat completion APIs.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// ModelMessage is implemented by every payload that can be stored in a conversation.
type ModelMessage interface {
	Role() string
	message()
}

// Request is implemented by payloads that are sent to the model.
type Request interface {
	ModelMessage
	request()
}

// Response is implemented by payloads that the model produces.
type Response interface {
	ModelMessage
	response()
}

// Instructions is the system prompt.
type Instructions struct {
	Content string `json:"content"`
}

func (Instructions) Role() string { return RoleSystem }
func (Instructions) message()     {}
func (Instructions) request()     {}

// UserMessage is a message typed by the user.
type UserMessage struct {
	Content string `json:"content"`
}

func (UserMessage) Role() string { return RoleUser }
func (UserMessage) message()     {}
func (UserMessage) request()     {}

// AssistantMessage is a text reply from the model.
type AssistantMessage struct {
	Content string `json:"content"`
	Refusal string `json:"refusal,omitempty"`
}

func (AssistantMessage) Role() string { return RoleAssistant }
func (AssistantMessage) message()     {}
func (AssistantMessage) response()    {}

// ToolCallData is a single function invocation requested by the model.
// Arguments holds the raw JSON object the model generated.
type ToolCallData struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ToolCallMessage is an assistant turn that requests tool invocations.
// Content is usually empty but some models explain what they are about to do.
type ToolCallMessage struct {
	Content   string         `json:"content,omitempty"`
	ToolCalls []ToolCallData `json:"tool_calls"`
}

func (ToolCallMessage) Role() string { return RoleAssistant }
func (ToolCallMessage) message()     {}
func (ToolCallMessage) response()    {}

// ToolResponse carries the output of a tool back to the model.
type ToolResponse struct {
	ToolName   string `json:"tool_name"`
	ToolCallID string `json:"tool_call_id"`
	Content    string `json:"content"`
}

func (ToolResponse) Role() string { return RoleTool }
func (ToolResponse) message()     {}
func (ToolResponse) request()     {}

// Message is the envelope stored in memory: a payload plus the identifiers of
// the run and turn that produced it.
type Message[T ModelMessage] struct {
	RunID     uuid.UUID       `json:"run_id"`
	TurnID    uuid.UUID       `json:"turn_id"`
	Payload   T               `json:"payload"`
	Sender    string          `json:"sender,omitempty"`
	Timestamp strfmt.DateTime `json:"timestamp"`
}

// Role returns the role of the payload.
func (m Message[T]) Role() string {
	return m.Payload.Role()
}

// Text returns the textual content of the payload, empty for pure tool calls.
func (m Message[T]) Text() string {
	switch p := any(m.Payload).(type) {
	case Instructions:
		return p.Content
	case UserMessage:
		return p.Content
	case AssistantMessage:
		return p.Content
	case ToolCallMessage:
		return p.Content
	case ToolResponse:
		return p.Content
	}
	return ""
}

// Builder creates envelopes that share a sender, run and turn.
type Builder struct {
	sender string
	runID  uuid.UUID
	turnID uuid.UUID
}

// New returns an empty Builder.
func New() Builder {
	return Builder{}
}

func (b Builder) WithSender(sender string) Builder {
	b.sender = sender
	return b
}

func (b Builder) WithRunID(id uuid.UUID) Builder {
	b.runID = id
	return b
}

func (b Builder) WithTurnID(id uuid.UUID) Builder {
	b.turnID = id
	return b
}

func build[T ModelMessage](b Builder, payload T) Message[T] {
	return Message[T]{
		RunID:     b.runID,
		TurnID:    b.turnID,
		Payload:   payload,
		Sender:    b.sender,
		Timestamp: strfmt.DateTime(time.Now()),
	}
}

func (b Builder) Instructions(content string) Message[Instructions] {
	return build(b, Instructions{Content: content})
}

func (b Builder) UserPrompt(content string) Message[UserMessage] {
	return build(b, UserMessage{Content: content})
}

func (b Builder) AssistantMessage(content string) Message[AssistantMessage] {
	return build(b, AssistantMessage{Content: content})
}

func (b Builder) ToolCall(calls []ToolCallData) Message[ToolCallMessage] {
	return build(b, ToolCallMessage{ToolCalls: calls})
}

func (b Builder) ToolResponse(toolCallID, toolName, content string) Message[ToolResponse] {
	return build(b, ToolResponse{ToolCallID: toolCallID, ToolName: toolName, Content: content})
}
