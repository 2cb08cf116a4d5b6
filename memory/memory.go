package memory

import (
	"iter"
	"slices"

	"github.com/casualjim/strix/messages"
	"github.com/casualjim/strix/pkg/uuidx"
	"github.com/google/uuid"
)

// History is an ordered list of type erased messages.
type History []messages.Message[messages.ModelMessage]

// Len returns the number of messages in the history.
func (h History) Len() int {
	return len(h)
}

// Memory holds a conversation and the token usage spent on it.
type Memory struct {
	id       uuid.UUID
	messages History
	initLen  int
	usage    Usage
}

// New returns an empty memory with a fresh identifier.
func New() *Memory {
	return &Memory{
		id:       uuidx.New(),
		messages: make(History, 0),
	}
}

// ID identifies the memory. Forks get their own ID.
func (m *Memory) ID() uuid.UUID {
	return m.id
}

// Len returns the number of stored messages.
func (m *Memory) Len() int {
	return m.messages.Len()
}

// TurnLen returns how many messages were added since the memory was forked.
func (m *Memory) TurnLen() int {
	return len(m.messages) - m.initLen
}

// Messages returns a copy of the stored messages in insertion order.
func (m *Memory) Messages() History {
	return slices.Clone(m.messages)
}

// MessagesIter iterates over the stored messages without copying them.
func (m *Memory) MessagesIter() iter.Seq[messages.Message[messages.ModelMessage]] {
	return slices.Values(m.messages)
}

// Last returns the most recent message. The boolean is false for an empty memory.
func (m *Memory) Last() (messages.Message[messages.ModelMessage], bool) {
	if len(m.messages) == 0 {
		return messages.Message[messages.ModelMessage]{}, false
	}
	return m.messages[len(m.messages)-1], true
}

// Reset drops every message and the recorded usage.
func (m *Memory) Reset() {
	m.messages = make(History, 0)
	m.initLen = 0
	m.usage = Usage{}
}

func eraseType[T messages.ModelMessage](m messages.Message[T]) messages.Message[messages.ModelMessage] {
	return messages.Message[messages.ModelMessage]{
		RunID:     m.RunID,
		TurnID:    m.TurnID,
		Payload:   m.Payload,
		Sender:    m.Sender,
		Timestamp: m.Timestamp,
	}
}

// AddMessage appends a message of any payload type.
func AddMessage[T messages.ModelMessage](m *Memory, msg messages.Message[T]) {
	m.add(eraseType(msg))
}

func (m *Memory) AddInstructions(msg messages.Message[messages.Instructions]) {
	m.add(eraseType(msg))
}

func (m *Memory) AddUserPrompt(msg messages.Message[messages.UserMessage]) {
	m.add(eraseType(msg))
}

func (m *Memory) AddAssistantMessage(msg messages.Message[messages.AssistantMessage]) {
	m.add(eraseType(msg))
}

// AddToolCall records an assistant turn that requested tools.
func (m *Memory) AddToolCall(msg messages.Message[messages.ToolCallMessage]) {
	m.add(eraseType(msg))
}

// AddToolResponse records a tool result. The tool call ID ties it to the
// request it answers.
func (m *Memory) AddToolResponse(msg messages.Message[messages.ToolResponse]) {
	m.add(eraseType(msg))
}

func (m *Memory) add(msg messages.Message[messages.ModelMessage]) {
	m.messages = append(m.messages, msg)
}

// Usage returns the accumulated token usage.
func (m *Memory) Usage() Usage {
	return m.usage
}

// AddUsage accumulates the usage of one completion.
func (m *Memory) AddUsage(u *Usage) {
	m.usage.AddUsage(u)
}

// Fork returns a copy of the memory with a new ID. Messages added to the fork
// can be merged back with Join.
func (m *Memory) Fork() *Memory {
	return &Memory{
		id:       uuidx.New(),
		messages: slices.Clone(m.messages),
		initLen:  m.Len(),
	}
}

// Join appends the messages added to b since it was forked and adds its usage.
//
//	original := New()        // [1,2]
//	forked := original.Fork() // [1,2], initLen=2
//	forked.add(msg3)          // [1,2,3]
//	original.Join(forked)     // [1,2,3]
func (m *Memory) Join(b *Memory) {
	m.messages = append(m.messages, b.messages[b.initLen:]...)
	m.usage.AddUsage(&b.usage)
}

// Checkpoint marks a point in the conversation that can be restored later.
type Checkpoint struct {
	id    uuid.UUID
	len   int
	usage Usage
}

// MessageCount returns the number of messages stored when the checkpoint was taken.
func (c Checkpoint) MessageCount() int {
	return c.len
}

// Checkpoint snapshots the current length and usage of the memory.
func (m *Memory) Checkpoint() Checkpoint {
	return Checkpoint{id: m.id, len: len(m.messages), usage: m.usage}
}

// Restore drops every message added after cp was taken. Checkpoints taken on a
// different memory, or beyond the current length, are ignored.
func (m *Memory) Restore(cp Checkpoint) bool {
	if cp.id != m.id || cp.len > len(m.messages) {
		return false
	}
	clear(m.messages[cp.len:])
	m.messages = m.messages[:cp.len]
	m.usage = cp.usage
	if m.initLen > cp.len {
		m.initLen = cp.len
	}
	return true
}
