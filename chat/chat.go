package chat

import (
	"context"
	"log/slog"

	"github.com/casualjim/strix/memory"
	"github.com/casualjim/strix/messages"
	"github.com/casualjim/strix/pkg/slogx"
	"github.com/casualjim/strix/pkg/uuidx"
	"github.com/casualjim/strix/provider"
	"github.com/casualjim/strix/tool"
	"github.com/fogfish/opts"
	"github.com/google/uuid"
)

// DefaultMaxToolRounds bounds ToolLoop when no MaxToolRounds option is given.
const DefaultMaxToolRounds = 10

type request struct {
	instructions  string
	temperature   *float64
	runID         uuid.UUID
	sender        string
	schema        *provider.StructuredOutput
	maxToolRounds int
	onToolCall    func(call messages.ToolCallData, result string)
}

// Option tunes a chat request.
type Option = opts.Option[request]

var (
	// Instructions adds a system prompt in front of the conversation without storing it.
	Instructions = opts.ForName[request, string]("instructions")
	// Sender tags the user message with the name of whoever typed it.
	Sender = opts.ForName[request, string]("sender")
	// RunID groups the stored messages of one run.
	RunID = opts.ForName[request, uuid.UUID]("runID")
	// ResponseSchema asks for a JSON reply that follows the schema.
	ResponseSchema = opts.ForName[request, *provider.StructuredOutput]("schema")
	// MaxToolRounds bounds how many times ToolLoop executes tools before giving up.
	MaxToolRounds = opts.ForName[request, int]("maxToolRounds")
	// OnToolCall observes every tool execution in ToolLoop.
	OnToolCall = opts.ForName[request, func(messages.ToolCallData, string)]("onToolCall")
)

// Temperature sets the sampling temperature. The default is 0.
func Temperature(t float64) Option {
	return opts.Type[request](func(r *request) error {
		r.temperature = provider.Temperature(t)
		return nil
	})
}

func newRequest(options []Option) (request, error) {
	r := request{maxToolRounds: DefaultMaxToolRounds}
	if err := opts.Apply(&r, options); err != nil {
		return request{}, err
	}
	if r.runID == uuid.Nil {
		r.runID = uuidx.New()
	}
	return r, nil
}

func (r request) params(model provider.Model, thread *memory.Memory, tools []tool.Definition) provider.CompletionParams {
	return provider.CompletionParams{
		RunID:          r.runID,
		Instructions:   r.instructions,
		Thread:         thread,
		Model:          model,
		Temperature:    r.temperature,
		Tools:          tools,
		ResponseSchema: r.schema,
	}
}

// CreateContent sends a system prompt and a single user query, and returns
// the text of the first choice.
func CreateContent(ctx context.Context, model provider.Model, systemPrompt, query string, temperature float64) (string, error) {
	mem := memory.New()
	b := messages.New().WithTurnID(mem.ID())
	mem.AddInstructions(b.Instructions(systemPrompt))
	mem.AddUserPrompt(b.UserPrompt(query))

	reply, err := Complete(ctx, provider.CompletionParams{
		Thread:      mem,
		Model:       model,
		Temperature: provider.Temperature(temperature),
	})
	if err != nil {
		return "", wrap("create content", err)
	}
	return reply.Content, nil
}

// Chat sends userMessage to the model.
//
// Without a memory only the user message is sent. With a memory the message
// is appended (unless empty), the whole history is sent and the reply is
// appended too. A failed request leaves the memory as it was.
func Chat(ctx context.Context, model provider.Model, userMessage string, mem *memory.Memory, options ...Option) (string, error) {
	reply, err := ChatWithTools(ctx, model, userMessage, mem, nil, options...)
	if err != nil {
		return "", err
	}
	return reply.Content, nil
}

// ChatWithTools is Chat with tools advertised to the model. When the model
// requests tools the returned reply carries the calls, and the memory records
// them as an assistant turn so the tool results can follow.
func ChatWithTools(ctx context.Context, model provider.Model, userMessage string, mem *memory.Memory, tools []tool.Definition, options ...Option) (Reply, error) {
	req, err := newRequest(options)
	if err != nil {
		return Reply{}, err
	}

	thread := mem
	if thread == nil {
		thread = memory.New()
	}
	cp := thread.Checkpoint()

	b := messages.New().WithRunID(req.runID).WithTurnID(thread.ID())
	if userMessage != "" || mem == nil {
		thread.AddUserPrompt(b.WithSender(req.sender).UserPrompt(userMessage))
	}

	reply, err := Complete(ctx, req.params(model, thread, tools))
	if err != nil {
		thread.Restore(cp)
		return Reply{}, wrap("chat", err)
	}

	record(thread, b, reply)
	if mem != nil {
		slog.Debug("chat turn recorded", slogx.LoggerName("chat"), slog.Int("messages", mem.Len()))
	}
	return reply, nil
}
