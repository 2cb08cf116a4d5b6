package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/casualjim/strix/memory"
	"github.com/casualjim/strix/messages"
	"github.com/casualjim/strix/pkg/slogx"
	"github.com/casualjim/strix/provider"
	"github.com/casualjim/strix/tool"
)

// ErrMaxToolRounds is returned when the model keeps requesting tools past the
// configured bound.
var ErrMaxToolRounds = errors.New("maximum tool rounds exceeded")

// ToolLoop asks question and keeps executing the tools the model requests,
// feeding every result back as a tool message, until the model answers with
// text. The final text is returned.
//
// The round trip is staged on a fork of mem and only joined back once the
// model has answered, so an error never leaves unanswered tool calls behind.
func ToolLoop(ctx context.Context, model provider.Model, question string, mem *memory.Memory, tools *tool.Set, options ...Option) (string, error) {
	req, err := newRequest(options)
	if err != nil {
		return "", err
	}
	if mem == nil {
		mem = memory.New()
	}

	scratch := mem.Fork()
	b := messages.New().WithRunID(req.runID).WithTurnID(scratch.ID())
	if question != "" {
		scratch.AddUserPrompt(b.WithSender(req.sender).UserPrompt(question))
	}

	defs := tools.Definitions()
	for round := 0; ; round++ {
		reply, err := Complete(ctx, req.params(model, scratch, defs))
		if err != nil {
			return "", wrap("tool loop", err)
		}

		if !reply.HasToolCalls() {
			record(scratch, b, reply)
			mem.Join(scratch)
			return reply.Content, nil
		}
		if round >= req.maxToolRounds {
			return "", fmt.Errorf("%w: %d", ErrMaxToolRounds, req.maxToolRounds)
		}

		record(scratch, b, reply)
		if err := ExecuteToolCalls(ctx, tools, reply.ToolCalls, scratch, b, req.onToolCall); err != nil {
			return "", wrap("tool loop", err)
		}
	}
}

// ExecuteToolCalls runs calls in order and appends one tool message per call
// to mem, keyed by the call ID. Unknown tools answer with tool.NotFound and
// failing tools answer with their error text, so the model can recover.
// Only a cancelled context aborts the round.
func ExecuteToolCalls(ctx context.Context, tools *tool.Set, calls []messages.ToolCallData, mem *memory.Memory, b messages.Builder, observe func(messages.ToolCallData, string)) error {
	for _, call := range calls {
		if err := ctx.Err(); err != nil {
			return err
		}

		result := runTool(ctx, tools, call)
		if observe != nil {
			observe(call, result)
		}
		mem.AddToolResponse(b.ToolResponse(call.ID, call.Name, result))
	}
	return nil
}

func runTool(ctx context.Context, tools *tool.Set, call messages.ToolCallData) string {
	log := slog.With(slogx.LoggerName("chat"), slog.String("tool", call.Name), slog.String("call_id", call.ID))

	if tools == nil {
		log.Warn("tool requested but no tools registered")
		return tool.NotFound
	}
	def, ok := tools.Get(call.Name)
	if !ok {
		log.Warn("tool not found")
		return tool.NotFound
	}

	log.Debug("calling tool", slog.String("arguments", call.Arguments))
	result, err := def.Call(ctx, call.Arguments)
	if err != nil {
		log.Error("tool failed", slogx.Error(err))
		return "Error: " + err.Error()
	}
	log.Debug("tool result", slogx.Truncated("result", result, 200))
	return result
}
