package chat

import (
	"context"
	"errors"
	"fmt"

	"github.com/casualjim/strix/memory"
	"github.com/casualjim/strix/messages"
	"github.com/casualjim/strix/pkg/uuidx"
	"github.com/casualjim/strix/provider"
	"github.com/google/uuid"
)

// ErrNoChoices is returned when the API answers without any choice.
var ErrNoChoices = errors.New("model returned no choices")

// Reply is the assistant turn produced by one completion.
type Reply struct {
	Content   string
	Refusal   string
	ToolCalls []messages.ToolCallData
	Usage     memory.Usage
}

// HasToolCalls reports whether the model asked for tools instead of answering.
func (r Reply) HasToolCalls() bool {
	return len(r.ToolCalls) > 0
}

// Complete sends a non streaming request and waits for the reply.
func Complete(ctx context.Context, params provider.CompletionParams) (Reply, error) {
	if params.Model == nil {
		return Reply{}, provider.ErrNoModel
	}
	if params.RunID == uuid.Nil {
		params.RunID = uuidx.New()
	}
	params.Stream = false

	events, err := params.Model.Provider().ChatCompletion(ctx, params)
	if err != nil {
		return Reply{}, err
	}

	var (
		reply    Reply
		received bool
		errs     []error
	)
	// drain the channel so the provider goroutine can exit
	for event := range events {
		switch e := event.(type) {
		case provider.Response[messages.AssistantMessage]:
			reply = Reply{Content: e.Response.Content, Refusal: e.Response.Refusal, Usage: e.Usage}
			received = true
		case provider.Response[messages.ToolCallMessage]:
			reply = Reply{Content: e.Response.Content, ToolCalls: e.Response.ToolCalls, Usage: e.Usage}
			received = true
		case provider.Error:
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return Reply{}, errors.Join(errs...)
	}
	if !received {
		return Reply{}, ErrNoChoices
	}
	return reply, nil
}

// record appends the reply to mem as an assistant turn.
func record(mem *memory.Memory, b messages.Builder, reply Reply) {
	mem.AddUsage(&reply.Usage)
	if reply.HasToolCalls() {
		msg := b.ToolCall(reply.ToolCalls)
		msg.Payload.Content = reply.Content
		mem.AddToolCall(msg)
		return
	}
	msg := b.AssistantMessage(reply.Content)
	msg.Payload.Refusal = reply.Refusal
	mem.AddAssistantMessage(msg)
}

func wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
