package stream

import (
	"context"

	"github.com/casualjim/strix/chat"
	"github.com/casualjim/strix/messages"
	"github.com/casualjim/strix/provider"
)

// Handler receives the lifecycle of a streamed completion. Nil callbacks are
// skipped.
type Handler struct {
	OnStart func()
	OnChunk func(chunk string)
	OnEnd   func(final chat.Reply)
	OnError func(err error)
}

// Events dispatches every event of the stream to h and returns the collected
// result. OnStart fires once, on the first event that opens the reply, and
// OnEnd only when the stream completed.
func Events(ctx context.Context, events <-chan provider.StreamEvent, h Handler) (Result, error) {
	var started bool
	start := func() {
		if started {
			return
		}
		started = true
		if h.OnStart != nil {
			h.OnStart()
		}
	}

	res, err := collect(ctx, events, h.OnChunk, func(event provider.StreamEvent) {
		switch e := event.(type) {
		case provider.Delim:
			if e.Delim == provider.DelimStart {
				start()
			}
		case provider.Chunk[messages.AssistantMessage], provider.Response[messages.AssistantMessage], provider.Response[messages.ToolCallMessage]:
			start()
		case provider.Error:
			if h.OnError != nil {
				h.OnError(e)
			}
		}
	})
	if err == nil && res.Final != nil && h.OnEnd != nil {
		h.OnEnd(*res.Final)
	}
	return res, err
}
