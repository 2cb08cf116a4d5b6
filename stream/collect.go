package stream

import (
	"context"
	"errors"
	"strings"

	"github.com/casualjim/strix/chat"
	"github.com/casualjim/strix/memory"
	"github.com/casualjim/strix/messages"
	"github.com/casualjim/strix/provider"
)

// Result is the outcome of a streamed completion.
type Result struct {
	// Text is the concatenation of every chunk received, in order.
	Text string
	// Chunks holds the raw text deltas.
	Chunks []string
	// Final is the complete reply sent at the end of the stream. It is nil
	// when the stream was interrupted.
	Final *chat.Reply
	Usage memory.Usage
}

// Complete reports whether the stream ran to the end.
func (r Result) Complete() bool {
	return r.Final != nil
}

// Collect reads events until the channel closes and rebuilds the reply.
// onChunk, when not nil, sees every text delta as it arrives.
//
// When ctx is cancelled the partial result is returned together with the
// context error. The channel is drained either way so the producer can exit.
func Collect(ctx context.Context, events <-chan provider.StreamEvent, onChunk func(string)) (Result, error) {
	return collect(ctx, events, onChunk, nil)
}

func collect(ctx context.Context, events <-chan provider.StreamEvent, onChunk func(string), observe func(provider.StreamEvent)) (Result, error) {
	var (
		res  Result
		sb   strings.Builder
		errs []error
	)

	handle := func(event provider.StreamEvent) {
		if observe != nil {
			observe(event)
		}
		switch e := event.(type) {
		case provider.Chunk[messages.AssistantMessage]:
			if e.Chunk.Content == "" {
				return
			}
			sb.WriteString(e.Chunk.Content)
			res.Chunks = append(res.Chunks, e.Chunk.Content)
			if onChunk != nil {
				onChunk(e.Chunk.Content)
			}
		case provider.Response[messages.AssistantMessage]:
			res.Final = &chat.Reply{Content: e.Response.Content, Refusal: e.Response.Refusal, Usage: e.Usage}
			res.Usage = e.Usage
		case provider.Response[messages.ToolCallMessage]:
			res.Final = &chat.Reply{Content: e.Response.Content, ToolCalls: e.Response.ToolCalls, Usage: e.Usage}
			res.Usage = e.Usage
		case provider.Error:
			errs = append(errs, e)
		}
	}

loop:
	for {
		select {
		case event, ok := <-events:
			if !ok {
				break loop
			}
			handle(event)
		case <-ctx.Done():
			for range events {
			}
			res.Text = sb.String()
			res.Final = nil
			return res, ctx.Err()
		}
	}

	res.Text = sb.String()
	if res.Text == "" && res.Final != nil {
		res.Text = res.Final.Content
	}
	if len(errs) > 0 {
		res.Final = nil
		return res, errors.Join(errs...)
	}
	if res.Final == nil && res.Text == "" {
		return res, chat.ErrNoChoices
	}
	return res, nil
}
