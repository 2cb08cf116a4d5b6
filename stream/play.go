package stream

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/casualjim/strix/memory"
	"github.com/casualjim/strix/messages"
	"github.com/casualjim/strix/pkg/slogx"
	"github.com/casualjim/strix/pkg/uuidx"
	"github.com/casualjim/strix/provider"
)

const (
	// ChunkSeparator is printed after every chunk by Play.
	ChunkSeparator = "|"
	// ChunksPerLine is how many chunks Play prints before breaking the line.
	ChunksPerLine = 12

	// ResumePrompt asks the model to finish an interrupted answer.
	ResumePrompt = "If your last message is not complete, continue after last word. If it is complete, just output __END__"
	// EndMarker is what the model answers to ResumePrompt when nothing was missing.
	EndMarker = "__END__"
)

// Start sends the memory to the model as a streaming request.
func Start(ctx context.Context, model provider.Model, mem *memory.Memory, temperature float64) (<-chan provider.StreamEvent, error) {
	if model == nil {
		return nil, provider.ErrNoModel
	}
	return model.Provider().ChatCompletion(ctx, provider.CompletionParams{
		RunID:       uuidx.New(),
		Thread:      mem,
		Stream:      true,
		Model:       model,
		Temperature: provider.Temperature(temperature),
	})
}

// Play appends message to mem and streams the answer at temperature to w,
// printing each chunk followed by ChunkSeparator and a blank line every
// ChunksPerLine chunks.
//
// Whatever was received is appended to mem as the assistant reply, also when
// the stream is interrupted. A request that fails before any text arrives
// leaves only the user message behind.
func Play(ctx context.Context, model provider.Model, message string, mem *memory.Memory, temperature float64, w io.Writer) (Result, error) {
	b := messages.New().WithRunID(uuidx.New()).WithTurnID(mem.ID())
	mem.AddUserPrompt(b.UserPrompt(message))

	events, err := Start(ctx, model, mem, temperature)
	if err != nil {
		return Result{}, err
	}

	var n int
	res, err := Collect(ctx, events, func(chunk string) {
		n++
		fmt.Fprint(w, chunk, ChunkSeparator)
		if n%ChunksPerLine == 0 {
			fmt.Fprint(w, "\n\n")
		}
	})
	if err != nil {
		slog.Warn("stream interrupted", slogx.LoggerName("stream"), slogx.Error(err), slog.Int("chunks", len(res.Chunks)))
	}

	if res.Text != "" || err == nil {
		mem.AddUsage(&res.Usage)
		mem.AddAssistantMessage(b.AssistantMessage(res.Text))
	}
	return res, err
}

// Resume plays ResumePrompt so an interrupted answer can be finished.
func Resume(ctx context.Context, model provider.Model, mem *memory.Memory, temperature float64, w io.Writer) (Result, error) {
	return Play(ctx, model, ResumePrompt, mem, temperature, w)
}
