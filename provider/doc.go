// Package provider abstracts the hosted chat model behind a streaming interface.
//
// A Provider turns CompletionParams into a channel of StreamEvent values. The
// same channel shape serves both request modes:
//
//   - Stream=false: a single Response (or Error) event, then the channel closes.
//   - Stream=true: Delim{start}, one Chunk per delta, Delim{end}, then the
//     accumulated Response, then the channel closes.
//
// Consumers switch on the concrete event type:
//
//	events, err := model.Provider().ChatCompletion(ctx, provider.CompletionParams{
//	    RunID:  uuidx.New(),
//	    Thread: mem,
//	    Stream: true,
//	    Model:  model,
//	})
//	if err != nil {
//	    return err
//	}
//	for event := range events {
//	    switch e := event.(type) {
//	    case provider.Chunk[messages.AssistantMessage]:
//	        fmt.Print(e.Chunk.Content)
//	    case provider.Response[messages.AssistantMessage]:
//	        mem.AddUsage(&e.Usage)
//	    case provider.Error:
//	        return e
//	    }
//	}
//
// Events marshal to JSON objects tagged with a "type" field so a stream can be
// logged or replayed line by line.
package provider
