// Package stream consumes streamed chat completions.
//
// Collect rebuilds the reply text from the chunks a provider emits, and keeps
// whatever arrived when the context is cancelled halfway:
//
//	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer cancel()
//
//	res, err := stream.Play(ctx, model, "What does FIFA stand for?", mem, 0.7, os.Stdout)
//	if errors.Is(err, context.Canceled) {
//		fmt.Println("stream interrupted, kept:", res.Text)
//	}
//
// Events maps the same stream onto lifecycle callbacks.
package stream
