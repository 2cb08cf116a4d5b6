// Package chain composes prompts, models and parsers into runnables.
//
// A Runnable turns an input into an output. Pipe connects two of them, so a
// prompt, a model and a parser form a sequence:
//
//	joke := chain.Pipe(chain.Pipe(
//		chain.Prompt(prompt.MustTemplate("Tell me a joke about {topic}.")),
//		chain.LLM(openai.GPT35Turbo()),
//	), chain.Parser[string](parser.String{}))
//
//	out, err := joke.Invoke(ctx, prompt.Values{"topic": "computers"})
//
// Batch and Parallel fan work out over goroutines. Traced records runs into a
// Collector carried by the context.
package chain
