package chain

import (
	"context"
	"fmt"

	"github.com/casualjim/strix/chat"
	"github.com/casualjim/strix/memory"
	"github.com/casualjim/strix/messages"
	"github.com/casualjim/strix/parser"
	"github.com/casualjim/strix/prompt"
	"github.com/casualjim/strix/provider"
	"github.com/casualjim/strix/stream"
)

// Runnable is one step of a chain.
type Runnable[I, O any] interface {
	Invoke(ctx context.Context, in I) (O, error)
}

// namer is implemented by runnables that know what to call themselves.
type namer interface {
	Name() string
}

// stepper is implemented by composite runnables.
type stepper interface {
	Steps() []string
}

// Func adapts a function to Runnable.
type Func[I, O any] func(ctx context.Context, in I) (O, error)

func (f Func[I, O]) Invoke(ctx context.Context, in I) (O, error) {
	return f(ctx, in)
}

func (Func[I, O]) Name() string { return "Lambda" }

// Lambda adapts a function that cannot fail.
func Lambda[I, O any](fn func(I) O) Runnable[I, O] {
	return Func[I, O](func(_ context.Context, in I) (O, error) {
		return fn(in), nil
	})
}

type named[I, O any] struct {
	name string
	r    Runnable[I, O]
}

func (n named[I, O]) Invoke(ctx context.Context, in I) (O, error) { return n.r.Invoke(ctx, in) }
func (n named[I, O]) Name() string                                { return n.name }

// Named gives r a name for Describe and Traced.
func Named[I, O any](name string, r Runnable[I, O]) Runnable[I, O] {
	return named[I, O]{name: name, r: r}
}

type sequence[I, M, O any] struct {
	first  Runnable[I, M]
	second Runnable[M, O]
}

// Pipe feeds the output of first into second.
func Pipe[I, M, O any](first Runnable[I, M], second Runnable[M, O]) Runnable[I, O] {
	return sequence[I, M, O]{first: first, second: second}
}

func (s sequence[I, M, O]) Invoke(ctx context.Context, in I) (O, error) {
	var zero O
	mid, err := s.first.Invoke(ctx, in)
	if err != nil {
		return zero, err
	}
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	return s.second.Invoke(ctx, mid)
}

func (s sequence[I, M, O]) Steps() []string {
	return append(Describe(s.first), Describe(s.second)...)
}

type promptStep struct {
	tmpl *prompt.Template
}

// Prompt formats tmpl with the input values.
func Prompt(tmpl *prompt.Template) Runnable[prompt.Values, string] {
	return promptStep{tmpl: tmpl}
}

func (p promptStep) Invoke(_ context.Context, in prompt.Values) (string, error) {
	return p.tmpl.Format(in)
}

func (promptStep) Name() string { return "PromptTemplate" }

type llmStep struct {
	model   provider.Model
	options []chat.Option
}

// LLM sends the input as a single user message and returns the reply text.
func LLM(model provider.Model, options ...chat.Option) Runnable[string, string] {
	return llmStep{model: model, options: options}
}

func (l llmStep) Invoke(ctx context.Context, in string) (string, error) {
	return chat.Chat(ctx, l.model, in, nil, l.options...)
}

func (l llmStep) Name() string { return "ChatModel(" + l.model.Name() + ")" }

type streamStep struct {
	model   provider.Model
	onChunk func(string)
}

// StreamLLM is LLM with the reply streamed through onChunk as it arrives.
func StreamLLM(model provider.Model, onChunk func(string)) Runnable[string, string] {
	return streamStep{model: model, onChunk: onChunk}
}

func (s streamStep) Invoke(ctx context.Context, in string) (string, error) {
	mem := memory.New()
	mem.AddUserPrompt(messages.New().WithTurnID(mem.ID()).UserPrompt(in))

	events, err := stream.Start(ctx, s.model, mem, 0)
	if err != nil {
		return "", err
	}
	res, err := stream.Collect(ctx, events, s.onChunk)
	if err != nil {
		return res.Text, err
	}
	return res.Text, nil
}

func (s streamStep) Name() string { return "ChatModel(" + s.model.Name() + ", stream)" }

type parserStep[T any] struct {
	p parser.Parser[T]
}

// Parser runs an output parser over the reply text.
func Parser[T any](p parser.Parser[T]) Runnable[string, T] {
	return parserStep[T]{p: p}
}

func (p parserStep[T]) Invoke(_ context.Context, in string) (T, error) {
	return p.p.Parse(in)
}

func (p parserStep[T]) Name() string {
	return fmt.Sprintf("OutputParser(%T)", p.p)
}

// Tap calls fn with every value passing through and forwards it unchanged.
func Tap[T any](fn func(ctx context.Context, v T)) Runnable[T, T] {
	return Named[T, T]("Tap", Func[T, T](func(ctx context.Context, v T) (T, error) {
		fn(ctx, v)
		return v, nil
	}))
}

// Erase widens the output of r to any so it can sit in a Parallel.
func Erase[I, O any](r Runnable[I, O]) Runnable[I, any] {
	return erased[I, O]{r: r}
}

type erased[I, O any] struct {
	r Runnable[I, O]
}

func (e erased[I, O]) Invoke(ctx context.Context, in I) (any, error) {
	return e.r.Invoke(ctx, in)
}

func (e erased[I, O]) Name() string { return stepName(e.r) }

func (e erased[I, O]) Steps() []string { return Describe(e.r) }
