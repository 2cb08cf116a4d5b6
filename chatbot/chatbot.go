package chatbot

import (
	"context"
	"errors"
	"log/slog"

	"github.com/casualjim/strix/chat"
	"github.com/casualjim/strix/memory"
	"github.com/casualjim/strix/messages"
	"github.com/casualjim/strix/pkg/slogx"
	"github.com/casualjim/strix/pkg/uuidx"
	"github.com/casualjim/strix/prompt"
	"github.com/casualjim/strix/provider"
	"github.com/casualjim/strix/provider/openai"
	"github.com/casualjim/strix/stream"
	"github.com/fogfish/opts"
)

// ChatBot answers in the voice set by its instructions and examples and
// remembers the conversation.
type ChatBot struct {
	name        string
	model       provider.Model
	temperature float64

	memory *memory.Memory
	seeded memory.Checkpoint
}

// Option configures a ChatBot.
type Option = opts.Option[ChatBot]

var (
	Model       = opts.ForName[ChatBot, provider.Model]("model")
	Temperature = opts.ForName[ChatBot, float64]("temperature")
)

// New seeds the history with instructions followed by one user and one
// assistant message per example. Examples need input and output keys.
func New(name, instructions string, examples []prompt.Example, options ...Option) (*ChatBot, error) {
	p := Persona{Name: name, Instructions: instructions, Examples: examples}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	c := &ChatBot{name: name}
	if err := opts.Apply(c, options); err != nil {
		return nil, err
	}
	if c.model == nil {
		c.model = openai.GPT4oMini()
	}
	if c.temperature < 0 || c.temperature > 2 {
		return nil, errors.New("temperature must be within [0, 2]")
	}

	mem, err := prompt.FewShotChat{Instructions: instructions, Examples: examples}.Memory()
	if err != nil {
		return nil, err
	}
	c.memory = mem
	c.seeded = mem.Checkpoint()
	return c, nil
}

// FromPersona builds a ChatBot from p. The persona's model and temperature
// are applied before options.
func FromPersona(p Persona, options ...Option) (*ChatBot, error) {
	var base []Option
	if p.Model != "" {
		base = append(base, Model(openai.Model(p.Model)))
	}
	base = append(base, Temperature(p.Temperature))
	return New(p.Name, p.Instructions, p.Examples, append(base, options...)...)
}

func (c *ChatBot) Name() string           { return c.name }
func (c *ChatBot) Memory() *memory.Memory { return c.memory }

// Messages returns the conversation so far, examples included.
func (c *ChatBot) Messages() memory.History { return c.memory.Messages() }

// Reset forgets the conversation but keeps the instructions and examples.
func (c *ChatBot) Reset() {
	c.memory.Restore(c.seeded)
}

// Invoke appends userMessage, completes over the whole history and returns
// the reply, which is appended too.
func (c *ChatBot) Invoke(ctx context.Context, userMessage string) (string, error) {
	return chat.Chat(ctx, c.model, userMessage, c.memory, chat.Temperature(c.temperature), chat.Sender("user"))
}

// InvokeStream is Invoke with the reply streamed through h. When ctx is
// cancelled mid stream the partial reply is kept in the history and returned
// along with the context error.
func (c *ChatBot) InvokeStream(ctx context.Context, userMessage string, h stream.Handler) (string, error) {
	cp := c.memory.Checkpoint()
	b := messages.New().WithRunID(uuidx.New()).WithTurnID(c.memory.ID())
	c.memory.AddUserPrompt(b.WithSender("user").UserPrompt(userMessage))

	events, err := stream.Start(ctx, c.model, c.memory, c.temperature)
	if err != nil {
		c.memory.Restore(cp)
		return "", err
	}

	res, err := stream.Events(ctx, events, h)
	if err != nil && (res.Text == "" || !errors.Is(err, context.Canceled)) {
		c.memory.Restore(cp)
		return "", err
	}

	c.memory.AddUsage(&res.Usage)
	c.memory.AddAssistantMessage(b.WithSender(c.name).AssistantMessage(res.Text))
	if err != nil {
		slog.Warn("reply interrupted", slogx.LoggerName("chatbot"), slog.String("bot", c.name), slogx.Error(err))
	}
	return res.Text, err
}
