package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"text/template"

	"github.com/casualjim/strix/chat"
	"github.com/casualjim/strix/memory"
	"github.com/casualjim/strix/messages"
	"github.com/casualjim/strix/parser"
	"github.com/casualjim/strix/pkg/slogx"
	"github.com/casualjim/strix/pkg/stdx"
	"github.com/casualjim/strix/pkg/uuidx"
	"github.com/casualjim/strix/provider"
	"github.com/casualjim/strix/provider/openai"
	"github.com/fogfish/opts"
)

const (
	DefaultName         = "Agent"
	DefaultRole         = "Personal Assistant"
	DefaultInstructions = "Help users with any question"

	// MinReflections and MaxReflections bound the maxIter argument of Reflect.
	MinReflections = 1
	MaxReflections = 3
)

// DefaultCritiquePrompt asks the model to review its previous answer and
// reply with a Critique JSON object.
const DefaultCritiquePrompt = `
Reflect on your previous response...
Identify any mistakes, areas for improvement, or ways to clarify the answer, making it more concise.
Provide a revised response if necessary in a Json Output structure:
{
    "original_response": "",
    "revisions_needed": "",
    "updated_response": ""
}
`

const systemPromptTemplate = "You're an AI Agent, your role is {{.Role}}, and you need to {{.Instructions}}"

// Agent is an assistant with a role, instructions and a conversation memory.
type Agent struct {
	name           string
	role           string
	instructions   string
	model          provider.Model
	temperature    float64
	critiquePrompt string
	verbose        bool

	memory *memory.Memory
}

var (
	Name           = opts.ForName[Agent, string]("name")
	Role           = opts.ForName[Agent, string]("role")
	Instructions   = opts.ForName[Agent, string]("instructions")
	Model          = opts.ForName[Agent, provider.Model]("model")
	Temperature    = opts.ForName[Agent, float64]("temperature")
	CritiquePrompt = opts.ForName[Agent, string]("critiquePrompt")
	// Verbose logs every message added to the memory.
	Verbose = opts.ForName[Agent, bool]("verbose")
)

// New creates an agent and seeds its memory with the system prompt.
func New(options ...opts.Option[Agent]) (*Agent, error) {
	a := &Agent{
		name:           DefaultName,
		role:           DefaultRole,
		instructions:   DefaultInstructions,
		temperature:    0,
		critiquePrompt: DefaultCritiquePrompt,
	}
	if err := opts.Apply(a, options); err != nil {
		return nil, err
	}
	if a.model == nil {
		a.model = openai.GPT4oMini()
	}
	if err := a.validate(); err != nil {
		return nil, err
	}

	prompt, err := a.SystemPrompt()
	if err != nil {
		return nil, err
	}
	a.memory = memory.New()
	a.memory.AddInstructions(messages.New().WithSender(a.name).WithTurnID(a.memory.ID()).Instructions(prompt))
	return a, nil
}

// Must is New that panics on error.
func Must(options ...opts.Option[Agent]) *Agent {
	return stdx.Must1(New(options...))
}

func (a *Agent) validate() error {
	var errs []error
	if strings.TrimSpace(a.role) == "" {
		errs = append(errs, errors.New("role is required"))
	}
	if strings.TrimSpace(a.instructions) == "" {
		errs = append(errs, errors.New("instructions are required"))
	}
	if a.temperature < 0 || a.temperature > 2 {
		errs = append(errs, fmt.Errorf("temperature %v is outside [0, 2]", a.temperature))
	}
	if strings.TrimSpace(a.critiquePrompt) == "" {
		errs = append(errs, errors.New("critique prompt is required"))
	}
	return errors.Join(errs...)
}

func (a *Agent) Name() string           { return a.name }
func (a *Agent) Role() string           { return a.role }
func (a *Agent) Instructions() string   { return a.instructions }
func (a *Agent) Model() provider.Model  { return a.model }
func (a *Agent) Temperature() float64   { return a.temperature }
func (a *Agent) Memory() *memory.Memory { return a.memory }

// SystemPrompt renders the role and instructions into the system message.
func (a *Agent) SystemPrompt() (string, error) {
	tmpl, err := template.New("system").Option("missingkey=error").Parse(systemPromptTemplate)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, struct{ Role, Instructions string }{a.role, a.instructions}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// InvokeOptions controls a single Run.
type InvokeOptions struct {
	SelfReflection bool
	// MaxIter is clamped to [MinReflections, MaxReflections] and only used
	// with SelfReflection.
	MaxIter int
}

// Loops returns the number of completions a run performs.
func (o InvokeOptions) Loops() int {
	if !o.SelfReflection {
		return 1
	}
	return 2 * ClampIterations(o.MaxIter)
}

// ClampIterations limits a reflection count to [MinReflections, MaxReflections].
func ClampIterations(n int) int {
	return min(max(n, MinReflections), MaxReflections)
}

// Invoke answers userMessage with a single completion over the memory.
func (a *Agent) Invoke(ctx context.Context, userMessage string) (string, error) {
	return a.Run(ctx, userMessage, InvokeOptions{})
}

// Reflect answers userMessage and then alternates critique prompts and
// answers, 2*maxIter completions in total. The last reply is returned; with
// the default critique prompt it is a Critique JSON object.
func (a *Agent) Reflect(ctx context.Context, userMessage string, maxIter int) (string, error) {
	return a.Run(ctx, userMessage, InvokeOptions{SelfReflection: true, MaxIter: maxIter})
}

// Run appends userMessage to the memory and performs o.Loops() completions.
// After every completion but the last the critique prompt is appended as a
// user message. On error the memory is rolled back to where it was.
func (a *Agent) Run(ctx context.Context, userMessage string, o InvokeOptions) (string, error) {
	cp := a.memory.Checkpoint()
	b := messages.New().WithRunID(uuidx.New()).WithTurnID(a.memory.ID())
	log := slog.With(slogx.LoggerName("agent"), slog.String("agent", a.name))

	a.memory.AddUserPrompt(b.UserPrompt(userMessage))
	a.logLast(log)

	loops := o.Loops()
	var content string
	for i := range loops {
		reply, err := chat.Complete(ctx, provider.CompletionParams{
			RunID:       uuidx.New(),
			Thread:      a.memory,
			Model:       a.model,
			Temperature: provider.Temperature(a.temperature),
		})
		if err != nil {
			a.memory.Restore(cp)
			return "", fmt.Errorf("agent %s: completion %d of %d: %w", a.name, i+1, loops, err)
		}

		a.memory.AddUsage(&reply.Usage)
		a.memory.AddAssistantMessage(b.WithSender(a.name).AssistantMessage(reply.Content))
		a.logLast(log)
		content = reply.Content

		if i < loops-1 {
			a.memory.AddUserPrompt(b.UserPrompt(a.critiquePrompt))
			a.logLast(log)
		}
	}
	return content, nil
}

func (a *Agent) logLast(log *slog.Logger) {
	if !a.verbose {
		return
	}
	if last, ok := a.memory.Last(); ok {
		log.Debug("memory message", slog.String("role", last.Role()), slogx.Truncated("content", last.Text(), 500))
	}
}

// ParseCritique reads the Critique JSON from a reflection reply.
func ParseCritique(content string) (parser.Critique, error) {
	return parser.ParseCritique(content)
}
