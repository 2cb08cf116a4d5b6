package prompt

import (
	"fmt"
	"io"
	"strings"

	"github.com/casualjim/strix/memory"
	"github.com/casualjim/strix/messages"
	"gopkg.in/yaml.v3"
)

// DefaultSeparator joins the parts of a FewShot prompt.
const DefaultSeparator = "\n\n"

// Example is one row of a few-shot example set.
type Example map[string]string

func (e Example) values() Values {
	v := make(Values, len(e))
	for k, s := range e {
		v[k] = s
	}
	return v
}

// FewShot renders a prefix, every example through ExamplePrompt and finally
// the suffix filled with the caller's input.
type FewShot struct {
	Examples      []Example
	ExamplePrompt *Template
	Prefix        string
	Suffix        *Template
	Separator     string
}

func (f FewShot) Format(values Values) (string, error) {
	if f.ExamplePrompt == nil {
		return "", fmt.Errorf("%w: few-shot prompt has no example prompt", ErrMalformedTemplate)
	}
	sep := f.Separator
	if sep == "" {
		sep = DefaultSeparator
	}

	parts := make([]string, 0, len(f.Examples)+2)
	if f.Prefix != "" {
		parts = append(parts, f.Prefix)
	}
	for i, ex := range f.Examples {
		s, err := f.ExamplePrompt.Format(ex.values())
		if err != nil {
			return "", fmt.Errorf("example %d: %w", i, err)
		}
		parts = append(parts, s)
	}
	if f.Suffix != nil {
		s, err := f.Suffix.Format(values)
		if err != nil {
			return "", fmt.Errorf("suffix: %w", err)
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, sep), nil
}

// MessageTemplate is one templated message of a chat prompt.
type MessageTemplate struct {
	Role     string
	Template *Template
}

// Human, AI and System build message templates for the matching roles.
func Human(text string) MessageTemplate {
	return MessageTemplate{Role: messages.RoleUser, Template: MustTemplate(text)}
}

func AI(text string) MessageTemplate {
	return MessageTemplate{Role: messages.RoleAssistant, Template: MustTemplate(text)}
}

func System(text string) MessageTemplate {
	return MessageTemplate{Role: messages.RoleSystem, Template: MustTemplate(text)}
}

// DefaultExampleMessages turns an example with input and output keys into a
// user turn and an assistant turn.
var DefaultExampleMessages = []MessageTemplate{Human("{input}"), AI("{output}")}

// FewShotChat renders example sets as a conversation.
type FewShotChat struct {
	// Instructions becomes a leading system message when not empty.
	Instructions string
	Examples     []Example
	// ExampleMessages defaults to DefaultExampleMessages.
	ExampleMessages []MessageTemplate
}

// Memory returns a new memory holding the rendered conversation.
func (f FewShotChat) Memory() (*memory.Memory, error) {
	mem := memory.New()
	if err := f.AppendTo(mem, messages.New().WithTurnID(mem.ID())); err != nil {
		return nil, err
	}
	return mem, nil
}

// AppendTo appends the rendered conversation to mem.
func (f FewShotChat) AppendTo(mem *memory.Memory, b messages.Builder) error {
	tmpls := f.ExampleMessages
	if len(tmpls) == 0 {
		tmpls = DefaultExampleMessages
	}

	if f.Instructions != "" {
		mem.AddInstructions(b.Instructions(f.Instructions))
	}
	for i, ex := range f.Examples {
		for _, mt := range tmpls {
			text, err := mt.Template.Format(ex.values())
			if err != nil {
				return fmt.Errorf("example %d: %w", i, err)
			}
			switch mt.Role {
			case messages.RoleSystem:
				mem.AddInstructions(b.Instructions(text))
			case messages.RoleUser:
				mem.AddUserPrompt(b.UserPrompt(text))
			case messages.RoleAssistant:
				mem.AddAssistantMessage(b.AssistantMessage(text))
			default:
				return fmt.Errorf("%w: unsupported role %q", ErrMalformedTemplate, mt.Role)
			}
		}
	}
	return nil
}

// LoadExamples reads a YAML list of examples.
//
//	- input: What is the capital of France?
//	  output: The capital of France is Paris.
func LoadExamples(r io.Reader) ([]Example, error) {
	var examples []Example
	if err := yaml.NewDecoder(r).Decode(&examples); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decode examples: %w", err)
	}
	return examples, nil
}
