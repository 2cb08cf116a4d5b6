package chatbot

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"sync"

	"github.com/casualjim/strix/internal/registry"
	"github.com/casualjim/strix/pkg/stdx"
	"github.com/casualjim/strix/prompt"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed personas/*.yaml
var builtinFS embed.FS

// Persona describes the voice of a chatbot.
type Persona struct {
	Name         string           `yaml:"name" validate:"required"`
	Instructions string           `yaml:"instructions" validate:"required"`
	Examples     []prompt.Example `yaml:"examples" validate:"dive,required"`
	Model        string           `yaml:"model,omitempty"`
	Temperature  float64          `yaml:"temperature,omitempty" validate:"gte=0,lte=2"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the required fields and the temperature range.
func (p Persona) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("persona %q: %w", p.Name, err)
	}
	return nil
}

// LoadPersona reads a persona from YAML.
func LoadPersona(r io.Reader) (Persona, error) {
	var p Persona
	if err := yaml.NewDecoder(r).Decode(&p); err != nil {
		return Persona{}, fmt.Errorf("decode persona: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Persona{}, err
	}
	return p, nil
}

var personas = sync.OnceValue(func() registry.Registry[Persona] {
	reg := registry.New[Persona]()
	files := stdx.Must1(fs.Glob(builtinFS, "personas/*.yaml"))
	for _, name := range files {
		f := stdx.Must1(builtinFS.Open(name))
		p, err := LoadPersona(f)
		f.Close()
		if err != nil {
			panic(fmt.Errorf("builtin %s: %w", name, err))
		}
		reg.Add(p.Name, p)
	}
	return reg
})

// RegisterPersona makes p available to Lookup, replacing any persona with
// the same name.
func RegisterPersona(p Persona) error {
	if err := p.Validate(); err != nil {
		return err
	}
	personas().Add(p.Name, p)
	return nil
}

// Lookup returns a registered persona. TechHelper and BEEP-42 are always
// available.
func Lookup(name string) (Persona, bool) {
	return personas().Get(name)
}

// MustPersona is Lookup that panics for unknown names.
func MustPersona(name string) Persona {
	p, ok := Lookup(name)
	if !ok {
		panic(fmt.Sprintf("chatbot: unknown persona %q", name))
	}
	return p
}

// PersonaNames lists the registered personas.
func PersonaNames() []string {
	return personas().Names()
}
