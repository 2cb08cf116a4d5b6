package prompt

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/casualjim/strix/pkg/stdx"
)

var (
	// ErrMissingVariable is returned by Format when a placeholder has no value.
	ErrMissingVariable = errors.New("missing template variable")
	// ErrMalformedTemplate is returned for unbalanced or empty placeholders.
	ErrMalformedTemplate = errors.New("malformed template")
)

// Values holds the variables passed to a template.
type Values map[string]any

type segment struct {
	text     string
	variable bool
}

// Template is a parsed prompt template.
type Template struct {
	source   string
	segments []segment
	vars     []string
}

// NewTemplate parses text.
func NewTemplate(text string) (*Template, error) {
	t := &Template{source: text}

	var lit strings.Builder
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '{' && i+1 < len(text) && text[i+1] == '{':
			lit.WriteByte('{')
			i++
		case c == '}' && i+1 < len(text) && text[i+1] == '}':
			lit.WriteByte('}')
			i++
		case c == '{':
			end := strings.IndexByte(text[i+1:], '}')
			if end < 0 {
				return nil, fmt.Errorf("%w: unclosed '{' at offset %d", ErrMalformedTemplate, i)
			}
			name := strings.TrimSpace(text[i+1 : i+1+end])
			if name == "" || strings.ContainsAny(name, "{") {
				return nil, fmt.Errorf("%w: bad placeholder at offset %d", ErrMalformedTemplate, i)
			}
			if lit.Len() > 0 {
				t.segments = append(t.segments, segment{text: lit.String()})
				lit.Reset()
			}
			t.segments = append(t.segments, segment{text: name, variable: true})
			if !slices.Contains(t.vars, name) {
				t.vars = append(t.vars, name)
			}
			i += end + 1
		case c == '}':
			return nil, fmt.Errorf("%w: single '}' at offset %d", ErrMalformedTemplate, i)
		default:
			lit.WriteByte(c)
		}
	}
	if lit.Len() > 0 {
		t.segments = append(t.segments, segment{text: lit.String()})
	}
	return t, nil
}

// MustTemplate is NewTemplate that panics on error.
func MustTemplate(text string) *Template {
	return stdx.Must1(NewTemplate(text))
}

// InputVariables returns the placeholder names in order of first use.
func (t *Template) InputVariables() []string {
	return slices.Clone(t.vars)
}

// Format renders the template. Every placeholder needs a value; extra values
// are ignored.
func (t *Template) Format(values Values) (string, error) {
	var missing []string
	for _, v := range t.vars {
		if _, ok := values[v]; !ok {
			missing = append(missing, v)
		}
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("%w: %s", ErrMissingVariable, strings.Join(missing, ", "))
	}

	var sb strings.Builder
	for _, s := range t.segments {
		if !s.variable {
			sb.WriteString(s.text)
			continue
		}
		switch v := values[s.text].(type) {
		case string:
			sb.WriteString(v)
		case fmt.Stringer:
			sb.WriteString(v.String())
		default:
			fmt.Fprint(&sb, v)
		}
	}
	return sb.String(), nil
}

// String returns the template source.
func (t *Template) String() string {
	return t.source
}
