package parser

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

var fencePattern = regexp.MustCompile("(?s)```(?:json|JSON)?\\s*(.*?)```")

// JSON decodes the first JSON document found in a reply into T.
//
// String fields left empty by the model are filled from their default tag,
// then struct values are checked against their validate tags.
type JSON[T any] struct {
	validate *validator.Validate
}

// NewJSON returns a JSON parser for T.
func NewJSON[T any]() *JSON[T] {
	return &JSON[T]{validate: validator.New(validator.WithRequiredStructEnabled())}
}

func (p *JSON[T]) Parse(text string) (T, error) {
	var zero T

	raw, ok := ExtractJSON(text)
	if !ok {
		return zero, fmt.Errorf("%w in %q", ErrNoJSON, text)
	}

	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return zero, fmt.Errorf("decode %T: %w", value, err)
	}

	applyDefaults(reflect.ValueOf(&value).Elem())

	if isStruct(reflect.TypeOf(value)) {
		v := p.validate
		if v == nil {
			v = validator.New(validator.WithRequiredStructEnabled())
		}
		if err := v.Struct(value); err != nil {
			return zero, fmt.Errorf("validate %T: %w", value, err)
		}
	}
	return value, nil
}

// ExtractJSON returns the first valid JSON object or array in text. Content
// inside a fenced code block is preferred.
func ExtractJSON(text string) (string, bool) {
	if m := fencePattern.FindStringSubmatch(text); m != nil {
		if raw, ok := firstDocument(m[1]); ok {
			return raw, true
		}
	}
	return firstDocument(text)
}

func firstDocument(text string) (string, bool) {
	for i := 0; i < len(text); i++ {
		if text[i] != '{' && text[i] != '[' {
			continue
		}
		// decode a single value so trailing prose is left alone
		var raw json.RawMessage
		if err := json.NewDecoder(strings.NewReader(text[i:])).Decode(&raw); err != nil {
			continue
		}
		if gjson.ValidBytes(raw) {
			return string(raw), true
		}
	}
	return "", false
}

func isStruct(t reflect.Type) bool {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t != nil && t.Kind() == reflect.Struct
}

func applyDefaults(v reflect.Value) {
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		fv := v.Field(i)
		switch fv.Kind() {
		case reflect.String:
			if def, ok := field.Tag.Lookup("default"); ok && strings.TrimSpace(fv.String()) == "" {
				fv.SetString(def)
			}
		case reflect.Struct, reflect.Ptr:
			applyDefaults(fv)
		}
	}
}
