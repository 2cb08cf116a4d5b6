package tool

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/casualjim/strix/pkg/reflectx"
	"github.com/casualjim/strix/pkg/stdx"
	"github.com/fogfish/opts"
	"github.com/invopop/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// NotFound is the result text sent back to the model when it calls a tool
// that was never registered.
const NotFound = "Tool not found"

var (
	// ErrNotAFunction is returned when a tool is created from a non-function value.
	ErrNotAFunction = errors.New("provided value is not a function")
	// ErrInvalidArguments is returned when the model sends arguments that do
	// not fit the function signature.
	ErrInvalidArguments = errors.New("invalid tool arguments")
)

var contextType = reflect.TypeOf((*context.Context)(nil)).Elem()

// Definition describes a Go function that the model may call.
//
// Parameters maps positional placeholders ("param0", "param1", ...) to the
// names the model sees. Unnamed parameters keep their placeholder.
// A leading context.Context parameter is not exposed to the model.
type Definition struct {
	Name              string
	Description       string
	Parameters        map[string]string
	ParamDescriptions map[string]string
	Function          any
}

var functionReflector = jsonschema.Reflector{
	AllowAdditionalProperties: true,
	DoNotReference:            true,
}

// ToNameAndSchema returns the tool name and the JSON schema of its parameters.
func (td Definition) ToNameAndSchema() (string, *jsonschema.Schema) {
	return functionDefinitionJSON(&functionReflector, td)
}

func functionDefinitionJSON(reflector *jsonschema.Reflector, f Definition) (string, *jsonschema.Schema) {
	name := f.Name
	if name == "" {
		name = reflectx.FunctionName(f.Function)
	}

	schema := &jsonschema.Schema{
		Type:       "object",
		Properties: orderedmap.New[string, *jsonschema.Schema](),
	}
	if !reflectx.IsFunction(f.Function) {
		return name, schema
	}

	typ := reflect.TypeOf(f.Function)
	var required []string
	for i, paramType := range modelParams(typ) {
		paramName := f.paramName(i)
		propSchema := reflector.ReflectFromType(paramType)
		propSchema.Version = ""
		if desc, ok := f.ParamDescriptions[paramName]; ok {
			propSchema.Description = desc
		}
		schema.Properties.Set(paramName, propSchema)
		required = append(required, paramName)
	}
	if len(required) > 0 {
		schema.Required = required
	}
	return name, schema
}

// modelParams returns the parameter types the model has to fill in.
func modelParams(typ reflect.Type) []reflect.Type {
	var params []reflect.Type
	for i := 0; i < typ.NumIn(); i++ {
		if i == 0 && typ.In(i) == contextType {
			continue
		}
		params = append(params, typ.In(i))
	}
	return params
}

func (td Definition) paramName(i int) string {
	placeholder := fmt.Sprintf("param%d", i)
	if p, ok := td.Parameters[placeholder]; ok {
		return p
	}
	return placeholder
}

// Option configures a Definition.
type Option = opts.Option[Definition]

// Must is New that panics on error.
func Must(f any, options ...Option) Definition {
	return stdx.Must1(New(f, options...))
}

// New creates a Definition for f.
//
//	weather := tool.Must(getCurrentWeather,
//		tool.Name("get_current_weather"),
//		tool.Description("Get the current weather for a given location"),
//		tool.Parameters("location"),
//		tool.Describe("location", "The name of the city"),
//	)
func New(f any, options ...Option) (Definition, error) {
	if !reflectx.IsFunction(f) {
		return Definition{}, ErrNotAFunction
	}
	if reflect.TypeOf(f).IsVariadic() {
		return Definition{}, fmt.Errorf("variadic function %s cannot be used as a tool", reflectx.FunctionName(f))
	}

	var def Definition
	if err := opts.Apply(&def, options); err != nil {
		return Definition{}, err
	}
	if def.Name == "" {
		def.Name = reflectx.FunctionName(f)
	}

	def.Function = f
	return def, nil
}

// Name sets the tool name.
var Name = opts.ForName[Definition, string]("Name")

// Description sets the human readable description sent to the model.
var Description = opts.ForName[Definition, string]("Description")

// Parameters names the function parameters in order.
func Parameters(parameters ...string) Option {
	return opts.Type[Definition](func(o *Definition) error {
		o.Parameters = make(map[string]string, len(parameters))
		for i, p := range parameters {
			o.Parameters[fmt.Sprintf("param%d", i)] = p
		}
		return nil
	})
}

// Describe attaches a description to a named parameter.
func Describe(parameter, description string) Option {
	return opts.Type[Definition](func(o *Definition) error {
		if o.ParamDescriptions == nil {
			o.ParamDescriptions = make(map[string]string)
		}
		o.ParamDescriptions[parameter] = description
		return nil
	})
}
