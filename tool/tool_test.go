package tool

import (
	"context"
	"errors"
	"reflect"
	"strconv"
	"testing"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

func getCurrentWeather(location string) string {
	switch location {
	case "Rome":
		return "25°C, sunny"
	case "London":
		return "15°C, cloudy"
	default:
		return "Weather data not found"
	}
}

func power(base, exponent float64) float64 {
	result := 1.0
	for i := 0; i < int(exponent); i++ {
		result *= base
	}
	return result
}

type ctxKey struct{}

func TestMustTool(t *testing.T) {
	testFunc := func() {}

	t.Run("valid function", func(t *testing.T) {
		assert.NotPanics(t, func() {
			def := Must(testFunc)
			assert.Equal(t, reflect.ValueOf(testFunc).Pointer(), reflect.ValueOf(def.Function).Pointer())
		})
	})

	t.Run("invalid function", func(t *testing.T) {
		assert.Panics(t, func() {
			Must("not a function")
		})
	})

	t.Run("variadic function", func(t *testing.T) {
		_, err := New(func(xs ...int) int { return len(xs) })
		assert.Error(t, err)
	})
}

func TestName(t *testing.T) {
	tests := []struct {
		name     string
		toolName string
	}{
		{name: "simple name", toolName: "test_tool"},
		{name: "name with spaces", toolName: "test tool name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, err := New(func() {}, Name(tt.toolName))
			require.NoError(t, err)
			assert.Equal(t, tt.toolName, def.Name)
		})
	}

	t.Run("falls back to function name", func(t *testing.T) {
		def := Must(getCurrentWeather)
		assert.Equal(t, "getCurrentWeather", def.Name)
	})
}

func TestDescription(t *testing.T) {
	tests := []struct {
		name        string
		description string
	}{
		{name: "simple description", description: "A test tool"},
		{name: "empty description", description: ""},
		{name: "multiline description", description: "Line 1\nLine 2\nLine 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, err := New(func() {}, Description(tt.description))
			require.NoError(t, err)
			assert.Equal(t, tt.description, def.Description)
		})
	}
}

func TestParameters(t *testing.T) {
	tests := []struct {
		name   string
		params []string
		want   map[string]string
	}{
		{
			name:   "single parameter",
			params: []string{"param1"},
			want:   map[string]string{"param0": "param1"},
		},
		{
			name:   "multiple parameters",
			params: []string{"base", "exponent"},
			want:   map[string]string{"param0": "base", "param1": "exponent"},
		},
		{
			name:   "no parameters",
			params: []string{},
			want:   map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, err := New(func() {}, Parameters(tt.params...))
			require.NoError(t, err)
			assert.Equal(t, tt.want, def.Parameters)
		})
	}
}

func TestWithToolCombined(t *testing.T) {
	def, err := New(power,
		Name("power"),
		Description("Raise a number to a power"),
		Parameters("base", "exponent"),
		Describe("base", "The base number"),
	)
	require.NoError(t, err)

	assert.Equal(t, "power", def.Name)
	assert.Equal(t, "Raise a number to a power", def.Description)
	assert.Equal(t, map[string]string{"param0": "base", "param1": "exponent"}, def.Parameters)
	assert.Equal(t, map[string]string{"base": "The base number"}, def.ParamDescriptions)
}

func TestDefinition_ToNameAndSchema(t *testing.T) {
	t.Run("named parameter", func(t *testing.T) {
		def := Definition{
			Name:       "test_func",
			Parameters: map[string]string{"param0": "value1"},
			Function:   func(s string) {},
		}

		name, schema := def.ToNameAndSchema()
		assert.Equal(t, "test_func", name)

		props := orderedmap.New[string, *jsonschema.Schema]()
		props.Set("value1", &jsonschema.Schema{Type: "string"})
		assert.Equal(t, &jsonschema.Schema{
			Type:       "object",
			Properties: props,
			Required:   []string{"value1"},
		}, schema)
	})

	t.Run("context is hidden", func(t *testing.T) {
		def := Must(func(ctx context.Context, location string) string { return location },
			Parameters("location"),
			Describe("location", "The name of the city"),
		)

		_, schema := def.ToNameAndSchema()
		assert.Equal(t, 1, schema.Properties.Len())
		prop, ok := schema.Properties.Get("location")
		require.True(t, ok)
		assert.Equal(t, "string", prop.Type)
		assert.Equal(t, "The name of the city", prop.Description)
		assert.Equal(t, []string{"location"}, schema.Required)
	})

	t.Run("placeholder names", func(t *testing.T) {
		_, schema := Must(power).ToNameAndSchema()
		assert.Equal(t, []string{"param0", "param1"}, schema.Required)
		prop, ok := schema.Properties.Get("param1")
		require.True(t, ok)
		assert.Equal(t, "number", prop.Type)
	})

	t.Run("no parameters", func(t *testing.T) {
		_, schema := Must(func() string { return "" }, Name("noop")).ToNameAndSchema()
		assert.Equal(t, "object", schema.Type)
		assert.Equal(t, 0, schema.Properties.Len())
		assert.Nil(t, schema.Required)
	})
}

type temperature float64

func (t temperature) String() string { return strconv.FormatFloat(float64(t), 'f', 1, 64) + "°C" }

func TestDefinition_Call(t *testing.T) {
	ctx := context.Background()

	t.Run("string result", func(t *testing.T) {
		def := Must(getCurrentWeather, Parameters("location"))
		out, err := def.Call(ctx, `{"location":"Rome"}`)
		require.NoError(t, err)
		assert.Equal(t, "25°C, sunny", out)
	})

	t.Run("float result", func(t *testing.T) {
		def := Must(power, Parameters("base", "exponent"))
		out, err := def.Call(ctx, `{"base":2,"exponent":3}`)
		require.NoError(t, err)
		assert.Equal(t, "8", out)
	})

	t.Run("float32 result", func(t *testing.T) {
		def := Must(func() float32 { return 1.5 })
		out, err := def.Call(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, "1.5", out)
	})

	t.Run("int params from json numbers", func(t *testing.T) {
		def := Must(func(a, b int) int { return a + b }, Parameters("a", "b"))
		out, err := def.Call(ctx, `{"a":40,"b":2}`)
		require.NoError(t, err)
		assert.Equal(t, "42", out)
	})

	t.Run("struct param", func(t *testing.T) {
		type point struct {
			X int `json:"x"`
			Y int `json:"y"`
		}
		def := Must(func(p point) int { return p.X * p.Y }, Parameters("p"))
		out, err := def.Call(ctx, `{"p":{"x":3,"y":4}}`)
		require.NoError(t, err)
		assert.Equal(t, "12", out)
	})

	t.Run("context is passed through", func(t *testing.T) {
		def := Must(func(ctx context.Context, name string) string {
			return ctx.Value(ctxKey{}).(string) + " " + name
		}, Parameters("name"))
		out, err := def.Call(context.WithValue(ctx, ctxKey{}, "hello"), `{"name":"Rome"}`)
		require.NoError(t, err)
		assert.Equal(t, "hello Rome", out)
	})

	t.Run("map result is json", func(t *testing.T) {
		def := Must(func() map[string]int { return map[string]int{"a": 1} })
		out, err := def.Call(ctx, "{}")
		require.NoError(t, err)
		assert.JSONEq(t, `{"a":1}`, out)
	})

	t.Run("stringer result", func(t *testing.T) {
		def := Must(func() temperature { return 21.5 })
		out, err := def.Call(ctx, "{}")
		require.NoError(t, err)
		assert.Equal(t, "21.5°C", out)
	})

	t.Run("time result", func(t *testing.T) {
		ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		def := Must(func() time.Time { return ts })
		out, err := def.Call(ctx, "{}")
		require.NoError(t, err)
		assert.Equal(t, "2024-05-01T12:00:00Z", out)
	})

	t.Run("error result", func(t *testing.T) {
		boom := errors.New("boom")
		def := Must(func() (string, error) { return "", boom })
		_, err := def.Call(ctx, "{}")
		assert.ErrorIs(t, err, boom)
	})

	t.Run("error only result", func(t *testing.T) {
		def := Must(func() error { return nil })
		out, err := def.Call(ctx, "{}")
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("missing argument", func(t *testing.T) {
		def := Must(getCurrentWeather, Parameters("location"))
		_, err := def.Call(ctx, `{}`)
		assert.ErrorIs(t, err, ErrInvalidArguments)
	})

	t.Run("malformed json", func(t *testing.T) {
		def := Must(getCurrentWeather, Parameters("location"))
		_, err := def.Call(ctx, `{"location":`)
		assert.ErrorIs(t, err, ErrInvalidArguments)
	})

	t.Run("wrong type", func(t *testing.T) {
		def := Must(power, Parameters("base", "exponent"))
		_, err := def.Call(ctx, `{"base":"two","exponent":3}`)
		assert.ErrorIs(t, err, ErrInvalidArguments)
	})
}

func TestSet(t *testing.T) {
	weather := Must(getCurrentWeather, Name("get_current_weather"), Parameters("location"))
	pow := Must(power, Name("power"), Parameters("base", "exponent"))
	set := NewSet(weather, pow)

	assert.Equal(t, 2, set.Len())
	defs := set.Definitions()
	require.Len(t, defs, 2)
	assert.Equal(t, "get_current_weather", defs[0].Name)
	assert.Equal(t, "power", defs[1].Name)

	out, err := set.Run(context.Background(), "power", `{"base":3,"exponent":2}`)
	require.NoError(t, err)
	assert.Equal(t, "9", out)

	_, err = set.Run(context.Background(), "unknown", `{}`)
	assert.ErrorIs(t, err, ErrUnknownTool)

	set.Add(Must(func(string) string { return "replaced" }, Name("power"), Parameters("x")))
	assert.Equal(t, 2, set.Len())
	out, err = set.Run(context.Background(), "power", `{"x":"y"}`)
	require.NoError(t, err)
	assert.Equal(t, "replaced", out)

	var empty *Set
	assert.Equal(t, 0, empty.Len())
	assert.Nil(t, empty.Definitions())
}
