package jsonx

import (
	"testing"

	"github.com/invopop/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

func TestToDynamicJSON(t *testing.T) {
	t.Run("struct", func(t *testing.T) {
		got, err := ToDynamicJSON(struct {
			Name string `json:"name"`
			Age  int    `json:"age"`
		}{Name: "Guest", Age: 30})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"name": "Guest", "age": float64(30)}, got)
	})

	t.Run("schema", func(t *testing.T) {
		props := orderedmap.New[string, *jsonschema.Schema]()
		props.Set("location", &jsonschema.Schema{Type: "string"})
		got, err := ToDynamicJSON(&jsonschema.Schema{Type: "object", Properties: props, Required: []string{"location"}})
		require.NoError(t, err)
		assert.Equal(t, "object", got["type"])
		assert.Equal(t, []any{"location"}, got["required"])
		assert.Contains(t, got["properties"], "location")
	})

	t.Run("not an object", func(t *testing.T) {
		_, err := ToDynamicJSON([]string{"a"})
		assert.Error(t, err)
	})

	t.Run("unsupported value", func(t *testing.T) {
		_, err := ToDynamicJSON(make(chan int))
		assert.Error(t, err)
	})
}
