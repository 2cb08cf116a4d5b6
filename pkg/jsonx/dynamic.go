// Package jsonx converts Go values into the loosely typed JSON shapes that
// the openai client expects for function parameters and response schemas.
package jsonx

import json "github.com/goccy/go-json"

// ToDynamicJSON round trips val through JSON and returns the resulting object.
// It fails when val does not marshal to a JSON object.
func ToDynamicJSON(val any) (map[string]any, error) {
	b, err := json.Marshal(val)
	if err != nil {
		return nil, err
	}
	result := make(map[string]any)
	if err := json.Unmarshal(b, &result); err != nil {
		return nil, err
	}
	return result, nil
}
