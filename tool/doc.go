/*
Package tool turns plain Go functions into tools a chat model can call.

A tool is described by its Go signature. Parameter schemas are reflected
with invopop/jsonschema, parameter names are supplied with functional
options, and the model's JSON arguments are decoded back into typed
values when the tool is invoked.

# Defining tools

	func getCurrentWeather(location string) string {
		switch location {
		case "Rome":
			return "25°C, sunny"
		default:
			return "Weather data not found"
		}
	}

	weather := tool.Must(getCurrentWeather,
		tool.Name("get_current_weather"),
		tool.Description("Get the current weather for a given location"),
		tool.Parameters("location"),
		tool.Describe("location", "The name of the city, e.g. Rome"),
	)

Without Parameters the arguments are exposed as param0, param1 and so on.
A function may take a context.Context as its first argument; it receives
the context of the completion that triggered the call and is not part of
the schema.

# Calling tools

Definition.Call accepts the raw JSON arguments produced by the model:

	out, err := weather.Call(ctx, `{"location":"Rome"}`)

Results are rendered as text. Strings pass through, numbers and booleans
use strconv formatting, time.Time uses RFC 3339, TextMarshaler and
Stringer are honoured and everything else is encoded as JSON. A trailing
non-nil error result is returned as the error.

A Set groups tools by name. When the model asks for a name that is not in
the set, callers send NotFound back as the tool result.
*/
package tool
