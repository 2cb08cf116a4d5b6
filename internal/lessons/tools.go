package lessons

import (
	"math"

	"github.com/casualjim/strix/tool"
)

var weatherData = map[string]string{
	"Rome":     "25°C, sunny",
	"London":   "15°C, cloudy",
	"New York": "20°C, rainy",
}

// WeatherNotFound is the answer for cities without data.
const WeatherNotFound = "Weather data not found"

// GetCurrentWeather returns canned weather for a city.
func GetCurrentWeather(location string) string {
	if w, ok := weatherData[location]; ok {
		return w
	}
	return WeatherNotFound
}

// Power returns base raised to exponent.
func Power(base, exponent float64) float64 {
	return math.Pow(base, exponent)
}

// Tools returns the weather and power tools.
func Tools() *tool.Set {
	return tool.NewSet(
		tool.Must(GetCurrentWeather,
			tool.Name("get_current_weather"),
			tool.Description("Get the current weather for a given location"),
			tool.Parameters("location"),
			tool.Describe("location", "The name of the city"),
		),
		tool.Must(Power,
			tool.Name("power"),
			tool.Description("Returns the base raised to the exponent."),
			tool.Parameters("base", "exponent"),
			tool.Describe("base", "The base value"),
			tool.Describe("exponent", "The exponent value"),
		),
	)
}
