// Package config loads the API settings shared by the lessons from the
// environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/casualjim/strix/provider"
	"github.com/casualjim/strix/provider/openai"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/openai/openai-go/option"
	"github.com/spf13/pflag"
)

// Environment variables read by Load.
const (
	EnvAPIKey       = "OPENAI_API_KEY"
	EnvBaseURL      = "OPENAI_BASE_URL"
	EnvOrganization = "OPENAI_ORG_ID"
	EnvModel        = "STRIX_MODEL"
	EnvTemperature  = "STRIX_TEMPERATURE"
)

// DefaultModel is used when STRIX_MODEL is not set.
const DefaultModel = "gpt-4o-mini"

// Config holds the API settings.
type Config struct {
	APIKey       string  `validate:"required"`
	BaseURL      string  `validate:"omitempty,url"`
	Organization string  `validate:"omitempty"`
	Model        string  `validate:"required"`
	Temperature  float64 `validate:"gte=0,lte=2"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads files (".env" when none are given) into the environment without
// overriding variables that are already set, then builds the config. Missing
// files are ignored.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds the config from a variable lookup such as os.LookupEnv.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	get := func(key, fallback string) string {
		if v, ok := lookup(key); ok && v != "" {
			return v
		}
		return fallback
	}

	cfg := &Config{
		APIKey:       get(EnvAPIKey, ""),
		BaseURL:      get(EnvBaseURL, ""),
		Organization: get(EnvOrganization, ""),
		Model:        get(EnvModel, DefaultModel),
	}
	if raw := get(EnvTemperature, ""); raw != "" {
		t, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvTemperature, err)
		}
		cfg.Temperature = t
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the required settings and the temperature range.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// BindFlags registers --model and --temperature on fs, defaulting to the
// loaded values. Call Validate again after parsing.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.Model, "model", "m", c.Model, "chat model name")
	fs.Float64VarP(&c.Temperature, "temperature", "t", c.Temperature, "sampling temperature in [0, 2]")
}

// RequestOptions turns the config into openai client options.
func (c *Config) RequestOptions() []option.RequestOption {
	opts := []option.RequestOption{option.WithAPIKey(c.APIKey)}
	if c.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(c.BaseURL))
	}
	if c.Organization != "" {
		opts = append(opts, option.WithHeader("OpenAI-Organization", c.Organization))
	}
	return opts
}

// ChatModel returns a model handle for c.Model that uses these settings.
func (c *Config) ChatModel() provider.Model {
	return openai.NewModel(c.Model, c.RequestOptions()...)
}

// NamedModel is ChatModel for another model name, with the same credentials.
func (c *Config) NamedModel(name string) provider.Model {
	return openai.NewModel(name, c.RequestOptions()...)
}
