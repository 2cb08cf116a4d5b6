package openai

import (
	"sync"

	"github.com/casualjim/strix/internal/registry"
	"github.com/casualjim/strix/provider"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

var modelRegistry = registry.New[provider.Model]()

// Models lists the names of the models handed out by Model so far.
func Models() []string {
	return modelRegistry.Names()
}

// GPT4oMini is the default model for every lesson.
func GPT4oMini(opts ...option.RequestOption) provider.Model {
	return Model(openai.ChatModelGPT4oMini, opts...)
}

func GPT4o(opts ...option.RequestOption) provider.Model {
	return Model(openai.ChatModelGPT4o, opts...)
}

func GPT35Turbo(opts ...option.RequestOption) provider.Model {
	return Model(openai.ChatModelGPT3_5Turbo, opts...)
}

// Model returns the registered model with the given name, creating it on
// first use. Request options only apply to the first call for a name.
func Model(name string, opts ...option.RequestOption) provider.Model {
	m, _ := modelRegistry.GetOrAdd(name, func() provider.Model {
		return &model{
			name: name,
			opts: opts,
		}
	})
	return m
}

// NewModel returns a model that is not shared through the registry.
func NewModel(name string, opts ...option.RequestOption) provider.Model {
	return &model{name: name, opts: opts}
}

var _ provider.Model = (*model)(nil)

type model struct {
	name string
	opts []option.RequestOption

	prov     provider.Provider
	provOnce sync.Once
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Provider() provider.Provider {
	m.provOnce.Do(func() {
		m.prov = New(m.opts...)
	})
	return m.prov
}
