package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/casualjim/strix/internal/fakellm"
	"github.com/casualjim/strix/messages"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	model := fakellm.New()
	a, err := New(Model(model))
	require.NoError(t, err)

	assert.Equal(t, "Agent", a.Name())
	assert.Equal(t, "Personal Assistant", a.Role())
	assert.Equal(t, "Help users with any question", a.Instructions())
	assert.InDelta(t, 0.0, a.Temperature(), 0)
	assert.Same(t, model, a.Model())

	require.Equal(t, 1, a.Memory().Len())
	first, _ := a.Memory().Last()
	assert.Equal(t, messages.RoleSystem, first.Role())
	assert.Equal(t, "You're an AI Agent, your role is Personal Assistant, and you need to Help users with any question", first.Text())
}

func TestNew_DefaultModel(t *testing.T) {
	a, err := New()
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", a.Model().Name())
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Model(fakellm.New()), Role(""), Instructions(" "), Temperature(3))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "role is required")
	assert.Contains(t, err.Error(), "instructions are required")
	assert.Contains(t, err.Error(), "temperature 3 is outside [0, 2]")

	assert.Panics(t, func() { Must(Model(fakellm.New()), Temperature(-1)) })
}

func TestInvoke(t *testing.T) {
	model := fakellm.New(fakellm.Reply{Content: "Paris"})
	a := Must(Model(model), Role("Travel Assistant"), Instructions("Provide travel recommendations."), Temperature(0.7))

	out, err := a.Invoke(context.Background(), "What is the capital of France?")
	require.NoError(t, err)
	assert.Equal(t, "Paris", out)

	call := model.LastCall()
	assert.Equal(t, []string{"system", "user"}, call.Roles())
	assert.Equal(t, "You're an AI Agent, your role is Travel Assistant, and you need to Provide travel recommendations.", call.Text()[0])
	assert.InDelta(t, 0.7, *call.Params.Temperature, 0)
	assert.Equal(t, 3, a.Memory().Len())
}

func TestInvokeOptions_Loops(t *testing.T) {
	tests := []struct {
		name string
		opts InvokeOptions
		want int
	}{
		{"no reflection", InvokeOptions{}, 1},
		{"no reflection ignores iterations", InvokeOptions{MaxIter: 3}, 1},
		{"reflection below minimum", InvokeOptions{SelfReflection: true, MaxIter: 0}, 2},
		{"reflection once", InvokeOptions{SelfReflection: true, MaxIter: 1}, 2},
		{"reflection twice", InvokeOptions{SelfReflection: true, MaxIter: 2}, 4},
		{"reflection above maximum", InvokeOptions{SelfReflection: true, MaxIter: 10}, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.opts.Loops())
		})
	}
}

func TestReflect(t *testing.T) {
	critique := `{"original_response":"Bene","revisions_needed":"Be warmer","updated_response":"Sto bene, grazie!"}`
	model := fakellm.New(
		fakellm.Reply{Content: "Bene"},
		fakellm.Reply{Content: critique},
		fakellm.Reply{Content: "Sto bene, grazie!"},
		fakellm.Reply{Content: critique},
	)
	a := Must(Model(model), Verbose(true))

	out, err := a.Reflect(context.Background(), "Ciao, come va?", 2)
	require.NoError(t, err)
	assert.Equal(t, critique, out)
	assert.Len(t, model.Calls(), 4)

	roles := make([]string, 0, a.Memory().Len())
	texts := make([]string, 0, a.Memory().Len())
	for m := range a.Memory().MessagesIter() {
		roles = append(roles, m.Role())
		texts = append(texts, m.Text())
	}
	assert.Equal(t, []string{"system", "user", "assistant", "user", "assistant", "user", "assistant", "user", "assistant"}, roles)
	assert.Equal(t, DefaultCritiquePrompt, texts[3])
	assert.Equal(t, DefaultCritiquePrompt, texts[5])
	assert.Equal(t, DefaultCritiquePrompt, texts[7])

	c, err := ParseCritique(out)
	require.NoError(t, err)
	assert.Equal(t, "Sto bene, grazie!", c.UpdatedResponse)
}

func TestReflect_Clamped(t *testing.T) {
	replies := make([]fakellm.Reply, 6)
	for i := range replies {
		replies[i] = fakellm.Reply{Content: "answer"}
	}
	model := fakellm.New(replies...)
	a := Must(Model(model), CritiquePrompt("Reflect on your previous response"))

	_, err := a.Reflect(context.Background(), "hello", 99)
	require.NoError(t, err)
	assert.Len(t, model.Calls(), 6)
}

func TestRun_ErrorRollsBack(t *testing.T) {
	model := fakellm.New(
		fakellm.Reply{Content: "first"},
		fakellm.Reply{Err: errors.New("overloaded")},
	)
	a := Must(Model(model))

	_, err := a.Reflect(context.Background(), "hello", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "completion 2 of 2")
	assert.Equal(t, 1, a.Memory().Len(), "only the system prompt remains")
}
