package chatbot

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/casualjim/strix/internal/fakellm"
	"github.com/casualjim/strix/messages"
	"github.com/casualjim/strix/prompt"
	"github.com/casualjim/strix/stream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var robotExamples = []prompt.Example{
	{"input": "Hello!", "output": "BEEP. GREETINGS, HUMAN."},
	{"input": "What is 2+2?", "output": "RESULT: 4."},
}

func TestNew(t *testing.T) {
	bot, err := New("Beep 42", "You are BEEP-42", robotExamples, Model(fakellm.New()))
	require.NoError(t, err)

	assert.Equal(t, "Beep 42", bot.Name())
	var roles []string
	for _, m := range bot.Messages() {
		roles = append(roles, m.Role())
	}
	assert.Equal(t, []string{"system", "user", "assistant", "user", "assistant"}, roles)
}

func TestNew_Validation(t *testing.T) {
	_, err := New("", "instructions", nil, Model(fakellm.New()))
	require.Error(t, err)

	_, err = New("bot", "", nil, Model(fakellm.New()))
	require.Error(t, err)

	_, err = New("bot", "hi", nil, Model(fakellm.New()), Temperature(5))
	require.Error(t, err)

	_, err = New("bot", "hi", []prompt.Example{{"input": "only input"}}, Model(fakellm.New()))
	require.ErrorIs(t, err, prompt.ErrMissingVariable)
}

func TestInvoke(t *testing.T) {
	model := fakellm.New(fakellm.Reply{Content: "BEEP. AFFIRMATIVE. I AM NOT HAL."})
	bot, err := New("Beep 42", "You are BEEP-42", robotExamples, Model(model), Temperature(0.2))
	require.NoError(t, err)

	out, err := bot.Invoke(context.Background(), "HAL, is that you?")
	require.NoError(t, err)
	assert.Equal(t, "BEEP. AFFIRMATIVE. I AM NOT HAL.", out)

	call := model.LastCall()
	assert.Len(t, call.Messages, 6)
	assert.Equal(t, "HAL, is that you?", call.Text()[5])
	assert.InDelta(t, 0.2, *call.Params.Temperature, 0)

	assert.Equal(t, 7, bot.Memory().Len())
	bot.Reset()
	assert.Equal(t, 5, bot.Memory().Len())
}

func TestInvoke_ErrorKeepsHistory(t *testing.T) {
	bot, err := New("bot", "hi", robotExamples, Model(fakellm.New(fakellm.Reply{Err: errors.New("boom")})))
	require.NoError(t, err)

	_, err = bot.Invoke(context.Background(), "hello")
	require.Error(t, err)
	assert.Equal(t, 5, bot.Memory().Len())
}

func TestInvokeStream(t *testing.T) {
	model := fakellm.New(fakellm.Reply{Content: "BEEP BOOP. HELLO."})
	bot, err := New("bot", "hi", robotExamples, Model(model))
	require.NoError(t, err)

	var sb strings.Builder
	started := false
	out, err := bot.InvokeStream(context.Background(), "hello", stream.Handler{
		OnStart: func() { started = true },
		OnChunk: func(c string) { sb.WriteString(c) },
	})
	require.NoError(t, err)
	assert.True(t, started)
	assert.Equal(t, "BEEP BOOP. HELLO.", out)
	assert.Equal(t, out, sb.String())
	assert.True(t, model.LastCall().Params.Stream)

	last, _ := bot.Memory().Last()
	assert.Equal(t, messages.RoleAssistant, last.Role())
	assert.Equal(t, out, last.Text())
}

func TestInvokeStream_Interrupted(t *testing.T) {
	model := fakellm.New(fakellm.Reply{Content: "BEEP BOOP SYSTEM", HangAfter: 2})
	bot, err := New("bot", "hi", robotExamples, Model(model))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var n int
	out, err := bot.InvokeStream(ctx, "hello", stream.Handler{OnChunk: func(string) {
		n++
		if n == 2 {
			cancel()
		}
	}})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "BEEP BOOP ", out)
	assert.Equal(t, 7, bot.Memory().Len())
}

func TestInvokeStream_FailureRollsBack(t *testing.T) {
	bot, err := New("bot", "hi", robotExamples, Model(fakellm.New(fakellm.Reply{Err: errors.New("boom")})))
	require.NoError(t, err)

	_, err = bot.InvokeStream(context.Background(), "hello", stream.Handler{})
	require.Error(t, err)
	assert.Equal(t, 5, bot.Memory().Len())
}

func TestBuiltinPersonas(t *testing.T) {
	assert.Subset(t, PersonaNames(), []string{"BEEP-42", "TechHelper"})

	beep := MustPersona("BEEP-42")
	assert.Len(t, beep.Examples, 10)
	assert.True(t, strings.HasPrefix(beep.Instructions, "You are BEEP-42, an advanced robotic assistant."))
	assert.Equal(t, "gpt-4o-mini", beep.Model)

	tech := MustPersona("TechHelper")
	assert.Len(t, tech.Examples, 6)
	assert.Contains(t, tech.Instructions, "informative manner. You are an expert")

	assert.Panics(t, func() { MustPersona("HAL-9000") })
}

func TestFromPersona(t *testing.T) {
	model := fakellm.New(fakellm.Reply{Content: "Fun fact!"})
	bot, err := FromPersona(MustPersona("TechHelper"), Model(model))
	require.NoError(t, err)
	assert.Equal(t, 13, bot.Memory().Len())

	out, err := bot.Invoke(context.Background(), "Hi there! Can you tell me a fun fact about programming?")
	require.NoError(t, err)
	assert.Equal(t, "Fun fact!", out)
}

func TestLoadAndRegisterPersona(t *testing.T) {
	src := `
name: Pirate
instructions: Talk like a pirate.
temperature: 0.5
examples:
  - input: Hello
    output: Ahoy!
`
	p, err := LoadPersona(strings.NewReader(src))
	require.NoError(t, err)
	assert.InDelta(t, 0.5, p.Temperature, 0)
	require.NoError(t, RegisterPersona(p))

	got, ok := Lookup("Pirate")
	require.True(t, ok)
	assert.Equal(t, "Talk like a pirate.", got.Instructions)

	_, err = LoadPersona(strings.NewReader("name: Nobody\n"))
	require.Error(t, err)

	require.Error(t, RegisterPersona(Persona{Name: "hot", Instructions: "x", Temperature: 3}))
}
