package prompt

import (
	"strings"
	"testing"

	"github.com/casualjim/strix/messages"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var qaExamples = []Example{
	{"input": "What is the capital of France?", "thought": "I need to recall the capital city of France.", "output": "The capital of France is Paris."},
	{"input": "Who wrote '1984'?", "thought": "I need to remember the author of the book '1984'.", "output": "George Orwell wrote '1984'."},
}

func TestFewShot_Format(t *testing.T) {
	fs := FewShot{
		Examples:      qaExamples,
		ExamplePrompt: MustTemplate("Question: {input}\nThought: {thought}\nResponse: {output}"),
		Prefix:        "Here are some examples of questions and answers:",
		Suffix:        MustTemplate("Now, answer the following question:\nQuestion: {input}\nThought:"),
	}

	out, err := fs.Format(Values{"input": "What is the largest planet in our solar system?"})
	require.NoError(t, err)

	parts := strings.Split(out, DefaultSeparator)
	require.Len(t, parts, 4)
	assert.Equal(t, "Here are some examples of questions and answers:", parts[0])
	assert.Equal(t, "Question: What is the capital of France?\nThought: I need to recall the capital city of France.\nResponse: The capital of France is Paris.", parts[1])
	assert.Equal(t, "Now, answer the following question:\nQuestion: What is the largest planet in our solar system?\nThought:", parts[3])
}

func TestFewShot_Errors(t *testing.T) {
	_, err := FewShot{}.Format(nil)
	require.ErrorIs(t, err, ErrMalformedTemplate)

	fs := FewShot{
		Examples:      []Example{{"input": "only input"}},
		ExamplePrompt: MustTemplate("{input} {output}"),
	}
	_, err = fs.Format(nil)
	require.ErrorIs(t, err, ErrMissingVariable)

	fs = FewShot{ExamplePrompt: MustTemplate("x"), Suffix: MustTemplate("{input}"), Separator: "|"}
	_, err = fs.Format(Values{})
	require.ErrorIs(t, err, ErrMissingVariable)
}

func TestFewShotChat(t *testing.T) {
	t.Run("instructions then pairs", func(t *testing.T) {
		mem, err := FewShotChat{
			Instructions: "You are BEEP-42",
			Examples:     []Example{{"input": "Hello!", "output": "BEEP. GREETINGS, HUMAN."}, {"input": "What is 2+2?", "output": "RESULT: 4."}},
		}.Memory()
		require.NoError(t, err)

		var roles, texts []string
		for m := range mem.MessagesIter() {
			roles = append(roles, m.Role())
			texts = append(texts, m.Text())
		}
		assert.Equal(t, []string{"system", "user", "assistant", "user", "assistant"}, roles)
		assert.Equal(t, "BEEP. GREETINGS, HUMAN.", texts[2])
	})

	t.Run("custom example messages", func(t *testing.T) {
		mem, err := FewShotChat{
			Examples:        []Example{{"input": "hi", "output": "hello"}},
			ExampleMessages: []MessageTemplate{System("Be kind"), Human("{input}"), AI("{output}")},
		}.Memory()
		require.NoError(t, err)
		assert.Equal(t, 3, mem.Len())
		first := mem.Messages()[0]
		assert.Equal(t, messages.RoleSystem, first.Role())
	})

	t.Run("bad role", func(t *testing.T) {
		_, err := FewShotChat{
			Examples:        []Example{{"input": "hi"}},
			ExampleMessages: []MessageTemplate{{Role: "narrator", Template: MustTemplate("{input}")}},
		}.Memory()
		require.ErrorIs(t, err, ErrMalformedTemplate)
	})
}

func TestLoadExamples(t *testing.T) {
	src := `
- input: What is the capital of France?
  output: The capital of France is Paris.
- input: Who wrote '1984'?
  output: George Orwell wrote '1984'.
`
	examples, err := LoadExamples(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, examples, 2)
	assert.Equal(t, "George Orwell wrote '1984'.", examples[1]["output"])

	examples, err = LoadExamples(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, examples)

	_, err = LoadExamples(strings.NewReader("- [unclosed"))
	assert.Error(t, err)
}
