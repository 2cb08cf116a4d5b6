package lessons

import "github.com/casualjim/strix/prompt"

// CultPassSystemPrompt sets up the marketing content creator.
const CultPassSystemPrompt = `
Act as a B2B content creator. Write marketing campaign copy that reaches the audience of CultPass,
a company that built a benefit card for businesses that want to offer their employees more cultural
opportunities, such as museums, art galleries, concerts and similar experiences.
Do not explain anything, only provide the material to publish.
`

// AnalystQuery is the request a marketing analyst sends.
const AnalystQuery = "Create an instagram post for clients in the automotive industry"

// JokePrompt is the template used by the runnable lessons.
var JokePrompt = prompt.MustTemplate("Tell me a joke about {topic}.")

// QAExamplePrompt renders one question, thought and answer example.
var QAExamplePrompt = prompt.MustTemplate("Question: {input}\nThought: {thought}\nResponse: {output}")

// QAExamples are the few-shot question and answer examples.
var QAExamples = []prompt.Example{
	{
		"input":   "What is the capital of France?",
		"thought": "I need to recall the capital city of France.",
		"output":  "The capital of France is Paris.",
	},
	{
		"input":   "Who wrote '1984'?",
		"thought": "I need to remember the author of the book '1984'.",
		"output":  "George Orwell wrote '1984'.",
	},
}

// QAFewShot asks a new question after the examples.
func QAFewShot() prompt.FewShot {
	return prompt.FewShot{
		Examples:      QAExamples,
		ExamplePrompt: QAExamplePrompt,
		Prefix:        "Here are some examples of questions and answers:",
		Suffix:        prompt.MustTemplate("Now, answer the following question:\nQuestion: {input}\nThought:"),
	}
}

// UserInfo is the structured output of the parser lesson.
type UserInfo struct {
	Name    string `json:"name" default:"Guest" jsonschema:"description=User's name. default is 'Guest'"`
	Country string `json:"country" default:"Unknown" jsonschema:"description=User's country of residence. default is 'Unknown'"`
}
