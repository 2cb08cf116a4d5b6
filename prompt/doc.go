// Package prompt renders prompt templates with {name} placeholders, plus
// few-shot prompts built from example sets.
//
//	joke := prompt.MustTemplate("Tell me a joke about {topic}.")
//	text, err := joke.Format(prompt.Values{"topic": "cats"})
//
// Literal braces are written doubled: "{{" renders "{" and "}}" renders "}".
package prompt
