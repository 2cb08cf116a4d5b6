package parser

// Critique is the JSON object a self reflection turn answers with.
type Critique struct {
	OriginalResponse string `json:"original_response" jsonschema:"description=The response being reviewed"`
	RevisionsNeeded  string `json:"revisions_needed" jsonschema:"description=Mistakes and possible improvements"`
	UpdatedResponse  string `json:"updated_response" jsonschema:"description=The revised response"`
}

// ParseCritique reads a Critique from a reply.
func ParseCritique(text string) (Critique, error) {
	return NewJSON[Critique]().Parse(text)
}
