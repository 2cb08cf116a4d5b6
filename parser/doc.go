/*
Package parser turns raw model replies into Go values.

	var p parser.Boolean
	ok, err := p.Parse("Yes")

String returns the reply unchanged, Boolean recognises a small set of
affirmative words, Date finds the first YYYY-MM-DD date and JSON decodes
the first JSON document in the reply into a struct, applying default tags
and validation rules.

Schema builds the strict JSON schema the OpenAI provider uses for
structured output, so a reply can be requested and parsed with the same type:

	type UserInfo struct {
		Name    string `json:"name" default:"Guest"`
		Country string `json:"country" default:"Unknown"`
	}

	params.ResponseSchema = parser.Schema[UserInfo]("user_info", "Details about the user")
	info, err := parser.NewJSON[UserInfo]().Parse(reply)
*/
package parser
