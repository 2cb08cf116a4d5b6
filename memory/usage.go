package memory

// Usage counts the tokens consumed by the completions made over a memory.
type Usage struct {
	PromptTokens     int64 `json:"prompt_tokens"`
	CompletionTokens int64 `json:"completion_tokens"`
	TotalTokens      int64 `json:"total_tokens"`
	Requests         int64 `json:"requests"`
}

// AddUsage adds other to u. A nil other is ignored.
func (u *Usage) AddUsage(other *Usage) {
	if other == nil {
		return
	}
	u.PromptTokens += other.PromptTokens
	u.CompletionTokens += other.CompletionTokens
	u.TotalTokens += other.TotalTokens
	u.Requests += other.Requests
}

// IsZero reports whether nothing was recorded.
func (u Usage) IsZero() bool {
	return u == Usage{}
}
