package stream

import "strings"

// WordCounter keeps a running word count over the chunks of a stream.
// Words split across chunks are counted once.
type WordCounter struct {
	sb strings.Builder
}

// Add appends chunk and returns the cumulative word count.
func (c *WordCounter) Add(chunk string) int {
	c.sb.WriteString(chunk)
	return c.Count()
}

// Count returns the number of words received so far.
func (c *WordCounter) Count() int {
	return len(strings.Fields(c.sb.String()))
}

// Text returns everything received so far.
func (c *WordCounter) Text() string {
	return c.sb.String()
}
