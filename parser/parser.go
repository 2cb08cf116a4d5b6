package parser

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"
)

var (
	// ErrNoDate is returned when a reply contains no YYYY-MM-DD date.
	ErrNoDate = errors.New("no date found")
	// ErrNoJSON is returned when a reply contains no JSON document.
	ErrNoJSON = errors.New("no JSON found")
)

// Parser converts the text of a reply into a value.
type Parser[T any] interface {
	Parse(text string) (T, error)
}

// Func adapts a function to Parser.
type Func[T any] func(string) (T, error)

func (f Func[T]) Parse(text string) (T, error) {
	return f(text)
}

// String returns the reply as is.
type String struct{}

func (String) Parse(text string) (string, error) {
	return text, nil
}

// affirmative replies, compared after lower casing and trimming.
var affirmative = []string{"true", "yes", "sì", "si", "1"}

// Boolean is true only for an affirmative reply.
type Boolean struct{}

func (Boolean) Parse(text string) (bool, error) {
	return slices.Contains(affirmative, strings.ToLower(strings.TrimSpace(text))), nil
}

// DateLayout is the only date layout Date understands.
const DateLayout = time.DateOnly

var datePattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// Date parses the first YYYY-MM-DD date in the reply.
type Date struct{}

func (Date) Parse(text string) (time.Time, error) {
	match := datePattern.FindString(text)
	if match == "" {
		return time.Time{}, fmt.Errorf("%w in %q", ErrNoDate, text)
	}
	t, err := time.Parse(DateLayout, match)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", match, err)
	}
	return t, nil
}
