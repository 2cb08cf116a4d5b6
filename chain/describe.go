package chain

import (
	"fmt"
	"strings"
)

// Describe lists the steps of r in execution order.
func Describe(r any) []string {
	if s, ok := r.(stepper); ok {
		return s.Steps()
	}
	return []string{stepName(r)}
}

func stepName(r any) string {
	if n, ok := r.(namer); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", r)
}

// Graph draws the steps of r top to bottom.
//
//	+----------------+
//	| PromptTemplate |
//	+----------------+
//	        |
//	        v
func Graph(r any) string {
	steps := Describe(r)
	width := 0
	for _, s := range steps {
		width = max(width, len(s))
	}
	border := "+" + strings.Repeat("-", width+2) + "+\n"
	arrowPad := strings.Repeat(" ", width/2+2)

	var sb strings.Builder
	for i, s := range steps {
		if i > 0 {
			sb.WriteString(arrowPad + "|\n")
			sb.WriteString(arrowPad + "v\n")
		}
		sb.WriteString(border)
		fmt.Fprintf(&sb, "| %-*s |\n", width, s)
		sb.WriteString(border)
	}
	return sb.String()
}
