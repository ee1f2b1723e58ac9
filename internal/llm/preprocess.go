package llm

import (
	"fmt"
	"strings"
)

// NumberLines prefixes every line of text with its 1-based line number
// in the form "<n>: <line>\n". This numbering is the addressing scheme
// the model is instructed to use, so the line numbers in a parsed
// critique refer back to it directly. Pure, deterministic.
func NumberLines(text string) string {
	lines := splitLines(text)

	var b strings.Builder
	for i, line := range lines {
		fmt.Fprintf(&b, "%d: %s\n", i+1, line)
	}
	return b.String()
}

// CountLines reports how many addressable lines NumberLines produces
// for text. Used as the upper bound for strict line validation.
func CountLines(text string) int {
	return len(splitLines(text))
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	// A trailing newline yields an empty final fragment, not a line.
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
