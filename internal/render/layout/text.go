package layout

import (
	"strings"
	"unicode/utf8"
)

// WrapText breaks text into lines of at most maxChars characters, measured in
// runes rather than rendered width. Words are never split: a word longer than
// maxChars sits alone on its own line. Empty text yields a single empty line.
// A non-positive maxChars disables wrapping and returns text as one line.
func WrapText(text string, maxChars int) []string {
	if maxChars <= 0 {
		return []string{text}
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	lines := make([]string, 0, len(words))
	line := words[0]
	for _, word := range words[1:] {
		candidate := line + " " + word
		if utf8.RuneCountInString(candidate) > maxChars {
			lines = append(lines, line)
			line = word
			continue
		}
		line = candidate
	}
	return append(lines, line)
}

// LinePositions returns the top y coordinate of each of n lines laid out
// downwards from y with a fixed line height.
func LinePositions(n, y, lineHeight int) []int {
	if n <= 0 {
		return nil
	}
	out := make([]int, n)
	for i := range out {
		out[i] = y + i*lineHeight
	}
	return out
}
