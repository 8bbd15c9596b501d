// Package annotations resolves LLM-produced annotation candidates against the
// original document text: it maintains the line-numbering scheme shown to the
// model and deterministically maps cited quotes back to exact character
// offsets, tolerating the model's off-by-a-few-lines errors.
package annotations

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// minLineNumberDigits is the minimum zero-padded width of the line-number
// prefix; it widens automatically for documents with more than 999 lines.
const minLineNumberDigits = 3

var lineNumberPrefixPattern = regexp.MustCompile(`^\d+\|\s`)

// AddLineNumbers prefixes each line with a zero-padded 1-based line number in
// the form "001| ". The numbering is a reference aid for the LLM only and is
// never part of the document for offset purposes. RemoveLineNumbers is its
// exact inverse.
func AddLineNumbers(text string) string {
	lines := strings.Split(text, "\n")

	digits := len(strconv.Itoa(len(lines)))
	if digits < minLineNumberDigits {
		digits = minLineNumberDigits
	}

	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%0*d| %s", digits, i+1, line)
	}
	return b.String()
}

// RemoveLineNumbers strips the "001| " prefix added by AddLineNumbers from
// each line.
func RemoveLineNumbers(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = lineNumberPrefixPattern.ReplaceAllString(line, "")
	}
	return strings.Join(lines, "\n")
}
