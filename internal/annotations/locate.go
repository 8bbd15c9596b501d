package annotations

import (
	"fmt"
	"strings"
)

// Location is the result of resolving a quote against the original document.
// Offsets are 0-based character positions with an exclusive end; Line is
// 1-based. When Found is false the other fields are meaningless.
type Location struct {
	Found       bool
	Line        int
	StartOffset int
	EndOffset   int
}

// neighborhoodRadius is how many lines either side of the hint the second
// search tier covers.
const neighborhoodRadius = 2

// FindTextLocation resolves a quote to its exact position in the original
// document using a three-tier first-match-wins chain: the hinted line, then
// the lines within neighborhoodRadius of the hint in increasing order, then
// the whole document. An empty quote matches at offset 0 of whatever scope is
// searched; that is documented behavior, not an error.
func FindTextLocation(originalText, quote string, lineHint int) Location {
	lines := strings.Split(originalText, "\n")

	// Tier 1: exact match at the hinted line.
	if lineHint >= 1 && lineHint <= len(lines) {
		if loc, ok := searchLine(lines, lineHint-1, quote); ok {
			return loc
		}
	}

	// Tier 2: neighborhood around the hint, first match wins (not closest).
	if lineHint >= 1 {
		start := lineHint - 1 - neighborhoodRadius
		if start < 0 {
			start = 0
		}
		end := lineHint - 1 + neighborhoodRadius
		if end > len(lines)-1 {
			end = len(lines) - 1
		}
		for i := start; i <= end; i++ {
			if loc, ok := searchLine(lines, i, quote); ok {
				return loc
			}
		}
	}

	// Tier 3: whole document, mapping the absolute offset back to a line.
	fullText := strings.Join(lines, "\n")
	index := strings.Index(fullText, quote)
	if index >= 0 {
		offset := 0
		for i, line := range lines {
			lineLength := len(line) + 1 // +1 for the newline
			if offset+lineLength > index {
				return Location{
					Found:       true,
					Line:        i + 1,
					StartOffset: index,
					EndOffset:   index + len(quote),
				}
			}
			offset += lineLength
		}
	}

	return Location{Found: false}
}

// searchLine looks for the first occurrence of quote within a single 0-based
// line, converting the in-line index to a global document offset.
func searchLine(lines []string, lineIndex int, quote string) (Location, bool) {
	index := strings.Index(lines[lineIndex], quote)
	if index < 0 {
		return Location{}, false
	}
	start := offsetOfLine(lines, lineIndex) + index
	return Location{
		Found:       true,
		Line:        lineIndex + 1,
		StartOffset: start,
		EndOffset:   start + len(quote),
	}, true
}

// offsetOfLine returns the global character offset of the start of a 0-based
// line: the lengths of all prior lines plus one newline per prior line.
func offsetOfLine(lines []string, lineIndex int) int {
	offset := 0
	for i := 0; i < lineIndex; i++ {
		offset += len(lines[i]) + 1
	}
	return offset
}

// LocationError describes why directly supplied annotation coordinates are
// invalid for a document.
type LocationError struct {
	Message string
}

func (e *LocationError) Error() string {
	return e.Message
}

// ValidateAnnotationLocation checks coordinates that were supplied directly
// rather than derived via FindTextLocation: the line must exist, offsets must
// be ordered, and the end must not pass the end of the document.
func ValidateAnnotationLocation(text string, line, startOffset, endOffset int) error {
	totalLines := strings.Count(text, "\n") + 1

	if line < 1 || line > totalLines {
		return &LocationError{Message: fmt.Sprintf("line %d is out of range (1-%d)", line, totalLines)}
	}
	if startOffset < 0 || endOffset < startOffset {
		return &LocationError{Message: fmt.Sprintf("invalid offsets: start=%d, end=%d", startOffset, endOffset)}
	}
	if endOffset > len(text) {
		return &LocationError{Message: fmt.Sprintf("end offset %d exceeds text length %d", endOffset, len(text))}
	}
	return nil
}
