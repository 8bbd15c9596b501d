// Package parsing converts a teacher's free-form rubric text into a
// structured rubric, and synthesizes a default rubric when no structure can
// be recovered. Parsing is permissive pattern matching, not a strict grammar,
// but it is fully deterministic for a given input.
package parsing

// EmptyInputError represents rubric text that is empty or whitespace-only.
// The caller should fall back to CreateDefaultRubric rather than retry.
type EmptyInputError struct{}

func (e *EmptyInputError) Error() string {
	return "criteria text is empty"
}

// NoCategoriesFoundError represents rubric text in which no category headers
// could be recognized. The caller should fall back to CreateDefaultRubric.
type NoCategoriesFoundError struct{}

func (e *NoCategoriesFoundError) Error() string {
	return `no categories found in rubric text, expected format: "**Category (XX pts):**"`
}
