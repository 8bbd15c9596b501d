package types

// AnnotationStatus tracks who last touched an annotation.
type AnnotationStatus string

// Annotation lifecycle states.
const (
	StatusAISuggested     AnnotationStatus = "ai_suggested"
	StatusTeacherEdited   AnnotationStatus = "teacher_edited"
	StatusTeacherRejected AnnotationStatus = "teacher_rejected"
	StatusTeacherApproved AnnotationStatus = "teacher_approved"
	StatusTeacherCreated  AnnotationStatus = "teacher_created"
)

// Severity is the annotation severity level. Empty means unset.
type Severity string

// Recognized severity values.
const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// RawAnnotation is an annotation candidate as produced by the LLM, before
// normalization. The line number is a hint, not authoritative, and the quote
// may be slightly misplaced. Category is an open string carrying a rubric
// criterion id, not a closed enum, so arbitrary rubric criteria keep working.
type RawAnnotation struct {
	Line        int    `json:"line"`
	Quote       string `json:"quote"`
	Category    string `json:"category"`
	Suggestion  string `json:"suggestion"`
	Severity    string `json:"severity,omitempty"`
	CriterionID string `json:"criterion_id,omitempty"`
}

// Annotation is a normalized annotation with an authoritative 1-based line
// number and exact character offsets into the original, unnumbered document
// text (0-based start, exclusive end). Line and offsets of -1 mark an
// annotation whose quote could not be located.
type Annotation struct {
	AnnotationID string           `json:"annotation_id,omitempty"`
	SubmissionID string           `json:"submission_id"`
	LineNumber   int              `json:"line_number"`
	StartOffset  int              `json:"start_offset"`
	EndOffset    int              `json:"end_offset"`
	Quote        string           `json:"quote"`
	Category     string           `json:"category"`
	Suggestion   string           `json:"suggestion"`
	Severity     Severity         `json:"severity,omitempty"`
	Status       AnnotationStatus `json:"status"`
	CriterionID  string           `json:"criterion_id,omitempty"`
	AIPayload    *RawAnnotation   `json:"ai_payload,omitempty"`
}
