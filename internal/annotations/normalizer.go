package annotations

import (
	"fmt"
	"strings"

	"github.com/jonathan/essay-grader/internal/types"
)

// UnresolvedAnnotation is a raw candidate that could not be resolved, paired
// with the reason. Unresolved candidates are first-class data, not errors, so
// one bad quote never costs the rest of the batch.
type UnresolvedAnnotation struct {
	types.RawAnnotation
	Reason string `json:"reason"`
}

// NormalizationStats reports batch counts for observability.
type NormalizationStats struct {
	Total      int `json:"total"`
	Resolved   int `json:"resolved"`
	Unresolved int `json:"unresolved"`
}

// NormalizationResult is the outcome of normalizing one batch of candidates.
type NormalizationResult struct {
	Normalized []types.Annotation     `json:"normalized"`
	Unresolved []UnresolvedAnnotation `json:"unresolved"`
	Stats      NormalizationStats     `json:"stats"`
}

// NormalizeAnnotations validates and resolves a batch of LLM-produced
// annotation candidates against the original document text. Each candidate is
// processed independently: category must be non-empty (it is an open rubric
// criterion id, not a closed set), severity is normalized, the quote is
// located via the three-tier search, and the resulting coordinates are
// re-checked before an annotation is emitted with the original candidate kept
// as its audit payload.
func NormalizeAnnotations(rawAnnotations []types.RawAnnotation, originalText, submissionID string) NormalizationResult {
	normalized := make([]types.Annotation, 0, len(rawAnnotations))
	unresolved := make([]UnresolvedAnnotation, 0)

	for _, raw := range rawAnnotations {
		if strings.TrimSpace(raw.Category) == "" {
			unresolved = append(unresolved, UnresolvedAnnotation{
				RawAnnotation: raw,
				Reason:        "annotation has no category",
			})
			continue
		}

		location := FindTextLocation(originalText, raw.Quote, raw.Line)
		if !location.Found {
			unresolved = append(unresolved, UnresolvedAnnotation{
				RawAnnotation: raw,
				Reason:        fmt.Sprintf("could not locate quote %q near line %d", raw.Quote, raw.Line),
			})
			continue
		}

		if err := ValidateAnnotationLocation(originalText, location.Line, location.StartOffset, location.EndOffset); err != nil {
			unresolved = append(unresolved, UnresolvedAnnotation{
				RawAnnotation: raw,
				Reason:        err.Error(),
			})
			continue
		}

		payload := raw
		normalized = append(normalized, types.Annotation{
			SubmissionID: submissionID,
			LineNumber:   location.Line,
			StartOffset:  location.StartOffset,
			EndOffset:    location.EndOffset,
			Quote:        raw.Quote,
			Category:     raw.Category,
			Suggestion:   raw.Suggestion,
			Severity:     normalizeSeverity(raw.Severity),
			Status:       types.StatusAISuggested,
			CriterionID:  raw.CriterionID,
			AIPayload:    &payload,
		})
	}

	return NormalizationResult{
		Normalized: normalized,
		Unresolved: unresolved,
		Stats: NormalizationStats{
			Total:      len(rawAnnotations),
			Resolved:   len(normalized),
			Unresolved: len(unresolved),
		},
	}
}

// unmatchedSentinel marks an annotation whose quote could not be located.
const unmatchedSentinel = -1

// CreateUnmatchedAnnotation builds a placeholder annotation with line and
// offsets forced to the -1 sentinel so unresolved LLM feedback can still be
// surfaced to a reviewer instead of being dropped.
func CreateUnmatchedAnnotation(raw types.RawAnnotation, submissionID, reason string) types.Annotation {
	category := raw.Category
	if strings.TrimSpace(category) == "" {
		category = "Other"
	}

	payload := raw
	return types.Annotation{
		SubmissionID: submissionID,
		LineNumber:   unmatchedSentinel,
		StartOffset:  unmatchedSentinel,
		EndOffset:    unmatchedSentinel,
		Quote:        raw.Quote,
		Category:     category,
		Suggestion:   fmt.Sprintf("[Unmatched: %s] %s", reason, raw.Suggestion),
		Severity:     normalizeSeverity(raw.Severity),
		Status:       types.StatusAISuggested,
		CriterionID:  raw.CriterionID,
		AIPayload:    &payload,
	}
}

// normalizeSeverity maps a free-form severity string onto the recognized set,
// case-insensitively. Unrecognized non-empty values become warning; an
// omitted severity stays unset.
func normalizeSeverity(severity string) types.Severity {
	if severity == "" {
		return ""
	}
	switch types.Severity(strings.ToLower(severity)) {
	case types.SeverityInfo:
		return types.SeverityInfo
	case types.SeverityWarning:
		return types.SeverityWarning
	case types.SeverityError:
		return types.SeverityError
	default:
		return types.SeverityWarning
	}
}
