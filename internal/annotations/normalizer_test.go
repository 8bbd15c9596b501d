package annotations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/essay-grader/internal/types"
)

const normalizerDoc = "The quick brown fox.\nA lazy dog sleeps here.\nConclusion restates the thesis."

func TestNormalizeAnnotations_MixedBatch(t *testing.T) {
	raw := []types.RawAnnotation{
		{Line: 2, Quote: "lazy dog", Category: "grammar", Suggestion: "tighten this", Severity: "ERROR"},
		{Line: 1, Quote: "Conclusion restates", Category: "organization", Suggestion: "vary the ending", CriterionID: "organization"},
		{Line: 2, Quote: "lazy dog", Suggestion: "no category on this one"},
		{Line: 1, Quote: "zebra stampede", Category: "style", Suggestion: "unlocatable"},
	}

	result := NormalizeAnnotations(raw, normalizerDoc, "sub-7")

	assert.Equal(t, 4, result.Stats.Total)
	assert.Equal(t, 2, result.Stats.Resolved)
	assert.Equal(t, 2, result.Stats.Unresolved)
	require.Len(t, result.Normalized, 2)
	require.Len(t, result.Unresolved, 2)
}

func TestNormalizeAnnotations_ResolvedFields(t *testing.T) {
	raw := []types.RawAnnotation{
		{Line: 2, Quote: "lazy dog", Category: "grammar", Suggestion: "tighten this", Severity: "ERROR", CriterionID: "grammar"},
	}

	result := NormalizeAnnotations(raw, normalizerDoc, "sub-7")
	require.Len(t, result.Normalized, 1)

	annotation := result.Normalized[0]
	assert.Equal(t, "sub-7", annotation.SubmissionID)
	assert.Equal(t, 2, annotation.LineNumber)
	assert.Equal(t, 23, annotation.StartOffset)
	assert.Equal(t, 31, annotation.EndOffset)
	assert.Equal(t, "lazy dog", annotation.Quote)
	assert.Equal(t, "grammar", annotation.Category)
	assert.Equal(t, types.SeverityError, annotation.Severity)
	assert.Equal(t, types.StatusAISuggested, annotation.Status)
	assert.Equal(t, "grammar", annotation.CriterionID)
	require.NotNil(t, annotation.AIPayload)
	assert.Equal(t, raw[0], *annotation.AIPayload)
}

func TestNormalizeAnnotations_LineHintOffByTwo(t *testing.T) {
	raw := []types.RawAnnotation{
		{Line: 4, Quote: "lazy dog", Category: "grammar", Suggestion: "fix"},
	}

	result := NormalizeAnnotations(raw, normalizerDoc, "sub-7")
	require.Len(t, result.Normalized, 1)
	assert.Equal(t, 2, result.Normalized[0].LineNumber)
}

func TestNormalizeAnnotations_UnresolvedReasons(t *testing.T) {
	raw := []types.RawAnnotation{
		{Line: 2, Quote: "lazy dog", Suggestion: "no category"},
		{Line: 1, Quote: "zebra stampede", Category: "style", Suggestion: "bad quote"},
	}

	result := NormalizeAnnotations(raw, normalizerDoc, "sub-7")
	require.Len(t, result.Unresolved, 2)

	assert.Equal(t, "annotation has no category", result.Unresolved[0].Reason)
	assert.Equal(t, raw[0], result.Unresolved[0].RawAnnotation)
	assert.Equal(t, `could not locate quote "zebra stampede" near line 1`, result.Unresolved[1].Reason)
}

func TestNormalizeAnnotations_WhitespaceCategoryRejected(t *testing.T) {
	raw := []types.RawAnnotation{
		{Line: 2, Quote: "lazy dog", Category: "   ", Suggestion: "fix"},
	}

	result := NormalizeAnnotations(raw, normalizerDoc, "sub-7")
	assert.Empty(t, result.Normalized)
	require.Len(t, result.Unresolved, 1)
	assert.Equal(t, "annotation has no category", result.Unresolved[0].Reason)
}

func TestNormalizeAnnotations_OpenCategoryAccepted(t *testing.T) {
	raw := []types.RawAnnotation{
		{Line: 2, Quote: "lazy dog", Category: "custom_rubric_criterion_17", Suggestion: "fix"},
	}

	result := NormalizeAnnotations(raw, normalizerDoc, "sub-7")
	require.Len(t, result.Normalized, 1)
	assert.Equal(t, "custom_rubric_criterion_17", result.Normalized[0].Category)
}

func TestNormalizeAnnotations_EmptyBatch(t *testing.T) {
	result := NormalizeAnnotations(nil, normalizerDoc, "sub-7")

	assert.Empty(t, result.Normalized)
	assert.Empty(t, result.Unresolved)
	assert.Equal(t, NormalizationStats{}, result.Stats)
}

func TestCreateUnmatchedAnnotation(t *testing.T) {
	raw := types.RawAnnotation{
		Line:       12,
		Quote:      "missing text",
		Category:   "style",
		Suggestion: "rework this sentence",
		Severity:   "info",
	}

	annotation := CreateUnmatchedAnnotation(raw, "sub-7", "quote not found")

	assert.Equal(t, "sub-7", annotation.SubmissionID)
	assert.Equal(t, -1, annotation.LineNumber)
	assert.Equal(t, -1, annotation.StartOffset)
	assert.Equal(t, -1, annotation.EndOffset)
	assert.Equal(t, "style", annotation.Category)
	assert.Equal(t, "[Unmatched: quote not found] rework this sentence", annotation.Suggestion)
	assert.Equal(t, types.SeverityInfo, annotation.Severity)
	assert.Equal(t, types.StatusAISuggested, annotation.Status)
	require.NotNil(t, annotation.AIPayload)
	assert.Equal(t, raw, *annotation.AIPayload)
}

func TestCreateUnmatchedAnnotation_EmptyCategoryBecomesOther(t *testing.T) {
	raw := types.RawAnnotation{Quote: "x", Suggestion: "y"}

	annotation := CreateUnmatchedAnnotation(raw, "sub-7", "no category")
	assert.Equal(t, "Other", annotation.Category)
}

func TestNormalizeSeverity(t *testing.T) {
	tests := []struct {
		in   string
		want types.Severity
	}{
		{"", ""},
		{"info", types.SeverityInfo},
		{"INFO", types.SeverityInfo},
		{"Warning", types.SeverityWarning},
		{"error", types.SeverityError},
		{"ERROR", types.SeverityError},
		{"critical", types.SeverityWarning},
		{"nonsense", types.SeverityWarning},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeSeverity(tt.in), "severity %q", tt.in)
	}
}
