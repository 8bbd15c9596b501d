// Package scoring computes deterministic rubric scores from LLM-extracted
// per-criterion awards. The LLM supplies judgments; this package does all the
// arithmetic, in exact decimals.
package scoring

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// StructuralError represents a malformed rubric. The rubric definition must be
// fixed before scoring can be retried.
type StructuralError struct {
	CriterionID string
	Level       string
	Message     string
}

func (e *StructuralError) Error() string {
	switch {
	case e.Level != "":
		return fmt.Sprintf("invalid rubric: criterion '%s', level '%s': %s", e.CriterionID, e.Level, e.Message)
	case e.CriterionID != "":
		return fmt.Sprintf("invalid rubric: criterion '%s': %s", e.CriterionID, e.Message)
	default:
		return fmt.Sprintf("invalid rubric: %s", e.Message)
	}
}

// CriterionMismatchError represents an awarded-points set that does not match
// the rubric's criterion set. Partial or superfluous submissions are never
// silently accepted.
type CriterionMismatchError struct {
	Missing []string
	Extra   []string
}

func (e *CriterionMismatchError) Error() string {
	parts := make([]string, 0, 2)
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing criteria: %s", strings.Join(e.Missing, ", ")))
	}
	if len(e.Extra) > 0 {
		parts = append(parts, fmt.Sprintf("extra criteria: %s", strings.Join(e.Extra, ", ")))
	}
	return fmt.Sprintf("criterion mismatch: %s", strings.Join(parts, "; "))
}

// RangeError represents an awarded point value outside [0, max_points] for its
// criterion.
type RangeError struct {
	CriterionID string
	Value       decimal.Decimal
	Min         decimal.Decimal
	Max         decimal.Decimal
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid points for '%s': %s not in range [%s, %s]",
		e.CriterionID, e.Value.String(), e.Min.String(), e.Max.String())
}

// ZeroMaxPointsError represents a rubric whose weighted maximum is zero. Such
// a rubric can be structurally valid but is invalid for scoring.
type ZeroMaxPointsError struct{}

func (e *ZeroMaxPointsError) Error() string {
	return "maximum weighted points is zero, rubric cannot be scored"
}
