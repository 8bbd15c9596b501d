package types

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Award is one per-criterion judgment supplied by the LLM extraction step.
// The level label is informational; PointsAwarded is what gets scored.
type Award struct {
	CriterionID   string
	Level         string
	PointsAwarded decimal.Decimal
	Rationale     string
}

// ExtractedScores is the full set of per-criterion awards for one submission.
type ExtractedScores struct {
	SubmissionID string
	Scores       []Award
	Notes        string
}

// ComputedScores is the deterministic scoring output. All decimal values are
// fixed-point strings so storage and transport are lossless and byte-stable.
// FinalPoints is nil in percent mode.
type ComputedScores struct {
	RawPoints   string  `json:"raw_points"`
	MaxPoints   string  `json:"max_points"`
	Percent     string  `json:"percent"`
	FinalPoints *string `json:"final_points"`
}

// AwardJSON is the wire form of an Award.
type AwardJSON struct {
	CriterionID   string `json:"criterion_id" validate:"required"`
	Level         string `json:"level"`
	PointsAwarded string `json:"points_awarded" validate:"required"`
	Rationale     string `json:"rationale"`
}

// ExtractedScoresJSON is the wire form of ExtractedScores.
type ExtractedScoresJSON struct {
	SubmissionID string      `json:"submission_id" validate:"required"`
	Scores       []AwardJSON `json:"scores" validate:"required,min=1,dive"`
	Notes        string      `json:"notes,omitempty"`
}

// Validate validates the ExtractedScoresJSON shape using the validator.
func (e *ExtractedScoresJSON) Validate() error {
	validate := validator.New()
	return validate.Struct(e)
}
