// Package types provides type definitions for structured data used throughout the essay-grader system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RoundingMode selects how half-way values are resolved when rounding scores.
type RoundingMode string

// Supported rounding modes. HALF_EVEN is banker's rounding.
const (
	RoundHalfUp   RoundingMode = "HALF_UP"
	RoundHalfEven RoundingMode = "HALF_EVEN"
	RoundHalfDown RoundingMode = "HALF_DOWN"
)

// ScaleMode determines how a computed score is reported.
type ScaleMode string

// Supported scale modes.
const (
	ScalePercent ScaleMode = "percent"
	ScalePoints  ScaleMode = "points"
)

// Rounding configures rounding of computed score values.
type Rounding struct {
	Mode     RoundingMode `json:"mode" validate:"required,oneof=HALF_UP HALF_EVEN HALF_DOWN"`
	Decimals int          `json:"decimals" validate:"min=0,max=4"`
}

// Level is a named point on a criterion's scoring scale (e.g. "Proficient" = 3.0 of 4.0).
type Level struct {
	Label      string
	Points     decimal.Decimal
	Descriptor string
}

// Criterion is a single graded dimension of a rubric.
type Criterion struct {
	ID        string
	Name      string
	MaxPoints decimal.Decimal
	Weight    decimal.Decimal
	Levels    []Level
}

// Scale configures how the final score is reported and rounded.
// TotalPoints is required when Mode is ScalePoints.
type Scale struct {
	Mode        ScaleMode
	TotalPoints *decimal.Decimal
	Rounding    Rounding
}

// Rubric is the in-memory form of a grading rubric with exact decimal point
// values. Instances are constructed once per grading request and are immutable
// thereafter.
type Rubric struct {
	RubricID      string
	Title         string
	Criteria      []Criterion
	Scale         Scale
	SchemaVersion int
}

// LevelJSON is the wire form of a Level with points as a canonical decimal string.
type LevelJSON struct {
	Label      string `json:"label" validate:"required"`
	Points     string `json:"points" validate:"required"`
	Descriptor string `json:"descriptor"`
}

// CriterionJSON is the wire form of a Criterion.
type CriterionJSON struct {
	ID        string      `json:"id" validate:"required"`
	Name      string      `json:"name" validate:"required"`
	MaxPoints string      `json:"max_points" validate:"required"`
	Weight    string      `json:"weight" validate:"required"`
	Levels    []LevelJSON `json:"levels" validate:"required,min=1,dive"`
}

// ScaleJSON is the wire form of a Scale.
type ScaleJSON struct {
	Mode        ScaleMode `json:"mode" validate:"required,oneof=percent points"`
	TotalPoints *string   `json:"total_points"`
	Rounding    Rounding  `json:"rounding"`
}

// RubricJSON is the JSON-serializable form of a Rubric used at persistence and
// wire boundaries. All decimal fields are strings to avoid precision loss.
type RubricJSON struct {
	RubricID      string          `json:"rubric_id" validate:"required"`
	Title         string          `json:"title" validate:"required"`
	Criteria      []CriterionJSON `json:"criteria" validate:"required,min=1,dive"`
	Scale         ScaleJSON       `json:"scale"`
	SchemaVersion int             `json:"schema_version" validate:"required,min=1"`
}

// Validate validates the RubricJSON shape using the validator.
// Semantic checks (level points vs max_points, scale consistency) are done by
// the scoring package after conversion.
func (r *RubricJSON) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
